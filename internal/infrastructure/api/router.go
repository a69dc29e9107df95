package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(handler *RecommendationHandler) http.Handler {
	r := mux.NewRouter()
	r.Use(RequestLogger, Recoverer)

	r.HandleFunc("/api/recommendations", handler.HandleRecommend).Methods("POST")
	r.HandleFunc("/api/retailers", handler.HandleRetailers).Methods("GET")
	r.HandleFunc("/healthz", handler.HandleHealth).Methods("GET")

	return r
}
