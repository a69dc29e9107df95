package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vprudente/insta-fashion/internal/application/services"
	"github.com/vprudente/insta-fashion/internal/application/usecases"
	"github.com/vprudente/insta-fashion/internal/domain"
	"github.com/vprudente/insta-fashion/internal/domain/entities"
	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
	"github.com/vprudente/insta-fashion/internal/logging"
)

type Recommender interface {
	Execute(ctx context.Context, input usecases.RecommendationInput) (*entities.RecommendationResponse, error)
}

type RecommendationHandler struct {
	recommender      Recommender
	parameterService *services.ParameterService
	retailers        []valueobjects.Retailer
	backend          string
}

func NewRecommendationHandler(
	recommender Recommender,
	parameterService *services.ParameterService,
	retailers []valueobjects.Retailer,
	backend string,
) *RecommendationHandler {
	return &RecommendationHandler{
		recommender:      recommender,
		parameterService: parameterService,
		retailers:        retailers,
		backend:          backend,
	}
}

func (h *RecommendationHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	input, err := h.parameterService.ParseFromRequest(w, r)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.sendError(w, "image is too large", http.StatusRequestEntityTooLarge)
			return
		}
		logger.Info("Rejected recommendation request", "error", err)
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := h.recommender.Execute(r.Context(), input)
	if err != nil {
		h.sendExecuteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.Header().Set("X-Analysis-ID", string(response.RequestID))

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *RecommendationHandler) sendExecuteError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context())

	if domain.IsInputError(err) {
		logger.Info("Rejected recommendation request", "error", err)
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var analysisErr *domain.AnalysisError
	if errors.As(err, &analysisErr) {
		if domain.IsQuotaError(err) {
			logger.Warn("Style analysis hit oracle quota", "error", err)
			h.sendError(w, "service temporarily unavailable due to high demand, please retry later", http.StatusServiceUnavailable)
			return
		}
		logger.Error("Style analysis failed", "error", err)
		h.sendError(w, err.Error(), http.StatusBadGateway)
		return
	}

	logger.Error("Recommendation failed", "error", err)
	h.sendError(w, "internal error", http.StatusInternalServerError)
}

type retailerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (h *RecommendationHandler) HandleRetailers(w http.ResponseWriter, r *http.Request) {
	retailers := make([]retailerInfo, 0, len(h.retailers))
	for _, retailer := range h.retailers {
		retailers = append(retailers, retailerInfo{ID: retailer.ID, Name: retailer.Name})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"retailers":    retailers,
		"budget_tiers": valueobjects.KnownBudgetTiers(),
		"backend":      h.backend,
	})
}

func (h *RecommendationHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *RecommendationHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	sendError(w, message, statusCode)
}

func sendError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
