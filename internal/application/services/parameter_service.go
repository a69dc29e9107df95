package services

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/vprudente/insta-fashion/internal/application/usecases"
	"github.com/vprudente/insta-fashion/internal/domain"
	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
)

const defaultMaxImageBytes int64 = 32 << 20

// ParameterService turns an inbound HTTP request into use case input.
type ParameterService struct {
	maxBytes int64
}

func NewParameterService(maxBytes int64) *ParameterService {
	if maxBytes <= 0 {
		maxBytes = defaultMaxImageBytes
	}
	return &ParameterService{maxBytes: maxBytes}
}

type recommendationBody struct {
	Image  string `json:"image"`
	Budget string `json:"budget"`
}

// ParseFromRequest accepts a JSON body {"image": dataURI, "budget": tier} or a
// multipart form with an "image" file and a "budget" field.
func (s *ParameterService) ParseFromRequest(w http.ResponseWriter, r *http.Request) (usecases.RecommendationInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		return s.parseMultipart(r)
	case "application/json", "":
		return s.parseJSON(r)
	default:
		return usecases.RecommendationInput{}, domain.NewInputError("unsupported content type "+mediaType, nil)
	}
}

func (s *ParameterService) parseJSON(r *http.Request) (usecases.RecommendationInput, error) {
	var body recommendationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return usecases.RecommendationInput{}, domain.NewInputError("request body is empty", nil)
		}
		return usecases.RecommendationInput{}, domain.NewInputError("request body is not valid JSON", err)
	}
	if strings.TrimSpace(body.Image) == "" {
		return usecases.RecommendationInput{}, domain.NewInputError("image is required", nil)
	}

	return usecases.RecommendationInput{
		ImageDataURI: body.Image,
		Budget:       s.getBudget(body.Budget),
	}, nil
}

func (s *ParameterService) parseMultipart(r *http.Request) (usecases.RecommendationInput, error) {
	if err := r.ParseMultipartForm(s.maxBytes); err != nil {
		return usecases.RecommendationInput{}, domain.NewInputError("failed to parse multipart form", err)
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		// data URI in a plain form field
		if dataURI := r.FormValue("image"); dataURI != "" {
			return usecases.RecommendationInput{
				ImageDataURI: dataURI,
				Budget:       s.getBudget(r.FormValue("budget")),
			}, nil
		}
		return usecases.RecommendationInput{}, domain.NewInputError("image is required", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return usecases.RecommendationInput{}, domain.NewInputError("failed to read image file", err)
	}

	image, err := valueobjects.NewImageData(data, header.Header.Get("Content-Type"))
	if err != nil {
		return usecases.RecommendationInput{}, domain.NewInputError("invalid image", err)
	}

	return usecases.RecommendationInput{
		Image:  image,
		Budget: s.getBudget(r.FormValue("budget")),
	}, nil
}

// 未知の予算ティアはそのまま通す。価格計算時に medium 扱いになる
func (s *ParameterService) getBudget(value string) string {
	if strings.TrimSpace(value) == "" {
		return string(valueobjects.TierMedium)
	}
	return value
}
