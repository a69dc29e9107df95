package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
)

type AnalysisRequestID string

// AnalysisRequest is one inbound photo plus budget tier. It lives for a single request.
type AnalysisRequest struct {
	id         AnalysisRequestID
	image      *valueobjects.ImageData
	budgetTier valueobjects.BudgetTier
	createdAt  time.Time
}

func NewAnalysisRequest(image *valueobjects.ImageData, budgetTier valueobjects.BudgetTier) (*AnalysisRequest, error) {
	if image == nil {
		return nil, fmt.Errorf("image is required")
	}

	if budgetTier == "" {
		budgetTier = valueobjects.TierMedium
	}

	return &AnalysisRequest{
		id:         AnalysisRequestID("req_" + uuid.NewString()),
		image:      image,
		budgetTier: budgetTier,
		createdAt:  time.Now(),
	}, nil
}

func (r *AnalysisRequest) ID() AnalysisRequestID {
	return r.id
}

func (r *AnalysisRequest) Image() *valueobjects.ImageData {
	return r.image
}

func (r *AnalysisRequest) BudgetTier() valueobjects.BudgetTier {
	return r.budgetTier
}

func (r *AnalysisRequest) CreatedAt() time.Time {
	return r.createdAt
}
