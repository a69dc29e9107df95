package repositories

import (
	"context"

	"github.com/vprudente/insta-fashion/internal/domain/entities"
)

// 画像解析（マルチモーダル）サービス
type VisionAIService interface {
	AnalyzeImage(ctx context.Context, request *entities.VisionRequest) (*entities.TextResult, error)
}

// テキスト推論サービス
type TextAIService interface {
	GenerateText(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error)
}

// OracleService is one configured backend answering both call shapes.
type OracleService interface {
	VisionAIService
	TextAIService

	// Backend names the provider, e.g. "gemini".
	Backend() string

	Close() error
}
