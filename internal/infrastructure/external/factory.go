package external

import (
	"context"
	"fmt"

	"github.com/vprudente/insta-fashion/internal/config"
	"github.com/vprudente/insta-fashion/internal/domain/repositories"
)

// NewOracleService builds the backend selected by ORACLE_BACKEND. Google
// clients are created eagerly so bad credentials fail at startup.
func NewOracleService(
	ctx context.Context,
	cfg config.Config,
	pool repositories.ClientPoolService,
) (repositories.OracleService, error) {
	switch cfg.Backend {
	case config.BackendGemini:
		if _, err := pool.GenAIPool().GetGenAIClient(ctx); err != nil {
			return nil, err
		}
		return NewGeminiAIService(pool.GenAIPool(), cfg.Gemini.VisionModel, cfg.Gemini.TextModel), nil

	case config.BackendVertex:
		if _, err := pool.VertexAIPool().GetVertexAIClient(ctx); err != nil {
			return nil, err
		}
		return NewVertexAIService(pool.VertexAIPool(), cfg.Vertex.VisionModel, cfg.Vertex.TextModel), nil

	case config.BackendOpenAI:
		return NewOpenAIService(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.VisionModel, cfg.OpenAI.TextModel), nil

	default:
		return nil, fmt.Errorf("unknown oracle backend %q", cfg.Backend)
	}
}

// NewClientConfig maps the service config onto the client pool settings.
func NewClientConfig(cfg config.Config) repositories.AIClientConfig {
	return repositories.AIClientConfig{
		ProjectID: cfg.Vertex.Project(),
		Location:  cfg.Vertex.Location,
		APIKey:    cfg.Gemini.APIKey,
	}
}
