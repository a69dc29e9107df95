package external

import (
	"context"
	"fmt"
	"log/slog"

	genai_std "google.golang.org/genai"

	"github.com/vprudente/insta-fashion/internal/domain/entities"
	"github.com/vprudente/insta-fashion/internal/domain/repositories"
)

// GeminiAIService talks to the Gemini API through the shared GenAI client pool.
type GeminiAIService struct {
	pool        repositories.GenAIClientPool
	visionModel string
	textModel   string
}

func NewGeminiAIService(pool repositories.GenAIClientPool, visionModel, textModel string) *GeminiAIService {
	return &GeminiAIService{
		pool:        pool,
		visionModel: visionModel,
		textModel:   textModel,
	}
}

func (s *GeminiAIService) Backend() string {
	return "gemini"
}

func (s *GeminiAIService) AnalyzeImage(ctx context.Context, request *entities.VisionRequest) (*entities.TextResult, error) {
	client, err := s.pool.GetGenAIClient(ctx)
	if err != nil {
		return nil, err
	}

	model := pickModel(request.Model(), s.visionModel)
	image := request.Image()

	contents := []*genai_std.Content{
		genai_std.NewContentFromParts([]*genai_std.Part{
			genai_std.NewPartFromText(request.Prompt()),
			genai_std.NewPartFromBytes(image.Data(), image.MimeType()),
		}, genai_std.RoleUser),
	}

	config := &genai_std.GenerateContentConfig{
		SystemInstruction: genai_std.NewContentFromText(request.SystemPrompt(), genai_std.RoleUser),
		ResponseMIMEType:  request.ResponseMIMEType(),
		Temperature:       genai_std.Ptr[float32](0.2),
	}

	resp, err := client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	slog.Info("Gemini API response",
		"model", model,
		"candidatesCount", len(resp.Candidates))

	return entities.NewTextResult(resp.Text(), model), nil
}

func (s *GeminiAIService) GenerateText(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error) {
	client, err := s.pool.GetGenAIClient(ctx)
	if err != nil {
		return nil, err
	}

	model := pickModel(request.Model(), s.textModel)

	var config *genai_std.GenerateContentConfig
	if request.SystemPrompt() != "" {
		config = &genai_std.GenerateContentConfig{
			SystemInstruction: genai_std.NewContentFromText(request.SystemPrompt(), genai_std.RoleUser),
			ResponseMIMEType:  "application/json",
		}
	}

	resp, err := client.Models.GenerateContent(ctx,
		model,
		genai_std.Text(request.Prompt()),
		config,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return entities.NewTextResult(resp.Text(), model), nil
}

func (s *GeminiAIService) Close() error {
	return s.pool.Close()
}

func pickModel(requested, fallback string) string {
	if requested != "" {
		return requested
	}
	return fallback
}
