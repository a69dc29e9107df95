package external

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/vprudente/insta-fashion/internal/domain/entities"
	"github.com/vprudente/insta-fashion/internal/domain/repositories"
)

// VertexAIService uses the Vertex AI SDK with application default credentials.
type VertexAIService struct {
	pool        repositories.VertexAIClientPool
	visionModel string
	textModel   string
}

func NewVertexAIService(pool repositories.VertexAIClientPool, visionModel, textModel string) *VertexAIService {
	return &VertexAIService{
		pool:        pool,
		visionModel: visionModel,
		textModel:   textModel,
	}
}

func (s *VertexAIService) Backend() string {
	return "vertex"
}

func (s *VertexAIService) AnalyzeImage(ctx context.Context, request *entities.VisionRequest) (*entities.TextResult, error) {
	client, err := s.pool.GetVertexAIClient(ctx)
	if err != nil {
		return nil, err
	}

	modelName := pickModel(request.Model(), s.visionModel)
	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(request.SystemPrompt())},
	}
	model.ResponseMIMEType = request.ResponseMIMEType()
	model.SetTemperature(0.2)

	image := request.Image()
	resp, err := model.GenerateContent(ctx,
		genai.Text(request.Prompt()),
		genai.ImageData(string(image.Format()), image.Data()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := collectText(resp)
	if err != nil {
		return nil, err
	}

	slog.Info("Vertex AI response",
		"model", modelName,
		"candidatesCount", len(resp.Candidates))

	return entities.NewTextResult(text, modelName), nil
}

func (s *VertexAIService) GenerateText(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error) {
	client, err := s.pool.GetVertexAIClient(ctx)
	if err != nil {
		return nil, err
	}

	modelName := pickModel(request.Model(), s.textModel)
	model := client.GenerativeModel(modelName)
	if request.SystemPrompt() != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(request.SystemPrompt())},
		}
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(request.Prompt()))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := collectText(resp)
	if err != nil {
		return nil, err
	}
	return entities.NewTextResult(text, modelName), nil
}

func (s *VertexAIService) Close() error {
	return s.pool.Close()
}

// collectText joins the text parts of the first candidate.
func collectText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text found in response")
	}
	return sb.String(), nil
}
