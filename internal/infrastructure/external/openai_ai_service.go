package external

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/vprudente/insta-fashion/internal/domain/entities"
)

// OpenAIService works against any OpenAI-compatible chat completions endpoint.
type OpenAIService struct {
	client      openai.Client
	visionModel string
	textModel   string
}

func NewOpenAIService(key, url, visionModel, textModel string) *OpenAIService {
	client := openai.NewClient(option.WithAPIKey(key), option.WithBaseURL(url))

	return &OpenAIService{
		client:      client,
		visionModel: visionModel,
		textModel:   textModel,
	}
}

func (s *OpenAIService) Backend() string {
	return "openai"
}

func (s *OpenAIService) AnalyzeImage(ctx context.Context, request *entities.VisionRequest) (*entities.TextResult, error) {
	model := pickModel(request.Model(), s.visionModel)

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Temperature: openai.Float(0.2),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(request.SystemPrompt()),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
							{OfText: &openai.ChatCompletionContentPartTextParam{
								Text: request.Prompt(),
							}},
							{OfImageURL: &openai.ChatCompletionContentPartImageParam{
								ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
									URL:    request.Image().ToDataURI(),
									Detail: "auto",
								},
							}},
						},
					},
				},
			},
		},
	}

	return s.complete(ctx, model, params)
}

func (s *OpenAIService) GenerateText(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error) {
	model := pickModel(request.Model(), s.textModel)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if request.SystemPrompt() != "" {
		messages = append(messages, openai.SystemMessage(request.SystemPrompt()))
	}
	messages = append(messages, openai.UserMessage(request.Prompt()))

	return s.complete(ctx, model, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	})
}

func (s *OpenAIService) complete(ctx context.Context, model string, params openai.ChatCompletionNewParams) (*entities.TextResult, error) {
	response, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	slog.Info("OpenAI response",
		"model", response.Model,
		"finishReason", response.Choices[0].FinishReason,
		"totalTokens", response.Usage.TotalTokens)

	return entities.NewTextResult(response.Choices[0].Message.Content, model), nil
}

func (s *OpenAIService) Close() error {
	return nil
}
