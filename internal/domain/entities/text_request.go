package entities

// TextRequest is a text-only oracle call.
type TextRequest struct {
	systemPrompt string
	prompt       string

	// 対象とするモデル。空の場合はバックエンドの既定値
	model string
}

func NewTextRequest(systemPrompt string, prompt string, model string) *TextRequest {
	return &TextRequest{
		systemPrompt: systemPrompt,
		prompt:       prompt,
		model:        model,
	}
}

func (r *TextRequest) SystemPrompt() string {
	return r.systemPrompt
}

func (r *TextRequest) Prompt() string {
	return r.prompt
}

func (r *TextRequest) Model() string {
	return r.model
}
