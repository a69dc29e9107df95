package entities

type TextResult struct {
	text  string
	model string
}

func NewTextResult(text string, model string) *TextResult {
	return &TextResult{
		text:  text,
		model: model,
	}
}

func (r *TextResult) Text() string {
	return r.text
}

// Model is the model that actually answered, when the backend reports it.
func (r *TextResult) Model() string {
	return r.model
}
