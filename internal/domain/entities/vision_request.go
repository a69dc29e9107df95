package entities

import "github.com/vprudente/insta-fashion/internal/domain/valueobjects"

// VisionRequest is a multimodal oracle call: one image plus instructions.
type VisionRequest struct {
	systemPrompt     string
	prompt           string
	image            *valueobjects.ImageData
	responseMIMEType string
	model            string
}

func NewVisionRequest(systemPrompt string, prompt string, image *valueobjects.ImageData) *VisionRequest {
	return &VisionRequest{
		systemPrompt:     systemPrompt,
		prompt:           prompt,
		image:            image,
		responseMIMEType: "application/json",
	}
}

func (r *VisionRequest) SystemPrompt() string {
	return r.systemPrompt
}

func (r *VisionRequest) Prompt() string {
	return r.prompt
}

func (r *VisionRequest) Image() *valueobjects.ImageData {
	return r.image
}

// ResponseMIMEType is the response-shape constraint passed to backends that support one.
func (r *VisionRequest) ResponseMIMEType() string {
	return r.responseMIMEType
}

func (r *VisionRequest) Model() string {
	return r.model
}

func (r *VisionRequest) SetModel(model string) {
	r.model = model
}
