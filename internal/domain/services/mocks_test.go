package services

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"sync"
	"testing"

	"github.com/vprudente/insta-fashion/internal/domain/entities"
	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
)

type mockVisionAI struct {
	text string
	err  error

	mu       sync.Mutex
	requests []*entities.VisionRequest
}

func (m *mockVisionAI) AnalyzeImage(ctx context.Context, request *entities.VisionRequest) (*entities.TextResult, error) {
	m.mu.Lock()
	m.requests = append(m.requests, request)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return entities.NewTextResult(m.text, "mock-vision"), nil
}

type mockTextAI struct {
	text   string
	err    error
	byItem map[string]string
	block  bool

	mu       sync.Mutex
	requests []*entities.TextRequest
}

func (m *mockTextAI) GenerateText(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error) {
	m.mu.Lock()
	m.requests = append(m.requests, request)
	m.mu.Unlock()

	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.err != nil {
		return nil, m.err
	}
	for item, text := range m.byItem {
		if bytes.Contains([]byte(request.Prompt()), []byte("Item: "+item+"\n")) {
			return entities.NewTextResult(text, "mock-text"), nil
		}
	}
	return entities.NewTextResult(m.text, "mock-text"), nil
}

func (m *mockTextAI) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func createTestImageData(t *testing.T) *valueobjects.ImageData {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	imageData, err := valueobjects.NewImageData(buf.Bytes(), "image/jpeg")
	if err != nil {
		t.Fatalf("Failed to create test image data: %v", err)
	}
	return imageData
}
