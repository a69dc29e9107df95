package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vprudente/insta-fashion/internal/domain/repositories"
)

func TestClientPoolService_Config(t *testing.T) {
	pool := NewClientPoolService(repositories.AIClientConfig{
		ProjectID: "demo-project",
		Location:  "us-central1",
		APIKey:    "key",
	})
	defer pool.Close()

	cfg := pool.Config()
	require.NotNil(t, cfg)
	assert.Equal(t, "demo-project", cfg.ProjectID)
	assert.Equal(t, "us-central1", cfg.Location)
	assert.NotNil(t, pool.VertexAIPool())
	assert.NotNil(t, pool.GenAIPool())
}

func TestClientPoolService_MissingCredentials(t *testing.T) {
	pool := NewClientPoolService(repositories.AIClientConfig{Location: "us-central1"})
	defer pool.Close()

	_, err := pool.GenAIPool().GetGenAIClient(context.Background())
	assert.ErrorContains(t, err, "API key")

	_, err = pool.VertexAIPool().GetVertexAIClient(context.Background())
	assert.ErrorContains(t, err, "project id")
}

func TestClientPoolService_GenAIClientIsCached(t *testing.T) {
	pool := NewClientPoolService(repositories.AIClientConfig{APIKey: "test-key"})

	first, err := pool.GenAIPool().GetGenAIClient(context.Background())
	require.NoError(t, err)
	second, err := pool.GenAIPool().GetGenAIClient(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, pool.Close())
	// Close is idempotent
	assert.NoError(t, pool.Close())
}
