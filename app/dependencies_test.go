package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/llm-router/config"
	"github.com/upb/llm-router/models"
	"go.uber.org/zap"
)

func TestNewDependencies_DefaultCatalog(t *testing.T) {
	cfg, err := config.New(context.Background())
	require.NoError(t, err)

	deps, err := NewDependencies(cfg, nil, zap.NewNop())
	require.NoError(t, err)

	assert.NotNil(t, deps.Registry)
	assert.NotNil(t, deps.Router)
	assert.NotNil(t, deps.Chain)
	assert.NotNil(t, deps.Backend)
	assert.NotNil(t, deps.RoutingClient)
	assert.Equal(t, 3, deps.Registry.Count())
}

func TestNewDependencies_CustomCatalog(t *testing.T) {
	cfg, err := config.New(context.Background())
	require.NoError(t, err)

	deps, err := NewDependencies(cfg, []models.ModelDescriptor{
		{ID: "only", Name: "Only", Endpoint: "http://only", CostPer1KTokens: 0.001, MaxTokens: 2048},
	}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, deps.Registry.Count())
}

func TestNewDependencies_DuplicateModels(t *testing.T) {
	cfg, err := config.New(context.Background())
	require.NoError(t, err)

	_, err = NewDependencies(cfg, []models.ModelDescriptor{
		{ID: "dup"}, {ID: "dup"},
	}, zap.NewNop())

	assert.Error(t, err)
}
