package app

import (
	"fmt"

	"github.com/upb/llm-router/config"
	"github.com/upb/llm-router/models"
	"github.com/upb/llm-router/services/backend"
	"github.com/upb/llm-router/services/client"
	"github.com/upb/llm-router/services/fallback"
	"github.com/upb/llm-router/services/registry"
	"github.com/upb/llm-router/services/routing"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	Registry      *registry.Registry
	Router        *routing.Router
	Chain         *fallback.Chain
	Backend       *backend.Client
	RoutingClient *client.Client
}

// NewDependencies creates and wires up all application dependencies.
// Passing an empty descriptor list yields the registry's built-in
// three-tier default catalog.
func NewDependencies(cfg *config.Config, descriptors []models.ModelDescriptor, logger *zap.Logger) (*Dependencies, error) {
	reg, err := registry.New(descriptors)
	if err != nil {
		return nil, fmt.Errorf("failed to build model registry: %w", err)
	}

	router := routing.New(routing.Config{
		CostWeight:     cfg.Router.CostWeight,
		LatencyWeight:  cfg.Router.LatencyWeight,
		DefaultModelID: cfg.Router.DefaultModelID,
	}, reg, logger)

	chain := fallback.New(fallback.Config{
		Models:     cfg.Fallback.Models,
		MaxRetries: cfg.Fallback.MaxRetries,
		RetryDelay: cfg.Fallback.RetryDelay,
	}, logger)

	be := backend.NewClient(backend.Config{
		Timeout:     cfg.Backend.Timeout,
		Temperature: cfg.Backend.Temperature,
		MaxTokens:   cfg.Backend.MaxTokens,
	})

	deps := &Dependencies{
		Config:        cfg,
		Logger:        logger,
		Registry:      reg,
		Router:        router,
		Chain:         chain,
		Backend:       be,
		RoutingClient: client.New(router, reg, chain, be, logger),
	}

	logger.Info("all dependencies initialized",
		zap.Int("models", reg.Count()),
		zap.Strings("fallback_order", cfg.Fallback.Models))
	return deps, nil
}
