package registry

import (
	"errors"
	"fmt"

	"github.com/upb/llm-router/models"
)

var (
	// ErrModelNotFound is returned when a model id is not registered
	ErrModelNotFound = errors.New("model not found")

	// ErrDuplicateModel is returned when two descriptors share an id
	ErrDuplicateModel = errors.New("duplicate model id")
)

// Registry is a static catalog of model descriptors. It is populated once
// at construction and read-only afterwards, which makes every accessor
// safe for unlimited concurrent callers. Iteration order is registration
// order; getCheapest/getMostCapable tie-breaks depend on it.
type Registry struct {
	order  []string
	models map[string]*models.ModelDescriptor
}

// New builds a registry from an ordered descriptor list. Passing an empty
// list yields the built-in three-tier default catalog.
func New(descriptors []models.ModelDescriptor) (*Registry, error) {
	if len(descriptors) == 0 {
		descriptors = defaultCatalog()
	}

	r := &Registry{
		models: make(map[string]*models.ModelDescriptor, len(descriptors)),
	}

	for i := range descriptors {
		d := descriptors[i]
		if d.ID == "" {
			return nil, errors.New("model id cannot be empty")
		}
		if _, exists := r.models[d.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateModel, d.ID)
		}
		r.order = append(r.order, d.ID)
		r.models[d.ID] = &d
	}

	return r, nil
}

// Get returns the descriptor for an id.
func (r *Registry) Get(id string) (*models.ModelDescriptor, error) {
	m, exists := r.models[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, id)
	}
	return m, nil
}

// GetAll returns all descriptors in registration order.
func (r *Registry) GetAll() []*models.ModelDescriptor {
	all := make([]*models.ModelDescriptor, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.models[id])
	}
	return all
}

// GetByCapability returns all descriptors carrying the given tag, in
// registration order.
func (r *Registry) GetByCapability(cap models.Capability) []*models.ModelDescriptor {
	var matched []*models.ModelDescriptor
	for _, id := range r.order {
		if r.models[id].HasCapability(cap) {
			matched = append(matched, r.models[id])
		}
	}
	return matched
}

// GetCheapest returns the descriptor with the lowest cost per 1K tokens.
// Ties resolve to the first-registered model.
func (r *Registry) GetCheapest() *models.ModelDescriptor {
	var best *models.ModelDescriptor
	for _, id := range r.order {
		m := r.models[id]
		if best == nil || m.CostPer1KTokens < best.CostPer1KTokens {
			best = m
		}
	}
	return best
}

// GetMostCapable returns the descriptor with the most capability tags.
// Ties resolve to the first-registered model.
func (r *Registry) GetMostCapable() *models.ModelDescriptor {
	var best *models.ModelDescriptor
	for _, id := range r.order {
		m := r.models[id]
		if best == nil || len(m.Capabilities) > len(best.Capabilities) {
			best = m
		}
	}
	return best
}

// Count returns the number of registered models.
func (r *Registry) Count() int {
	return len(r.order)
}

// defaultCatalog is the built-in small/medium/large trio used when no
// descriptors are supplied.
func defaultCatalog() []models.ModelDescriptor {
	return []models.ModelDescriptor{
		{
			ID:               "small-1",
			Name:             "Small",
			Endpoint:         "http://localhost:8001",
			CostPer1KTokens:  0.0005,
			MaxTokens:        4096,
			TypicalLatencyMs: 200,
			Capabilities:     []models.Capability{models.CapabilityChat, models.CapabilityFast},
		},
		{
			ID:               "medium-1",
			Name:             "Medium",
			Endpoint:         "http://localhost:8002",
			CostPer1KTokens:  0.003,
			MaxTokens:        16384,
			TypicalLatencyMs: 500,
			Capabilities:     []models.Capability{models.CapabilityChat, models.CapabilityCode, models.CapabilityMultilingual},
		},
		{
			ID:               "large-1",
			Name:             "Large",
			Endpoint:         "http://localhost:8003",
			CostPer1KTokens:  0.01,
			MaxTokens:        128000,
			TypicalLatencyMs: 900,
			Capabilities: []models.Capability{
				models.CapabilityChat, models.CapabilityCode, models.CapabilityReasoning,
				models.CapabilityMath, models.CapabilityCreative,
			},
		},
	}
}
