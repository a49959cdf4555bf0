package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/upb/llm-router/app"
	"github.com/upb/llm-router/models"
	"github.com/upb/llm-router/services/registry"
	"github.com/upb/llm-router/utils"
)

// ListModelsHandler returns the model catalog, optionally filtered by a
// ?capability= tag.
func ListModelsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if tag := r.URL.Query().Get("capability"); tag != "" {
			_ = utils.WriteOK(w, deps.Registry.GetByCapability(models.Capability(tag)))
			return
		}
		_ = utils.WriteOK(w, deps.Registry.GetAll())
	}
}

// GetModelHandler returns one model descriptor by id
func GetModelHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		m, err := deps.Registry.Get(id)
		if err != nil {
			if errors.Is(err, registry.ErrModelNotFound) {
				_ = utils.WriteNotFound(w, "model not found")
				return
			}
			_ = utils.WriteInternalServerError(w, err.Error())
			return
		}
		_ = utils.WriteOK(w, m)
	}
}

// GetCheapestModelHandler returns the lowest-cost model
func GetCheapestModelHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, deps.Registry.GetCheapest())
	}
}

// GetMostCapableModelHandler returns the model with the most capability tags
func GetMostCapableModelHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, deps.Registry.GetMostCapable())
	}
}

// StatsHandler returns per-model request statistics
func StatsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, deps.RoutingClient.Stats())
	}
}
