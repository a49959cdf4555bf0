package handlers

import (
	"net/http"

	"github.com/upb/llm-router/app"
	"github.com/upb/llm-router/utils"
)

// HealthCheck reports process liveness
func HealthCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadinessCheck reports whether the gateway can serve traffic
func ReadinessCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Registry.Count() == 0 {
			_ = utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"reason": "no models registered",
			})
			return
		}
		_ = utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
