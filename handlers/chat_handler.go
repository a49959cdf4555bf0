package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/upb/llm-router/app"
	"github.com/upb/llm-router/services/fallback"
	"github.com/upb/llm-router/utils"
)

// ChatRequest is the inbound chat payload
type ChatRequest struct {
	Messages []ChatMessage          `json:"messages" validate:"required,min=1,dive"`
	Context  *RoutingContextRequest `json:"context,omitempty"`
}

// ChatHandler routes a conversation to a model and executes it with
// fallback. The terminal "all models failed" error surfaces as 502.
func ChatHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = utils.WriteBadRequest(w, "invalid JSON body", nil)
			return
		}

		if err := utils.ValidateStruct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		result, err := deps.RoutingClient.Chat(r.Context(), toMessages(req.Messages), req.Context.toContext())
		if err != nil {
			if errors.Is(err, fallback.ErrAllModelsFailed) {
				_ = utils.WriteBadGateway(w, err.Error())
				return
			}
			if r.Context().Err() != nil {
				// Client went away; nothing useful to write.
				return
			}
			_ = utils.WriteInternalServerError(w, err.Error())
			return
		}

		_ = utils.WriteOK(w, result)
	}
}
