package handlers

import (
	"errors"
	"net/http"

	"github.com/upb/llm-router/models"
	"github.com/upb/llm-router/utils"
)

// ChatMessage represents a single chat message
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

// RoutingContextRequest carries the optional per-request routing hints
type RoutingContextRequest struct {
	UserID             string   `json:"user_id,omitempty"`
	ConversationLength int      `json:"conversation_length,omitempty" validate:"omitempty,gte=0"`
	Domain             string   `json:"domain,omitempty"`
	PreviousModels     []string `json:"previous_models,omitempty"`
	Budget             float64  `json:"budget,omitempty" validate:"omitempty,gte=0"`
}

func (r *RoutingContextRequest) toContext() *models.RoutingContext {
	if r == nil {
		return nil
	}
	return &models.RoutingContext{
		UserID:             r.UserID,
		ConversationLength: r.ConversationLength,
		Domain:             r.Domain,
		PreviousModels:     r.PreviousModels,
		Budget:             r.Budget,
	}
}

func toMessages(in []ChatMessage) []models.Message {
	out := make([]models.Message, 0, len(in))
	for _, m := range in {
		out = append(out, models.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

// writeValidationError maps a validation failure to a 400 with field details.
func writeValidationError(w http.ResponseWriter, err error) {
	var vErr *utils.ValidationError
	if errors.As(err, &vErr) {
		_ = utils.WriteBadRequest(w, vErr.Message, vErr.FieldDetails())
		return
	}
	_ = utils.WriteBadRequest(w, err.Error(), nil)
}
