package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/upb/llm-router/app"
	"github.com/upb/llm-router/services/routing"
	"github.com/upb/llm-router/utils"
)

// PreviewRequest asks for a routing decision without executing it
type PreviewRequest struct {
	Input   string                 `json:"input" validate:"required"`
	Context *RoutingContextRequest `json:"context,omitempty"`
}

// PreviewHandler returns the decision the router would make for an input.
// It never triggers a backend call.
func PreviewHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PreviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = utils.WriteBadRequest(w, "invalid JSON body", nil)
			return
		}

		if err := utils.ValidateStruct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		decision := deps.Router.Preview(req.Input, req.Context.toContext())
		_ = utils.WriteOK(w, decision)
	}
}

// RuleRequest creates a routing rule. Exactly one match variant applies;
// when several are supplied, keywords win over pattern, pattern over domain.
type RuleRequest struct {
	Name        string   `json:"name" validate:"required"`
	Priority    int      `json:"priority"`
	TargetModel string   `json:"target_model" validate:"required"`
	Keywords    []string `json:"keywords,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
	Domain      string   `json:"domain,omitempty"`
}

// RuleResponse describes an installed rule
type RuleResponse struct {
	Name        string `json:"name"`
	Priority    int    `json:"priority"`
	TargetModel string `json:"target_model"`
}

// ListRulesHandler lists installed rules by descending priority
func ListRulesHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rules := deps.Router.Rules()
		out := make([]RuleResponse, 0, len(rules))
		for _, rule := range rules {
			out = append(out, RuleResponse{
				Name:        rule.Name,
				Priority:    rule.Priority,
				TargetModel: rule.TargetModel,
			})
		}
		_ = utils.WriteOK(w, out)
	}
}

// CreateRuleHandler installs a routing rule
func CreateRuleHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RuleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = utils.WriteBadRequest(w, "invalid JSON body", nil)
			return
		}

		if err := utils.ValidateStruct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		if _, err := deps.Registry.Get(req.TargetModel); err != nil {
			_ = utils.WriteBadRequest(w, "target model is not registered", map[string]interface{}{
				"target_model": req.TargetModel,
			})
			return
		}

		predicate, err := buildPredicate(&req)
		if err != nil {
			_ = utils.WriteBadRequest(w, err.Error(), nil)
			return
		}

		for _, existing := range deps.Router.Rules() {
			if existing.Name == req.Name {
				_ = utils.WriteConflict(w, "rule already exists", map[string]interface{}{
					"name": req.Name,
				})
				return
			}
		}

		deps.Router.AddRule(routing.Rule{
			Name:        req.Name,
			Priority:    req.Priority,
			Predicate:   predicate,
			TargetModel: req.TargetModel,
		})

		_ = utils.WriteCreated(w, RuleResponse{
			Name:        req.Name,
			Priority:    req.Priority,
			TargetModel: req.TargetModel,
		})
	}
}

// DeleteRuleHandler removes a rule by name
func DeleteRuleHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if !deps.Router.RemoveRule(name) {
			_ = utils.WriteNotFound(w, "rule not found")
			return
		}
		utils.WriteNoContent(w)
	}
}

func buildPredicate(req *RuleRequest) (routing.Predicate, error) {
	switch {
	case len(req.Keywords) > 0:
		return &routing.KeywordPredicate{Keywords: req.Keywords}, nil
	case req.Pattern != "":
		return routing.NewRegexPredicate(req.Pattern)
	case req.Domain != "":
		return &routing.DomainPredicate{Domain: req.Domain}, nil
	default:
		return nil, errors.New("rule needs keywords, a pattern, or a domain to match on")
	}
}
