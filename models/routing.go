package models

// ComplexityLevel is the classified difficulty tier of a request.
type ComplexityLevel string

const (
	ComplexitySimple   ComplexityLevel = "simple"
	ComplexityModerate ComplexityLevel = "moderate"
	ComplexityComplex  ComplexityLevel = "complex"
)

// RoutingContext carries optional per-call hints for the router.
// It is read-only; callers supply a fresh value per request.
type RoutingContext struct {
	UserID             string   `json:"user_id,omitempty"`
	ConversationLength int      `json:"conversation_length,omitempty"`
	Domain             string   `json:"domain,omitempty"`
	PreviousModels     []string `json:"previous_models,omitempty"`
	// Budget is a cost ceiling in dollars; zero means no ceiling.
	Budget float64 `json:"budget,omitempty"`
}

// HasBudget reports whether a budget ceiling was supplied.
func (c *RoutingContext) HasBudget() bool {
	return c != nil && c.Budget > 0
}

// RoutingDecision is the outcome of one route() call. Produced fresh per
// call and never mutated after creation.
type RoutingDecision struct {
	Model      *ModelDescriptor `json:"model"`
	Reason     string           `json:"reason"`
	Complexity ComplexityLevel  `json:"complexity"`
	Confidence float64          `json:"confidence"`
}
