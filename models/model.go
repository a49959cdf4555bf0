package models

// Capability is a tag on a model descriptor indicating a supported task category.
type Capability string

const (
	CapabilityChat         Capability = "chat"
	CapabilityCode         Capability = "code"
	CapabilityReasoning    Capability = "reasoning"
	CapabilityMath         Capability = "math"
	CapabilityCreative     Capability = "creative"
	CapabilityFast         Capability = "fast"
	CapabilityMultilingual Capability = "multilingual"
)

// ModelDescriptor describes a backend model available for routing.
// Descriptors are immutable once registered; the registry owns them.
type ModelDescriptor struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Endpoint         string       `json:"endpoint"`
	CostPer1KTokens  float64      `json:"cost_per_1k_tokens"`
	MaxTokens        int          `json:"max_tokens"`
	TypicalLatencyMs int          `json:"typical_latency_ms"`
	Capabilities     []Capability `json:"capabilities"`
}

// HasCapability reports whether the descriptor carries the given tag.
func (m *ModelDescriptor) HasCapability(cap Capability) bool {
	for _, c := range m.Capabilities {
		if c == cap {
			return true
		}
	}
	return false
}

// Message represents a single message in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
