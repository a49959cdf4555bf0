package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/llm-router/models"
)

func TestKeywordPredicate(t *testing.T) {
	p := &KeywordPredicate{Keywords: []string{"urgent", "ASAP"}}

	assert.True(t, p.Matches("this is URGENT please", nil))
	assert.True(t, p.Matches("need it asap", nil))
	assert.False(t, p.Matches("take your time", nil))
}

func TestRegexPredicate(t *testing.T) {
	p, err := NewRegexPredicate(`\btranslate\b`)
	require.NoError(t, err)

	assert.True(t, p.Matches("please translate this", nil))
	assert.False(t, p.Matches("translated already", nil))

	_, err = NewRegexPredicate(`[`)
	assert.Error(t, err)
}

func TestDomainPredicate(t *testing.T) {
	p := &DomainPredicate{Domain: "legal"}

	assert.True(t, p.Matches("anything", &models.RoutingContext{Domain: "legal"}))
	assert.False(t, p.Matches("anything", &models.RoutingContext{Domain: "medical"}))
	assert.False(t, p.Matches("anything", nil))
}

func TestPredicateFunc(t *testing.T) {
	p := PredicateFunc(func(input string, ctx *models.RoutingContext) bool {
		return len(input) > 10
	})

	assert.True(t, p.Matches("a long enough input", nil))
	assert.False(t, p.Matches("short", nil))
}
