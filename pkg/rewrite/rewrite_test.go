package rewrite_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityfusion/fusion/pkg/document"
	"github.com/entityfusion/fusion/pkg/rewrite"
)

func entities() []document.CanonicalEntity {
	return []document.CanonicalEntity{
		{ID: "org1", Canonical: "Acme", Aliases: []string{"Acme Corp", "Acme"}},
	}
}

func TestRewriteReplacesEveryAlias(t *testing.T) {
	automaton, err := rewrite.Build(entities())
	require.NoError(t, err)

	out := rewrite.Rewrite("Acme Corp signed with Acme today.", automaton)
	assert.Equal(t, 2, strings.Count(out, "‖Acme‖org1‖"))
}

func TestRewriteIsIdempotent(t *testing.T) {
	automaton, err := rewrite.Build(entities())
	require.NoError(t, err)

	once := rewrite.Rewrite("Acme announced results.", automaton)
	twice := rewrite.Rewrite(once, automaton)
	assert.Equal(t, once, twice)
}

func TestRewriteNilAutomatonIsNoOp(t *testing.T) {
	out := rewrite.Rewrite("unchanged text", nil)
	assert.Equal(t, "unchanged text", out)
}

func TestRewriteRespectsWordBoundaries(t *testing.T) {
	automaton, err := rewrite.Build(entities())
	require.NoError(t, err)

	out := rewrite.Rewrite("MegaAcmeCorporation is unrelated.", automaton)
	assert.NotContains(t, out, "‖Acme‖")
}

func TestRewritePicksLongestOverlap(t *testing.T) {
	ents := []document.CanonicalEntity{
		{ID: "org1", Canonical: "Acme", Aliases: []string{"Acme"}},
		{ID: "org2", Canonical: "Acme Corp", Aliases: []string{"Acme Corp"}},
	}
	automaton, err := rewrite.Build(ents)
	require.NoError(t, err)

	out := rewrite.Rewrite("Acme Corp is here.", automaton)
	assert.Contains(t, out, "‖Acme Corp‖org2‖")
	assert.NotContains(t, out, "‖Acme‖org1‖")
}
