package ac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityfusion/fusion/pkg/ac"
)

func TestBuildAndScan(t *testing.T) {
	automaton, err := ac.Build([]ac.SetSpec{
		{
			Name: "orgs",
			Entries: []ac.Entry{
				{Pattern: "Acme Corp", Value: "org:acme"},
				{Pattern: "Globex", Value: "org:globex"},
			},
			CaseFold:  true,
			Prefilter: true,
		},
	})
	require.NoError(t, err)

	matches, stats := automaton.Scan("Acme Corp signed a deal with globex last week.")
	require.Len(t, matches, 2)
	assert.Equal(t, 2, stats.Matches)

	assert.Equal(t, "org:acme", matches[0].Value)
	assert.Equal(t, "org:globex", matches[1].Value)
	assert.True(t, matches[0].End < matches[1].End)
}

func TestBuildDuplicatePatternConflictingValueIsCollision(t *testing.T) {
	_, err := ac.Build([]ac.SetSpec{
		{
			Name: "aliases",
			Entries: []ac.Entry{
				{Pattern: "IBM", Value: "org:ibm"},
				{Pattern: "IBM", Value: "org:ibm-alt"},
			},
		},
	})
	require.Error(t, err)
	var collisionErr *ac.CollisionError
	assert.ErrorAs(t, err, &collisionErr)

	automaton, err := ac.Build([]ac.SetSpec{
		{
			Name: "aliases",
			Entries: []ac.Entry{
				{Pattern: "IBM", Value: "org:ibm"},
				{Pattern: "IBM", Value: "org:ibm"},
			},
		},
	})
	require.NoError(t, err)

	matches, _ := automaton.Scan("IBM announced earnings.")
	require.Len(t, matches, 1)
	assert.Equal(t, "org:ibm", matches[0].Value)
}

func TestBuildRejectsEmptyPattern(t *testing.T) {
	_, err := ac.Build([]ac.SetSpec{
		{Name: "bad", Entries: []ac.Entry{{Pattern: "", Value: 1}}},
	})
	require.Error(t, err)
	var emptyErr *ac.EmptyPatternError
	assert.ErrorAs(t, err, &emptyErr)
}

func TestScanUnknownSetNameIsIgnored(t *testing.T) {
	automaton, err := ac.Build([]ac.SetSpec{
		{Name: "orgs", Entries: []ac.Entry{{Pattern: "Acme", Value: "org:acme"}}},
	})
	require.NoError(t, err)

	matches, _ := automaton.Scan("Acme is here", "not-a-set")
	assert.Empty(t, matches)
}

func TestHasSetAndSetNames(t *testing.T) {
	automaton, err := ac.Build([]ac.SetSpec{
		{Name: "orgs", Entries: []ac.Entry{{Pattern: "Acme", Value: 1}}},
		{Name: "locs", Entries: []ac.Entry{{Pattern: "Paris", Value: 2}}},
	})
	require.NoError(t, err)

	assert.True(t, automaton.HasSet("orgs"))
	assert.False(t, automaton.HasSet("missing"))
	assert.ElementsMatch(t, []string{"orgs", "locs"}, automaton.SetNames())
}

func TestIsWordBoundaryMatch(t *testing.T) {
	text := "the Acme-Corp division"
	start, end := 4, 8 // "Acme"
	assert.True(t, ac.IsWordBoundaryMatch(text, start, end))

	text2 := "theAcme here"
	assert.False(t, ac.IsWordBoundaryMatch(text2, 3, 7))
}
