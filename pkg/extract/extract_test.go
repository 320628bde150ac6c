package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityfusion/fusion/pkg/ac"
	"github.com/entityfusion/fusion/pkg/document"
	"github.com/entityfusion/fusion/pkg/extract"
	"github.com/entityfusion/fusion/pkg/patterns"
)

func TestExtractEmptyBodyIsDone(t *testing.T) {
	result := extract.Extract("", true, true, nil, extract.DefaultConfig())
	assert.Equal(t, extract.StateDone, result.State)
	assert.Empty(t, result.Mentions)
}

func TestExtractFindsRegexMentions(t *testing.T) {
	cfg := extract.DefaultConfig()
	cfg.Patterns = patterns.BuildDefault()

	result := extract.Extract("Contact hello@example.com for details.", false, true, nil, cfg)
	require.NotEmpty(t, result.Mentions)

	var sawEmail bool
	for _, m := range result.Mentions {
		if m.Kind == document.KindEmail {
			sawEmail = true
			assert.Equal(t, "hello@example.com", m.Surface)
		}
	}
	assert.True(t, sawEmail)
}

func TestExtractFindsGazetteerMentions(t *testing.T) {
	automaton, err := ac.Build([]ac.SetSpec{
		{Name: extract.OrgGazetteerSet, Entries: []ac.Entry{{Pattern: "Acme Corp", Value: document.KindOrg}}, CaseFold: false},
	})
	require.NoError(t, err)

	cfg := extract.DefaultConfig()
	cfg.AC = automaton

	result := extract.Extract("Acme Corp announced quarterly results today.", true, false, nil, cfg)
	require.NotEmpty(t, result.Mentions)
	assert.Equal(t, "Acme Corp", result.Mentions[0].Surface)
	assert.Equal(t, document.KindOrg, result.Mentions[0].Kind)
}

func TestExtractDegradesOnPatternFailure(t *testing.T) {
	cfg := extract.DefaultConfig()
	cfg.Patterns = patterns.Build([]patterns.Spec{
		{Name: "bad", Category: "x", Source: `[`},
	})

	result := extract.Extract("some text", false, true, nil, cfg)
	assert.Equal(t, extract.StateDegraded, result.State)
	assert.NotEmpty(t, result.Warnings)
}

func TestExtractConsolidatesMoneyRange(t *testing.T) {
	cfg := extract.DefaultConfig()
	cfg.Patterns = patterns.BuildDefault()

	result := extract.Extract("The budget ranges from $30-$40 million.", false, true, []string{"money"}, cfg)

	var moneyMentions []document.Mention
	for _, m := range result.Mentions {
		if m.Kind == document.KindMoney {
			moneyMentions = append(moneyMentions, m)
		}
	}
	require.Len(t, moneyMentions, 1)
	assert.Equal(t, "$30-$40 million", moneyMentions[0].Surface)
}

func TestCleanCollapsesRunsAndDuplicateLines(t *testing.T) {
	body := "Boston\n\n\n\nBoston\n\nNew   York"
	out := extract.Clean(body, 0.85)
	assert.Equal(t, 1, countOccurrences(out, "Boston"))
	assert.Contains(t, out, "New York")
}

func TestCleanCollapsesSpaceRuns(t *testing.T) {
	out := extract.Clean("New   York    City", 0.85)
	assert.Equal(t, "New York City", out)
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
			i += len(sub) - 1
		}
	}
	return count
}
