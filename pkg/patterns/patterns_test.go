package patterns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityfusion/fusion/pkg/patterns"
)

func TestBuildDefaultCompilesEveryCategory(t *testing.T) {
	reg := patterns.BuildDefault()
	require.Empty(t, reg.Failures)

	cats := reg.Categories()
	for _, want := range []string{"money", "date", "regulation", "email", "phone", "url", "measurement", "time", "percent", "version", "range"} {
		assert.Contains(t, cats, want)
	}
}

func TestScanMoney(t *testing.T) {
	reg := patterns.BuildDefault()
	matches := reg.Scan("The contract is worth $4.5 million dollars.", "money")
	require.NotEmpty(t, matches)
	assert.Equal(t, "money", matches[0].Category)
}

func TestScanMoneyRange(t *testing.T) {
	reg := patterns.BuildDefault()
	matches := reg.Scan("The budget ranges from $30-$40 million.", "money")

	var sawRange bool
	for _, m := range matches {
		if m.Name == "money_range" {
			sawRange = true
			assert.Equal(t, "$30-$40 million", m.SurfaceText)
		}
	}
	assert.True(t, sawRange)
}

func TestScanEmailAndURL(t *testing.T) {
	reg := patterns.BuildDefault()
	matches := reg.Scan("Contact us at hello@example.com or https://example.com/docs.")

	var sawEmail, sawURL bool
	for _, m := range matches {
		switch m.Category {
		case "email":
			sawEmail = true
			assert.Equal(t, "hello@example.com", m.SurfaceText)
		case "url":
			sawURL = true
		}
	}
	assert.True(t, sawEmail)
	assert.True(t, sawURL)
}

func TestScanDeduplicatesSurfaceTextPerPattern(t *testing.T) {
	reg := patterns.BuildDefault()
	matches := reg.Scan("Email hello@example.com twice: hello@example.com.", "email")
	assert.Len(t, matches, 1)
}

func TestBuildIsolatesCompileFailures(t *testing.T) {
	reg := patterns.Build([]patterns.Spec{
		{Name: "good", Category: "x", Source: `[0-9]+`},
		{Name: "bad", Category: "x", Source: `[`},
	})
	assert.Len(t, reg.Failures, 1)
	assert.Equal(t, "bad", reg.Failures[0].Name)
	assert.NotEmpty(t, reg.Categories())
}

func TestCategoriesByPriority(t *testing.T) {
	reg := patterns.BuildDefault()
	high := reg.CategoriesByPriority(patterns.PriorityHigh)
	assert.Contains(t, high, "money")
	assert.Contains(t, high, "date")
	assert.Contains(t, high, "regulation")
}
