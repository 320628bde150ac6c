package router_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entityfusion/fusion/pkg/router"
)

func TestRouteKeywordHeavyDocumentGoesKeywordsOnly(t *testing.T) {
	rt := router.New(router.DefaultThresholds(), nil)
	body := strings.Repeat("safety hazard compliance inspection ", 20)

	decision, analysis := rt.Route(body)
	assert.Equal(t, "keywords-only", decision.Strategy)
	assert.GreaterOrEqual(t, analysis.KeywordDensity, 0.8)
}

func TestRouteStructuredHeavyDocumentGoesPatternsOnly(t *testing.T) {
	rt := router.New(router.DefaultThresholds(), nil)
	body := "Invoice total: $4,500.00 due at account@example.com per https://billing.example.com/inv 10% late fee."

	decision, _ := rt.Route(body)
	assert.Equal(t, "patterns-only", decision.Strategy)
}

func TestRouteShortPlainDocumentFallsToMinimal(t *testing.T) {
	rt := router.New(router.DefaultThresholds(), nil)
	body := "A short plain sentence with nothing notable in it at all."

	decision, analysis := rt.Route(body)
	assert.Less(t, analysis.WordCount, router.DefaultThresholds().MinimalWordCount)
	assert.Equal(t, "keywords-only", decision.Strategy)
	assert.Equal(t, "minimal", decision.PatternSet)
}

func TestRouteAppliesStopwordFilter(t *testing.T) {
	stop := func(w string) bool { return w == "safety" }
	rt := router.New(router.DefaultThresholds(), stop)
	body := strings.Repeat("safety ", 50)

	_, analysis := rt.Route(body)
	assert.Equal(t, 0.0, analysis.KeywordDensity)
}

func TestGenreInference(t *testing.T) {
	rt := router.New(router.DefaultThresholds(), nil)
	_, analysis := rt.Route("Workers must wear PPE per OSHA fall protection rules on every site.")
	assert.Equal(t, "osha", analysis.Genre)
}
