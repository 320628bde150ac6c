// Package router implements the content-aware dispatch described in the
// core's C3 contract: one linear pass over a document body computing a
// handful of content-characteristic statistics, then a small decision
// table picking among keywords-only, patterns-only, and hybrid scanning.
package router

import (
	"strings"
	"unicode"

	"github.com/entityfusion/fusion/pkg/document"
)

// Strategy is the dispatch decision C3 hands to C4.
type Strategy string

const (
	StrategyKeywordsOnly Strategy = "keywords-only"
	StrategyPatternsOnly Strategy = "patterns-only"
	StrategyHybrid       Strategy = "hybrid"
)

// Thresholds configures the decision table (§4.3; all values have defaults
// matching spec.md's bracketed numbers).
type Thresholds struct {
	KeywordDensityHigh    float64
	StructuredDensityHigh float64
	KeywordDensityHybrid  float64
	StructuredDensityHybrid float64
	MinimalWordCount      int
	MinimalStructuredHits int
}

// DefaultThresholds returns the bracketed defaults from spec §4.3.
func DefaultThresholds() Thresholds {
	return Thresholds{
		KeywordDensityHigh:      0.8,
		StructuredDensityHigh:   0.3,
		KeywordDensityHybrid:    0.4,
		StructuredDensityHybrid: 0.2,
		MinimalWordCount:        500,
		MinimalStructuredHits:   3,
	}
}

// KeywordHints is the small fixed hint set used to compute keyword density.
// Nothing extends it at run time; this built-in set is the whole list the
// router uses.
var KeywordHints = map[string]bool{
	"osha": true, "ansi": true, "nfpa": true, "iso": true, "epa": true, "dot": true, "fda": true,
	"safety": true, "hazard": true, "regulation": true, "compliance": true, "inspection": true,
	"company": true, "corporation": true, "organization": true, "department": true, "agency": true,
	"employee": true, "worker": true, "contractor": true, "facility": true, "site": true,
}

// structuredSigils is the hint set of sigils/shapes that indicate structured
// (regex-shaped) content per §4.3.
var structuredSigils = []string{"$", "@", ":", "%", "://"}

// Router holds configuration and pattern-category knowledge needed to pick
// a subset name once a strategy has been decided.
type Router struct {
	thresholds Thresholds
	stopwords  func(string) bool
}

// New creates a Router with the given thresholds. stopFilter, if non-nil, is
// used to exclude stopwords from keyword-density token counting.
func New(t Thresholds, stopFilter func(string) bool) *Router {
	if stopFilter == nil {
		stopFilter = func(string) bool { return false }
	}
	return &Router{thresholds: t, stopwords: stopFilter}
}

// Route analyzes body in one linear pass and returns the dispatch decision
// plus the content-analysis record that C9 serializes into frontmatter.
func (r *Router) Route(body string) (document.RoutingDecision, document.ContentAnalysis) {
	analysis := r.analyze(body)
	decision := r.decide(analysis)
	return decision, analysis
}

func (r *Router) analyze(body string) document.ContentAnalysis {
	words := strings.Fields(body)
	wordCount := len(words)
	charCount := len([]rune(body))

	totalWordLen := 0
	keywordHits := 0
	for _, w := range words {
		totalWordLen += len([]rune(w))
		norm := normalizeToken(w)
		if norm == "" || r.stopwords(norm) {
			continue
		}
		if KeywordHints[norm] {
			keywordHits++
		}
	}
	avgWordLen := 0.0
	if wordCount > 0 {
		avgWordLen = float64(totalWordLen) / float64(wordCount)
	}
	keywordDensity := 0.0
	if wordCount > 0 {
		keywordDensity = float64(keywordHits) / float64(wordCount)
	}

	sigilHits := 0
	for _, s := range structuredSigils {
		if strings.Contains(body, s) {
			sigilHits++
		}
	}
	categoryHits := categoryHitCounts(body)
	totalStructuredHits := 0
	for _, n := range categoryHits {
		totalStructuredHits += n
	}
	structuredDensity := float64(sigilHits) / float64(len(structuredSigils))
	if totalStructuredHits > 0 && wordCount > 0 {
		fromCounts := float64(totalStructuredHits) / float64(wordCount)
		if fromCounts > structuredDensity {
			structuredDensity = fromCounts
		}
	}
	if structuredDensity > 1 {
		structuredDensity = 1
	}

	return document.ContentAnalysis{
		CharCount:         charCount,
		WordCount:         wordCount,
		AvgWordLength:     avgWordLen,
		KeywordDensity:    keywordDensity,
		StructuredDensity: structuredDensity,
		CategoryHits:      categoryHits,
		Genre:             inferGenre(body, categoryHits, keywordDensity),
		HasTables:         strings.Contains(body, "|---") || strings.Contains(body, "</table>"),
		HasImages:         strings.Contains(body, "!["),
		HasCode:           strings.Contains(body, "```"),
		HasLists:          containsListMarker(body),
		HasHeaders:        containsHeaderMarker(body),
	}
}

func (r *Router) decide(a document.ContentAnalysis) document.RoutingDecision {
	totalStructured := 0
	for _, n := range a.CategoryHits {
		totalStructured += n
	}

	switch {
	case a.KeywordDensity >= r.thresholds.KeywordDensityHigh:
		return document.RoutingDecision{
			Strategy:   string(StrategyKeywordsOnly),
			PatternSet: genreSubset(a.Genre),
			Confidence: 0.9,
			Reasoning:  "keyword density at or above the keywords-only threshold",
		}
	case a.StructuredDensity >= r.thresholds.StructuredDensityHigh:
		return document.RoutingDecision{
			Strategy:   string(StrategyPatternsOnly),
			PatternSet: categorySubset(a.CategoryHits),
			Confidence: 0.85,
			Reasoning:  "structured-indicator density at or above the patterns-only threshold",
		}
	case a.KeywordDensity >= r.thresholds.KeywordDensityHybrid && a.StructuredDensity >= r.thresholds.StructuredDensityHybrid:
		return document.RoutingDecision{
			Strategy:   string(StrategyHybrid),
			PatternSet: "default",
			Confidence: 0.7,
			Reasoning:  "both keyword and structured density clear the hybrid thresholds",
		}
	case a.WordCount < r.thresholds.MinimalWordCount && totalStructured < r.thresholds.MinimalStructuredHits:
		return document.RoutingDecision{
			Strategy:   string(StrategyKeywordsOnly),
			PatternSet: "minimal",
			Confidence: 0.6,
			Reasoning:  "short document with few structured hits defaults to a minimal keyword pass",
		}
	default:
		return document.RoutingDecision{
			Strategy:   string(StrategyPatternsOnly),
			PatternSet: "default",
			Confidence: 0.5,
			Reasoning:  "no density threshold cleared; falling back to the default pattern pass",
		}
	}
}

// genreSubset picks the genre-specific named subset (osha_focused/
// environmental_focused, else default), grounded on ac_automaton.py's
// _select_automatons; the minimal/complete subsets come from decide and
// categorySubset.
func genreSubset(genre string) string {
	switch genre {
	case "osha", "safety":
		return "osha_focused"
	case "environmental":
		return "environmental_focused"
	default:
		return "default"
	}
}

func categorySubset(hits map[string]int) string {
	if len(hits) == 0 {
		return "minimal"
	}
	return "complete"
}

func inferGenre(body string, hits map[string]int, keywordDensity float64) string {
	lower := strings.ToLower(body)
	switch {
	case strings.Contains(lower, "osha") || strings.Contains(lower, "fall protection") || strings.Contains(lower, "ppe"):
		return "osha"
	case strings.Contains(lower, "epa") || strings.Contains(lower, "environmental"):
		return "environmental"
	case hits["money"] > hits["measurement"] && hits["money"] > 0:
		return "financial"
	case keywordDensity > 0.5:
		return "safety"
	default:
		return "general"
	}
}

func categoryHitCounts(body string) map[string]int {
	hits := make(map[string]int)
	lower := strings.ToLower(body)

	countRunes := func(pred func(rune) bool) int {
		runs := 0
		inRun := false
		for _, r := range body {
			if pred(r) {
				if !inRun {
					runs++
					inRun = true
				}
			} else {
				inRun = false
			}
		}
		return runs
	}

	if n := countRunes(unicode.IsDigit); n > 0 {
		hits["digits"] = n
	}
	if strings.Contains(body, "$") {
		hits["money"] = strings.Count(body, "$")
	}
	if strings.Contains(body, "@") {
		hits["email"] = strings.Count(body, "@")
	}
	if strings.Contains(lower, "cfr") || strings.Contains(lower, "ansi") || strings.Contains(lower, "nfpa") || strings.Contains(lower, "iso") {
		hits["regulation"]++
	}
	for _, month := range []string{"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december"} {
		if strings.Contains(lower, month) {
			hits["date"]++
		}
	}
	for _, unit := range []string{"feet", "meters", "pounds", "inches", "kilograms", "°f", "°c"} {
		if strings.Contains(lower, unit) {
			hits["measurement"]++
		}
	}
	return hits
}

func containsListMarker(body string) bool {
	for _, line := range strings.Split(body, "\n") {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "- ") || strings.HasPrefix(t, "* ") {
			return true
		}
	}
	return false
}

func containsHeaderMarker(body string) bool {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			return true
		}
	}
	return false
}

func normalizeToken(w string) string {
	var b strings.Builder
	for _, r := range w {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
