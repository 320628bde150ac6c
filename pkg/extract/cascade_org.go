package extract

import (
	"strings"

	"github.com/entityfusion/fusion/pkg/document"
)

// orgCandidates runs the organization confidence cascade described in
// §4.4 over every capitalized run in body, returning accepted ORG Mentions.
// Multi-word runs start at 0.9 evidence (the source's "usually passes");
// single-word runs accumulate evidence from the documented modifiers.
func orgCandidates(body string, runs []capitalizedRun, cfg Config) []document.Mention {
	var out []document.Mention

	for _, run := range runs {
		surface := stripTrailingPunct(run.surface(body))
		if surface == "" {
			continue
		}
		lower := strings.ToLower(surface)

		var evidence float64
		if len(run.words) >= 2 {
			evidence = 0.9
		} else {
			evidence = singleWordOrgEvidence(body, run, cfg)
		}

		threshold := orgThreshold(lower, len(surface), cfg)
		if evidence < threshold {
			continue
		}

		out = append(out, document.Mention{
			Surface:    surface,
			Kind:       document.KindOrg,
			Span:       document.Span{Start: run.span.Start, End: run.span.Start + len(surface)},
			Confidence: clamp01(evidence),
			Source:     "cascade",
		})
	}
	return out
}

func orgThreshold(lowerSurface string, runeLen int, cfg Config) float64 {
	if cfg.ConfusableWords[lowerSurface] {
		return 0.8
	}
	if runeLen <= 4 {
		return 0.6
	}
	return 0.5
}

func singleWordOrgEvidence(body string, run capitalizedRun, cfg Config) float64 {
	w := run.words[0]
	surface := stripTrailingPunct(w.text)

	var evidence float64
	if isCapitalized(surface) {
		evidence = 0.3
	} else {
		evidence = 0.1
	}

	if adjacentLegalSuffix(body, run.span, cfg) {
		evidence += 0.5
	}
	if corporateContextNearby(body, run.span, cfg) {
		evidence += 0.5
	}
	if hasEmbeddedDigits(surface) {
		evidence += 0.4
	}
	if isAllCaps(surface) && len([]rune(surface)) >= 3 {
		evidence += 0.35
	}
	if isCamelCase(surface) {
		evidence += 0.2
	}
	if isHyphenated(surface) {
		evidence += 0.2
	}
	return evidence
}

func adjacentLegalSuffix(body string, span document.Span, cfg Config) bool {
	after := body[span.End:]
	after = strings.TrimLeft(after, " \t")
	end := strings.IndexAny(after, " \t\n,.;")
	if end < 0 {
		end = len(after)
	}
	token := strings.ToLower(strings.TrimRight(after[:end], ".,;"))
	return cfg.LegalSuffixes[token] || cfg.LegalSuffixes[token+"."]
}

func corporateContextNearby(body string, span document.Span, cfg Config) bool {
	start := span.Start - cfg.CorporateContextRadius
	if start < 0 {
		start = 0
	}
	end := span.End + cfg.CorporateContextRadius
	if end > len(body) {
		end = len(body)
	}
	window := strings.ToLower(body[start:end])
	for w := range cfg.CorporateContextWords {
		if strings.Contains(window, w) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
