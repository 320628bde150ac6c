package extract

import (
	"strings"

	"github.com/entityfusion/fusion/pkg/document"
	"github.com/entityfusion/fusion/pkg/patterns"
)

// rangeIndicatorMentions derives RANGE_INDICATOR mentions from the regex
// registry's "range" category matches, plus the bare-leading-hyphen
// negative-vs-range heuristic from §9: a number within 20 chars before the
// hyphen indicates a range; otherwise it is a negative value. The 20-char
// window butting against a sentence boundary is flagged ambiguous, per the
// DESIGN.md resolution of that open question.
func rangeIndicatorMentions(body string, regexMatches []patterns.Match) []document.Mention {
	var out []document.Mention

	for _, m := range regexMatches {
		if m.Category != "range" {
			continue
		}
		kind := document.RangeHyphen
		switch m.Name {
		case "range_word":
			kind = document.RangeWord
		case "range_between":
			kind = document.RangeBetween
		}
		out = append(out, document.Mention{
			Surface:    m.SurfaceText,
			Kind:       document.KindRangeIndicator,
			Span:       document.Span{Start: m.Start, End: m.End},
			Confidence: 0.7,
			Subtype:    kind.String(),
			Source:     "regex",
		})
	}

	out = append(out, bareHyphenIndicators(body)...)
	return out
}

func bareHyphenIndicators(body string) []document.Mention {
	var out []document.Mention
	for i := 0; i < len(body); i++ {
		if body[i] != '-' {
			continue
		}
		// only a candidate if immediately followed by a digit and NOT
		// immediately preceded by a digit (that N-N case is the
		// range_hyphen pattern already handled above).
		if i+1 >= len(body) || !isDigitByte(body[i+1]) {
			continue
		}
		if i > 0 && isDigitByte(body[i-1]) {
			continue // already part of an N-N range match
		}

		windowStart := i - 20
		ambiguous := false
		if windowStart < 0 {
			windowStart = 0
			ambiguous = true
		}
		window := body[windowStart:i]
		if idx := strings.LastIndexAny(window, ".!?\n"); idx >= 0 {
			ambiguous = true
		}

		kind := document.RangeNegative
		if containsDigit(window) {
			kind = document.RangeHyphen
		}
		if ambiguous {
			kind = document.RangeAmbiguous
		}

		end := i + 1
		for end < len(body) && (isDigitByte(body[end]) || body[end] == '.') {
			end++
		}

		out = append(out, document.Mention{
			Surface:    body[i:end],
			Kind:       document.KindRangeIndicator,
			Span:       document.Span{Start: i, End: end},
			Confidence: 0.5,
			Subtype:    kind.String(),
			Source:     "heuristic",
		})
	}
	return out
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

func containsDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if isDigitByte(s[i]) {
			return true
		}
	}
	return false
}

// attachRangeIndicators augments MEASUREMENT/MONEY/DATE/TIME mentions with
// a RangeIndicator when a RANGE_INDICATOR mention overlaps or sits within
// cfg.RangeProximityBytes of the typed mention's span (§4.4).
func attachRangeIndicators(body string, typed []document.Mention, indicators []document.Mention, proximity int) []document.Mention {
	out := make([]document.Mention, len(typed))
	copy(out, typed)

	for i, m := range out {
		if !isRangeEligible(m.Kind) {
			continue
		}
		for _, ind := range indicators {
			if !m.Span.Near(ind.Span, proximity) {
				continue
			}
			riKind := parseRangeKind(ind.Subtype)
			out[i].RangeIndicator = &document.RangeIndicator{
				Detected:      true,
				Type:          riKind,
				Context:       contextWindow(body, m.Span, 30),
				IndicatorSpan: ind.Span,
			}
			break
		}
	}
	return out
}

func isRangeEligible(k document.EntityKind) bool {
	switch k {
	case document.KindMeasurement, document.KindMoney, document.KindDate, document.KindTime:
		return true
	default:
		return false
	}
}

func parseRangeKind(s string) document.RangeIndicatorKind {
	switch s {
	case "hyphen_range":
		return document.RangeHyphen
	case "word_range":
		return document.RangeWord
	case "between_range":
		return document.RangeBetween
	case "negative":
		return document.RangeNegative
	case "ambiguous":
		return document.RangeAmbiguous
	default:
		return document.RangeNone
	}
}

func contextWindow(body string, span document.Span, radius int) string {
	start := span.Start - radius
	if start < 0 {
		start = 0
	}
	end := span.End + radius
	if end > len(body) {
		end = len(body)
	}
	return body[start:end]
}
