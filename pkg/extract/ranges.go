package extract

import (
	"strings"

	"github.com/entityfusion/fusion/pkg/document"
)

// filterRanges applies the two FLPC/regex filters from §4.4 to mentions of
// one kind: parenthetical suppression (a mention whose every occurrence
// lies inside parentheses is dropped in favor of an unparenthesized form)
// and range consolidation (an individual mention contained within a range
// mention's span is dropped).
func filterRanges(body string, mentions []document.Mention, kind document.EntityKind) []document.Mention {
	var plain []int
	var ranges []int
	for i, m := range mentions {
		if m.Kind != kind {
			continue
		}
		if m.Subtype == "range" {
			ranges = append(ranges, i)
		} else {
			plain = append(plain, i)
		}
	}

	drop := make(map[int]bool)

	// Parenthetical suppression: a mention whose every occurrence lies
	// inside parentheses is dropped; the unparenthesized form (often a
	// unit-converted aside, e.g. "6 feet (1.8 meters)") is preferred.
	outsideParens := make(map[string]bool)
	for _, i := range plain {
		if !insideParens(body, mentions[i].Span) {
			outsideParens[mentions[i].Surface] = true
		}
	}
	for _, i := range plain {
		if !outsideParens[mentions[i].Surface] {
			drop[i] = true
		}
	}

	// Range consolidation: drop individual mentions contained within a
	// range mention's span.
	for _, ri := range ranges {
		rspan := mentions[ri].Span
		for _, mi := range plain {
			if drop[mi] || mi == ri {
				continue
			}
			if rspan.Contains(mentions[mi].Span) {
				drop[mi] = true
			}
		}
	}

	out := make([]document.Mention, 0, len(mentions))
	for i, m := range mentions {
		if drop[i] {
			continue
		}
		out = append(out, m)
	}
	return out
}

// filterMeasurements consolidates MEASUREMENT mentions per §4.4's range
// rule (e.g. "30-37 inches" suppresses inner "30 inches"/"37 inches").
func filterMeasurements(body string, mentions []document.Mention) []document.Mention {
	return filterRanges(body, mentions, document.KindMeasurement)
}

// filterMoneyRanges consolidates MONEY mentions the same way, for
// boundary cases like "$30-$40 million" where the base money pattern also
// matches the two inner amounts on their own.
func filterMoneyRanges(body string, mentions []document.Mention) []document.Mention {
	return filterRanges(body, mentions, document.KindMoney)
}

func insideParens(body string, span document.Span) bool {
	openIdx := strings.LastIndexByte(body[:span.Start], '(')
	if openIdx < 0 {
		return false
	}
	closeIdx := strings.IndexByte(body[span.Start:], ')')
	if closeIdx < 0 {
		return false
	}
	closeIdx += span.Start
	// An intervening ')' before our open paren's matching close means we're
	// not actually nested inside that '(' any more.
	if strings.IndexByte(body[openIdx:span.Start], ')') >= 0 {
		return false
	}
	return openIdx < span.Start && closeIdx >= span.End
}
