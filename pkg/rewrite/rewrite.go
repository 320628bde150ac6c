// Package rewrite implements the core's C6 global rewriter: a second AC
// pass over every canonical entity's surface aliases that substitutes each
// occurrence in the cleaned body with a ‖canonicalForm‖id‖ marker.
package rewrite

import (
	"sort"
	"strings"

	"github.com/entityfusion/fusion/pkg/ac"
	"github.com/entityfusion/fusion/pkg/document"
)

// MarkerDelim is the U+2016 double-vertical-line delimiter wrapping each
// rewritten span, chosen because it almost never appears in source prose.
const MarkerDelim = "‖"

const rewriteSetName = "rewrite"

// target is the value attached to each alias pattern entry: which
// canonical entity it resolves to.
type target struct {
	Canonical string
	ID        string
}

// Build compiles one AC automaton over every alias (and the canonical form
// itself) of every entity, keyed case-insensitively so "Acme Corp" and
// "ACME CORP" both resolve to the same marker.
func Build(entities []document.CanonicalEntity) (*ac.Automaton, error) {
	var entries []ac.Entry
	for _, e := range entities {
		t := target{Canonical: e.Canonical, ID: e.ID}
		entries = append(entries, ac.Entry{Pattern: e.Canonical, Value: t})
		for _, alias := range e.Aliases {
			entries = append(entries, ac.Entry{Pattern: alias, Value: t})
		}
	}
	return ac.Build([]ac.SetSpec{{
		Name:      rewriteSetName,
		Entries:   entries,
		CaseFold:  true,
		Prefilter: true,
	}})
}

// Rewrite runs automaton over body and replaces each word-boundary-valid,
// longest match at its start position with its ‖canonical‖id‖ marker,
// working from the last match to the first so earlier byte offsets stay
// valid as the string is rebuilt. A match already inside marker delimiters
// (from a prior rewrite pass) is left untouched, which is what gives the
// rewriter its idempotence: re-running it against already-rewritten output
// is a no-op.
func Rewrite(body string, automaton *ac.Automaton) string {
	if automaton == nil || !automaton.HasSet(rewriteSetName) {
		return body
	}
	matches, _ := automaton.Scan(body, rewriteSetName)
	if len(matches) == 0 {
		return body
	}

	selected := dedupLongestPerStart(matches)
	selected = dropOverlaps(selected)
	selected = dropAlreadyMarked(body, selected)

	sort.Slice(selected, func(i, j int) bool { return selected[i].Start > selected[j].Start })

	out := body
	for _, m := range selected {
		if !ac.IsWordBoundaryMatch(out, m.Start, m.End) {
			continue
		}
		t, ok := m.Value.(target)
		if !ok {
			continue
		}
		marker := MarkerDelim + t.Canonical + MarkerDelim + t.ID + MarkerDelim
		out = out[:m.Start] + marker + out[m.End:]
	}
	return out
}

func dedupLongestPerStart(matches []ac.Match) []ac.Match {
	byStart := make(map[int]ac.Match, len(matches))
	for _, m := range matches {
		cur, ok := byStart[m.Start]
		if !ok || (m.End-m.Start) > (cur.End-cur.Start) {
			byStart[m.Start] = m
		}
	}
	out := make([]ac.Match, 0, len(byStart))
	for _, m := range byStart {
		out = append(out, m)
	}
	return out
}

// dropOverlaps keeps the longest match among any pair that overlaps, same
// rule C4 uses for raw mentions so the rewritten body never substitutes two
// markers over the same span.
func dropOverlaps(matches []ac.Match) []ac.Match {
	sort.Slice(matches, func(i, j int) bool { return matches[i].Start < matches[j].Start })
	var out []ac.Match
	for _, m := range matches {
		if len(out) > 0 {
			last := out[len(out)-1]
			if m.Start < last.End {
				if (m.End - m.Start) > (last.End - last.Start) {
					out[len(out)-1] = m
				}
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// dropAlreadyMarked removes any match whose span sits inside an existing
// ‖...‖...‖ marker, the structural idempotence guard.
func dropAlreadyMarked(body string, matches []ac.Match) []ac.Match {
	var out []ac.Match
	for _, m := range matches {
		if insideMarker(body, m.Start) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func insideMarker(body string, pos int) bool {
	before := body[:pos]
	count := strings.Count(before, MarkerDelim)
	return count%3 != 0
}
