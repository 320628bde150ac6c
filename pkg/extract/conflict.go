package extract

import "github.com/entityfusion/fusion/pkg/document"

// resolveScannerConflicts drops a C1-produced PERSON/ORG/LOC/GPE mention
// whose span is textually contained by a C2-produced DATE/TIME/MONEY/
// MEASUREMENT mention, per §4.4's "August 15, 2024 should not also yield
// an ORG August" rule.
func resolveScannerConflicts(mentions []document.Mention) []document.Mention {
	isRegexKind := func(k document.EntityKind) bool {
		switch k {
		case document.KindDate, document.KindTime, document.KindMoney, document.KindMeasurement:
			return true
		default:
			return false
		}
	}
	isACKind := func(k document.EntityKind) bool {
		switch k {
		case document.KindPerson, document.KindOrg, document.KindLoc, document.KindGPE:
			return true
		default:
			return false
		}
	}

	drop := make(map[int]bool)
	for i, outer := range mentions {
		if outer.Source != "regex" || !isRegexKind(outer.Kind) {
			continue
		}
		for j, inner := range mentions {
			if i == j || !isACKind(inner.Kind) {
				continue
			}
			if outer.Span.Contains(inner.Span) && outer.Span != inner.Span {
				drop[j] = true
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

// resolveOverlaps enforces P3 (no two mentions in the final set overlap):
// among overlapping mentions, the longest span wins; ties break by higher
// confidence, then by earlier start offset for determinism.
func resolveOverlaps(mentions []document.Mention) []document.Mention {
	ordered := make([]int, len(mentions))
	for i := range ordered {
		ordered[i] = i
	}

	better := func(a, b document.Mention) bool {
		if a.Span.Len() != b.Span.Len() {
			return a.Span.Len() > b.Span.Len()
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		return a.Span.Start < b.Span.Start
	}

	drop := make(map[int]bool)
	for i := 0; i < len(mentions); i++ {
		if drop[i] {
			continue
		}
		for j := i + 1; j < len(mentions); j++ {
			if drop[j] {
				continue
			}
			if !mentions[i].Span.Overlaps(mentions[j].Span) {
				continue
			}
			if better(mentions[i], mentions[j]) {
				drop[j] = true
			} else {
				drop[i] = true
				break
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
