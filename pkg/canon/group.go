package canon

import (
	"strings"

	"github.com/entityfusion/fusion/pkg/document"
)

// groupByKind applies the per-kind grouping strategy from §4.5: fuzzy
// n-gram match for PERSON, legal-suffix-stripped stem match for ORG,
// case-folded exact match for LOC/GPE, and parsed-canonical-form match for
// every other kind (dates/times/money/measurements/phones/regulations/
// emails/urls), falling back to the exact surface when parsing fails, so
// true duplicates like "08/15/2024" and "August 15, 2024" group together
// via their shared ISO form.
func groupByKind(kind document.EntityKind, mentions []document.Mention, cfg Config) [][]document.Mention {
	switch kind {
	case document.KindPerson:
		return groupFuzzy(mentions, func(s string) string { return stripTitle(s, cfg) }, personSimilar)
	case document.KindOrg:
		return groupFuzzy(mentions, func(s string) string { return strings.ToLower(stripLegalSuffix(s, cfg)) }, exactKey)
	case document.KindLoc, document.KindGPE:
		return groupExact(mentions, func(s string) string { return strings.ToLower(strings.TrimSpace(s)) })
	default:
		return groupExactThenParsed(kind, mentions)
	}
}

// groupExact buckets mentions by an exact normalized key.
func groupExact(mentions []document.Mention, key func(string) string) [][]document.Mention {
	buckets := make(map[string][]document.Mention)
	var order []string
	for _, m := range mentions {
		k := key(m.Surface)
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], m)
	}
	out := make([][]document.Mention, 0, len(order))
	for _, k := range order {
		out = append(out, buckets[k])
	}
	return out
}

// groupExactThenParsed groups DATE/TIME/MONEY/MEASUREMENT/PHONE/REGULATION/
// EMAIL/URL by their parsed canonical form when parseable, falling back to
// exact surface match so an unparseable mention still groups with its own
// duplicates rather than being silently dropped.
func groupExactThenParsed(kind document.EntityKind, mentions []document.Mention) [][]document.Mention {
	key := func(surface string) string {
		switch kind {
		case document.KindDate:
			if v, ok := parseDateISO(surface); ok {
				return "d:" + v
			}
		case document.KindTime:
			if v, ok := parseTime24h(surface); ok {
				return "t:" + v
			}
		case document.KindMoney:
			if parts, ok := parseMoney(surface); ok {
				return "m:" + parts.Currency + ":" + parts.Amount.String()
			}
		case document.KindMeasurement:
			if val, unit, cat, ok := parseMeasurement(surface); ok {
				si, siUnit := toSI(val, unit, cat)
				return "u:" + siUnit + ":" + si.String()
			}
		case document.KindPhone:
			if e164, _, _, ok := parsePhoneE164(surface); ok {
				return "p:" + e164
			}
		case document.KindRegulation:
			if reg, ok := parseRegulation(surface); ok {
				return "r:" + reg.CanonicalFormat
			}
		case document.KindEmail:
			return "e:" + strings.ToLower(strings.TrimSpace(surface))
		case document.KindURL:
			return "l:" + normalizeURL(surface)
		}
		return "raw:" + surface
	}
	return groupExact(mentions, key)
}

// groupFuzzy greedily assigns each mention to the first existing group
// whose representative key is "similar" per the supplied comparator, per
// resolver.go's "direct match first, fuzzy second" resolution order.
func groupFuzzy(mentions []document.Mention, normalize func(string) string, similar func(a, b string) bool) [][]document.Mention {
	type bucket struct {
		repKey   string
		mentions []document.Mention
	}
	var buckets []bucket

	for _, m := range mentions {
		k := normalize(m.Surface)
		placed := false
		for i := range buckets {
			if buckets[i].repKey == k || similar(buckets[i].repKey, k) {
				buckets[i].mentions = append(buckets[i].mentions, m)
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{repKey: k, mentions: []document.Mention{m}})
		}
	}

	out := make([][]document.Mention, len(buckets))
	for i, b := range buckets {
		out[i] = b.mentions
	}
	return out
}

func exactKey(a, b string) bool { return a == b }

// personSimilar reports whether two normalized PERSON keys refer to the
// same individual via a trigram Jaccard similarity, tolerant of middle
// initials and minor OCR-ish variation ("John Smith" vs "John Q Smith").
func personSimilar(a, b string) bool {
	if a == b {
		return true
	}
	// Last-token match (surname) is a strong signal when combined with a
	// shared first token.
	aw, bw := strings.Fields(a), strings.Fields(b)
	if len(aw) > 0 && len(bw) > 0 && aw[0] == bw[0] && aw[len(aw)-1] == bw[len(bw)-1] {
		return true
	}
	return trigramJaccard(a, b) >= 0.6
}

func trigramJaccard(a, b string) float64 {
	ag, bg := trigrams(a), trigrams(b)
	if len(ag) == 0 || len(bg) == 0 {
		return 0
	}
	inter := 0
	for g := range ag {
		if bg[g] {
			inter++
		}
	}
	union := len(ag) + len(bg) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func trigrams(s string) map[string]bool {
	s = strings.ToLower(s)
	out := make(map[string]bool)
	if len(s) < 3 {
		out[s] = true
		return out
	}
	for i := 0; i+3 <= len(s); i++ {
		out[s[i:i+3]] = true
	}
	return out
}
