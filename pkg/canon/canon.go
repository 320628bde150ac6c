// Package canon implements the core's C5 canonicalizer: it groups raw
// mentions of the same real-world entity within one document under a
// single stable identifier, parsing each Core-8 kind into its canonical
// form where possible and keeping the entity (with a parseError note)
// when parsing fails.
package canon

import (
	"sort"
	"strings"

	"github.com/entityfusion/fusion/pkg/document"
)

// idCounters tracks the next free per-prefix integer, so repeated calls to
// Canonicalize within one document produce stable, gapless ids.
type idCounters struct {
	next map[string]int
}

func newIDCounters() *idCounters {
	return &idCounters{next: make(map[string]int)}
}

func (c *idCounters) assign(prefix string) string {
	n := c.next[prefix] + 1
	c.next[prefix] = n
	return prefix + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [20]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[i:])
}

// Canonicalize groups mentions by kind and assigns each group a
// CanonicalEntity. Government-linked ORG mentions (those whose surface
// matches a known government body) receive the "gov" prefix instead of
// "org", per §4.5.
func Canonicalize(mentions []document.Mention, cfg Config) []document.CanonicalEntity {
	ids := newIDCounters()
	byKind := make(map[document.EntityKind][]document.Mention)
	for _, m := range mentions {
		byKind[m.Kind] = append(byKind[m.Kind], m)
	}

	var out []document.CanonicalEntity
	for kind, group := range byKind {
		groups := groupByKind(kind, group, cfg)
		for _, g := range groups {
			entity := buildEntity(kind, g, cfg, ids)
			out = append(out, entity)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// buildEntity assigns an id/prefix and runs the per-kind parser, recording
// a parseError in Metadata rather than dropping the entity when parsing
// fails (§4.5's "keep the entity" disposition).
func buildEntity(kind document.EntityKind, mentions []document.Mention, cfg Config, ids *idCounters) document.CanonicalEntity {
	canonicalSurface := mentions[0].Surface
	for _, m := range mentions {
		if len([]rune(m.Surface)) > len([]rune(canonicalSurface)) {
			canonicalSurface = m.Surface
		}
	}

	metadata := make(map[string]any)
	canonicalForm := canonicalSurface
	prefix := kind.IDPrefix()

	switch kind {
	case document.KindOrg:
		if isGovernmentEntity(canonicalSurface, cfg) {
			prefix = "gov"
			metadata["government"] = true
		}
		canonicalForm = stripLegalSuffix(canonicalSurface, cfg)
	case document.KindPerson:
		canonicalForm = stripTitle(canonicalSurface, cfg)
	case document.KindLoc, document.KindGPE:
		canonicalForm = canonicalGPEForm(canonicalSurface)
	case document.KindDate:
		if startISO, endISO, duration, ok := parseDateRange(canonicalSurface); ok {
			canonicalForm = startISO + " to " + endISO
			metadata["start_date"] = startISO
			metadata["end_date"] = endISO
			metadata["duration_days"] = duration
		} else if parsed, ok := parseDateISO(canonicalSurface); ok {
			canonicalForm = parsed
			metadata["iso8601"] = parsed
		} else {
			metadata["parseError"] = "could not parse date to ISO-8601"
		}
	case document.KindTime:
		if parsed, ok := parseTime24h(canonicalSurface); ok {
			canonicalForm = parsed
			metadata["24h"] = parsed
		} else {
			metadata["parseError"] = "could not parse time to 24h"
		}
	case document.KindMoney:
		if parts, ok := parseMoney(canonicalSurface); ok {
			canonicalForm = parts.Amount.String()
			metadata["amount"] = parts.Amount.String()
			metadata["currency"] = parts.Currency
			metadata["original_value"] = parts.OriginalValue
			metadata["magnitude"] = parts.Magnitude
			metadata["multiplier"] = parts.Multiplier
			metadata["display"] = formatMoney(parts.Amount, parts.Currency)
		} else {
			metadata["parseError"] = "could not parse monetary amount"
		}
	case document.KindMeasurement:
		if val, unit, category, ok := parseMeasurement(canonicalSurface); ok {
			siValue, siUnit := toSI(val, unit, category)
			canonicalForm = siValue.String()
			metadata["category"] = category
			metadata["original_value"] = val
			metadata["original_unit"] = unit
			metadata["si_value"] = siValue
			metadata["si_unit"] = siUnit
		} else {
			metadata["parseError"] = "could not parse measurement"
		}
	case document.KindPhone:
		if e164, natl, areaCode, ok := parsePhoneE164(canonicalSurface); ok {
			canonicalForm = e164
			metadata["national_format"] = natl
			metadata["phone_type"] = phoneType(areaCode)
		} else {
			metadata["parseError"] = "could not parse phone number"
		}
	case document.KindRegulation:
		if reg, ok := parseRegulation(canonicalSurface); ok {
			canonicalForm = reg.CanonicalFormat
			metadata["authority"] = reg.Authority
			metadata["regulation_type"] = reg.Type
		} else {
			metadata["parseError"] = "could not parse regulation citation"
		}
	case document.KindEmail:
		canonicalForm = strings.ToLower(strings.TrimSpace(canonicalSurface))
	case document.KindURL:
		canonicalForm = normalizeURL(canonicalSurface)
	}

	entity := document.CanonicalEntity{
		ID:        ids.assign(prefix),
		Kind:      kind,
		Canonical: canonicalForm,
		Count:     len(mentions),
		Mentions:  mentions,
		Metadata:  metadata,
	}
	for _, m := range mentions {
		entity.AddAlias(m.Surface)
	}
	return entity
}
