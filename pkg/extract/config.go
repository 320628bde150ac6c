package extract

import (
	"github.com/entityfusion/fusion/pkg/ac"
	"github.com/entityfusion/fusion/pkg/patterns"
)

// Config bundles the immutable, shared-after-build resources C4 needs:
// the gazetteer automaton (org/loc/gpe/gov/person-name sets), the compiled
// regex registry, and the tunable word lists/thresholds called out as
// open questions in spec §9.
type Config struct {
	AC       *ac.Automaton
	Patterns *patterns.Registry

	// NearDuplicateThreshold is the §4.4 pre-scan near-duplicate-line LCS
	// ratio cutoff. Open Question per §9: kept as configuration, default 0.85.
	NearDuplicateThreshold float64

	// ConfusableWords requires extra ORG evidence (0.8 acceptance threshold)
	// because they are common English words prone to false-positive
	// capitalization. Open Question per §9: kept as configuration.
	ConfusableWords map[string]bool

	LegalSuffixes        map[string]bool
	CorporateContextWords map[string]bool
	PersonTitles         map[string]bool
	PersonRoleWords      map[string]bool

	// RangeProximityBytes is the max gap (§4.4 "within 2 characters") used
	// when attaching a RANGE_INDICATOR mention to a typed mention.
	RangeProximityBytes int

	// CorporateContextRadius is the ±100 char window for the corporate
	// context modifier in the ORG cascade.
	CorporateContextRadius int

	// RoleWordRadius is the ±50 char window for PERSON role-word validation.
	RoleWordRadius int
}

// DefaultConfig returns a Config with the built-in word lists grounded on
// entity_normalizer.py / comprehensive_entity_extractor.py's constants,
// renamed to Go idiom, and the §4.4/§9 default thresholds.
func DefaultConfig() Config {
	return Config{
		NearDuplicateThreshold: 0.85,
		ConfusableWords: toSet([]string{
			"here", "place", "made", "this", "that", "those", "these",
			"it", "its", "such", "same", "other", "way", "thing",
		}),
		LegalSuffixes: toSet([]string{
			"inc", "inc.", "llc", "l.l.c.", "corp", "corp.", "corporation",
			"co", "co.", "company", "ltd", "ltd.", "lp", "llp", "plc", "gmbh",
			"ag", "sa", "nv", "pllc",
		}),
		CorporateContextWords: toSet([]string{
			"announced", "headquartered", "founded", "acquired", "merger",
			"subsidiary", "ceo", "cfo", "president", "chairman", "board",
			"shareholders", "revenue", "employees", "incorporated", "spokesperson",
		}),
		PersonTitles: toSet([]string{
			"mr", "mr.", "mrs", "mrs.", "ms", "ms.", "dr", "dr.", "prof", "prof.",
			"sir", "madam", "rev", "rev.",
		}),
		PersonRoleWords: toSet([]string{
			"ceo", "cfo", "coo", "cto", "president", "director", "manager",
			"chairman", "chairwoman", "chair", "secretary", "administrator",
			"supervisor", "officer", "founder", "engineer", "attorney",
		}),
		RangeProximityBytes:     2,
		CorporateContextRadius:  100,
		RoleWordRadius:          50,
	}
}

func toSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
