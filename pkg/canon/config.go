package canon

// Config carries the word lists the grouping strategies and parsers need,
// mirroring extract.Config's map-of-words shape. Nothing loads it from a
// configuration file; callers start from DefaultConfig.
type Config struct {
	LegalSuffixes   map[string]bool
	PersonTitles    map[string]bool
	GovernmentWords map[string]bool
}

// DefaultConfig returns the built-in word lists, grounded on
// entity_normalizer.py's authority tables and comprehensive_entity_extractor's
// government-entity keyword list.
func DefaultConfig() Config {
	return Config{
		LegalSuffixes: toSet([]string{
			"inc", "inc.", "llc", "l.l.c.", "corp", "corp.", "corporation",
			"co", "co.", "company", "ltd", "ltd.", "lp", "llp", "plc", "gmbh",
			"ag", "sa", "nv", "pllc",
		}),
		PersonTitles: toSet([]string{
			"mr", "mr.", "mrs", "mrs.", "ms", "ms.", "dr", "dr.", "prof", "prof.",
			"sir", "madam", "rev", "rev.",
		}),
		GovernmentWords: toSet([]string{
			"department", "agency", "administration", "bureau", "commission",
			"authority", "ministry", "osha", "epa", "fda", "dot", "federal",
			"national", "city of", "state of", "county of",
		}),
	}
}

func toSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
