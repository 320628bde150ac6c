package canon

import "strings"

// stripLegalSuffix removes a trailing legal-entity suffix ("Acme Inc." ->
// "Acme"), the ORG canonicalization step from §4.5.
func stripLegalSuffix(surface string, cfg Config) string {
	trimmed := strings.TrimRight(surface, ". ")
	fields := strings.Fields(trimmed)
	if len(fields) < 2 {
		return surface
	}
	last := strings.ToLower(strings.TrimRight(fields[len(fields)-1], "."))
	if cfg.LegalSuffixes[last] || cfg.LegalSuffixes[last+"."] {
		return strings.Join(fields[:len(fields)-1], " ")
	}
	return surface
}

// stripTitle removes a leading honorific ("Dr. Jane Smith" -> "Jane
// Smith"), the PERSON canonicalization step from §4.5.
func stripTitle(surface string, cfg Config) string {
	fields := strings.Fields(surface)
	if len(fields) < 2 {
		return surface
	}
	first := strings.ToLower(strings.TrimRight(fields[0], "."))
	if cfg.PersonTitles[first] || cfg.PersonTitles[first+"."] {
		return strings.Join(fields[1:], " ")
	}
	return surface
}

// isGovernmentEntity reports whether surface names a government body,
// triggering the "gov" id-prefix override instead of "org" (§4.5).
func isGovernmentEntity(surface string, cfg Config) bool {
	lower := strings.ToLower(surface)
	for w := range cfg.GovernmentWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return isKnownAcronymAuthority(surface)
}

// isKnownAcronymAuthority matches the all-caps federal-agency acronyms the
// regulation authority table names (§4.5/CFR title mapping).
func isKnownAcronymAuthority(surface string) bool {
	switch strings.ToUpper(surface) {
	case "OSHA", "EPA", "FDA", "DOT", "FBI", "CDC", "IRS", "SEC", "FCC", "FAA":
		return true
	default:
		return false
	}
}

// canonicalGPEForm standardizes common GPE abbreviations to full names, the
// same table entity_normalizer.py's _get_canonical_gpe_form carries for US
// states and widely abbreviated countries.
func canonicalGPEForm(surface string) string {
	upper := strings.ToUpper(strings.TrimSpace(surface))
	if full, ok := usStateAbbreviations[upper]; ok {
		return full
	}
	if full, ok := countryAbbreviations[upper]; ok {
		return full
	}
	return strings.TrimSpace(surface)
}

var usStateAbbreviations = map[string]string{
	"CA": "California", "NY": "New York", "TX": "Texas", "FL": "Florida",
	"IL": "Illinois", "PA": "Pennsylvania", "OH": "Ohio", "GA": "Georgia",
	"NC": "North Carolina", "MI": "Michigan", "NJ": "New Jersey", "VA": "Virginia",
	"WA": "Washington", "AZ": "Arizona", "MA": "Massachusetts", "TN": "Tennessee",
	"IN": "Indiana", "MO": "Missouri", "MD": "Maryland", "WI": "Wisconsin",
	"CO": "Colorado", "MN": "Minnesota", "SC": "South Carolina", "AL": "Alabama",
	"LA": "Louisiana", "KY": "Kentucky", "OR": "Oregon", "OK": "Oklahoma",
	"CT": "Connecticut", "IA": "Iowa", "MS": "Mississippi", "AR": "Arkansas",
	"UT": "Utah", "KS": "Kansas", "NV": "Nevada", "NM": "New Mexico",
	"WV": "West Virginia", "NE": "Nebraska", "ID": "Idaho", "HI": "Hawaii",
	"NH": "New Hampshire", "ME": "Maine", "MT": "Montana", "RI": "Rhode Island",
	"DE": "Delaware", "SD": "South Dakota", "ND": "North Dakota", "AK": "Alaska",
	"VT": "Vermont", "WY": "Wyoming",
}

var countryAbbreviations = map[string]string{
	"US": "United States", "USA": "United States", "UK": "United Kingdom",
	"UAE": "United Arab Emirates", "PRC": "China", "ROC": "Taiwan",
}

// normalizeURL lowercases the scheme/host portion and trims a trailing
// slash, leaving path/query untouched.
func normalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	schemeEnd := strings.Index(s, "://")
	if schemeEnd < 0 {
		return s
	}
	scheme := strings.ToLower(s[:schemeEnd])
	rest := s[schemeEnd+3:]
	hostEnd := strings.IndexAny(rest, "/?#")
	if hostEnd < 0 {
		hostEnd = len(rest)
	}
	host := strings.ToLower(rest[:hostEnd])
	path := strings.TrimSuffix(rest[hostEnd:], "/")
	return scheme + "://" + host + path
}
