package canon

import "strings"

// Regulation is the structured, authority-tagged form of a citation,
// mirroring _parse_regulation_structure's CFR/ISO/ANSI/NFPA dispatch (§4.5).
type Regulation struct {
	Type            string
	CanonicalFormat string
	Authority       string
	SubjectArea     string
}

var cfrAuthority = map[string]string{
	"29": "Department of Labor",
	"40": "Environmental Protection Agency",
	"49": "Department of Transportation",
	"21": "Food and Drug Administration",
}

var cfrSubject = map[string]string{
	"29": "Occupational Safety",
	"40": "Environmental Protection",
	"49": "Transportation",
	"21": "Food and Drug Safety",
}

// parseRegulation dispatches a regulation-category surface to its CFR/ISO/
// ANSI/NFPA structured form, or reports failure for an unrecognized shape.
func parseRegulation(surface string) (Regulation, bool) {
	s := strings.TrimSpace(surface)
	upper := strings.ToUpper(s)

	switch {
	case strings.Contains(upper, "CFR"):
		return parseCFR(s)
	case strings.HasPrefix(upper, "ISO"):
		return parseISO(s)
	case strings.HasPrefix(upper, "ANSI"):
		return parseANSI(s)
	case strings.HasPrefix(upper, "NFPA"):
		return parseNFPA(s)
	default:
		return Regulation{}, false
	}
}

func parseCFR(s string) (Regulation, bool) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return Regulation{}, false
	}
	title := fields[0]
	partField := fields[2]
	part, section := partField, ""
	if idx := strings.Index(partField, "."); idx >= 0 {
		part = partField[:idx]
		section = partField[idx+1:]
	}

	canonical := "CFR-" + title + "-" + part
	if section != "" {
		canonical += "-" + section
	}

	authority, ok := cfrAuthority[title]
	if !ok {
		authority = "Federal Government"
	}
	subject, ok := cfrSubject[title]
	if !ok {
		subject = "Federal Regulation"
	}

	return Regulation{Type: "CFR", CanonicalFormat: canonical, Authority: authority, SubjectArea: subject}, true
}

func parseISO(s string) (Regulation, bool) {
	rest := strings.TrimSpace(s[len("ISO"):])
	standard, year := rest, ""
	if idx := strings.Index(rest, ":"); idx >= 0 {
		standard = rest[:idx]
		year = rest[idx+1:]
	}
	standard = strings.TrimSpace(standard)
	if standard == "" {
		return Regulation{}, false
	}
	canonical := "ISO-" + standard
	if year != "" {
		canonical += "-" + year
	}
	return Regulation{
		Type:            "ISO",
		CanonicalFormat: canonical,
		Authority:       "International Organization for Standardization",
		SubjectArea:     "International Standards",
	}, true
}

func parseANSI(s string) (Regulation, bool) {
	standard := strings.TrimSpace(s[len("ANSI"):])
	if standard == "" {
		return Regulation{}, false
	}
	return Regulation{
		Type:            "ANSI",
		CanonicalFormat: "ANSI-" + standard,
		Authority:       "American National Standards Institute",
		SubjectArea:     "American National Standards",
	}, true
}

func parseNFPA(s string) (Regulation, bool) {
	standard := strings.TrimSpace(s[len("NFPA"):])
	if standard == "" {
		return Regulation{}, false
	}
	return Regulation{
		Type:            "NFPA",
		CanonicalFormat: "NFPA-" + standard,
		Authority:       "National Fire Protection Association",
		SubjectArea:     "Fire Protection Standards",
	}, true
}
