package patterns

// defaultSpecs lists the built-in pattern categories named in §4.2, grounded
// on entity_normalizer.py's money/CFR/E.164 regexes and the measurement unit
// tables in the same file, re-expressed as coregex sources. Case-insensitive
// alternatives are expanded with ci() rather than an (?i) flag.
func defaultSpecs() []Spec {
	var specs []Spec

	specs = append(specs, Spec{
		Name:        "money_range",
		Category:    "money",
		Priority:    PriorityHigh,
		Description: "$N-$N range sharing one trailing magnitude/currency word",
		Source: `[$€£¥₹]?\s?[0-9][0-9,]*\.?[0-9]*\s?-\s?[$€£¥₹]?\s?[0-9][0-9,]*\.?[0-9]*\s?(` +
			ci("thousand") + `|` + ci("million") + `|` + ci("billion") + `|` + ci("trillion") + `|k|K|m|M|b|B|t|T)?\s?(` +
			ci("dollars") + `|` + ci("dollar") + `|USD|EUR|GBP|CAD|AUD)?`,
	})

	specs = append(specs, Spec{
		Name:        "money",
		Category:    "money",
		Priority:    PriorityHigh,
		Description: "currency symbol or code, magnitude word, optional trailing currency word",
		Source:      `[$€£¥₹]?\s?[0-9][0-9,]*\.?[0-9]*\s?(` + ci("thousand") + `|` + ci("million") + `|` + ci("billion") + `|` + ci("trillion") + `|k|K|m|M|b|B|t|T)?\s?(` + ci("dollars") + `|` + ci("dollar") + `|USD|EUR|GBP|CAD|AUD)?`,
	})

	specs = append(specs, Spec{
		Name:        "date_month_day_year",
		Category:    "date",
		Priority:    PriorityHigh,
		Description: "Month D[-D], YYYY",
		Source:      monthAlternation() + `\s+[0-9]{1,2}(-[0-9]{1,2})?,\s?[0-9]{4}`,
	})

	specs = append(specs, Spec{
		Name:        "date_iso",
		Category:    "date",
		Priority:    PriorityHigh,
		Description: "YYYY-MM-DD",
		Source:      `[0-9]{4}-[0-9]{2}-[0-9]{2}`,
	})

	specs = append(specs, Spec{
		Name:        "date_slash",
		Category:    "date",
		Priority:    PriorityHigh,
		Description: "MM/DD/YYYY",
		Source:      `[0-9]{1,2}/[0-9]{1,2}/[0-9]{2,4}`,
	})

	specs = append(specs, Spec{
		Name:        "regulation_cfr",
		Category:    "regulation",
		Priority:    PriorityHigh,
		Description: "<title> CFR <part>[.<section>]",
		Source:      `[0-9]{1,3}\s+` + ci("cfr") + `\s+[0-9]+(\.[0-9]+)?`,
	})

	specs = append(specs, Spec{
		Name:        "regulation_iso",
		Category:    "regulation",
		Priority:    PriorityHigh,
		Description: "ISO <number>[:<year>]",
		Source:      ci("iso") + `\s?[0-9]{3,6}(:[0-9]{4})?`,
	})

	specs = append(specs, Spec{
		Name:        "regulation_ansi",
		Category:    "regulation",
		Priority:    PriorityHigh,
		Description: "ANSI <designator>",
		Source:      ci("ansi") + `\s?[A-Za-z][0-9]+(\.[0-9]+)*(-[0-9]{4})?`,
	})

	specs = append(specs, Spec{
		Name:        "regulation_nfpa",
		Category:    "regulation",
		Priority:    PriorityHigh,
		Description: "NFPA <number>",
		Source:      ci("nfpa") + `\s?[0-9]{1,4}[A-Za-z]?`,
	})

	specs = append(specs, Spec{
		Name:        "email",
		Category:    "email",
		Priority:    PriorityMedium,
		Description: "RFC-ish email address",
		Source:      `[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`,
	})

	specs = append(specs, Spec{
		Name:        "phone_us",
		Category:    "phone",
		Priority:    PriorityMedium,
		Description: "North American 10/11-digit phone number",
		Source:      `(\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`,
	})

	specs = append(specs, Spec{
		Name:        "url",
		Category:    "url",
		Priority:    PriorityMedium,
		Description: "http(s) URL",
		Source:      ci("http") + `s?://[A-Za-z0-9./?=&_%#-]+`,
	})

	specs = append(specs, Spec{
		Name:        "measurement_range",
		Category:    "measurement",
		Priority:    PriorityMedium,
		Description: "N-N measurement range sharing one trailing unit",
		Source:      `[0-9]+\.?[0-9]*\s?-\s?[0-9]+\.?[0-9]*\s?(` + unitAlternation() + `)\b`,
	})

	specs = append(specs, Spec{
		Name:        "measurement",
		Category:    "measurement",
		Priority:    PriorityMedium,
		Description: "number plus a recognized unit word or abbreviation",
		Source:      `[0-9]+\.?[0-9]*\s?(` + unitAlternation() + `)\b`,
	})

	specs = append(specs, Spec{
		Name:        "time_24h",
		Category:    "time",
		Priority:    PriorityLow,
		Description: "HH:MM[:SS] optional am/pm",
		Source:      `[0-9]{1,2}:[0-9]{2}(:[0-9]{2})?\s?(` + ci("am") + `|` + ci("pm") + `)?`,
	})

	specs = append(specs, Spec{
		Name:        "percent",
		Category:    "percent",
		Priority:    PriorityLow,
		Description: "numeric percentage, treated as a measurement subtype",
		Source:      `[0-9]+\.?[0-9]*\s?%`,
	})

	specs = append(specs, Spec{
		Name:        "version",
		Category:    "version",
		Priority:    PriorityLow,
		Description: "semantic-version-shaped token",
		Source:      `[vV]?[0-9]+\.[0-9]+(\.[0-9]+)?`,
	})

	specs = append(specs, Spec{
		Name:        "range_hyphen",
		Category:    "range",
		Priority:    PriorityLow,
		Description: "N-N hyphen range",
		Source:      `[0-9]+\.?[0-9]*\s?-\s?[0-9]+\.?[0-9]*`,
	})

	specs = append(specs, Spec{
		Name:        "range_word",
		Category:    "range",
		Priority:    PriorityLow,
		Description: "N to N word range",
		Source:      `[0-9]+\.?[0-9]*\s+` + ci("to") + `\s+[0-9]+\.?[0-9]*`,
	})

	specs = append(specs, Spec{
		Name:        "range_between",
		Category:    "range",
		Priority:    PriorityLow,
		Description: "between N and N",
		Source:      ci("between") + `\s+[0-9]+\.?[0-9]*\s+` + ci("and") + `\s+[0-9]+\.?[0-9]*`,
	})

	return specs
}

func monthAlternation() string {
	months := []string{
		"January", "February", "March", "April", "May", "June", "July",
		"August", "September", "October", "November", "December",
		"Jan", "Feb", "Mar", "Apr", "Jun", "Jul", "Aug", "Sep", "Sept", "Oct", "Nov", "Dec",
	}
	out := "("
	for i, m := range months {
		if i > 0 {
			out += "|"
		}
		out += ci(m)
	}
	return out + ")"
}

func unitAlternation() string {
	units := []string{
		"inches", "inch", "in", "feet", "foot", "ft", "yards", "yard", "yd",
		"miles", "mile", "mi", "millimeters", "mm", "centimeters", "cm",
		"meters", "meter", "m", "kilometers", "km",
		"pounds", "pound", "lbs", "lb", "ounces", "ounce", "oz",
		"grams", "gram", "g", "kilograms", "kilogram", "kg", "tons", "ton",
		"gallons", "gallon", "gal", "quarts", "quart", "qt", "pints", "pint", "pt",
		"liters", "liter", "l", "milliliters", "ml",
		"fahrenheit", "celsius", "kelvin",
		"seconds", "second", "sec", "minutes", "minute", "min",
		"hours", "hour", "hr", "days", "day", "weeks", "week", "months", "month", "years", "year",
	}
	out := "("
	for i, u := range units {
		if i > 0 {
			out += "|"
		}
		out += ci(u)
	}
	return out + ")"
}
