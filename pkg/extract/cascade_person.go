package extract

import (
	"strings"

	"github.com/entityfusion/fusion/pkg/document"
)

const (
	firstNameSet = "first_names"
	lastNameSet  = "last_names"
)

// personCandidates validates each capitalized run as a PERSON mention per
// §4.4: acceptance requires a preceding title, a nearby role word, or both
// the first and last token matching the name-corpora AC sets.
func personCandidates(body string, runs []capitalizedRun, cfg Config) []document.Mention {
	var out []document.Mention

	for _, run := range runs {
		surface := stripTrailingPunct(run.surface(body))
		if surface == "" {
			continue
		}

		titled := titlePrecedes(body, run.span, cfg)
		roled := roleWordNearby(body, run.span, cfg)
		corpus := len(run.words) >= 2 && nameCorpusMatch(run, cfg)

		if !titled && !roled && !corpus {
			continue
		}

		confidence := 0.6
		switch {
		case titled && corpus:
			confidence = 0.95
		case titled, corpus:
			confidence = 0.85
		case roled:
			confidence = 0.7
		}

		out = append(out, document.Mention{
			Surface:    surface,
			Kind:       document.KindPerson,
			Span:       document.Span{Start: run.span.Start, End: run.span.Start + len(surface)},
			Confidence: confidence,
			Source:     "cascade",
		})
	}
	return out
}

func titlePrecedes(body string, span document.Span, cfg Config) bool {
	before := body[:span.Start]
	before = strings.TrimRight(before, " \t")
	start := strings.LastIndexAny(before, " \t\n")
	token := strings.ToLower(before[start+1:])
	return cfg.PersonTitles[token]
}

func roleWordNearby(body string, span document.Span, cfg Config) bool {
	start := span.Start - cfg.RoleWordRadius
	if start < 0 {
		start = 0
	}
	end := span.End + cfg.RoleWordRadius
	if end > len(body) {
		end = len(body)
	}
	window := strings.ToLower(body[start:end])
	for w := range cfg.PersonRoleWords {
		if strings.Contains(window, w) {
			return true
		}
	}
	return false
}

func nameCorpusMatch(run capitalizedRun, cfg Config) bool {
	if cfg.AC == nil || !cfg.AC.HasSet(firstNameSet) || !cfg.AC.HasSet(lastNameSet) {
		return false
	}
	first := stripTrailingPunct(run.words[0].text)
	last := stripTrailingPunct(run.words[len(run.words)-1].text)

	firstMatches, _ := cfg.AC.Scan(first, firstNameSet)
	lastMatches, _ := cfg.AC.Scan(last, lastNameSet)
	return len(firstMatches) > 0 && len(lastMatches) > 0
}
