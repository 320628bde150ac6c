package extract

import (
	"strings"
	"unicode"

	"github.com/entityfusion/fusion/pkg/document"
)

// word is a tokenized run of letters/digits/joiners with its byte span.
type word struct {
	text string
	span document.Span
}

// tokenizeWords splits text into word-like runs, treating an internal
// period, apostrophe, or hyphen as part of the token so that "O'Brien",
// "Jean-Luc", and "Inc." stay intact for candidate generation.
func tokenizeWords(text string) []word {
	var out []word
	i := 0
	n := len(text)
	for i < n {
		for i < n && isWordSep(rune(text[i])) {
			i++
		}
		start := i
		for i < n && !isWordSep(rune(text[i])) {
			i++
		}
		if start < i {
			out = append(out, word{text: text[start:i], span: document.Span{Start: start, End: i}})
		}
	}
	return out
}

func isWordSep(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return false
	}
	switch r {
	case '\'', '-', '.', '&':
		return false
	}
	return true
}

func isCapitalized(w string) bool {
	for _, r := range w {
		return unicode.IsUpper(r)
	}
	return false
}

func isAllCaps(w string) bool {
	letters := 0
	for _, r := range w {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return letters > 0
}

func isCamelCase(w string) bool {
	hasLower, hasUpperAfterLower := false, false
	seenLower := false
	for i, r := range w {
		if i == 0 {
			continue
		}
		if unicode.IsLower(r) {
			hasLower = true
			seenLower = true
		}
		if unicode.IsUpper(r) && seenLower {
			hasUpperAfterLower = true
		}
	}
	return hasLower && hasUpperAfterLower
}

func hasEmbeddedDigits(w string) bool {
	for _, r := range w {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func isHyphenated(w string) bool {
	return strings.Contains(w, "-")
}

func stripTrailingPunct(w string) string {
	return strings.TrimRight(w, ".,;:!?")
}

// capitalizedRun is a maximal sequence of capitalized words (candidate for
// an ORG or PERSON multi-word surface).
type capitalizedRun struct {
	words []word
	span  document.Span
}

func (r capitalizedRun) surface(body string) string {
	return body[r.span.Start:r.span.End]
}

// findCapitalizedRuns scans words for maximal runs of capitalized tokens,
// used as the candidate generator for both the ORG cascade and PERSON
// validation (§4.4).
func findCapitalizedRuns(words []word) []capitalizedRun {
	var out []capitalizedRun
	i := 0
	for i < len(words) {
		if !isCapitalized(stripTrailingPunct(words[i].text)) {
			i++
			continue
		}
		j := i + 1
		for j < len(words) && isCapitalized(stripTrailingPunct(words[j].text)) {
			j++
		}
		out = append(out, capitalizedRun{
			words: words[i:j],
			span:  document.Span{Start: words[i].span.Start, End: words[j-1].span.End},
		})
		i = j
	}
	return out
}
