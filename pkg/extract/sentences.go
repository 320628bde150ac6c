package extract

import "github.com/entityfusion/fusion/pkg/document"

// Sentence is a byte-offset span into the cleaned body, used to give C1 a
// document-relative offset adjustment when run per-sentence (§4.4).
type Sentence struct {
	Span document.Span
}

// commonAcronyms is the heuristic list of short all-caps-or-abbreviated
// tokens whose trailing period should not be treated as a sentence
// terminator, per §4.4's "ignoring terminators inside acronyms heuristically".
var commonAcronyms = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true, "sr": true, "jr": true,
	"st": true, "vs": true, "etc": true, "inc": true, "ltd": true, "co": true, "corp": true,
	"e.g": true, "i.e": true, "u.s": true, "u.k": true, "no": true,
}

// SplitSentences splits body on '.', '!', '?' followed by whitespace,
// skipping terminators that sit inside a recognized acronym.
func SplitSentences(body string) []Sentence {
	var out []Sentence
	start := 0
	n := len(body)

	for i := 0; i < n; i++ {
		c := body[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		// require a following whitespace or end-of-string to count as a break
		followedByWS := i+1 >= n || isSpaceByte(body[i+1])
		if !followedByWS {
			continue
		}
		if c == '.' && endsWithAcronym(body[start:i]) {
			continue
		}
		end := i + 1
		out = append(out, Sentence{Span: document.Span{Start: start, End: end}})
		start = end
	}
	if start < n {
		out = append(out, Sentence{Span: document.Span{Start: start, End: n}})
	}
	return out
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}

// endsWithAcronym reports whether the last word-like run in s, lowercased,
// is a known acronym/abbreviation.
func endsWithAcronym(s string) bool {
	end := len(s)
	i := end
	for i > 0 {
		c := s[i-1]
		if c == ' ' || c == '\n' || c == '\t' || c == '(' {
			break
		}
		i--
	}
	word := s[i:end]
	lower := make([]byte, len(word))
	for j := 0; j < len(word); j++ {
		c := word[j]
		if c >= 'A' && c <= 'Z' {
			c += 32
		}
		lower[j] = c
	}
	return commonAcronyms[string(lower)]
}
