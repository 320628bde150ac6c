// Package ac wraps github.com/coregx/ahocorasick into the multi-pattern-set
// exact matcher described in the core's C1 contract: build once from named
// pattern sets, then scan in one linear pass yielding every match position.
package ac

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/coregx/ahocorasick"
)

// Entry is one (pattern, value) pair supplied at build time.
type Entry struct {
	Pattern string
	Value   any
}

// SetSpec describes one named pattern set and whether it folds case.
type SetSpec struct {
	Name       string
	Entries    []Entry
	CaseFold   bool
	Prefilter  bool
}

// Match is one hit reported by a scan: the end position (exclusive), the
// set it came from, the associated value, and the original pattern text.
// Matches are produced in end-position order; ties break by insertion order
// of the pattern, which the underlying automaton guarantees via PatternID.
type Match struct {
	Start           int
	End             int
	SetName         string
	Value           any
	OriginalPattern string
}

// ScanStats reports per-call throughput, mirroring the counters the
// original engine's automaton kept per scan invocation.
type ScanStats struct {
	CharsProcessed int
	Matches        int
	Elapsed        time.Duration
}

type builtSet struct {
	name      string
	automaton *ahocorasick.Automaton
	caseFold  bool
	patterns  []string // index == PatternID
	values    [][]any  // values attached to that pattern index (identical duplicates collapse)
}

// Automaton is an immutable collection of built pattern sets. Once built it
// is safe for concurrent read-only use by any number of goroutines, per the
// core's "freeze then share" shared-resource policy.
type Automaton struct {
	sets []builtSet
	byName map[string]*builtSet
}

// CollisionError is returned at build time when two entries in the same set
// register the identical pattern text with incompatible values.
type CollisionError struct {
	SetName string
	Pattern string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("ac: build failed: set %q has conflicting values for pattern %q", e.SetName, e.Pattern)
}

// EmptyPatternError is returned when a set contains a zero-length pattern;
// the core rejects these at build time rather than silently dropping them.
type EmptyPatternError struct {
	SetName string
}

func (e *EmptyPatternError) Error() string {
	return fmt.Sprintf("ac: build failed: set %q contains an empty pattern", e.SetName)
}

// Build constructs an Automaton from named pattern sets. Patterns within a
// set are deduplicated by exact text; a duplicate whose associated value
// differs from the first occurrence is reported as a CollisionError, not
// silently merged, because downstream consumers key off that value.
func Build(sets []SetSpec) (*Automaton, error) {
	out := &Automaton{byName: make(map[string]*builtSet, len(sets))}

	for _, spec := range sets {
		patterns := make([]string, 0, len(spec.Entries))
		values := make([][]any, 0, len(spec.Entries))
		seen := make(map[string]int, len(spec.Entries))

		for _, e := range spec.Entries {
			pat := e.Pattern
			if spec.CaseFold {
				pat = strings.ToLower(pat)
			}
			if pat == "" {
				return nil, &EmptyPatternError{SetName: spec.Name}
			}
			if idx, ok := seen[pat]; ok {
				if !reflect.DeepEqual(values[idx][0], e.Value) {
					return nil, &CollisionError{SetName: spec.Name, Pattern: pat}
				}
				continue
			}
			seen[pat] = len(patterns)
			patterns = append(patterns, pat)
			values = append(values, []any{e.Value})
		}

		builder := ahocorasick.NewBuilder().
			AddStrings(patterns).
			SetMatchKind(ahocorasick.LeftmostLongest).
			SetPrefilter(spec.Prefilter)

		automaton, err := builder.Build()
		if err != nil {
			return nil, fmt.Errorf("ac: building set %q: %w", spec.Name, err)
		}

		bs := &builtSet{
			name:      spec.Name,
			automaton: automaton,
			caseFold:  spec.CaseFold,
			patterns:  patterns,
			values:    values,
		}
		out.sets = append(out.sets, *bs)
		out.byName[spec.Name] = &out.sets[len(out.sets)-1]
	}

	return out, nil
}

// Scan runs every named set named in setNames (or every built set, if
// setNames is empty) against text and returns matches ordered by end
// position, breaking ties by insertion order within a set and then by the
// order sets were named.
func (a *Automaton) Scan(text string, setNames ...string) ([]Match, ScanStats) {
	start := time.Now()
	names := setNames
	if len(names) == 0 {
		names = make([]string, len(a.sets))
		for i := range a.sets {
			names[i] = a.sets[i].name
		}
	}

	var out []Match
	for _, name := range names {
		bs, ok := a.byName[name]
		if !ok {
			continue
		}
		haystack := text
		if bs.caseFold {
			haystack = strings.ToLower(text)
		}
		for _, m := range bs.automaton.FindAllOverlapping([]byte(haystack)) {
			for _, v := range bs.values[m.PatternID] {
				out = append(out, Match{
					Start:           m.Start,
					End:             m.End,
					SetName:         bs.name,
					Value:           v,
					OriginalPattern: bs.patterns[m.PatternID],
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].End < out[j].End
	})

	return out, ScanStats{
		CharsProcessed: len(text),
		Matches:        len(out),
		Elapsed:        time.Since(start),
	}
}

// HasSet reports whether a named pattern set exists in this automaton.
func (a *Automaton) HasSet(name string) bool {
	_, ok := a.byName[name]
	return ok
}

// SetNames returns the names of every built pattern set, in build order.
func (a *Automaton) SetNames() []string {
	names := make([]string, len(a.sets))
	for i := range a.sets {
		names[i] = a.sets[i].name
	}
	return names
}

// IsWordBoundaryMatch reports whether the byte immediately before start and
// immediately after end (if present) are not alphanumeric, per C4's
// mandatory word-boundary validation.
func IsWordBoundaryMatch(text string, start, end int) bool {
	if start > 0 {
		r := lastRuneBefore(text, start)
		if isAlnum(r) {
			return false
		}
	}
	if end < len(text) {
		r := firstRuneAfter(text, end)
		if isAlnum(r) {
			return false
		}
	}
	return true
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func lastRuneBefore(s string, pos int) rune {
	for i := pos - 1; i >= 0; i-- {
		if utf8StartByte(s[i]) {
			return decodeRune(s[i:pos])
		}
	}
	return 0
}

func firstRuneAfter(s string, pos int) rune {
	return decodeRune(s[pos:])
}

func utf8StartByte(b byte) bool {
	return b&0xC0 != 0x80
}

func decodeRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
