// Package patterns wraps github.com/coregx/coregex into the structured
// typed-pattern scanner described in the core's C2 contract: named,
// prioritized, compiled regexes returning full-match spans.
//
// coregex v1 has no case-insensitive compile flag, so case-insensitive
// patterns are authored with every ASCII letter already expanded into a
// two-letter bracket class (see ci) rather than relying on an engine flag.
package patterns

import (
	"fmt"
	"strings"

	"github.com/coregx/coregex"
)

// Priority bands patterns for router subset selection (§4.2, §9 FLPC note).
type Priority int

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	default:
		return "low"
	}
}

// Pattern is one compiled, named regex with its declared metadata.
type Pattern struct {
	Name        string
	Category    string
	Priority    Priority
	Description string
	Source      string
	re          *coregex.Regex
}

// Match is one typed hit returned by a scan.
type Match struct {
	Name        string
	Category    string
	Start       int
	End         int
	SurfaceText string
	Groups      []string // full submatch groups, Groups[0] == SurfaceText
}

// BuildError reports a single pattern's compile failure. Per §4.2/§7, a
// compile failure is isolated to that pattern and does not abort the batch.
type BuildError struct {
	Name string
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("patterns: %q failed to compile: %v", e.Name, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Registry holds every successfully compiled pattern, grouped by category
// and by priority band, plus the compile failures encountered while
// building (ScannerDegradedError material for the caller to log).
type Registry struct {
	byName   map[string]*Pattern
	byCat    map[string][]*Pattern
	byPrio   map[Priority][]*Pattern
	ordered  []*Pattern
	Failures []*BuildError
}

func newRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Pattern),
		byCat:  make(map[string][]*Pattern),
		byPrio: make(map[Priority][]*Pattern),
	}
}

// Spec is the uncompiled definition used to build the default registry and
// any caller-supplied one from a YAML pattern-configuration file (§6).
type Spec struct {
	Name        string
	Category    string
	Priority    Priority
	Description string
	Source      string
}

// BuildDefault compiles the built-in pattern set covering every category
// named in §4.2: money, date, regulation, email, phone, url, measurement,
// time, percent, version, range indicator.
func BuildDefault() *Registry {
	return Build(defaultSpecs())
}

// build compiles an arbitrary list of pattern specs into a Registry,
// isolating compile failures per pattern.
func build(specs []Spec) *Registry {
	r := newRegistry()
	for _, s := range specs {
		re, err := coregex.Compile(s.Source)
		if err != nil {
			r.Failures = append(r.Failures, &BuildError{Name: s.Name, Err: err})
			continue
		}
		p := &Pattern{
			Name:        s.Name,
			Category:    s.Category,
			Priority:    s.Priority,
			Description: s.Description,
			Source:      s.Source,
			re:          re,
		}
		r.byName[p.Name] = p
		r.byCat[p.Category] = append(r.byCat[p.Category], p)
		r.byPrio[p.Priority] = append(r.byPrio[p.Priority], p)
		r.ordered = append(r.ordered, p)
	}
	return r
}

// Build is the exported entry point for callers supplying their own specs
// (e.g. loaded from the §6 YAML pattern-configuration schema).
func Build(specs []Spec) *Registry { return build(specs) }

// Categories returns every category with at least one compiled pattern.
func (r *Registry) Categories() []string {
	out := make([]string, 0, len(r.byCat))
	for c := range r.byCat {
		out = append(out, c)
	}
	return out
}

// CategoriesByPriority returns the categories whose patterns carry the
// given priority band, the original's FLPC-engine grouping (SPEC_FULL §6).
func (r *Registry) CategoriesByPriority(p Priority) []string {
	seen := make(map[string]bool)
	var out []string
	for _, pat := range r.byPrio[p] {
		if !seen[pat.Category] {
			seen[pat.Category] = true
			out = append(out, pat.Category)
		}
	}
	return out
}

// Scan runs every pattern in the named categories (or every compiled
// pattern, if categories is empty) against text, returning all
// non-overlapping left-to-right matches per pattern, deduplicated by
// surface text within a single pattern while preserving insertion order.
func (r *Registry) Scan(text string, categories ...string) []Match {
	patterns := r.ordered
	if len(categories) > 0 {
		patterns = nil
		for _, c := range categories {
			patterns = append(patterns, r.byCat[c]...)
		}
	}

	var out []Match
	for _, p := range patterns {
		seen := make(map[string]bool)
		for _, m := range findAllSubmatchIndex(p.re, text) {
			start, end := m[0], m[1]
			if start < 0 || end < 0 {
				continue
			}
			surface := text[start:end]
			if seen[surface] {
				continue
			}
			seen[surface] = true

			groups := make([]string, 0, len(m)/2)
			for i := 0; i+1 < len(m); i += 2 {
				if m[i] < 0 || m[i+1] < 0 {
					groups = append(groups, "")
					continue
				}
				groups = append(groups, text[m[i]:m[i+1]])
			}

			out = append(out, Match{
				Name:        p.Name,
				Category:    p.Category,
				Start:       start,
				End:         end,
				SurfaceText: surface,
				Groups:      groups,
			})
		}
	}
	return out
}

// findAllSubmatchIndex hand-rolls an all-matches iterator over coregex's
// single-match FindStringSubmatchIndex, since coregex v1 exposes no native
// FindAllIndex for submatches.
func findAllSubmatchIndex(re *coregex.Regex, text string) [][]int {
	var out [][]int
	pos := 0
	for pos <= len(text) {
		idx := re.FindStringSubmatchIndex(text[pos:])
		if idx == nil {
			break
		}
		shifted := make([]int, len(idx))
		for i, v := range idx {
			if v < 0 {
				shifted[i] = -1
			} else {
				shifted[i] = v + pos
			}
		}
		out = append(out, shifted)

		if shifted[1] > pos {
			pos = shifted[1]
		} else {
			pos++
		}
	}
	return out
}

// ci expands an ASCII-letter-only literal fragment into a case-insensitive
// bracket-class pattern, the documented workaround for coregex v1 lacking
// an (?i) flag. Non-letter characters pass through unchanged; the input
// must not already contain bracket syntax that this would corrupt.
func ci(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteByte('[')
			b.WriteRune(r - 32)
			b.WriteRune(r)
			b.WriteByte(']')
		case r >= 'A' && r <= 'Z':
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteRune(r + 32)
			b.WriteByte(']')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
