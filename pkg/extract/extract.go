// Package extract implements the core's C4 raw extractor: it runs the AC
// gazetteer, the ORG/PERSON confidence cascades, and the regex registry
// according to the router's dispatch decision, then applies the mandatory
// cleaning, dedup, conflict-resolution, and range-flagging transforms from
// spec §4.4.
package extract

import (
	"github.com/entityfusion/fusion/pkg/ac"
	"github.com/entityfusion/fusion/pkg/document"
	"github.com/entityfusion/fusion/pkg/patterns"
)

// State is C4's extraction state machine: READY → scanning →
// conflict-resolving → range-flagging → DONE, with DEGRADED reachable from
// scanning whenever a scanner partially fails.
type State int

const (
	StateReady State = iota
	StateScanning
	StateConflictResolving
	StateRangeFlagging
	StateDone
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateScanning:
		return "scanning"
	case StateConflictResolving:
		return "conflict-resolving"
	case StateRangeFlagging:
		return "range-flagging"
	case StateDone:
		return "DONE"
	case StateDegraded:
		return "DEGRADED"
	default:
		return "unknown"
	}
}

// Result is C4's output: the final, conflict-resolved, non-overlapping
// mention list plus the state the machine ended in and any warnings
// collected along the way (degraded-scanner notices, not fatal errors).
type Result struct {
	Mentions []document.Mention
	State    State
	Warnings []string
}

// Gazetteer set names Config.AC is expected to carry for dictionary-based
// ORG/LOC/GPE/government matches (§6's canonical-entity reference files
// feed these sets at startup). Entry.Value for these sets must be a
// document.EntityKind, dereferenced below when converting an ac.Match into
// a document.Mention.
const (
	OrgGazetteerSet = "org"
	LocGazetteerSet = "loc"
	GPEGazetteerSet = "gpe"
	GovGazetteerSet = "gov"
)

var gazetteerSets = []string{OrgGazetteerSet, LocGazetteerSet, GPEGazetteerSet, GovGazetteerSet}

// regexCategoryKinds maps a regex category name to the EntityKind its
// matches represent. "percent" and "measurement_range" both resolve to
// MEASUREMENT; the range category feeds range flagging instead, and
// version matches produce no mentions.
var regexCategoryKinds = map[string]document.EntityKind{
	"money":       document.KindMoney,
	"date":        document.KindDate,
	"time":        document.KindTime,
	"regulation":  document.KindRegulation,
	"email":       document.KindEmail,
	"phone":       document.KindPhone,
	"url":         document.KindURL,
	"measurement": document.KindMeasurement,
	"percent":     document.KindMeasurement,
}

// Extract runs the full C4 pipeline against cleanedBody (already processed
// by Clean), scanning the AC gazetteer/cascades when useAC is set and the
// named regex categories when useRegex is set, per the router's decision.
func Extract(cleanedBody string, useAC, useRegex bool, regexCategories []string, cfg Config) Result {
	if cleanedBody == "" {
		return Result{State: StateDone}
	}

	degraded := false
	var warnings []string
	var mentions []document.Mention

	if useAC {
		mentions = append(mentions, scanKeywordSets(cleanedBody, cfg)...)
	}

	var regexMatches []patterns.Match
	if useRegex && cfg.Patterns != nil {
		regexMatches = cfg.Patterns.Scan(cleanedBody, regexCategories...)
		for _, f := range cfg.Patterns.Failures {
			warnings = append(warnings, f.Error())
		}
		if len(cfg.Patterns.Failures) > 0 {
			degraded = true
		}
		mentions = append(mentions, regexMentionsFrom(regexMatches)...)
	}

	// Range consolidation operates before general conflict resolution so
	// it sees the full candidate set, including the inner mentions a range
	// match's span will end up swallowing.
	mentions = filterMeasurements(cleanedBody, mentions)
	mentions = filterMoneyRanges(cleanedBody, mentions)

	mentions = resolveScannerConflicts(mentions)
	mentions = resolveOverlaps(mentions)

	indicators := rangeIndicatorMentions(cleanedBody, regexMatches)
	mentions = attachRangeIndicators(cleanedBody, mentions, indicators, cfg.RangeProximityBytes)

	state := StateDone
	if degraded {
		state = StateDegraded
	}
	return Result{Mentions: mentions, State: state, Warnings: warnings}
}

// regexMentionsFrom converts typed regex matches into mentions, tagging
// measurement- and money-category matches with a "range" subtype when they
// came from the measurement_range/money_range pattern so filterMeasurements/
// filterMoneyRanges can consolidate them.
func regexMentionsFrom(matches []patterns.Match) []document.Mention {
	var out []document.Mention
	for _, m := range matches {
		kind, ok := regexCategoryKinds[m.Category]
		if !ok {
			continue
		}
		subtype := ""
		if m.Name == "measurement_range" || m.Name == "money_range" {
			subtype = "range"
		} else if m.Category == "percent" {
			subtype = "percent"
		}
		out = append(out, document.Mention{
			Surface:    m.SurfaceText,
			Kind:       kind,
			Span:       document.Span{Start: m.Start, End: m.End},
			Confidence: 0.9,
			Subtype:    subtype,
			Source:     "regex",
		})
	}
	return out
}

// scanKeywordSets runs the sentence-scoped AC gazetteer scan (§4.4) plus
// the ORG/PERSON confidence cascades, which fire on capitalization
// structure alone and do not require a dictionary hit.
func scanKeywordSets(body string, cfg Config) []document.Mention {
	var mentions []document.Mention

	if cfg.AC != nil {
		var activeSets []string
		for _, name := range gazetteerSets {
			if cfg.AC.HasSet(name) {
				activeSets = append(activeSets, name)
			}
		}
		if len(activeSets) > 0 {
			for _, sentence := range SplitSentences(body) {
				sentText := body[sentence.Span.Start:sentence.Span.End]
				acMatches, _ := cfg.AC.Scan(sentText, activeSets...)
				mentions = append(mentions, dedupLongestFirst(sentText, sentence.Span.Start, acMatches)...)
			}
		}
	}

	words := tokenizeWords(body)
	runs := findCapitalizedRuns(words)

	covered := make([]document.Span, len(mentions))
	for i, m := range mentions {
		covered[i] = m.Span
	}
	var remaining []capitalizedRun
	for _, r := range runs {
		skip := false
		for _, c := range covered {
			if c.Overlaps(r.span) {
				skip = true
				break
			}
		}
		if !skip {
			remaining = append(remaining, r)
		}
	}

	mentions = append(mentions, orgCandidates(body, remaining, cfg)...)
	mentions = append(mentions, personCandidates(body, remaining, cfg)...)

	valid := mentions[:0:0]
	for _, m := range mentions {
		if boundaryOK(body, m.Span) {
			valid = append(valid, m)
		}
	}
	return valid
}

// dedupLongestFirst converts one sentence's AC matches into document-scoped
// mentions, keeping only the longest match whenever two matches from
// different sets share a start position (§4.4's dictionary dedup rule).
func dedupLongestFirst(sentText string, docOffset int, matches []ac.Match) []document.Mention {
	byStart := make(map[int]ac.Match, len(matches))
	for _, m := range matches {
		cur, ok := byStart[m.Start]
		if !ok || (m.End-m.Start) > (cur.End-cur.Start) {
			byStart[m.Start] = m
		}
	}

	out := make([]document.Mention, 0, len(byStart))
	for _, m := range byStart {
		kind, ok := m.Value.(document.EntityKind)
		if !ok {
			continue
		}
		if !ac.IsWordBoundaryMatch(sentText, m.Start, m.End) {
			continue
		}
		out = append(out, document.Mention{
			Surface:    sentText[m.Start:m.End],
			Kind:       kind,
			Span:       document.Span{Start: docOffset + m.Start, End: docOffset + m.End},
			Confidence: 0.85,
			Source:     "gazetteer",
			Subtype:    m.SetName,
		})
	}
	return out
}

func boundaryOK(body string, span document.Span) bool {
	if span.Start > 0 && isAlnumByte(body[span.Start-1]) {
		return false
	}
	if span.End < len(body) && isAlnumByte(body[span.End]) {
		return false
	}
	return true
}

func isAlnumByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
