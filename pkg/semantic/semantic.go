// Package semantic defines the optional fact-extraction hook called once
// per document on the owning compute worker, after canonicalization. The
// core ships a no-op implementation; wiring a real extractor (rule-based,
// pattern-based, or LLM-backed) is a caller's choice, not the core's.
package semantic

import "context"

// Fact is one opaque, provider-defined finding. The core never inspects
// its shape beyond passing it through to the `.json` sidecar.
type Fact = any

// Result is the opaque structure written verbatim as a document's `.json`
// sidecar.
type Result struct {
	Facts           []Fact `json:"facts"`
	Rules           []Fact `json:"rules"`
	Relationships   []Fact `json:"relationships"`
	SemanticSummary any    `json:"semantic_summary,omitempty"`
}

// Extractor runs once per document on cleanBody after canonicalization and
// returns an opaque, JSON-serializable structure.
type Extractor interface {
	Extract(ctx context.Context, cleanBody string) (Result, error)
}

// NoOp is the default Extractor: every document gets an empty fact
// container, matching a core build with no downstream semantic layer
// wired in.
type NoOp struct{}

// Extract always returns an empty Result and a nil error.
func (NoOp) Extract(ctx context.Context, cleanBody string) (Result, error) {
	return Result{Facts: []Fact{}, Rules: []Fact{}, Relationships: []Fact{}}, nil
}
