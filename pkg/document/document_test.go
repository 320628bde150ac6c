package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityfusion/fusion/pkg/document"
)

func TestNewRespectsDefaultSoftByteLimit(t *testing.T) {
	small := document.New("small.md", "hello world")
	assert.False(t, small.Frontmatter.Truncated)
	assert.Equal(t, "hello world", small.Body)
}

func TestAdvanceProgressesStage(t *testing.T) {
	doc := document.New("a.md", "body")
	require.NoError(t, doc.Advance(document.StageClassified))
	assert.Equal(t, document.StageClassified, doc.Stage)
}

func TestAdvanceAfterFailedIsError(t *testing.T) {
	doc := document.New("a.md", "body")
	doc.MarkFailed("boom")
	err := doc.Advance(document.StageExtracted)
	assert.Error(t, err)
	assert.Equal(t, document.StageFailed, doc.Stage)
}

func TestMarkFailedSetsFields(t *testing.T) {
	doc := document.New("a.md", "body")
	doc.MarkFailed("parse_error")
	assert.False(t, doc.Success)
	assert.Equal(t, "parse_error", doc.FailureReason)
	assert.Equal(t, document.StageFailed, doc.Stage)
}

func TestSpanOverlapsContainsNear(t *testing.T) {
	a := document.Span{Start: 0, End: 10}
	b := document.Span{Start: 5, End: 15}
	c := document.Span{Start: 20, End: 25}

	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
	assert.True(t, a.Contains(document.Span{Start: 2, End: 8}))
	assert.True(t, a.Near(c, 20))
	assert.False(t, a.Near(c, 5))
}

func TestCanonicalEntityAliasHelpers(t *testing.T) {
	e := &document.CanonicalEntity{Canonical: "Acme Corp"}
	e.AddAlias("Acme")
	e.AddAlias("Acme")
	assert.Len(t, e.Aliases, 1)
	assert.True(t, e.HasAlias("Acme"))
	assert.True(t, e.HasAlias("Acme Corp"))
	assert.False(t, e.HasAlias("Globex"))
}

func TestEntityKindRoundTrip(t *testing.T) {
	for _, k := range []document.EntityKind{document.KindPerson, document.KindOrg, document.KindMoney} {
		parsed, ok := document.ParseEntityKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, parsed)
	}
	_, ok := document.ParseEntityKind("NOT_A_KIND")
	assert.False(t, ok)
}

func TestIsCore8(t *testing.T) {
	assert.True(t, document.KindPerson.IsCore8())
	assert.True(t, document.KindMeasurement.IsCore8())
	assert.False(t, document.KindPhone.IsCore8())
	assert.False(t, document.KindRangeIndicator.IsCore8())
}
