package serialize_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityfusion/fusion/pkg/document"
	"github.com/entityfusion/fusion/pkg/serialize"
)

func TestWriteProducesMarkdownAndJSONSiblings(t *testing.T) {
	dir := t.TempDir()
	doc := document.New("report.md", "original body")
	doc.RewrittenBody = "rewritten body with ‖Acme‖org1‖"
	doc.Canonical = []document.CanonicalEntity{
		{ID: "org1", Kind: document.KindOrg, Canonical: "Acme", Count: 1},
	}

	require.NoError(t, serialize.Write(dir, doc))
	assert.Equal(t, document.StageWritten, doc.Stage)

	mdBytes, err := os.ReadFile(filepath.Join(dir, "report.md"))
	require.NoError(t, err)
	md := string(mdBytes)
	assert.Contains(t, md, "---\n")
	assert.Contains(t, md, "rewritten body with")

	jsonBytes, err := os.ReadFile(filepath.Join(dir, "report.json"))
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), "facts")
}

func TestWriteBatchSkipsAlreadyFailedDocuments(t *testing.T) {
	dir := t.TempDir()
	ok := document.New("ok.md", "body")
	ok.RewrittenBody = "body"

	failed := document.New("bad.md", "body")
	failed.MarkFailed("earlier_error")

	serialize.WriteBatch(dir, []*document.Document{ok, failed})

	_, err := os.Stat(filepath.Join(dir, "ok.md"))
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "bad.md"))
	assert.True(t, os.IsNotExist(err))
}
