package serialize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/entityfusion/fusion/pkg/document"
	"github.com/entityfusion/fusion/pkg/semantic"
)

// dirLocks serializes batch writes per output directory, the one
// write-lock the core contract names in §5 ("the output directory mutex
// serializes batch writes; there is no finer-grained locking in the core
// contract, but implementations may shard"). Sharding by directory is that
// permitted finer grain: two runs writing to different directories never
// contend.
var (
	dirLocksMu sync.Mutex
	dirLocks   = make(map[string]*sync.Mutex)
)

func lockFor(dir string) *sync.Mutex {
	dirLocksMu.Lock()
	defer dirLocksMu.Unlock()
	m, ok := dirLocks[dir]
	if !ok {
		m = &sync.Mutex{}
		dirLocks[dir] = m
	}
	return m
}

// Write renders doc's two sibling output files into dir under the stem
// derived from doc.SourceID, writing each to a temp file and renaming into
// place so a crash mid-write never leaves a half-written sibling.
//
// doc.RewrittenBody is the C6 output; doc.Body/doc.CleanBody are left as
// the pre-rewrite snapshots the document model carries for diagnostics.
func Write(dir string, doc *document.Document) error {
	stem := stemFor(doc.SourceID)

	mdBytes, err := renderMarkdown(doc, doc.RewrittenBody)
	if err != nil {
		return fmt.Errorf("serialize %s: render markdown: %w", doc.SourceID, err)
	}
	jsonBytes, err := renderJSON(doc)
	if err != nil {
		return fmt.Errorf("serialize %s: render json: %w", doc.SourceID, err)
	}

	if err := writeAtomic(filepath.Join(dir, stem+".md"), mdBytes); err != nil {
		return fmt.Errorf("serialize %s: write md: %w", doc.SourceID, err)
	}
	if err := writeAtomic(filepath.Join(dir, stem+".json"), jsonBytes); err != nil {
		return fmt.Errorf("serialize %s: write json: %w", doc.SourceID, err)
	}
	_ = doc.Advance(document.StageWritten)
	return nil
}

// WriteBatch serializes every document in batch, writing a `.err` sidecar
// for any document whose write fails per the WriteError disposition (§7)
// instead of aborting the rest of the batch.
func WriteBatch(dir string, batch []*document.Document) {
	mu := lockFor(dir)
	mu.Lock()
	defer mu.Unlock()

	for _, doc := range batch {
		if doc.Stage == document.StageFailed {
			continue
		}
		if err := Write(dir, doc); err != nil {
			doc.MarkFailed("write_error")
			writeErrSidecar(dir, doc.SourceID, err)
		}
	}
}

func renderMarkdown(doc *document.Document, rewrittenBody string) ([]byte, error) {
	fm := buildFrontmatter(doc)
	yamlBytes, err := yaml.Marshal(fm)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n")
	buf.WriteString(rewrittenBody)
	return buf.Bytes(), nil
}

func renderJSON(doc *document.Document) ([]byte, error) {
	out := semanticOutputFor(doc)
	b, err := gojson.MarshalIndent(out, "", "  ")
	if err != nil {
		// Fall back to the standard library's encoder; goccy is a drop-in
		// replacement but a panic-free degrade path is cheap to keep.
		return json.MarshalIndent(out, "", "  ")
	}
	return b, nil
}

func semanticOutputFor(doc *document.Document) semantic.Result {
	if out, ok := doc.SemanticFacts.(semantic.Result); ok {
		return out
	}
	return semantic.Result{
		Facts:         []semantic.Fact{},
		Rules:         []semantic.Fact{},
		Relationships: []semantic.Fact{},
	}
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func writeErrSidecar(dir, sourceID string, cause error) {
	path := filepath.Join(dir, stemFor(sourceID)+".err")
	_ = writeAtomic(path, []byte(cause.Error()+"\n"))
}

func stemFor(sourceID string) string {
	base := filepath.Base(sourceID)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
