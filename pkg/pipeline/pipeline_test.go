package pipeline_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityfusion/fusion/pkg/document"
	"github.com/entityfusion/fusion/pkg/pipeline"
)

func TestRunProcessesEveryDocumentAndFlushes(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	cfg.Workers = 2
	cfg.BatchSize = 2
	p := pipeline.New(cfg, nil)

	ingest := func(ctx context.Context, id string) (*document.Document, error) {
		return document.New(id, "body "+id), nil
	}
	process := func(ctx context.Context, doc *document.Document) error {
		doc.Success = true
		return nil
	}

	var mu sync.Mutex
	var flushedCount int
	flush := func(batch []*document.Document) {
		mu.Lock()
		flushedCount += len(batch)
		mu.Unlock()
	}

	ids := []string{"a.md", "b.md", "c.md", "d.md", "e.md"}
	summary, err := p.Run(context.Background(), ids, ingest, process, flush)
	require.NoError(t, err)

	assert.Equal(t, len(ids), summary.TotalDocuments)
	assert.Equal(t, len(ids), summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, len(ids), flushedCount)
	assert.NotEmpty(t, summary.RunID)
}

func TestRunIngestionFailureIsSkippedNotFatal(t *testing.T) {
	p := pipeline.New(pipeline.DefaultConfig(), nil)

	ingest := func(ctx context.Context, id string) (*document.Document, error) {
		if id == "bad.md" {
			return nil, errors.New("unreadable")
		}
		return document.New(id, "ok"), nil
	}
	process := func(ctx context.Context, doc *document.Document) error {
		doc.Success = true
		return nil
	}

	summary, err := p.Run(context.Background(), []string{"bad.md", "good.md"}, ingest, process, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.FailuresByKind[pipeline.KindIngestionError])
}

func TestRunProcessErrorMarksDocumentFailed(t *testing.T) {
	p := pipeline.New(pipeline.DefaultConfig(), nil)

	ingest := func(ctx context.Context, id string) (*document.Document, error) {
		return document.New(id, "body"), nil
	}
	process := func(ctx context.Context, doc *document.Document) error {
		return &pipeline.Error{Kind: pipeline.KindRewriteConflict, SourceID: doc.SourceID, Err: errors.New("conflict")}
	}

	var failedDoc *document.Document
	flush := func(batch []*document.Document) {
		for _, d := range batch {
			failedDoc = d
		}
	}

	summary, err := p.Run(context.Background(), []string{"one.md"}, ingest, process, flush)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.FailuresByKind[pipeline.KindRewriteConflict])
	require.NotNil(t, failedDoc)
	assert.Equal(t, document.StageFailed, failedDoc.Stage)
}

func TestKindOfDefaultsToProcessingError(t *testing.T) {
	assert.Equal(t, pipeline.KindProcessingError, pipeline.KindOf(errors.New("plain")))
}
