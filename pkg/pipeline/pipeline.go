// Package pipeline implements the core's C7 orchestrator: one ingestion
// goroutine feeding a bounded channel, N compute workers draining it with
// local batch accumulation, and an end-of-run summary broken down by
// failure reason.
package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/entityfusion/fusion/pkg/document"
)

// Config holds the batch/worker/timeout knobs named in §4.7, grounded on
// batch_processor.py's batch_size/max_workers/timeout_per_batch defaults.
type Config struct {
	Workers     int
	QueueSize   int
	BatchSize   int
	PushTimeout time.Duration
}

// DefaultConfig mirrors batch_processor.py's defaults (batch size 32,
// workers capped at a sane default, a generous push timeout since
// ingestion is I/O-bound PDF/markdown reads).
func DefaultConfig() Config {
	return Config{
		Workers:     4,
		QueueSize:   64,
		BatchSize:   32,
		PushTimeout: 30 * time.Second,
	}
}

// Ingest produces the next document for a given source id. Returning a
// non-nil error marks that one source as failed without aborting the run.
type Ingest func(ctx context.Context, sourceID string) (*document.Document, error)

// Process runs the compute stages (classify, extract, canonicalize,
// rewrite) against one document; serialization is left to Flush.
type Process func(ctx context.Context, doc *document.Document) error

// Flush is called once per accumulated batch, letting a caller do a single
// batched write instead of one syscall per document.
type Flush func(batch []*document.Document)

// RunSummary reports the end-of-run counters the core writes to its run
// log (§4.7/§7), bucketed by the §7 error taxonomy.
type RunSummary struct {
	RunID          string
	TotalDocuments int
	Succeeded      int
	Failed         int
	FailuresByKind map[Kind]int
	Elapsed        time.Duration
}

// Pipeline runs one ingestion goroutine and Config.Workers compute workers
// over a bounded channel.
type Pipeline struct {
	cfg    Config
	logger *zap.Logger
}

// New constructs a Pipeline. A nil logger is replaced with zap.NewNop().
func New(cfg Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// Run ingests every sourceID, processes each resulting document with
// process, and flushes completed batches via flush. A queue-push timeout
// or an ingestion error drops only that one source (§7's
// QueueBackpressureDrop / IngestionError dispositions); the run only stops
// early on a canceled context.
func (p *Pipeline) Run(ctx context.Context, sourceIDs []string, ingest Ingest, process Process, flush Flush) (RunSummary, error) {
	start := time.Now()
	runID := uuid.New().String()
	queue := make(chan *document.Document, p.cfg.QueueSize)

	var cancelled atomic.Bool
	var mu sync.Mutex
	summary := RunSummary{RunID: runID, FailuresByKind: make(map[Kind]int)}

	recordFailure := func(kind Kind) {
		mu.Lock()
		summary.Failed++
		summary.FailuresByKind[kind]++
		mu.Unlock()
	}
	recordSuccess := func() {
		mu.Lock()
		summary.Succeeded++
		mu.Unlock()
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer close(queue)
		for _, id := range sourceIDs {
			if cancelled.Load() {
				return nil
			}
			doc, err := ingest(egCtx, id)
			if err != nil {
				p.logger.Warn("ingestion failed", zap.String("run_id", runID), zap.String("source_id", id), zap.Error(err))
				recordFailure(KindIngestionError)
				continue
			}
			select {
			case queue <- doc:
			case <-time.After(p.cfg.PushTimeout):
				p.logger.Warn("queue push timed out, dropping document", zap.String("run_id", runID), zap.String("source_id", id))
				recordFailure(KindQueueBackpressureDrop)
			case <-egCtx.Done():
				return egCtx.Err()
			}
		}
		return nil
	})

	for w := 0; w < p.cfg.Workers; w++ {
		eg.Go(func() error {
			batch := make([]*document.Document, 0, p.cfg.BatchSize)
			for doc := range queue {
				if err := process(egCtx, doc); err != nil {
					doc.MarkFailed(err.Error())
					recordFailure(KindOf(err))
				} else {
					recordSuccess()
				}
				batch = append(batch, doc)
				if len(batch) >= p.cfg.BatchSize {
					if flush != nil {
						flush(batch)
					}
					batch = make([]*document.Document, 0, p.cfg.BatchSize)
				}
			}
			if len(batch) > 0 && flush != nil {
				flush(batch)
			}
			return nil
		})
	}

	runErr := eg.Wait()
	if runErr != nil {
		cancelled.Store(true)
	}
	summary.TotalDocuments = summary.Succeeded + summary.Failed
	summary.Elapsed = time.Since(start)
	return summary, runErr
}
