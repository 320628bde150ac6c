// Command fusionctl is the CLI front end described in spec §6: point it at
// one or more source files, and it runs the full conversion → routing →
// extraction → canonicalization → rewrite → serialization pipeline over
// them with a configurable worker pool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/entityfusion/fusion/internal/config"
	"github.com/entityfusion/fusion/internal/logging"
	"github.com/orsinium-labs/stopwords"

	"github.com/entityfusion/fusion/pkg/canon"
	"github.com/entityfusion/fusion/pkg/convert"
	"github.com/entityfusion/fusion/pkg/document"
	"github.com/entityfusion/fusion/pkg/extract"
	"github.com/entityfusion/fusion/pkg/patterns"
	"github.com/entityfusion/fusion/pkg/pipeline"
	"github.com/entityfusion/fusion/pkg/router"
	"github.com/entityfusion/fusion/pkg/rewrite"
	"github.com/entityfusion/fusion/pkg/semantic"
	"github.com/entityfusion/fusion/pkg/serialize"
)

var (
	flagWorkers   int
	flagOutput    string
	flagConfig    string
	flagBatchSize int
	flagQueueSize int
	flagVerbosity int
	flagGazetteer string
	flagPatterns  string
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := &cobra.Command{
		Use:   "fusionctl [paths...]",
		Short: "Extract, canonicalize, and rewrite entities across a batch of documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, args)
		},
	}

	rootCmd.Flags().IntVar(&flagWorkers, "workers", 0, "compute worker count (default: config/CPU count)")
	rootCmd.Flags().StringVar(&flagOutput, "output", "", "output directory")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "YAML configuration file")
	rootCmd.Flags().IntVar(&flagBatchSize, "batch-size", 0, "documents per serialized batch")
	rootCmd.Flags().IntVar(&flagQueueSize, "queue-size", 0, "bounded ingestion queue capacity")
	rootCmd.Flags().IntVar(&flagVerbosity, "verbosity", 0, "log verbosity 0..3")
	rootCmd.Flags().StringVar(&flagGazetteer, "gazetteer-dir", "", "directory of org/loc/gpe/gov reference files")
	rootCmd.Flags().StringVar(&flagPatterns, "patterns-file", "", "YAML file of extra typed-pattern definitions")

	exitCode := 0
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		if ec, ok := err.(exitCoder); ok {
			exitCode = ec.ExitCode()
		} else {
			fmt.Fprintln(os.Stderr, err)
			exitCode = 2
		}
	}
	return exitCode
}

// exitCoder lets a command error carry the specific fatal/partial exit
// code named in §6 instead of always surfacing as a generic failure.
type exitCoder interface {
	error
	ExitCode() int
}

type pipelineError struct {
	msg  string
	code int
}

func (e *pipelineError) Error() string { return e.msg }
func (e *pipelineError) ExitCode() int { return e.code }

func runPipeline(cmd *cobra.Command, paths []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return &pipelineError{msg: err.Error(), code: 2}
	}
	applyFlagOverrides(&cfg)

	logger, err := logging.New(cfg.Verbosity)
	if err != nil {
		return &pipelineError{msg: err.Error(), code: 2}
	}
	defer logger.Sync()

	gazetteerDir := flagGazetteer
	if gazetteerDir == "" {
		gazetteerDir = cfg.GazetteerDir
	}
	automaton, err := extract.LoadGazetteers(gazetteerDir)
	if err != nil {
		return &pipelineError{msg: fmt.Sprintf("fatal: %v", err), code: 2}
	}

	patternsDir := flagPatterns
	if patternsDir == "" {
		patternsDir = cfg.PatternsDir
	}
	var patternRegistry *patterns.Registry
	if patternsDir != "" {
		extra, err := patterns.LoadFile(patternsDir)
		if err != nil {
			return &pipelineError{msg: fmt.Sprintf("fatal: %v", err), code: 2}
		}
		patternRegistry = patterns.BuildDefaultWithOverlay(extra)
	} else {
		patternRegistry = patterns.BuildDefault()
	}
	for _, f := range patternRegistry.Failures {
		logger.Warn("pattern failed to compile", zap.String("name", f.Name), zap.Error(f.Err))
	}

	extractCfg := extract.DefaultConfig()
	extractCfg.AC = automaton
	extractCfg.Patterns = patternRegistry

	canonCfg := canon.DefaultConfig()
	stop := stopwords.MustGet("en")

	rt := router.New(router.DefaultThresholds(), func(w string) bool { return stop.Contains(w) })
	extractor := semantic.NoOp{}

	sourceIDs := paths
	ingest := buildIngest()
	process := buildProcess(rt, extractCfg, canonCfg, extractor, logger)

	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return &pipelineError{msg: fmt.Sprintf("fatal: create output dir: %v", err), code: 2}
	}
	flush := func(batch []*document.Document) {
		serialize.WriteBatch(outputDir, batch)
	}

	pcfg := pipeline.DefaultConfig()
	if cfg.Workers > 0 {
		pcfg.Workers = cfg.Workers
	}
	if cfg.QueueSize > 0 {
		pcfg.QueueSize = cfg.QueueSize
	}
	if cfg.BatchSize > 0 {
		pcfg.BatchSize = cfg.BatchSize
	}

	p := pipeline.New(pcfg, logger)
	summary, err := p.Run(context.Background(), sourceIDs, ingest, process, flush)
	if err != nil {
		return &pipelineError{msg: fmt.Sprintf("fatal: %v", err), code: 2}
	}

	logger.Info("run complete",
		zap.String("run_id", summary.RunID),
		zap.Int("total", summary.TotalDocuments),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Duration("elapsed", summary.Elapsed),
	)
	for kind, count := range summary.FailuresByKind {
		logger.Warn("failures by kind", zap.String("kind", string(kind)), zap.Int("count", count))
	}

	if summary.Failed > 0 {
		return &pipelineError{msg: "one or more documents failed", code: 1}
	}
	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}
	if flagOutput != "" {
		cfg.OutputDir = flagOutput
	}
	if flagBatchSize > 0 {
		cfg.BatchSize = flagBatchSize
	}
	if flagQueueSize > 0 {
		cfg.QueueSize = flagQueueSize
	}
	if flagVerbosity > 0 {
		cfg.Verbosity = flagVerbosity
	}
}

func buildIngest() pipeline.Ingest {
	return func(ctx context.Context, sourceID string) (*document.Document, error) {
		data, err := os.ReadFile(sourceID)
		if err != nil {
			return nil, fmt.Errorf("ingest %s: %w", sourceID, err)
		}
		conv := convert.Select(sourceID)
		text, meta, err := conv.Convert(sourceID, data)
		if err != nil {
			return nil, fmt.Errorf("ingest %s: %w", sourceID, err)
		}
		doc := document.New(sourceID, text)
		doc.Frontmatter.Conversion = meta
		return doc, nil
	}
}

func buildProcess(rt *router.Router, extractCfg extract.Config, canonCfg canon.Config, extractor semantic.Extractor, logger *zap.Logger) pipeline.Process {
	return func(ctx context.Context, doc *document.Document) error {
		decision, analysis := rt.Route(doc.Body)
		doc.Frontmatter.Content = analysis
		doc.Frontmatter.Domain = document.DomainClassification{Routing: decision}
		if err := doc.Advance(document.StageClassified); err != nil {
			return err
		}
		doc.Frontmatter.Processing = document.ProcessingMeta{
			Stage:         doc.Stage.String(),
			ContentLength: len(doc.Body),
		}

		if decision.SkipEntityExtraction {
			doc.CleanBody = extract.Clean(doc.Body, extractCfg.NearDuplicateThreshold)
			doc.RewrittenBody = doc.CleanBody
			doc.Success = true
			return nil
		}

		doc.CleanBody = extract.Clean(doc.Body, extractCfg.NearDuplicateThreshold)

		useAC := decision.Strategy != "patterns-only"
		useRegex := decision.Strategy != "keywords-only"
		var categories []string
		if extractCfg.Patterns != nil {
			categories = extractCfg.Patterns.Categories()
		}

		result := extract.Extract(doc.CleanBody, useAC, useRegex, categories, extractCfg)
		doc.RawMentions = result.Mentions
		for _, w := range result.Warnings {
			logger.Warn("extraction degraded", zap.String("source_id", doc.SourceID), zap.String("warning", w))
		}
		if err := doc.Advance(document.StageExtracted); err != nil {
			return err
		}

		doc.Canonical = canon.Canonicalize(result.Mentions, canonCfg)

		automaton, err := rewrite.Build(doc.Canonical)
		if err != nil {
			return &pipeline.Error{Kind: pipeline.KindRewriteConflict, SourceID: doc.SourceID, Err: err}
		}
		doc.RewrittenBody = rewrite.Rewrite(doc.CleanBody, automaton)
		if err := doc.Advance(document.StageNormalized); err != nil {
			return err
		}

		facts, err := extractor.Extract(ctx, doc.CleanBody)
		if err != nil {
			logger.Warn("semantic extraction failed", zap.String("source_id", doc.SourceID), zap.Error(err))
		} else {
			doc.SemanticFacts = facts
		}

		doc.Success = true
		return nil
	}
}

