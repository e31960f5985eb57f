package engine

import (
	"context"
	"fmt"

	"github.com/gcbaptista/go-ir-engine/internal/corpus"
	"github.com/gcbaptista/go-ir-engine/internal/indexing"
	"github.com/gcbaptista/go-ir-engine/internal/persistence"
)

// loadOrBuild publishes the snapshot when it loads cleanly and otherwise
// rebuilds from the corpus directory and regenerates the snapshot.
func (e *Engine) loadOrBuild(ctx context.Context) error {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	if path := e.cfg.Snapshot.Path; path != "" {
		snap, err := persistence.LoadSnapshot(path)
		if err == nil {
			inst, err := e.newInstance(snap.Corpus, snap.Report, sourceSnapshot)
			if err != nil {
				return err
			}
			e.logger.Info("loaded snapshot", "path", path, "created_at", snap.Header.CreatedAt)
			e.publish(inst)
			return nil
		}
		e.logger.Info("snapshot unavailable, rebuilding from corpus", "path", path, "reason", err)
	}

	inst, err := e.build(ctx)
	if err != nil {
		return err
	}
	e.publish(inst)

	if e.cfg.Snapshot.Path == "" {
		return nil
	}
	if err := e.saveSnapshotLocked(inst); err != nil {
		e.logger.Warn("failed to write snapshot", "path", e.cfg.Snapshot.Path, "error", err)
	}
	return nil
}

func (e *Engine) newInstance(c *corpus.Corpus, report indexing.Report, source string) (*instance, error) {
	return newInstance(c, report, source, e.kinds,
		e.cfg.Search.DefaultPageSize, e.cfg.Search.MaxPageSize, e.metrics)
}

// build indexes the corpus directory into a fresh, unpublished instance.
func (e *Engine) build(ctx context.Context) (*instance, error) {
	var stopwords map[string]struct{}
	if path := e.cfg.Corpus.StopwordsFile; path != "" {
		words, err := indexing.LoadStopwords(path)
		if err != nil {
			e.logger.Warn("continuing without stopwords", "error", err)
		}
		stopwords = words
	}

	c := corpus.New()
	indexer, err := indexing.NewService(c, stopwords,
		indexing.WithWorkers(e.cfg.Corpus.Workers),
		indexing.WithMetrics(e.metrics))
	if err != nil {
		return nil, fmt.Errorf("failed to create indexer: %w", err)
	}

	report, err := indexer.IndexDirectory(ctx, e.cfg.Corpus.DataDir)
	if err != nil {
		return nil, err
	}
	return e.newInstance(c, report, sourceCorpus)
}

// Reindex rebuilds the corpus from disk, swaps it in and rewrites the
// snapshot when one is configured. Searches keep running against the previous
// corpus until the swap. A snapshot write failure is returned after the new
// corpus is published.
func (e *Engine) Reindex(ctx context.Context) error {
	return e.reindex(ctx, func(int, string) {})
}

func (e *Engine) reindex(ctx context.Context, progress func(step int, message string)) error {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	progress(0, "indexing corpus")
	inst, err := e.build(ctx)
	if err != nil {
		e.recordReindex("failure")
		return fmt.Errorf("reindex failed: %w", err)
	}
	progress(1, "publishing corpus")
	e.publish(inst)
	e.recordReindex("success")

	if e.cfg.Snapshot.Path != "" {
		progress(2, "writing snapshot")
		if err := e.saveSnapshotLocked(inst); err != nil {
			return fmt.Errorf("reindexed but failed to write snapshot: %w", err)
		}
	}
	progress(reindexSteps, "done")
	return nil
}

func (e *Engine) recordReindex(status string) {
	if e.metrics != nil {
		e.metrics.ReindexTotal.WithLabelValues(status).Inc()
	}
}

// SaveSnapshot writes the published corpus to the configured snapshot path.
func (e *Engine) SaveSnapshot() error {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()
	return e.saveSnapshotLocked(e.instance())
}

func (e *Engine) saveSnapshotLocked(inst *instance) error {
	path := e.cfg.Snapshot.Path
	if path == "" {
		return fmt.Errorf("no snapshot path configured")
	}
	if err := persistence.SaveSnapshot(path, inst.corpus, inst.report, e.compression); err != nil {
		return err
	}
	e.logger.Info("snapshot written", "path", path, "compression", e.compression.String())
	return nil
}
