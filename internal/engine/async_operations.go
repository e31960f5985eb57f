package engine

import (
	"context"
	"fmt"

	"github.com/gcbaptista/go-ir-engine/model"
)

const reindexSteps = 3

// ReindexAsync rebuilds the corpus in a background job and returns its ID.
func (e *Engine) ReindexAsync() (string, error) {
	jobID := e.jobManager.CreateJob(model.JobTypeReindex, map[string]string{
		"operation": "reindex",
		"data_dir":  e.cfg.Corpus.DataDir,
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeReindexJob(ctx, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start reindex job: %w", err)
	}

	return jobID, nil
}

// executeReindexJob executes the reindex job.
func (e *Engine) executeReindexJob(ctx context.Context, jobID string) error {
	return e.reindex(ctx, func(step int, message string) {
		e.jobManager.UpdateJobProgress(jobID, step, reindexSteps, message)
	})
}

// SnapshotAsync writes the published corpus to disk in a background job and
// returns its ID.
func (e *Engine) SnapshotAsync() (string, error) {
	if e.cfg.Snapshot.Path == "" {
		return "", fmt.Errorf("no snapshot path configured")
	}

	jobID := e.jobManager.CreateJob(model.JobTypeSnapshot, map[string]string{
		"operation":   "snapshot",
		"path":        e.cfg.Snapshot.Path,
		"compression": e.compression.String(),
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		e.jobManager.UpdateJobProgress(jobID, 0, 1, "writing snapshot")
		if err := e.SaveSnapshot(); err != nil {
			return err
		}
		e.jobManager.UpdateJobProgress(jobID, 1, 1, "snapshot written")
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start snapshot job: %w", err)
	}

	return jobID, nil
}
