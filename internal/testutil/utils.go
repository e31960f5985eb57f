// Package testutil provides corpus builders and job helpers shared by tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-ir-engine/internal/corpus"
	"github.com/gcbaptista/go-ir-engine/internal/indexing"
	"github.com/gcbaptista/go-ir-engine/model"
	"github.com/gcbaptista/go-ir-engine/services"
)

// HotelCorpus is the two-document reference collection.
var HotelCorpus = []string{
	"2020-01-01\thotel clean room",
	"2020-01-02\thotel dirty",
}

// NewCorpus indexes lines (date\ttext or date\ttitle\ttext) into a fresh corpus.
func NewCorpus(t *testing.T, lines ...string) *corpus.Corpus {
	t.Helper()
	c := corpus.New()
	svc, err := indexing.NewService(c, nil)
	require.NoError(t, err, "Failed to create indexing service")

	_, err = svc.IndexReader("test", strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err, "Failed to index test corpus")
	return c
}

// WriteCorpusDir writes files (name -> content) into a temporary directory and
// returns its path.
func WriteCorpusDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600)
		require.NoError(t, err, "Failed to write corpus file %s", name)
	}
	return dir
}

// WriteHotelCorpus writes HotelCorpus as a single corpus file.
func WriteHotelCorpus(t *testing.T) string {
	t.Helper()
	return WriteCorpusDir(t, map[string]string{
		"corpus.txt": strings.Join(HotelCorpus, "\n") + "\n",
	})
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      10 * time.Second,
		PollInterval: 10 * time.Millisecond,
		LogProgress:  false,
	}
}

// WaitForJob polls a job until it reaches a terminal status or times out.
func WaitForJob(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not finish within %v timeout", jobID, opts.Timeout)
			return nil
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			if job.IsFinished() {
				return job
			}
			if opts.LogProgress && job.Progress != nil {
				t.Logf("Job %s progress: %d/%d - %s",
					jobID,
					job.Progress.Current,
					job.Progress.Total,
					job.Progress.Message)
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType) {
	t.Helper()
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}
