package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-ir-engine/internal/engine"
	internalErrors "github.com/gcbaptista/go-ir-engine/internal/errors"
)

// ReindexHandler starts a background rebuild of the corpus
func (api *API) ReindexHandler(c *gin.Context) {
	jobID, err := api.engine.ReindexAsync()
	if err != nil {
		SendJobExecutionError(c, "reindex", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Reindex started",
		"job_id":  jobID,
	})
}

// SnapshotHandler starts a background snapshot write
func (api *API) SnapshotHandler(c *gin.Context) {
	jobID, err := api.engine.SnapshotAsync()
	if err != nil {
		SendJobExecutionError(c, "snapshot", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Snapshot started",
		"job_id":  jobID,
	})
}

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	job, err := api.engine.Jobs().GetJob(jobID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrJobNotFound) {
			SendJobNotFoundError(c, jobID)
			return
		}
		SendInternalError(c, "get job", err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobsHandler handles requests to list jobs
func (api *API) ListJobsHandler(c *gin.Context) {
	statusFilter, result := ValidateJobStatus(c.Query("status"))
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	jobs := api.engine.Jobs().ListJobs(statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	if engineWithMetrics, ok := api.engine.(*engine.Engine); ok {
		// Get metrics (already returns a copy without mutex)
		metrics := engineWithMetrics.JobMetrics()

		c.JSON(http.StatusOK, gin.H{
			"metrics":          metrics,
			"success_rate":     metrics.SuccessRate,
			"current_workload": engineWithMetrics.CurrentWorkload(),
		})
	} else {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError, "Job metrics not supported by this engine")
	}
}
