package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-ir-engine/config"
	"github.com/gcbaptista/go-ir-engine/internal/metrics"
	"github.com/gcbaptista/go-ir-engine/services"
)

// API holds dependencies for API handlers, primarily the corpus manager.
type API struct {
	engine      services.CorpusManager
	maxPageSize int
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.CorpusManager) *API {
	return &API{
		engine:      engine,
		maxPageSize: 100,
	}
}

// NewRouter builds a gin engine with the standard middleware chain and all
// routes. m may be nil, in which case neither HTTP metrics nor /metrics are
// registered.
func NewRouter(engine services.CorpusManager, server config.ServerConfig, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware(), LoggingMiddleware())
	if m != nil {
		router.Use(MetricsMiddleware(m))
	}
	router.Use(CORSMiddleware())
	if server.MaxRequestBytes > 0 {
		router.Use(RequestSizeLimitMiddleware(server.MaxRequestBytes))
	}
	router.Use(RateLimitMiddleware(server.RateLimit, server.RateBurst))

	SetupRoutes(router, engine)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}
	return router
}

// SetupRoutes defines all the API routes for the engine.
func SetupRoutes(router *gin.Engine, engine services.CorpusManager) {
	apiHandler := NewAPI(engine)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Corpus routes
	router.GET("/stats", apiHandler.StatsHandler)
	router.GET("/engines", apiHandler.EnginesHandler)
	router.POST("/reindex", apiHandler.ReindexHandler)
	router.POST("/snapshot", apiHandler.SnapshotHandler)

	// Search routes
	router.POST("/search", apiHandler.SearchHandler)
	router.GET("/search", apiHandler.SearchQueryHandler)

	// Document routes
	docRoutes := router.Group("/documents")
	{
		docRoutes.GET("", apiHandler.GetDocumentsHandler)            // List documents with pagination
		docRoutes.GET("/:documentId", apiHandler.GetDocumentHandler) // Get specific document
	}

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("", apiHandler.ListJobsHandler)               // List jobs, optionally by status
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
	}
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-ir-engine",
		"documents": api.engine.Stats().Documents,
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// StatsHandler returns statistics about the published corpus
func (api *API) StatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.Stats())
}

// EnginesHandler lists the enabled retrieval models
func (api *API) EnginesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"engines": api.engine.Engines(),
		"default": api.engine.DefaultEngine(),
	})
}
