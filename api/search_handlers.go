package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-ir-engine/internal/logger"
	"github.com/gcbaptista/go-ir-engine/services"
)

// SearchRequest defines the structure for search queries.
type SearchRequest struct {
	Engine   string `json:"engine,omitempty" form:"engine"` // boolean, vector, probabilistic or 1/2/3
	Query    string `json:"query" form:"q"`
	Page     int    `json:"page" form:"page"`
	PageSize int    `json:"page_size" form:"page_size"`
}

// SearchHandler handles search requests.
// Request Body: SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	var req SearchRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	api.search(c, req)
}

// SearchQueryHandler handles GET /search?q=...&engine=...
func (api *API) SearchQueryHandler(c *gin.Context) {
	var req SearchRequest
	if result := ValidateQueryBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	api.search(c, req)
}

func (api *API) search(c *gin.Context, req SearchRequest) {
	if result := ValidateSearchRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	results, err := api.engine.Search(services.SearchQuery{
		Engine:      req.Engine,
		QueryString: req.Query,
		Page:        req.Page,
		PageSize:    req.PageSize,
	})
	if err != nil {
		logger.FromContext(c.Request.Context()).Debug("search rejected",
			"component", "api",
			"engine", req.Engine,
			"query", req.Query,
			"error", err)
		SendSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
