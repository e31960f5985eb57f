package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-ir-engine/internal/errors"
)

// DocumentListRequest holds the pagination query parameters of GET /documents.
type DocumentListRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// GetDocumentsHandler lists documents in id order with pagination
func (api *API) GetDocumentsHandler(c *gin.Context) {
	var req DocumentListRequest
	if result := ValidateQueryBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	page, pageSize, result := ValidatePagination(req.Page, req.PageSize, api.maxPageSize)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	documents, totalCount := api.engine.ListDocuments(page, pageSize)

	response := gin.H{
		"documents": documents,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
		"pages":     (totalCount + pageSize - 1) / pageSize,
	}

	c.JSON(http.StatusOK, response)
}

// GetDocumentHandler retrieves a specific document by ID
func (api *API) GetDocumentHandler(c *gin.Context) {
	documentID := c.Param("documentId")

	id, result := ValidateDocumentID(documentID)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	document, err := api.engine.Document(id)
	if err != nil {
		if errors.Is(err, internalErrors.ErrDocumentNotFound) {
			SendDocumentNotFoundError(c, documentID)
			return
		}
		SendInternalError(c, "get document", err)
		return
	}

	c.JSON(http.StatusOK, document)
}
