// Package api provides validation utilities for API request handling.
package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-ir-engine/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateDocumentID parses a numeric document ID path parameter
func ValidateDocumentID(documentID string) (uint32, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	if documentID == "" {
		result.AddError("documentId", "Document ID is required")
		return 0, result
	}

	if strings.TrimSpace(documentID) != documentID {
		result.AddError("documentId", "Document ID cannot have leading or trailing whitespace")
		return 0, result
	}

	id, err := strconv.ParseUint(documentID, 10, 32)
	if err != nil {
		result.AddError("documentId", "Document ID must be a non-negative integer")
		return 0, result
	}

	return uint32(id), result
}

// ValidateSearchRequest checks the fields of a search request that the
// engines themselves do not reject.
func ValidateSearchRequest(req *SearchRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req.Page < 0 {
		result.AddError("page", "Page number cannot be negative")
	}
	if req.PageSize < 0 {
		result.AddError("page_size", "Page size cannot be negative")
	}
	if strings.TrimSpace(req.Engine) != req.Engine {
		result.AddError("engine", "Engine cannot have leading or trailing whitespace")
	}

	return result
}

// ValidatePagination validates pagination parameters
func ValidatePagination(page, pageSize, maxPageSize int) (int, int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	if page < 0 {
		result.AddError("page", "Page number cannot be negative")
	}
	if pageSize < 0 {
		result.AddError("page_size", "Page size cannot be negative")
	}

	// Set defaults
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	// Validate limits
	if maxPageSize > 0 && pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize, result
}

// ValidateJobStatus parses an optional job status filter
func ValidateJobStatus(status string) (*model.JobStatus, *ValidationResult) {
	result := &ValidationResult{Valid: true}
	if status == "" {
		return nil, result
	}

	parsed := model.JobStatus(status)
	switch parsed {
	case model.JobStatusPending, model.JobStatusRunning, model.JobStatusCompleted,
		model.JobStatusFailed, model.JobStatusCancelled:
		return &parsed, result
	}

	result.AddError("status", "Unknown job status '"+status+"'")
	return nil, result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	// Use the new structured error response format
	SendStructuredValidationError(c, result)
}

// ValidateQueryBinding validates query parameter binding
func ValidateQueryBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindQuery(target); err != nil {
		result.AddError("query_parameters", "Invalid query parameters: "+err.Error())
	}

	return result
}
