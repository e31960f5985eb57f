package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrCorpusIO is returned when a corpus file cannot be read
	ErrCorpusIO = errors.New("corpus file unreadable")

	// ErrStopwordLoad is returned when the stopword list cannot be loaded
	ErrStopwordLoad = errors.New("stopwords unavailable")

	// ErrMalformedLine is returned for corpus lines without 2 or 3 tab-separated fields
	ErrMalformedLine = errors.New("malformed corpus line")

	// ErrSnapshotNotFound is returned when no snapshot exists at the configured path
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrSnapshotCorrupt is returned when a snapshot cannot be decoded
	ErrSnapshotCorrupt = errors.New("snapshot corrupt")

	// ErrSnapshotIncompatible is returned when a snapshot was written by another format version
	ErrSnapshotIncompatible = errors.New("snapshot version incompatible")

	// ErrInvalidQuery is returned when a query does not fit the engine's grammar
	ErrInvalidQuery = errors.New("invalid query")

	// ErrUnknownEngine is returned for an unrecognised retrieval model
	ErrUnknownEngine = errors.New("unknown engine")

	// ErrDocumentNotFound is returned when a document is not found
	ErrDocumentNotFound = errors.New("document not found")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// CorpusIOError describes a corpus file that could not be read
type CorpusIOError struct {
	Path string
	Err  error
}

func (e *CorpusIOError) Error() string {
	return fmt.Sprintf("cannot read corpus file '%s': %v", e.Path, e.Err)
}

func (e *CorpusIOError) Is(target error) bool {
	return target == ErrCorpusIO
}

func (e *CorpusIOError) Unwrap() error {
	return e.Err
}

// NewCorpusIOError creates a new CorpusIOError
func NewCorpusIOError(path string, err error) *CorpusIOError {
	return &CorpusIOError{Path: path, Err: err}
}

// StopwordLoadError describes a stopword file that could not be loaded
type StopwordLoadError struct {
	Path string
	Err  error
}

func (e *StopwordLoadError) Error() string {
	return fmt.Sprintf("cannot load stopwords from '%s': %v", e.Path, e.Err)
}

func (e *StopwordLoadError) Is(target error) bool {
	return target == ErrStopwordLoad
}

func (e *StopwordLoadError) Unwrap() error {
	return e.Err
}

// NewStopwordLoadError creates a new StopwordLoadError
func NewStopwordLoadError(path string, err error) *StopwordLoadError {
	return &StopwordLoadError{Path: path, Err: err}
}

// MalformedLineError describes a corpus line with the wrong number of fields
type MalformedLineError struct {
	Source string
	Line   int
	Fields int
}

func (e *MalformedLineError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("line %d of '%s' has %d tab-separated fields, expected 2 or 3", e.Line, e.Source, e.Fields)
	}
	return fmt.Sprintf("line %d has %d tab-separated fields, expected 2 or 3", e.Line, e.Fields)
}

func (e *MalformedLineError) Is(target error) bool {
	return target == ErrMalformedLine
}

// NewMalformedLineError creates a new MalformedLineError
func NewMalformedLineError(source string, line, fields int) *MalformedLineError {
	return &MalformedLineError{Source: source, Line: line, Fields: fields}
}

// SnapshotError wraps a snapshot failure with the path and the failure kind.
// Kind is one of ErrSnapshotNotFound, ErrSnapshotCorrupt or ErrSnapshotIncompatible.
type SnapshotError struct {
	Path string
	Kind error
	Err  error
}

func (e *SnapshotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v at '%s': %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%v at '%s'", e.Kind, e.Path)
}

func (e *SnapshotError) Is(target error) bool {
	return target == e.Kind
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}

// NewSnapshotError creates a new SnapshotError
func NewSnapshotError(path string, kind, err error) *SnapshotError {
	return &SnapshotError{Path: path, Kind: kind, Err: err}
}

// QuerySyntaxError represents a query outside the supported grammar
type QuerySyntaxError struct {
	Query   string
	Message string
}

func (e *QuerySyntaxError) Error() string {
	return fmt.Sprintf("invalid query '%s': %s", e.Query, e.Message)
}

func (e *QuerySyntaxError) Is(target error) bool {
	return target == ErrInvalidQuery
}

// NewQuerySyntaxError creates a new QuerySyntaxError
func NewQuerySyntaxError(query, message string) *QuerySyntaxError {
	return &QuerySyntaxError{Query: query, Message: message}
}

// UnknownEngineError represents a request for an engine that does not exist
// or is not enabled
type UnknownEngineError struct {
	Name string
}

func (e *UnknownEngineError) Error() string {
	return fmt.Sprintf("engine '%s' is not available", e.Name)
}

func (e *UnknownEngineError) Is(target error) bool {
	return target == ErrUnknownEngine
}

// NewUnknownEngineError creates a new UnknownEngineError
func NewUnknownEngineError(name string) *UnknownEngineError {
	return &UnknownEngineError{Name: name}
}

// DocumentNotFoundError represents a document not found error with context
type DocumentNotFoundError struct {
	DocumentID uint32
}

func (e *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document with ID '%d' not found", e.DocumentID)
}

func (e *DocumentNotFoundError) Is(target error) bool {
	return target == ErrDocumentNotFound
}

// NewDocumentNotFoundError creates a new DocumentNotFoundError
func NewDocumentNotFoundError(documentID uint32) *DocumentNotFoundError {
	return &DocumentNotFoundError{DocumentID: documentID}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
