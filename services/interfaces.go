package services

import (
	"context"

	"github.com/gcbaptista/go-ir-engine/model"
)

// DocumentView is the presentation form of a document: its raw fields only.
type DocumentView struct {
	ID    uint32 `json:"id"`
	Date  string `json:"date"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

// NewDocumentView projects a document onto its presentation fields.
func NewDocumentView(doc *model.Document) DocumentView {
	return DocumentView{
		ID:    uint32(doc.ID),
		Date:  doc.Date,
		Title: doc.Title,
		Text:  doc.Text,
	}
}

// HitResult represents a single document in the search results.
type HitResult struct {
	Document DocumentView `json:"document"`
	Score    float64      `json:"score"` // Boolean weight, or cosine similarity for the vector models
}

type SearchResult struct {
	Hits     []HitResult `json:"hits"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Took     int64       `json:"took"`     // milliseconds
	QueryId  string      `json:"query_id"` // unique UUID for this search query
	Engine   string      `json:"engine"`
}

type SearchQuery struct {
	Engine      string `json:"engine,omitempty"` // boolean, vector, probabilistic or 1/2/3; empty selects the default engine
	QueryString string `json:"query"`
	Page        int    `json:"page,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

// CorpusStats describes the published corpus.
type CorpusStats struct {
	Documents      int      `json:"documents"`
	Terms          int      `json:"terms"`
	Postings       int      `json:"postings"`
	Files          int      `json:"files"`
	SkippedFiles   int      `json:"skipped_files"`
	MalformedLines int      `json:"malformed_lines"`
	Engines        []string `json:"engines"`
	LoadedFrom     string   `json:"loaded_from"` // "snapshot" or "corpus"
}

// Searcher defines operations for querying the corpus
type Searcher interface {
	Search(query SearchQuery) (SearchResult, error)
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(status *model.JobStatus) []*model.Job
}

// CorpusManager is everything the HTTP layer needs from the engine.
type CorpusManager interface {
	Searcher
	Engines() []string
	DefaultEngine() string
	Document(id uint32) (DocumentView, error)
	ListDocuments(page, pageSize int) ([]DocumentView, int) // page is 1-based; returns the page and the total
	Stats() CorpusStats
	Reindex(ctx context.Context) error
	ReindexAsync() (string, error) // Returns job ID
	SnapshotAsync() (string, error)
	Jobs() JobManager
}
