package search

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-ir-engine/internal/corpus"
	irerrors "github.com/gcbaptista/go-ir-engine/internal/errors"
	"github.com/gcbaptista/go-ir-engine/internal/logger"
	"github.com/gcbaptista/go-ir-engine/internal/metrics"
	"github.com/gcbaptista/go-ir-engine/services"
)

const defaultPageSize = 10

// Service wraps an Engine with pagination, timing and metrics.
// It fulfills the services.Searcher interface.
type Service struct {
	engine      Engine
	corpus      *corpus.Corpus
	pageSize    int
	maxPageSize int
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPageSize sets the default and maximum page sizes. Zero keeps the current value.
func WithPageSize(defaultSize, maxSize int) ServiceOption {
	return func(s *Service) {
		if defaultSize > 0 {
			s.pageSize = defaultSize
		}
		if maxSize > 0 {
			s.maxPageSize = maxSize
		}
	}
}

// WithServiceMetrics records search counters on m.
func WithServiceMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService creates a new search Service.
func NewService(engine Engine, c *corpus.Corpus, opts ...ServiceOption) (*Service, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if c == nil {
		return nil, fmt.Errorf("corpus cannot be nil")
	}
	s := &Service{
		engine:   engine,
		corpus:   c,
		pageSize: defaultPageSize,
		logger:   logger.WithComponent("search"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Search performs a search operation based on the query. The Engine field of
// the query is ignored; engine selection happens before a Service is chosen.
func (s *Service) Search(query services.SearchQuery) (services.SearchResult, error) {
	startTime := time.Now()
	kind := s.engine.Kind().String()

	if query.Page < 0 {
		return services.SearchResult{}, irerrors.NewValidationError("page", "must be greater than or equal to 0")
	}
	if query.PageSize < 0 {
		return services.SearchResult{}, irerrors.NewValidationError("page_size", "must be greater than or equal to 0")
	}

	page := query.Page
	if page <= 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	if s.maxPageSize > 0 && pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}

	ranking, err := s.engine.Rank(query.QueryString)
	if err != nil {
		s.observe(kind, "error", startTime, 0)
		if errors.Is(err, irerrors.ErrInvalidQuery) {
			return services.SearchResult{}, err
		}
		return services.SearchResult{}, fmt.Errorf("%s search failed: %w", kind, err)
	}

	totalHits := len(ranking)
	startIndex := (page - 1) * pageSize
	endIndex := startIndex + pageSize
	paginatedHits := make([]services.HitResult, 0)
	if startIndex < totalHits {
		if endIndex > totalHits {
			endIndex = totalHits
		}
		for _, hit := range ranking[startIndex:endIndex] {
			doc, ok := s.corpus.Document(hit.DocID)
			if !ok {
				continue
			}
			paginatedHits = append(paginatedHits, services.HitResult{
				Document: services.NewDocumentView(doc),
				Score:    normalize(hit.Score),
			})
		}
	}

	result := "hit"
	if totalHits == 0 {
		result = "zero_result"
	}
	s.observe(kind, result, startTime, totalHits)

	took := time.Since(startTime)
	s.logger.Debug("search completed",
		"engine", kind,
		"query", query.QueryString,
		"total", totalHits,
		"took", took)

	return services.SearchResult{
		Hits:     paginatedHits,
		Total:    totalHits,
		Page:     page,
		PageSize: pageSize,
		Took:     took.Milliseconds(),
		QueryId:  uuid.New().String(),
		Engine:   kind,
	}, nil
}

func (s *Service) observe(kind, result string, start time.Time, total int) {
	if s.metrics == nil {
		return
	}
	s.metrics.SearchQueriesTotal.WithLabelValues(kind, result).Inc()
	s.metrics.SearchLatency.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if result != "error" {
		s.metrics.SearchResultsCount.WithLabelValues(kind).Observe(float64(total))
	}
}
