package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gcbaptista/go-ir-engine/config"
	irerrors "github.com/gcbaptista/go-ir-engine/internal/errors"
	"github.com/gcbaptista/go-ir-engine/internal/jobs"
	"github.com/gcbaptista/go-ir-engine/internal/logger"
	"github.com/gcbaptista/go-ir-engine/internal/metrics"
	"github.com/gcbaptista/go-ir-engine/internal/persistence"
	"github.com/gcbaptista/go-ir-engine/internal/search"
	"github.com/gcbaptista/go-ir-engine/model"
	"github.com/gcbaptista/go-ir-engine/services"
)

// Engine owns the published corpus and the retrieval models built over it.
// It implements the services.CorpusManager interface.
type Engine struct {
	mu      sync.RWMutex
	current *instance

	// buildMu serializes reindexing and snapshot writes.
	buildMu sync.Mutex

	cfg         *config.Config
	kinds       []search.Kind
	defaultKind search.Kind
	compression persistence.CompressionType
	jobManager  *jobs.Manager
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

var _ services.CorpusManager = (*Engine)(nil)

// New creates the engine: it loads the snapshot at cfg.Snapshot.Path or, when
// that fails for any reason, indexes cfg.Corpus.DataDir and writes a fresh
// snapshot. m may be nil.
func New(cfg *config.Config, m *metrics.Metrics) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, irerrors.NewValidationError("config", strings.Join(problems, "; "))
	}

	kinds := make([]search.Kind, 0, len(cfg.Search.Engines))
	for _, name := range cfg.Search.Engines {
		kind, err := search.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	defaultKind, err := search.ParseKind(cfg.Search.DefaultEngine)
	if err != nil {
		return nil, err
	}
	compression, err := persistence.ParseCompression(cfg.Snapshot.Compression)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:         cfg,
		kinds:       kinds,
		defaultKind: defaultKind,
		compression: compression,
		jobManager:  jobs.NewManager(cfg.Jobs.MaxWorkers, m),
		metrics:     m,
		logger:      logger.WithComponent("engine"),
	}

	if err := e.loadOrBuild(context.Background()); err != nil {
		e.jobManager.Stop()
		return nil, err
	}
	e.jobManager.Start()
	return e, nil
}

// Close stops background jobs.
func (e *Engine) Close() {
	e.jobManager.Stop()
}

func (e *Engine) instance() *instance {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// publish swaps in a fully built instance.
func (e *Engine) publish(inst *instance) {
	e.mu.Lock()
	e.current = inst
	e.mu.Unlock()

	if e.metrics != nil {
		stats := inst.corpus.Stats()
		e.metrics.CorpusDocuments.Set(float64(stats.Documents))
		e.metrics.CorpusTerms.Set(float64(stats.Terms))
	}
	e.logger.Info("corpus published",
		"source", inst.source,
		"documents", inst.corpus.Size(),
		"engines", e.Engines())
}

// Engines returns the names of the enabled retrieval models in configured order.
func (e *Engine) Engines() []string {
	names := make([]string, len(e.kinds))
	for i, kind := range e.kinds {
		names[i] = kind.String()
	}
	return names
}

// DefaultEngine returns the name of the model used when a query names none.
func (e *Engine) DefaultEngine() string {
	return e.defaultKind.String()
}

// Search runs the query on the engine it names, or on the default engine.
func (e *Engine) Search(query services.SearchQuery) (services.SearchResult, error) {
	kind := e.defaultKind
	if strings.TrimSpace(query.Engine) != "" {
		parsed, err := search.ParseKind(query.Engine)
		if err != nil {
			return services.SearchResult{}, err
		}
		kind = parsed
	}

	svc, ok := e.instance().searcher(kind)
	if !ok {
		return services.SearchResult{}, irerrors.NewUnknownEngineError(kind.String())
	}
	return svc.Search(query)
}

// Document returns the document with the given id.
func (e *Engine) Document(id uint32) (services.DocumentView, error) {
	doc, ok := e.instance().corpus.Document(model.DocumentID(id))
	if !ok {
		return services.DocumentView{}, irerrors.NewDocumentNotFoundError(id)
	}
	return services.NewDocumentView(doc), nil
}

// ListDocuments returns one page of documents in id order and the total
// document count. Out-of-range pages are empty.
func (e *Engine) ListDocuments(page, pageSize int) ([]services.DocumentView, int) {
	docs := e.instance().corpus.Documents()
	total := len(docs)
	if page < 1 || pageSize < 1 {
		return []services.DocumentView{}, total
	}

	start := (page - 1) * pageSize
	if start >= total {
		return []services.DocumentView{}, total
	}
	end := min(start+pageSize, total)

	views := make([]services.DocumentView, 0, end-start)
	for _, doc := range docs[start:end] {
		views = append(views, services.NewDocumentView(doc))
	}
	return views, total
}

// JobMetrics returns the job manager's performance counters.
func (e *Engine) JobMetrics() jobs.JobMetricsData {
	return e.jobManager.GetMetrics()
}

// CurrentWorkload returns the number of pending and running jobs.
func (e *Engine) CurrentWorkload() int64 {
	return e.jobManager.GetCurrentWorkload()
}

// Stats describes the published corpus.
func (e *Engine) Stats() services.CorpusStats {
	inst := e.instance()
	stats := inst.corpus.Stats()
	return services.CorpusStats{
		Documents:      stats.Documents,
		Terms:          stats.Terms,
		Postings:       stats.Postings,
		Files:          inst.report.Files,
		SkippedFiles:   inst.report.SkippedFiles,
		MalformedLines: inst.report.MalformedLines,
		Engines:        e.Engines(),
		LoadedFrom:     inst.source,
	}
}

// Jobs returns the background job manager.
func (e *Engine) Jobs() services.JobManager {
	return e.jobManager
}
