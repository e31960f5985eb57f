package engine

import (
	"fmt"

	"github.com/gcbaptista/go-ir-engine/internal/corpus"
	"github.com/gcbaptista/go-ir-engine/internal/indexing"
	"github.com/gcbaptista/go-ir-engine/internal/metrics"
	"github.com/gcbaptista/go-ir-engine/internal/search"
)

const (
	sourceSnapshot = "snapshot"
	sourceCorpus   = "corpus"
)

// instance is one published generation of the corpus together with every
// configured engine built over it. It is never mutated after publication.
type instance struct {
	corpus    *corpus.Corpus
	report    indexing.Report
	source    string
	searchers map[search.Kind]*search.Service
}

// newInstance runs the precomputation of each kind over c and wraps the
// engines in search services.
func newInstance(c *corpus.Corpus, report indexing.Report, source string, kinds []search.Kind, pageSize, maxPageSize int, m *metrics.Metrics) (*instance, error) {
	inst := &instance{
		corpus:    c,
		report:    report,
		source:    source,
		searchers: make(map[search.Kind]*search.Service, len(kinds)),
	}

	for _, kind := range kinds {
		eng, err := search.New(kind, c)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s engine: %w", kind, err)
		}
		svc, err := search.NewService(eng, c,
			search.WithPageSize(pageSize, maxPageSize),
			search.WithServiceMetrics(m))
		if err != nil {
			return nil, fmt.Errorf("failed to create search service for %s engine: %w", kind, err)
		}
		inst.searchers[kind] = svc
	}
	return inst, nil
}

func (i *instance) searcher(kind search.Kind) (*search.Service, bool) {
	svc, ok := i.searchers[kind]
	return svc, ok
}
