package search

import (
	"fmt"

	"github.com/gcbaptista/go-ir-engine/internal/corpus"
	irerrors "github.com/gcbaptista/go-ir-engine/internal/errors"
	"github.com/gcbaptista/go-ir-engine/model"
)

// Engine is a retrieval model bound to a corpus.
type Engine interface {
	Kind() Kind
	// Rank scores every matching document and returns them best first.
	Rank(text string) (Ranking, error)
	// Search is Rank resolved to documents.
	Search(text string) ([]*model.Document, error)
}

// New builds the engine of the given kind over c, running its precomputation.
func New(kind Kind, c *corpus.Corpus) (Engine, error) {
	if c == nil {
		return nil, fmt.Errorf("corpus cannot be nil")
	}
	switch kind {
	case KindBoolean:
		return NewBooleanEngine(c), nil
	case KindVector:
		return NewVectorEngine(c), nil
	case KindProbabilistic:
		return NewProbabilisticEngine(c), nil
	default:
		return nil, irerrors.NewUnknownEngineError(kind.String())
	}
}

func search(e Engine, c *corpus.Corpus, text string) ([]*model.Document, error) {
	ranking, err := e.Rank(text)
	if err != nil {
		return nil, err
	}
	return ranking.Documents(c), nil
}
