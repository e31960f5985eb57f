package search

import (
	"math"

	"github.com/gcbaptista/go-ir-engine/index"
	"github.com/gcbaptista/go-ir-engine/internal/corpus"
	"github.com/gcbaptista/go-ir-engine/internal/query"
	"github.com/gcbaptista/go-ir-engine/model"
)

// BooleanEngine answers "term" and "term1 and|or|not term2" queries with set
// algebra over posting lists, ranking matches by a fuzzy weight.
type BooleanEngine struct {
	corpus *corpus.Corpus
}

// NewBooleanEngine creates a Boolean engine. It needs no precomputation.
func NewBooleanEngine(c *corpus.Corpus) *BooleanEngine {
	return &BooleanEngine{corpus: c}
}

func (e *BooleanEngine) Kind() Kind { return KindBoolean }

func (e *BooleanEngine) Rank(text string) (Ranking, error) {
	expr, err := query.Parse(query.New(text))
	if err != nil {
		return nil, err
	}

	matches := e.Match(expr)
	ranking := make(Ranking, 0, matches.Cardinality())
	for id := range matches.Iterator() {
		doc, ok := e.corpus.Document(id)
		if !ok {
			continue
		}
		ranking = append(ranking, Hit{DocID: id, Score: Weight(doc, expr)})
	}
	ranking.Sort()
	return ranking, nil
}

func (e *BooleanEngine) Search(text string) ([]*model.Document, error) {
	return search(e, e.corpus, text)
}

// Match resolves expr to the set of matching documents. Unknown terms match nothing.
func (e *BooleanEngine) Match(expr query.Expr) *index.PostingList {
	switch n := expr.(type) {
	case *query.TermExpr:
		return e.corpus.Postings(n.Term)
	case *query.BinaryExpr:
		left, right := e.Match(n.Left), e.Match(n.Right)
		switch n.Op {
		case query.OpAnd:
			return left.And(right)
		case query.OpOr:
			return left.Or(right)
		case query.OpNot:
			return left.AndNot(right)
		}
	}
	return index.NewPostingList()
}

// Weight scores doc against expr. A term weighs its running frequency in the
// document (0 when absent); "and" takes the minimum of both sides while "or"
// and "not" take the maximum. Taking the maximum for "or" extends the
// fuzzy-logic pair so that "or" matches are ordered by weight rather than tied.
func Weight(doc *model.Document, expr query.Expr) float64 {
	switch n := expr.(type) {
	case *query.TermExpr:
		return doc.Frequency(n.Term)
	case *query.BinaryExpr:
		left, right := Weight(doc, n.Left), Weight(doc, n.Right)
		if n.Op == query.OpAnd {
			return math.Min(left, right)
		}
		return math.Max(left, right)
	}
	return 0
}
