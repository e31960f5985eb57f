package search

import (
	"math"

	"github.com/gcbaptista/go-ir-engine/index"
	"github.com/gcbaptista/go-ir-engine/internal/corpus"
	"github.com/gcbaptista/go-ir-engine/internal/tokenizer"
	"github.com/gcbaptista/go-ir-engine/model"
)

// Prior is pi, the assumed probability that a term occurs in a relevant document.
const Prior = 0.1

// ProbabilisticEngine ranks documents by the cosine between their log-odds
// term weights and an all-ones query vector.
type ProbabilisticEngine struct {
	corpus *corpus.Corpus
}

// NewProbabilisticEngine creates a probabilistic engine and computes the
// log-odds weight of every posting of c.
func NewProbabilisticEngine(c *corpus.Corpus) *ProbabilisticEngine {
	e := &ProbabilisticEngine{corpus: c}
	e.ComputeWeights()
	return e
}

// LogOdds returns ln(pi(1-qi) / ((1-pi)qi)) with qi = df/N.
// A term present in every document has no defined log-odds and weighs 0.
func LogOdds(n, df int) float64 {
	if n == 0 || df == 0 {
		return 0
	}
	qi := float64(df) / float64(n)
	if qi >= 1 {
		return 0
	}
	return math.Log((Prior * (1 - qi)) / ((1 - Prior) * qi))
}

// ComputeWeights stores the log-odds weight on both sides of every posting.
func (e *ProbabilisticEngine) ComputeWeights() {
	n := e.corpus.Size()
	e.corpus.EachPosting(func(term *model.Term, doc *model.Document) {
		weight := LogOdds(n, term.DocumentFrequency())
		term.ProbWeights[doc.ID] = weight
		doc.ProbWeights[term.Term] = weight
	})
}

func (e *ProbabilisticEngine) Kind() Kind { return KindProbabilistic }

// Rank splits text on single spaces and scores every document that holds a
// weight for at least one query term. Each token gets its own vector slot, so
// a repeated term weighs more.
func (e *ProbabilisticEngine) Rank(text string) (Ranking, error) {
	terms := tokenizer.Tokenize(text)

	queryVector := make([]float64, len(terms))
	candidates := index.NewPostingList()
	for i, term := range terms {
		queryVector[i] = 1
		candidates.UnionInPlace(e.corpus.Postings(term))
	}

	ranking := make(Ranking, 0, candidates.Cardinality())
	docVector := make([]float64, len(terms))
	for id := range candidates.Iterator() {
		doc, ok := e.corpus.Document(id)
		if !ok {
			continue
		}
		for i, term := range terms {
			docVector[i] = doc.ProbWeights[term]
		}
		ranking = append(ranking, Hit{DocID: id, Score: CosineSimilarity(queryVector, docVector)})
	}
	ranking.Sort()
	return ranking, nil
}

func (e *ProbabilisticEngine) Search(text string) ([]*model.Document, error) {
	return search(e, e.corpus, text)
}
