package search

import (
	"math"

	"github.com/gcbaptista/go-ir-engine/index"
	"github.com/gcbaptista/go-ir-engine/internal/corpus"
	"github.com/gcbaptista/go-ir-engine/internal/tokenizer"
	"github.com/gcbaptista/go-ir-engine/model"
)

// VectorEngine ranks documents by cosine similarity between TF-IDF vectors.
type VectorEngine struct {
	corpus *corpus.Corpus
}

// NewVectorEngine creates a vector engine and computes the TF-IDF of every
// posting of c.
func NewVectorEngine(c *corpus.Corpus) *VectorEngine {
	e := &VectorEngine{corpus: c}
	e.ComputeTFIDF()
	return e
}

// IDF returns ln(N/(df+1)) + 1.
func IDF(n, df int) float64 {
	return math.Log(float64(n)/float64(df+1)) + 1
}

// ComputeTFIDF stores frequency × idf on both sides of every posting.
// Values are overwritten, so repeated calls give the same result.
func (e *VectorEngine) ComputeTFIDF() {
	n := e.corpus.Size()
	e.corpus.EachPosting(func(term *model.Term, doc *model.Document) {
		tfidf := term.Frequencies[doc.ID] * IDF(n, term.DocumentFrequency())
		term.TFIDF[doc.ID] = tfidf
		doc.TFIDF[term.Term] = tfidf
	})
}

func (e *VectorEngine) Kind() Kind { return KindVector }

// Rank splits text on whitespace and scores the union of the postings of its
// known terms. Repeated query terms count once.
func (e *VectorEngine) Rank(text string) (Ranking, error) {
	terms := tokenizer.Unique(tokenizer.Fields(text))
	n := e.corpus.Size()

	queryVector := make([]float64, len(terms))
	candidates := index.NewPostingList()
	for i, term := range terms {
		df := e.corpus.DocumentFrequency(term)
		if df == 0 {
			continue
		}
		queryVector[i] = IDF(n, df)
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
			docVector[i] = doc.TFIDF[term]
		}
		ranking = append(ranking, Hit{DocID: id, Score: CosineSimilarity(queryVector, docVector)})
	}
	ranking.Sort()
	return ranking, nil
}

func (e *VectorEngine) Search(text string) ([]*model.Document, error) {
	return search(e, e.corpus, text)
}
