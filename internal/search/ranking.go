package search

import (
	"cmp"
	"math"
	"slices"

	"github.com/gcbaptista/go-ir-engine/internal/corpus"
	"github.com/gcbaptista/go-ir-engine/model"
)

// Hit is a scored document.
type Hit struct {
	DocID model.DocumentID
	Score float64
}

// Ranking is an ordered list of hits.
type Ranking []Hit

// CompareHits orders by score descending, then document id ascending.
// NaN scores compare as 0, so the order is total and strict on distinct ids.
func CompareHits(a, b Hit) int {
	if c := cmp.Compare(normalize(b.Score), normalize(a.Score)); c != 0 {
		return c
	}
	return cmp.Compare(a.DocID, b.DocID)
}

func normalize(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return score
}

// Sort orders the ranking in place.
func (r Ranking) Sort() {
	slices.SortFunc(r, CompareHits)
}

// IDs returns the document ids in rank order.
func (r Ranking) IDs() []model.DocumentID {
	ids := make([]model.DocumentID, len(r))
	for i, hit := range r {
		ids[i] = hit.DocID
	}
	return ids
}

// Documents resolves the ranking against c, in rank order.
func (r Ranking) Documents(c *corpus.Corpus) []*model.Document {
	docs := make([]*model.Document, 0, len(r))
	for _, hit := range r {
		if doc, ok := c.Document(hit.DocID); ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// CosineSimilarity returns a·b / (|a||b|), or 0 when either vector has zero
// norm. Vectors must have the same length.
func CosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
