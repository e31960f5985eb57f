package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-ir-engine/internal/testutil"
	"github.com/gcbaptista/go-ir-engine/model"
)

func TestIDF(t *testing.T) {
	assert.InDelta(t, math.Log(2.0/3.0)+1, IDF(2, 2), 1e-12)
	assert.InDelta(t, 0.5945348918918356, IDF(2, 2), 1e-12)
	assert.InDelta(t, 1.0, IDF(2, 1), 1e-12)
}

func TestVectorEngine_ComputeTFIDF(t *testing.T) {
	c := testutil.NewCorpus(t, testutil.HotelCorpus...)
	e := NewVectorEngine(c)

	doc0, ok := c.Document(0)
	require.True(t, ok)
	assert.InDelta(t, IDF(2, 2), doc0.TFIDF["hotel"], 1e-12)
	assert.InDelta(t, 1.0, doc0.TFIDF["clean"], 1e-12)

	hotel, ok := c.Term("hotel")
	require.True(t, ok)
	assert.Equal(t, doc0.TFIDF["hotel"], hotel.TFIDF[0])

	t.Run("recomputation is idempotent", func(t *testing.T) {
		before := make(map[string]float64, len(doc0.TFIDF))
		for term, v := range doc0.TFIDF {
			before[term] = v
		}
		e.ComputeTFIDF()
		e.ComputeTFIDF()
		assert.Equal(t, before, doc0.TFIDF)
	})
}

func TestVectorEngine_HotelExample(t *testing.T) {
	c := testutil.NewCorpus(t, testutil.HotelCorpus...)
	e := NewVectorEngine(c)

	t.Run("equal scores fall back to id order", func(t *testing.T) {
		ranking, err := e.Rank("hotel")
		require.NoError(t, err)
		require.Len(t, ranking, 2)
		assert.Equal(t, []model.DocumentID{0, 1}, ranking.IDs())
		assert.InDelta(t, 1.0, ranking[0].Score, 1e-12)
		assert.InDelta(t, 1.0, ranking[1].Score, 1e-12)
	})

	t.Run("better match ranks first", func(t *testing.T) {
		ranking, err := e.Rank("dirty hotel")
		require.NoError(t, err)
		assert.Equal(t, []model.DocumentID{1, 0}, ranking.IDs())
		assert.InDelta(t, 1.0, ranking[0].Score, 1e-12)
		assert.Less(t, ranking[1].Score, 1.0)
	})

	t.Run("repeated and unknown terms", func(t *testing.T) {
		once, err := e.Rank("clean hotel")
		require.NoError(t, err)
		twice, err := e.Rank("Clean\thotel  clean spa")
		require.NoError(t, err)
		assert.Equal(t, once.IDs(), twice.IDs())
		for i := range once {
			assert.InDelta(t, once[i].Score, twice[i].Score, 1e-12)
		}
	})

	t.Run("no known term", func(t *testing.T) {
		ranking, err := e.Rank("spa pool")
		require.NoError(t, err)
		assert.Empty(t, ranking)

		ranking, err = e.Rank("")
		require.NoError(t, err)
		assert.Empty(t, ranking)
	})
}

func TestVectorEngine_ScoresInUnitRange(t *testing.T) {
	c := testutil.NewCorpus(t,
		"d\tred green blue",
		"d\tred red red",
		"d\tgreen blue blue yellow",
		"d\tyellow",
		"d\tpurple red",
	)
	e := NewVectorEngine(c)

	for _, q := range []string{"red", "red blue", "yellow green purple", "blue"} {
		ranking, err := e.Rank(q)
		require.NoError(t, err)
		for _, hit := range ranking {
			assert.GreaterOrEqual(t, hit.Score, 0.0, q)
			assert.LessOrEqual(t, hit.Score, 1.0+1e-12, q)
		}
	}
}
