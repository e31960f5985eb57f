package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	irerrors "github.com/gcbaptista/go-ir-engine/internal/errors"
)

func TestNew(t *testing.T) {
	t.Run("operator at position one", func(t *testing.T) {
		q := New("Hotel AND Room")
		assert.Equal(t, []string{"hotel", "and", "room"}, q.Tokens)
		assert.Equal(t, OpAnd, q.Operator)
		assert.Equal(t, []string{"hotel", "room"}, q.Terms)
	})

	t.Run("operator word elsewhere is a term", func(t *testing.T) {
		q := New("not hotel")
		assert.Equal(t, Operator(""), q.Operator)
		assert.Equal(t, []string{"not", "hotel"}, q.Terms)
	})

	t.Run("running frequencies over terms", func(t *testing.T) {
		q := New("a b a")
		assert.Equal(t, 2, q.Occurrences["a"])
		assert.InDelta(t, 1.5, q.Frequencies["a"], 1e-12)
		assert.InDelta(t, 1.0, q.Frequencies["b"], 1e-12)
	})

	t.Run("empty query", func(t *testing.T) {
		q := New("   ")
		assert.True(t, q.IsEmpty())
		assert.Empty(t, q.Terms)
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{"single term", "Hotel", "hotel", false},
		{"and", "hotel and clean", "(hotel and clean)", false},
		{"or", "hotel or dirty", "(hotel or dirty)", false},
		{"not", "hotel not dirty", "(hotel not dirty)", false},
		{"extra spaces", "  hotel   and clean ", "(hotel and clean)", false},
		{"empty", "", "", true},
		{"two tokens", "hotel clean", "", true},
		{"unknown operator", "hotel xor clean", "", true},
		{"too many tokens", "a and b or c", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(New(tt.text))
			if tt.wantErr {
				assert.ErrorIs(t, err, irerrors.ErrInvalidQuery)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.String())
		})
	}
}
