// Package query turns free-text query strings into the token, term and
// expression forms consumed by the search engines.
package query

import (
	"github.com/gcbaptista/go-ir-engine/internal/tokenizer"
)

// Operator is a Boolean connective.
type Operator string

const (
	OpAnd Operator = "and"
	OpOr  Operator = "or"
	OpNot Operator = "not"
)

// ParseOperator reports whether token is one of the Boolean connectives.
func ParseOperator(token string) (Operator, bool) {
	switch Operator(token) {
	case OpAnd, OpOr, OpNot:
		return Operator(token), true
	}
	return "", false
}

// Query is a parsed query string.
type Query struct {
	Text   string   // Original text
	Tokens []string // Lowercased, single-space split, empty tokens dropped

	// Operator is set when the token at position 1 is and/or/not.
	Operator Operator
	// Terms holds every token except the operator, in query order.
	Terms []string

	Occurrences map[string]int
	Frequencies map[string]float64
}

// New parses text. It never fails; grammar checks happen in Parse.
func New(text string) *Query {
	q := &Query{
		Text:        text,
		Tokens:      tokenizer.Tokenize(text),
		Terms:       make([]string, 0),
		Occurrences: make(map[string]int),
		Frequencies: make(map[string]float64),
	}

	for i, token := range q.Tokens {
		if i == 1 {
			if op, ok := ParseOperator(token); ok {
				q.Operator = op
				continue
			}
		}
		q.Terms = append(q.Terms, token)
		if count, seen := q.Occurrences[token]; seen {
			q.Occurrences[token] = count + 1
			q.Frequencies[token] += 1.0 / float64(len(q.Occurrences))
		} else {
			q.Occurrences[token] = 1
			q.Frequencies[token] = 1.0
		}
	}
	return q
}

// IsEmpty reports whether the query has no tokens.
func (q *Query) IsEmpty() bool {
	return len(q.Tokens) == 0
}
