package tokenizer

import (
	"strings"
)

// Tokenize converts a string into a slice of tokens.
// It lowercases the string and splits it on single spaces; the empty tokens
// produced by consecutive, leading or trailing spaces are dropped.
// Punctuation is kept as part of the token.
func Tokenize(text string) []string {
	lowerText := strings.ToLower(text)
	split := strings.Split(lowerText, " ")

	tokens := make([]string, 0, len(split)) // Initialize as empty slice, not nil
	for _, s := range split {
		if s != "" {
			tokens = append(tokens, s)
		}
	}
	return tokens
}

// Fields lowercases the string and splits it on any run of whitespace
// (spaces, tabs, newlines).
func Fields(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	if fields == nil {
		return make([]string, 0)
	}
	return fields
}

// Unique removes duplicate tokens, keeping the first occurrence of each.
func Unique(tokens []string) []string {
	result := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		result = append(result, token)
	}
	return result
}
