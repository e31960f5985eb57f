package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"simple lowercase", "hello world", []string{"hello", "world"}},
		{"all caps word", "HELLO WORLD", []string{"hello", "world"}},
		{"punctuation is kept", "hello, world!", []string{"hello,", "world!"}},
		{"leading/trailing spaces", "  hello world  ", []string{"hello", "world"}},
		{"multiple spaces between words", "hello   world", []string{"hello", "world"}},
		{"tabs are not separators", "hello\tworld", []string{"hello\tworld"}},
		{"only spaces", "    ", []string{}},
		{"hyphenated word", "State-Of-The-Art", []string{"state-of-the-art"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"mixed whitespace", "Hotel\tclean \n room", []string{"hotel", "clean", "room"}},
		{"only whitespace", " \t\n", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fields(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Fields(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestUnique(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{"empty", []string{}, []string{}},
		{"no duplicates", []string{"a", "b"}, []string{"a", "b"}},
		{"keeps first-seen order", []string{"room", "hotel", "room", "clean", "hotel"}, []string{"room", "hotel", "clean"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Unique(tt.tokens)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unique(%v) = %v, want %v", tt.tokens, got, tt.want)
			}
		})
	}
}
