package search

import (
	"strings"

	irerrors "github.com/gcbaptista/go-ir-engine/internal/errors"
)

// Kind selects a retrieval model.
type Kind int

const (
	KindBoolean Kind = iota + 1
	KindVector
	KindProbabilistic
)

// Kinds lists every retrieval model in menu order.
func Kinds() []Kind {
	return []Kind{KindBoolean, KindVector, KindProbabilistic}
}

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindVector:
		return "vector"
	case KindProbabilistic:
		return "probabilistic"
	default:
		return "unknown"
	}
}

// ParseKind accepts a model name or its menu code ("1", "2", "3").
// Anything else is an UnknownEngineError.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "boolean", "1":
		return KindBoolean, nil
	case "vector", "2":
		return KindVector, nil
	case "probabilistic", "3":
		return KindProbabilistic, nil
	default:
		return 0, irerrors.NewUnknownEngineError(s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
