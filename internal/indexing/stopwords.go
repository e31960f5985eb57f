package indexing

import (
	"bufio"
	"io"
	"os"
	"strings"

	irerrors "github.com/gcbaptista/go-ir-engine/internal/errors"
)

// LoadStopwords reads a newline-delimited stopword file. Entries are trimmed
// and lowercased; blank lines are ignored. On failure it returns an empty,
// usable set together with a StopwordLoadError so callers can log and go on.
func LoadStopwords(path string) (map[string]struct{}, error) {
	file, err := os.Open(path) // #nosec G304 -- path is controlled by configuration
	if err != nil {
		return make(map[string]struct{}), irerrors.NewStopwordLoadError(path, err)
	}
	defer func() { _ = file.Close() }()

	stopwords, err := ReadStopwords(file)
	if err != nil {
		return make(map[string]struct{}), irerrors.NewStopwordLoadError(path, err)
	}
	return stopwords, nil
}

// ReadStopwords parses stopwords from r, one per line.
func ReadStopwords(r io.Reader) (map[string]struct{}, error) {
	stopwords := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		stopwords[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return stopwords, nil
}
