package indexing

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/go-ir-engine/internal/corpus"
	irerrors "github.com/gcbaptista/go-ir-engine/internal/errors"
	"github.com/gcbaptista/go-ir-engine/internal/logger"
	"github.com/gcbaptista/go-ir-engine/internal/metrics"
	"github.com/gcbaptista/go-ir-engine/internal/tokenizer"
	"github.com/gcbaptista/go-ir-engine/model"
)

const defaultWorkers = 4

// Report summarises one indexing run.
type Report struct {
	Files          int `json:"files"`
	SkippedFiles   int `json:"skipped_files"`
	Documents      int `json:"documents"`
	MalformedLines int `json:"malformed_lines"`
}

func (r *Report) add(other Report) {
	r.Files += other.Files
	r.SkippedFiles += other.SkippedFiles
	r.Documents += other.Documents
	r.MalformedLines += other.MalformedLines
}

// Service parses raw corpus lines into documents and postings.
type Service struct {
	corpus    *corpus.Corpus
	stopwords map[string]struct{}
	workers   int
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithWorkers bounds the number of corpus files read concurrently.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithMetrics records indexing counters on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService creates a new indexing Service writing into c.
// A nil stopword set is treated as empty.
func NewService(c *corpus.Corpus, stopwords map[string]struct{}, opts ...Option) (*Service, error) {
	if c == nil {
		return nil, fmt.Errorf("corpus cannot be nil")
	}
	if c.Index == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	if c.Store == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}
	if stopwords == nil {
		stopwords = make(map[string]struct{})
	}
	s := &Service{
		corpus:    c,
		stopwords: stopwords,
		workers:   defaultWorkers,
		logger:    logger.WithComponent("indexing"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// IndexDirectory indexes every regular file of dir in lexical file-name order.
// Files are read concurrently but their lines are indexed sequentially, so
// document ids follow file order then line order. Unreadable files are logged
// and skipped; an unreadable directory is an error.
func (s *Service) IndexDirectory(ctx context.Context, dir string) (Report, error) {
	var report Report

	entries, err := os.ReadDir(dir) // sorted by file name
	if err != nil {
		return report, irerrors.NewCorpusIOError(dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	contents := make([][]byte, len(paths))
	readErrs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path) // #nosec G304 -- path comes from the configured corpus directory
			if err != nil {
				readErrs[i] = irerrors.NewCorpusIOError(path, err)
				return nil
			}
			contents[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Files++
		if readErrs[i] != nil {
			s.logger.Warn("skipping corpus file", "path", path, "error", readErrs[i])
			report.SkippedFiles++
			if s.metrics != nil {
				s.metrics.SkippedFilesTotal.Inc()
			}
			continue
		}

		fileReport, err := s.IndexReader(filepath.Base(path), bytes.NewReader(contents[i]))
		if err != nil {
			s.logger.Warn("skipping rest of corpus file", "path", path, "error", err)
			report.SkippedFiles++
			if s.metrics != nil {
				s.metrics.SkippedFilesTotal.Inc()
			}
		}
		contents[i] = nil
		report.add(fileReport)
	}

	s.logger.Info("indexed corpus directory",
		"dir", dir,
		"files", report.Files,
		"skipped_files", report.SkippedFiles,
		"documents", report.Documents,
		"malformed_lines", report.MalformedLines)
	return report, nil
}

// IndexReader indexes every line of r. source names the stream in logs and errors.
func (s *Service) IndexReader(source string, r io.Reader) (Report, error) {
	var report Report

	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return report, irerrors.NewCorpusIOError(source, readErr)
		}
		if line != "" {
			lineNo++
			_, err := s.AddLine(source, lineNo, line)
			switch {
			case err == nil:
				report.Documents++
			case errors.Is(err, errBlankLine):
				s.logger.Debug("skipping blank line", "source", source, "line", lineNo)
			case errors.Is(err, irerrors.ErrMalformedLine):
				s.logger.Warn("skipping malformed line", "error", err)
				report.MalformedLines++
				if s.metrics != nil {
					s.metrics.MalformedLinesTotal.Inc()
				}
			default:
				return report, err
			}
		}
		if readErr != nil {
			return report, nil
		}
	}
}

var errBlankLine = errors.New("blank line")

// AddLine parses one corpus line and indexes it as the next document.
// Malformed lines return a MalformedLineError and consume no id.
func (s *Service) AddLine(source string, lineNo int, line string) (*model.Document, error) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil, errBlankLine
	}

	date, title, text, err := ParseLine(line)
	if err != nil {
		var malformed *irerrors.MalformedLineError
		if errors.As(err, &malformed) {
			malformed.Source = source
			malformed.Line = lineNo
		}
		return nil, err
	}

	doc := s.corpus.Store.Create(date, title, text)
	s.indexText(doc, text)
	if s.metrics != nil {
		s.metrics.DocsIndexedTotal.Inc()
	}
	return doc, nil
}

// indexText applies the running frequency update for every surviving token of
// text. A repeated term grows by 1/distinct where distinct is the number of
// different terms seen in the document so far.
func (s *Service) indexText(doc *model.Document, text string) {
	for _, token := range tokenizer.Tokenize(text) {
		if _, stop := s.stopwords[token]; stop {
			continue
		}
		if count, seen := doc.Occurrences[token]; seen {
			doc.Occurrences[token] = count + 1
			doc.Frequencies[token] += 1.0 / float64(doc.DistinctTerms())
		} else {
			doc.Occurrences[token] = 1
			doc.Frequencies[token] = 1.0
		}
		s.corpus.Index.Record(token, doc.ID, doc.Occurrences[token], doc.Frequencies[token])
	}
}

// ParseLine splits a corpus line into its date, optional title and text.
// Lines must have exactly 2 (date, text) or 3 (date, title, text) tab-separated fields.
func ParseLine(line string) (date, title, text string, err error) {
	fields := strings.Split(line, "\t")
	switch len(fields) {
	case 2:
		return fields[0], "", fields[1], nil
	case 3:
		return fields[0], fields[1], fields[2], nil
	default:
		return "", "", "", irerrors.NewMalformedLineError("", 0, len(fields))
	}
}
