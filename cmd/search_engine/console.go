package main

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/gcbaptista/go-ir-engine/internal/search"
	"github.com/gcbaptista/go-ir-engine/services"
)

const consolePageSize = 100

// collectAll pages through a search until every ranked document is gathered.
func collectAll(s services.Searcher, engineName, text string) ([]services.DocumentView, error) {
	var docs []services.DocumentView
	for page := 1; ; page++ {
		result, err := s.Search(services.SearchQuery{
			Engine:      engineName,
			QueryString: text,
			Page:        page,
			PageSize:    consolePageSize,
		})
		if err != nil {
			return nil, err
		}
		docs = append(docs, services.HitDocuments(result)...)
		if len(result.Hits) == 0 || len(docs) >= result.Total {
			return docs, nil
		}
	}
}

// runQuery prints every result of one query in the console format.
func runQuery(w io.Writer, s services.Searcher, engineName, text string) error {
	docs, err := collectAll(s, engineName, text)
	if err != nil {
		return err
	}
	return services.FormatResults(w, docs)
}

// runInteractive asks for a retrieval model unless engineName is set, then
// answers queries until "quit" or end of input.
func runInteractive(r io.Reader, w io.Writer, m services.CorpusManager, engineName string) error {
	scanner := bufio.NewScanner(r)

	kind, ok, err := chooseEngine(scanner, w, m, engineName)
	if err != nil || !ok {
		fmt.Fprintln(w, "Goodbye!")
		return err
	}
	if kind == search.KindBoolean {
		fmt.Fprintln(w, "Boolean engine: combine two terms with AND, OR or NOT.")
	}

	for {
		fmt.Fprint(w, "\nType 'quit' to exit or enter your query: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			fmt.Fprintln(w, "Empty query, please try again.")
			continue
		}
		if strings.EqualFold(line, "quit") {
			break
		}
		if err := runQuery(w, m, kind.String(), line); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
	}

	fmt.Fprintln(w, "Goodbye!")
	return scanner.Err()
}

// chooseEngine resolves engineName, or prompts until the user picks an
// enabled model. ok is false when input ends first.
func chooseEngine(scanner *bufio.Scanner, w io.Writer, m services.CorpusManager, engineName string) (search.Kind, bool, error) {
	enabled := m.Engines()

	if engineName != "" {
		kind, err := search.ParseKind(engineName)
		if err != nil {
			return 0, false, err
		}
		if !slices.Contains(enabled, kind.String()) {
			return 0, false, fmt.Errorf("engine '%s' is not enabled", kind)
		}
		return kind, true, nil
	}

	fmt.Fprintln(w, "\nWhich retrieval model do you want to use?")
	fmt.Fprintln(w, menu())
	for {
		fmt.Fprint(w, "Your choice (1-3): ")
		if !scanner.Scan() {
			return 0, false, scanner.Err()
		}

		kind, err := search.ParseKind(scanner.Text())
		if err != nil {
			fmt.Fprintln(w, "Invalid choice, please enter 1, 2 or 3.")
			continue
		}
		if !slices.Contains(enabled, kind.String()) {
			fmt.Fprintf(w, "The %s engine is not enabled.\n", kind)
			continue
		}
		return kind, true, nil
	}
}

// menu lists every retrieval model under its numeric code.
func menu() string {
	items := make([]string, 0, len(search.Kinds()))
	for _, kind := range search.Kinds() {
		name := kind.String()
		items = append(items, fmt.Sprintf("%d) %s%s", int(kind), strings.ToUpper(name[:1]), name[1:]))
	}
	return strings.Join(items, "   ")
}
