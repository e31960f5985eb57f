package services

import (
	"fmt"
	"io"
)

// FormatResults writes documents in the console presentation format: a
// "date - title" line, the text, a blank line, then the result count.
func FormatResults(w io.Writer, docs []DocumentView) error {
	if len(docs) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	for _, doc := range docs {
		if _, err := fmt.Fprintf(w, "%s - %s\n%s\n\n", doc.Date, doc.Title, doc.Text); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d result(s) found\n", len(docs))
	return err
}

// HitDocuments extracts the documents of a result page, in rank order.
func HitDocuments(result SearchResult) []DocumentView {
	docs := make([]DocumentView, 0, len(result.Hits))
	for _, hit := range result.Hits {
		docs = append(docs, hit.Document)
	}
	return docs
}
