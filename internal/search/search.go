// Package search ranks bookmarks against a query with fuzzy matching.
package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/marks/internal/model"
)

// Result is one fuzzy match.
type Result struct {
	Bookmark       model.Bookmark
	MatchedIndexes []int // rune offsets into the bookmark title
	Score          int
}

// titles adapts a bookmark slice to fuzzy.Source.
type titles []model.Bookmark

func (t titles) String(i int) string { return t[i].Title }
func (t titles) Len() int            { return len(t) }

// Bookmarks matches query against bookmark titles, case-insensitively.
// Results are sorted by score, best first. An empty query matches nothing.
func Bookmarks(bookmarks []model.Bookmark, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, titles(bookmarks))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Bookmark:       bookmarks[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
