package storage

import (
	"context"
	"errors"

	"github.com/nikbrunner/marks/internal/model"
)

// Store defines the bookmark persistence contract used by the TUI and CLI.
type Store interface {
	Exists(ctx context.Context, url string) (bool, error)
	Add(ctx context.Context, params model.NewBookmarkParams) (int64, error)
	List(ctx context.Context, tagFilter string) ([]model.Bookmark, error)
	Get(ctx context.Context, id int64) (model.Bookmark, error)
	Delete(ctx context.Context, id int64) error
	UpdateTitle(ctx context.Context, id int64, title string) error
	UpdateTags(ctx context.Context, id int64, raw string) error
}

var _ Store = (*SQLiteStorage)(nil)

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Added   int
	Skipped int // duplicates
}

// ImportMerge adds bookmarks that are not already stored, skipping duplicate URLs.
func ImportMerge(ctx context.Context, s Store, bookmarks []model.Bookmark) (ImportResult, error) {
	var result ImportResult
	for _, b := range bookmarks {
		_, err := s.Add(ctx, model.NewBookmarkParams{
			URL:   b.URL,
			Title: b.Title,
			Tags:  b.Tags,
		})
		switch {
		case err == nil:
			result.Added++
		case errors.Is(err, ErrDuplicateURL):
			result.Skipped++
		default:
			return result, err
		}
	}
	return result, nil
}
