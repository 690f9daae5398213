// Package viewmodel turns stored bookmarks into display rows.
package viewmodel

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikbrunner/marks/internal/model"
	"github.com/nikbrunner/marks/internal/tagcolor"
)

// Lister is the read side of the bookmark store.
type Lister interface {
	List(ctx context.Context, tagFilter string) ([]model.Bookmark, error)
}

// ColorSource resolves a tag to its display color.
type ColorSource interface {
	ColorFor(tag string) tagcolor.Color
}

// TagChip is one rendered tag.
type TagChip struct {
	Name  string
	Color tagcolor.Color
}

// Row is one bookmark as the list displays it.
type Row struct {
	ID    int64
	Title string
	URL   string
	Tags  []TagChip
}

// VisibleList returns the bookmarks matching filter.
func VisibleList(ctx context.Context, l Lister, filter string) ([]model.Bookmark, error) {
	return l.List(ctx, filter)
}

// Refresh lists bookmarks for filter and returns them as rows along with the
// filter that was applied. A forced refresh clears the filter.
func Refresh(ctx context.Context, l Lister, colors ColorSource, filter string, force bool) ([]Row, string, error) {
	if force {
		filter = ""
	}

	bookmarks, err := VisibleList(ctx, l, filter)
	if err != nil {
		return nil, filter, fmt.Errorf("refresh: %w", err)
	}
	return BuildRows(bookmarks, colors), filter, nil
}

// BuildRows converts bookmarks to rows, resolving each tag's color.
// Tags are trimmed and blank tags produce no chip.
func BuildRows(bookmarks []model.Bookmark, colors ColorSource) []Row {
	rows := make([]Row, 0, len(bookmarks))
	for _, b := range bookmarks {
		row := Row{ID: b.ID, Title: b.Title, URL: b.URL}
		for _, tag := range b.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			row.Tags = append(row.Tags, TagChip{Name: tag, Color: colors.ColorFor(tag)})
		}
		rows = append(rows, row)
	}
	return rows
}
