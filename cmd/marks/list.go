package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nikbrunner/marks/internal/model"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newListCmd(a *app) *cobra.Command {
	var tag, output string
	var exact bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookmarks in the order they were added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bookmarks, err := a.store.List(ctx, tag)
			if err != nil {
				return err
			}
			if exact && tag != "" {
				bookmarks = withTag(bookmarks, tag)
			}
			if bookmarks == nil {
				bookmarks = []model.Bookmark{}
			}
			if err := writeBookmarks(cmd.OutOrStdout(), bookmarks, output); err != nil {
				return err
			}

			if output != "table" {
				return nil
			}
			total, err := a.store.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), countLine(len(bookmarks), total))
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "only show bookmarks whose tags contain this text")
	cmd.Flags().BoolVar(&exact, "exact", false, "with --tag, match whole tags only")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, json, yaml)")

	return cmd
}

func writeBookmarks(w io.Writer, bookmarks []model.Bookmark, format string) error {
	switch format {
	case "table":
		fmt.Fprintln(w, bookmarkTable(bookmarks).Render())
		return nil

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(bookmarks)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(bookmarks); err != nil {
			return err
		}
		return enc.Close()

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func bookmarkTable(bookmarks []model.Bookmark) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("ID", "Title", "Tags", "URL").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, b := range bookmarks {
		t.Row(strconv.FormatInt(b.ID, 10), b.Title, b.TagString(), b.URL)
	}
	return t
}

// withTag keeps the bookmarks carrying exactly tag.
func withTag(bookmarks []model.Bookmark, tag string) []model.Bookmark {
	var kept []model.Bookmark
	for _, b := range bookmarks {
		if b.HasTag(tag) {
			kept = append(kept, b)
		}
	}
	return kept
}

func countLine(shown, total int) string {
	noun := "bookmarks"
	if total == 1 {
		noun = "bookmark"
	}
	if shown == total {
		return fmt.Sprintf("%d %s", total, noun)
	}
	return fmt.Sprintf("%d of %d %s", shown, total, noun)
}
