// Package exporter writes bookmarks as a Netscape bookmark file that browsers
// and the importer package can read back.
package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/marks/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders bookmarks in Netscape bookmark HTML format.
// Bookmarks stay flat; tags go into the TAGS attribute.
func ExportHTML(bookmarks []model.Bookmark) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, bm := range bookmarks {
		fmt.Fprintf(&b, "    <DT><A HREF=\"%s\"", html.EscapeString(bm.URL))
		if tags := bm.TagString(); tags != "" {
			fmt.Fprintf(&b, " TAGS=\"%s\"", html.EscapeString(tags))
		}
		fmt.Fprintf(&b, ">%s</A>\n", html.EscapeString(bm.Title))
	}

	b.WriteString("</DL><p>\n")

	return b.String()
}

// WriteFile exports bookmarks to path, creating parent directories.
func WriteFile(path string, bookmarks []model.Bookmark) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(ExportHTML(bookmarks)), 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
