package exporter_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/marks/internal/exporter"
	"github.com/nikbrunner/marks/internal/importer"
	"github.com/nikbrunner/marks/internal/model"
)

func TestExportHTML_Empty(t *testing.T) {
	out := exporter.ExportHTML(nil)

	assert.Check(t, is.Contains(out, "<!DOCTYPE NETSCAPE-Bookmark-file-1>"))
	assert.Check(t, is.Contains(out, "<TITLE>Bookmarks</TITLE>"))
	assert.Check(t, is.Contains(out, "<H1>Bookmarks</H1>"))
	assert.Check(t, !strings.Contains(out, "<A "))
}

func TestExportHTML_Bookmarks(t *testing.T) {
	out := exporter.ExportHTML([]model.Bookmark{
		{ID: 1, Title: "GitHub", URL: "https://github.com", Tags: []string{}},
		{ID: 2, Title: "Go", URL: "https://go.dev", Tags: []string{"lang", "tech"}},
	})

	assert.Check(t, is.Contains(out, `<A HREF="https://github.com">GitHub</A>`))
	assert.Check(t, is.Contains(out, `<A HREF="https://go.dev" TAGS="lang,tech">Go</A>`))
	assert.Check(t, strings.Index(out, "GitHub</A>") < strings.Index(out, "Go</A>"), "order preserved")
}

func TestExportHTML_EscapesSpecialCharacters(t *testing.T) {
	out := exporter.ExportHTML([]model.Bookmark{{
		Title: "Test <script>alert('xss')</script>",
		URL:   "https://example.com?foo=bar&baz=qux",
		Tags:  []string{`say "hi"`},
	}})

	assert.Check(t, !strings.Contains(out, "<script>"))
	assert.Check(t, is.Contains(out, "&lt;script&gt;"))
	assert.Check(t, is.Contains(out, "foo=bar&amp;baz"))
	assert.Check(t, is.Contains(out, `TAGS="say &#34;hi&#34;"`))
}

func TestExportHTML_ReadableByImporter(t *testing.T) {
	in := []model.Bookmark{
		{Title: "Go & Friends", URL: "https://go.dev/?a=1&b=2", Tags: []string{"lang", "tech"}},
		{Title: "Example", URL: "https://example.com", Tags: []string{}},
	}

	got, err := importer.ParseHTMLBookmarks(strings.NewReader(exporter.ExportHTML(in)))
	assert.NilError(t, err)
	assert.DeepEqual(t, got, in)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "export.html")

	err := exporter.WriteFile(path, []model.Bookmark{{Title: "Go", URL: "https://go.dev"}})
	assert.NilError(t, err)

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(string(data), "https://go.dev"))
}

func TestDefaultExportPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	path, err := exporter.DefaultExportPath()
	assert.NilError(t, err)
	assert.Check(t, strings.HasPrefix(path, filepath.Join("/home/tester", "Downloads", "bookmarks-export-")))
	assert.Check(t, strings.HasSuffix(path, ".html"))
}
