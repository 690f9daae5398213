package storage_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/marks/internal/model"
	"github.com/nikbrunner/marks/internal/storage"
)

func newTestStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "bookmarks.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustAdd(t *testing.T, s *storage.SQLiteStorage, url, title string, tags ...string) int64 {
	t.Helper()
	id, err := s.Add(context.Background(), model.NewBookmarkParams{URL: url, Title: title, Tags: tags})
	if err != nil {
		t.Fatalf("failed to add %s: %v", url, err)
	}
	return id
}

func TestSQLiteStorage_AddAndGet(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	id := mustAdd(t, s, "https://go.dev", "The Go Programming Language", "go", "docs")

	got, err := s.Get(ctx, id)
	assert.NilError(t, err)
	assert.Equal(t, got.ID, id)
	assert.Equal(t, got.URL, "https://go.dev")
	assert.Equal(t, got.Title, "The Go Programming Language")
	assert.DeepEqual(t, got.Tags, []string{"go", "docs"})
}

func TestSQLiteStorage_AddDuplicateURL(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	mustAdd(t, s, "https://example.com", "Example")

	_, err := s.Add(ctx, model.NewBookmarkParams{URL: "https://example.com", Title: "Again"})
	if !errors.Is(err, storage.ErrDuplicateURL) {
		t.Fatalf("expected ErrDuplicateURL, got %v", err)
	}

	count, err := s.Count(ctx)
	assert.NilError(t, err)
	assert.Equal(t, count, 1)

	// The original row is untouched.
	list, err := s.List(ctx, "")
	assert.NilError(t, err)
	assert.Equal(t, list[0].Title, "Example")
}

func TestSQLiteStorage_Exists(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	mustAdd(t, s, "https://example.com", "Example")

	ok, err := s.Exists(ctx, "https://example.com")
	assert.NilError(t, err)
	assert.Assert(t, ok)

	ok, err = s.Exists(ctx, "https://example.org")
	assert.NilError(t, err)
	assert.Assert(t, !ok)
}

func TestSQLiteStorage_IDsNotReused(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	first := mustAdd(t, s, "https://a.example", "A")
	second := mustAdd(t, s, "https://b.example", "B")
	assert.NilError(t, s.Delete(ctx, second))

	third := mustAdd(t, s, "https://c.example", "C")
	if third <= second {
		t.Errorf("expected id greater than %d after delete, got %d (first was %d)", second, third, first)
	}
}

func TestSQLiteStorage_ListFilter(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	mustAdd(t, s, "https://news.example", "News", "news", "tech")
	mustAdd(t, s, "https://golang.example", "Go", "golang")
	mustAdd(t, s, "https://cook.example", "Cooking", "Food")
	mustAdd(t, s, "https://untagged.example", "Untagged")

	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{"empty filter lists all", "", []string{"https://news.example", "https://golang.example", "https://cook.example", "https://untagged.example"}},
		{"whole tag", "tech", []string{"https://news.example"}},
		{"substring inside tag", "lang", []string{"https://golang.example"}},
		{"substring spanning separator", "s,t", []string{"https://news.example"}},
		{"case sensitive", "food", []string{}},
		{"exact case", "Food", []string{"https://cook.example"}},
		{"percent is literal", "%", []string{}},
		{"underscore is literal", "_", []string{}},
		{"no match", "sports", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.filter)
			assert.NilError(t, err)

			urls := []string{}
			for _, b := range got {
				urls = append(urls, b.URL)
			}
			assert.DeepEqual(t, urls, tt.want)
		})
	}
}

func TestSQLiteStorage_DeleteMissingIsNoop(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	mustAdd(t, s, "https://example.com", "Example")

	if err := s.Delete(ctx, 9999); err != nil {
		t.Fatalf("expected no error deleting missing id, got %v", err)
	}

	count, err := s.Count(ctx)
	assert.NilError(t, err)
	assert.Equal(t, count, 1)
}

func TestSQLiteStorage_UpdateTitle(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	id := mustAdd(t, s, "https://example.com", model.TitleNotFound)
	assert.NilError(t, s.UpdateTitle(ctx, id, "Example Domain"))

	got, err := s.Get(ctx, id)
	assert.NilError(t, err)
	assert.Equal(t, got.Title, "Example Domain")

	// Missing ids are ignored.
	assert.NilError(t, s.UpdateTitle(ctx, id+100, "nope"))
}

func TestSQLiteStorage_UpdateTags(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	id := mustAdd(t, s, "https://example.com", "Example", "old")

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"trims around commas", " a, b ,c", "a,b,c"},
		{"empty input clears", "", ""},
		{"empty elements preserved", "a,,b", "a,,b"},
		{"single tag", "  solo  ", "solo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NilError(t, s.UpdateTags(ctx, id, tt.raw))

			got, err := s.Get(ctx, id)
			assert.NilError(t, err)
			assert.Equal(t, got.TagString(), tt.want)
		})
	}
}

func TestSQLiteStorage_UpdateTagsStoredForm(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "raw.db")
	s, err := storage.NewSQLiteStorage(dbPath)
	assert.NilError(t, err)
	ctx := context.Background()

	id, err := s.Add(ctx, model.NewBookmarkParams{URL: "https://example.com", Title: "Example"})
	assert.NilError(t, err)
	assert.NilError(t, s.UpdateTags(ctx, id, " a, b ,c"))
	assert.NilError(t, s.Close())

	// Read the column directly to check the persisted representation.
	db, err := sql.Open("sqlite", dbPath)
	assert.NilError(t, err)
	defer db.Close()

	var raw string
	assert.NilError(t, db.QueryRow("SELECT tags FROM bookmarks WHERE id = ?", id).Scan(&raw))
	assert.Equal(t, raw, "a,b,c")
}

func TestSQLiteStorage_GetNotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Get(context.Background(), 42)
	assert.Assert(t, errors.Is(err, storage.ErrNotFound))
}

func TestSQLiteStorage_InitializeIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bookmarks.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	assert.NilError(t, err)
	mustAdd(t, s, "https://example.com", "Example", "keep")

	assert.NilError(t, s.Initialize(context.Background()))
	assert.NilError(t, s.Close())

	// Reopening reuses the existing table.
	reopened, err := storage.NewSQLiteStorage(dbPath)
	assert.NilError(t, err)
	defer reopened.Close()

	list, err := reopened.List(context.Background(), "")
	assert.NilError(t, err)
	assert.Assert(t, is.Len(list, 1))
	assert.Equal(t, list[0].TagString(), "keep")
}

func TestSQLiteStorage_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "bookmarks.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage with nested dir: %v", err)
	}
	defer s.Close()

	if s.Path() != dbPath {
		t.Errorf("expected path %q, got %q", dbPath, s.Path())
	}
}

func TestSQLiteStorage_EndToEnd(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	id, err := s.Add(ctx, model.NewBookmarkParams{
		URL:   "https://example.com",
		Title: "Example Domain",
		Tags:  model.SplitTagInput("news, tech"),
	})
	assert.NilError(t, err)

	all, err := s.List(ctx, "")
	assert.NilError(t, err)
	assert.Assert(t, is.Len(all, 1))
	assert.DeepEqual(t, all[0].Tags, []string{"news", "tech"})

	tech, err := s.List(ctx, "tech")
	assert.NilError(t, err)
	assert.Assert(t, is.Len(tech, 1))
	assert.Equal(t, tech[0].ID, id)

	sports, err := s.List(ctx, "sports")
	assert.NilError(t, err)
	assert.Assert(t, is.Len(sports, 0))

	assert.NilError(t, s.Delete(ctx, id))
	all, err = s.List(ctx, "")
	assert.NilError(t, err)
	assert.Assert(t, is.Len(all, 0))
}
