package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/nikbrunner/marks/internal/model"
)

const currentSchemaVersion = 1

var (
	// ErrDuplicateURL is returned by Add when a bookmark with the same URL exists.
	ErrDuplicateURL = errors.New("this URL already exists in your bookmarks")

	// ErrNotFound is returned by Get when no bookmark has the requested id.
	ErrNotFound = errors.New("bookmark not found")
)

// SQLiteStorage persists bookmarks in a single SQLite table.
type SQLiteStorage struct {
	db     *sql.DB
	path   string
	logger *log.Logger
}

// Option configures a SQLiteStorage.
type Option func(*SQLiteStorage)

// WithLogger sets the logger used for storage diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *SQLiteStorage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSQLiteStorage opens (and if needed creates) the database at path
// and ensures the bookmarks table exists.
func NewSQLiteStorage(path string, opts ...Option) (*SQLiteStorage, error) {
	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &SQLiteStorage{db: db, path: path, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Initialize(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Initialize creates the bookmarks table if it does not exist.
// Safe to call any number of times; an existing table is reused as-is.
func (s *SQLiteStorage) Initialize(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS bookmarks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL,
			title TEXT,
			tags TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO schema_version (version) VALUES (?)", currentSchemaVersion,
	); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}

// withTx runs fn inside a transaction, committing on success.
func (s *SQLiteStorage) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Exists reports whether a bookmark with the given URL is stored.
func (s *SQLiteStorage) Exists(ctx context.Context, url string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookmarks WHERE url = ?", url).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check url: %w", err)
	}
	return count > 0, nil
}

// Add inserts a new bookmark and returns its id.
// Returns ErrDuplicateURL if the URL is already stored.
func (s *SQLiteStorage) Add(ctx context.Context, params model.NewBookmarkParams) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM bookmarks WHERE url = ?", params.URL,
		).Scan(&count); err != nil {
			return fmt.Errorf("check url: %w", err)
		}
		if count > 0 {
			return ErrDuplicateURL
		}

		res, err := tx.ExecContext(ctx,
			"INSERT INTO bookmarks (url, title, tags) VALUES (?, ?, ?)",
			params.URL, params.Title, model.JoinTags(params.Tags),
		)
		if err != nil {
			return fmt.Errorf("insert bookmark: %w", err)
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrDuplicateURL) {
			s.logger.Error("add bookmark", "url", params.URL, "err", err)
		}
		return 0, err
	}

	s.logger.Debug("bookmark added", "id", id, "url", params.URL)
	return id, nil
}

// List returns bookmarks ordered by id. A non-empty tagFilter keeps only
// rows whose raw tags contain it as a case-sensitive substring.
func (s *SQLiteStorage) List(ctx context.Context, tagFilter string) ([]model.Bookmark, error) {
	query := "SELECT id, url, title, tags FROM bookmarks"
	var args []any
	if tagFilter != "" {
		// instr is case-sensitive and has no wildcard characters, unlike LIKE.
		query += " WHERE instr(tags, ?) > 0"
		args = append(args, tagFilter)
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []model.Bookmark{}
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}

	return bookmarks, nil
}

// Get returns the bookmark with the given id, or ErrNotFound.
func (s *SQLiteStorage) Get(ctx context.Context, id int64) (model.Bookmark, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, url, title, tags FROM bookmarks WHERE id = ?", id)
	b, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bookmark{}, ErrNotFound
	}
	return b, err
}

// Count returns the number of stored bookmarks.
func (s *SQLiteStorage) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookmarks").Scan(&n); err != nil {
		return 0, fmt.Errorf("count bookmarks: %w", err)
	}
	return n, nil
}

// Delete removes the bookmark with the given id. A missing id is not an error.
func (s *SQLiteStorage) Delete(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete bookmark", "DELETE FROM bookmarks WHERE id = ?", id)
}

// UpdateTitle overwrites the title of a bookmark.
func (s *SQLiteStorage) UpdateTitle(ctx context.Context, id int64, title string) error {
	return s.exec(ctx, "update title", "UPDATE bookmarks SET title = ? WHERE id = ?", title, id)
}

// UpdateTags normalizes raw comma-separated input and overwrites the stored tags.
func (s *SQLiteStorage) UpdateTags(ctx context.Context, id int64, raw string) error {
	return s.exec(ctx, "update tags", "UPDATE bookmarks SET tags = ? WHERE id = ?", model.NormalizeTags(raw), id)
}

func (s *SQLiteStorage) exec(ctx context.Context, op, query string, args ...any) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		s.logger.Error(op, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBookmark(row scanner) (model.Bookmark, error) {
	var b model.Bookmark
	var title, tags sql.NullString
	if err := row.Scan(&b.ID, &b.URL, &title, &tags); err != nil {
		return model.Bookmark{}, err
	}
	b.Title = title.String
	b.Tags = model.ParseTags(tags.String)
	return b, nil
}

// DefaultSQLitePath returns the default database path: bookmarks.db in the working directory.
func DefaultSQLitePath() string {
	return "bookmarks.db"
}
