package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/demersaj/elements/internal/types"
)

// Index is a SQLite catalog of saved documents. It lets downstream tooling
// look up where a document landed without scanning the output directory.
type Index struct {
	conn *sql.DB
	path string
}

// IndexConfig holds index database options.
type IndexConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	BusyTimeout     time.Duration
}

// DefaultIndexConfig returns sensible defaults for the given database path.
func DefaultIndexConfig(path string) IndexConfig {
	return IndexConfig{
		Path:            path,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		BusyTimeout:     5 * time.Second,
	}
}

// Record is one saved-document entry.
type Record struct {
	ID       int64
	FrameID  string
	Filename string
	Path     string
	Size     int64
	Bucket   string
	Key      string
	SavedAt  time.Time
}

// OpenIndex opens (creating if needed) the document index at path. WAL mode
// is enabled for concurrent readers.
func OpenIndex(path string) (*Index, error) {
	return OpenIndexWithConfig(DefaultIndexConfig(path))
}

// OpenIndexWithConfig opens the index with custom connection settings.
func OpenIndexWithConfig(cfg IndexConfig) (*Index, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=%d",
		cfg.Path,
		int(cfg.BusyTimeout.Milliseconds()),
	)

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, types.WrapError(types.DOCSTORE_OPEN_FAILED, "failed to open document index", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, types.WrapError(types.DOCSTORE_OPEN_FAILED, "failed to ping document index", err)
	}

	idx := &Index{conn: conn, path: cfg.Path}
	if err := idx.migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	return idx, nil
}

func (idx *Index) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	frame_id   TEXT NOT NULL,
	filename   TEXT NOT NULL,
	path       TEXT NOT NULL,
	size_bytes INTEGER NOT NULL,
	bucket     TEXT NOT NULL DEFAULT '',
	key        TEXT NOT NULL DEFAULT '',
	saved_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_documents_filename ON documents(filename);
CREATE INDEX IF NOT EXISTS idx_documents_frame_id ON documents(frame_id);
`
	if _, err := idx.conn.ExecContext(ctx, schema); err != nil {
		return types.WrapError(types.DOCSTORE_OPEN_FAILED, "failed to migrate document index", err)
	}
	return nil
}

// Insert records a saved document and returns its row ID.
func (idx *Index) Insert(ctx context.Context, rec *Record) (int64, error) {
	res, err := idx.conn.ExecContext(ctx,
		`INSERT INTO documents (frame_id, filename, path, size_bytes, bucket, key, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.FrameID, rec.Filename, rec.Path, rec.Size, rec.Bucket, rec.Key, time.Now().UTC())
	if err != nil {
		return 0, types.WrapError(types.DOCSTORE_INDEX_FAILED, "failed to index document", err)
	}
	return res.LastInsertId()
}

// ByFilename returns the index entries for a sanitized filename, newest
// first.
func (idx *Index) ByFilename(ctx context.Context, filename string) ([]Record, error) {
	rows, err := idx.conn.QueryContext(ctx,
		`SELECT id, frame_id, filename, path, size_bytes, bucket, key, saved_at
		 FROM documents WHERE filename = ? ORDER BY saved_at DESC, id DESC`, filename)
	if err != nil {
		return nil, types.WrapError(types.DOCSTORE_INDEX_FAILED, "failed to query document index", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Recent returns the most recently saved documents, up to limit.
func (idx *Index) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := idx.conn.QueryContext(ctx,
		`SELECT id, frame_id, filename, path, size_bytes, bucket, key, saved_at
		 FROM documents ORDER BY saved_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, types.WrapError(types.DOCSTORE_INDEX_FAILED, "failed to query document index", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.FrameID, &rec.Filename, &rec.Path,
			&rec.Size, &rec.Bucket, &rec.Key, &rec.SavedAt); err != nil {
			return nil, types.WrapError(types.DOCSTORE_INDEX_FAILED, "failed to scan index row", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the index database.
func (idx *Index) Close() error {
	if idx.conn == nil {
		return nil
	}
	return idx.conn.Close()
}

// Path returns the index database file path.
func (idx *Index) Path() string {
	return idx.path
}
