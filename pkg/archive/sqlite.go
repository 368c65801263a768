package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite stores records in a local database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("archive: empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS exports (
		number INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		seed TEXT NOT NULL,
		signature TEXT NOT NULL DEFAULT '',
		instructions INTEGER NOT NULL,
		draw_length REAL NOT NULL,
		files TEXT NOT NULL,
		config TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);`)
	return err
}

// Next returns one more than the highest recorded number.
func (s *SQLite) Next(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(number), 0) + 1 FROM exports`).Scan(&n)
	return n, err
}

// Record inserts rec.
func (s *SQLite) Record(ctx context.Context, rec *Record) error {
	if err := prepare(ctx, s, rec); err != nil {
		return err
	}
	files, err := json.Marshal(rec.Files)
	if err != nil {
		return err
	}
	// Seeds use the full uint64 range; SQLite integers are signed.
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO exports (number, id, seed, signature, instructions, draw_length, files, config, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Number, rec.ID, fmt.Sprint(rec.Seed), rec.Signature, rec.Instructions, rec.DrawLength,
		string(files), rec.Config, rec.CreatedAt.UnixMilli())
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint") {
		return ErrConflict
	}
	return err
}

const selectColumns = `SELECT number, id, seed, signature, instructions, draw_length, files, config, created_at FROM exports`

// Get returns a record by number.
func (s *SQLite) Get(ctx context.Context, number int) (Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE number = ?`, number)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return r, err
}

// List returns records newest first.
func (s *SQLite) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY number DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		r       Record
		seed    string
		files   string
		created int64
	)
	if err := sc.Scan(&r.Number, &r.ID, &seed, &r.Signature, &r.Instructions, &r.DrawLength, &files, &r.Config, &created); err != nil {
		return Record{}, err
	}
	if _, err := fmt.Sscan(seed, &r.Seed); err != nil {
		return Record{}, fmt.Errorf("archive: seed %q: %w", seed, err)
	}
	if err := json.Unmarshal([]byte(files), &r.Files); err != nil {
		return Record{}, fmt.Errorf("archive: files: %w", err)
	}
	r.CreatedAt = time.UnixMilli(created).UTC()
	return r, nil
}

var _ Store = (*SQLite)(nil)
