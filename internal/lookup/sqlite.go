package lookup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps lookup records in a SQLite file. Reads go through the
// database/sql pool and are safe from any number of goroutines.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the lookup database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS resources (
		category TEXT NOT NULL,
		key      TEXT NOT NULL,
		flex     TEXT NOT NULL,
		name     TEXT NOT NULL,
		PRIMARY KEY (category, key)
	);
	CREATE INDEX IF NOT EXISTS idx_resources_flex ON resources(category, flex);
	`)
	return err
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, cat Category, key string) (Record, bool, error) {
	r := Record{Category: cat, Key: key}
	err := s.db.QueryRowContext(ctx,
		`SELECT flex, name FROM resources WHERE category = ? AND key = ?`,
		cat.Slug(), key,
	).Scan(&r.FlexForm, &r.Display)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("query %s %q: %w", cat, key, err)
	}
	return r, true, nil
}

func (s *SQLiteStore) Keys(ctx context.Context, cat Category) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM resources WHERE category = ? ORDER BY key`, cat.Slug())
	if err != nil {
		return nil, fmt.Errorf("list %s keys: %w", cat, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Put upserts records in one transaction. Used only by seeding.
func (s *SQLiteStore) Put(ctx context.Context, records ...Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO resources (category, key, flex, name) VALUES (?, ?, ?, ?)
	ON CONFLICT(category, key) DO UPDATE SET flex = excluded.flex, name = excluded.name`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if r.Key == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, r.Category.Slug(), r.Key, r.FlexForm, r.Display); err != nil {
			return fmt.Errorf("insert %s %q: %w", r.Category, r.Key, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of records per category.
func (s *SQLiteStore) Count(ctx context.Context) (map[Category]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM resources GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Category]int)
	for rows.Next() {
		var slug string
		var n int
		if err := rows.Scan(&slug, &n); err != nil {
			return nil, err
		}
		if cat, ok := ParseCategory(slug); ok {
			counts[cat] = n
		}
	}
	return counts, rows.Err()
}
