// Package store provides a SQLite-backed cache of the parsed problem catalog.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/resolution/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache holds the last parsed catalog and the file it came from.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

func migrate(db *sql.DB) error {
	for _, m := range columnMigrations {
		ok, err := hasColumn(db, m.table, m.column)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if _, err := db.Exec(m.ddl); err != nil {
			return err
		}
	}
	return nil
}

func hasColumn(db *sql.DB, table, column string) (bool, error) {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column).Scan(&n)
	return n > 0, err
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked stat of a catalog file and how many of its
// entries were skipped when it was parsed.
type FileInfo struct {
	MtimeNs     int64
	SizeBytes   int64
	ParseErrors int
}

// TrackedFile returns the recorded stat of path, if any.
func (c *Cache) TrackedFile(path string) (FileInfo, bool, error) {
	var fi FileInfo
	err := c.db.QueryRow("SELECT mtime_ns, size_bytes, parse_errors FROM file_tracker WHERE file_path = ?", path).
		Scan(&fi.MtimeNs, &fi.SizeBytes, &fi.ParseErrors)
	if errors.Is(err, sql.ErrNoRows) {
		return FileInfo{}, false, nil
	}
	if err != nil {
		return FileInfo{}, false, err
	}
	return fi, true, nil
}

// ReplaceCatalog swaps the cached problems for the contents of path.
// Only one catalog file is tracked at a time. Problem ids must be unique.
func (c *Cache) ReplaceCatalog(path string, problems []model.Problem, fi FileInfo) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM problems"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM file_tracker"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO problems
		(question_id, frontend_id, title, slug, difficulty, paid_only, hidden)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range problems {
		if _, err := stmt.Exec(p.ID, p.FrontendID, p.Title, p.Slug, int(p.Difficulty),
			boolInt(p.PaidOnly), boolInt(p.Hidden)); err != nil {
			return err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(`INSERT INTO file_tracker (file_path, mtime_ns, size_bytes, parse_errors, indexed_at)
		VALUES (?, ?, ?, ?, ?)`, path, fi.MtimeNs, fi.SizeBytes, fi.ParseErrors, now); err != nil {
		return err
	}

	return tx.Commit()
}

// LoadProblems reads every cached problem ordered by id.
func (c *Cache) LoadProblems() ([]model.Problem, error) {
	rows, err := c.db.Query(`SELECT
		question_id, frontend_id, title, slug, difficulty, paid_only, hidden
		FROM problems ORDER BY question_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var problems []model.Problem
	for rows.Next() {
		var p model.Problem
		var frontendID sql.NullInt64
		var difficulty, paidOnly, hidden int
		if err := rows.Scan(&p.ID, &frontendID, &p.Title, &p.Slug, &difficulty, &paidOnly, &hidden); err != nil {
			return nil, err
		}
		if frontendID.Valid {
			p.FrontendID = int(frontendID.Int64)
		}
		p.Difficulty = model.Difficulty(difficulty)
		p.PaidOnly = paidOnly != 0
		p.Hidden = hidden != 0
		problems = append(problems, p)
	}
	return problems, rows.Err()
}

// ProblemCount returns the number of cached problems.
func (c *Cache) ProblemCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM problems").Scan(&count)
	return count, err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
