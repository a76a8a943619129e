package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS problems (
    question_id          INTEGER PRIMARY KEY,
    frontend_id          INTEGER,
    title                TEXT NOT NULL,
    slug                 TEXT NOT NULL,
    difficulty           INTEGER NOT NULL,
    paid_only            INTEGER NOT NULL DEFAULT 0,
    hidden               INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    parse_errors         INTEGER NOT NULL DEFAULT 0,
    indexed_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_problems_difficulty ON problems(difficulty);
`

// columnMigrations add columns that caches created by older builds lack.
var columnMigrations = []struct {
	table, column, ddl string
}{
	{"file_tracker", "parse_errors", "ALTER TABLE file_tracker ADD COLUMN parse_errors INTEGER NOT NULL DEFAULT 0"},
}
