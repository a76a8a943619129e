package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/resolution/internal/model"
)

func openCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "nested", "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestTrackedFileMissing(t *testing.T) {
	c := openCache(t)

	_, ok, err := c.TrackedFile("/nope.json")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReplaceCatalogRoundTrip(t *testing.T) {
	c := openCache(t)
	want := []model.Problem{
		{ID: 1, FrontendID: 1, Title: "Two Sum", Slug: "two-sum", Difficulty: model.Easy},
		{ID: 4, FrontendID: 4, Title: "Median of Two Sorted Arrays", Slug: "median-of-two-sorted-arrays", Difficulty: model.Hard},
		{ID: 156, FrontendID: 156, Title: "Binary Tree Upside Down", Slug: "binary-tree-upside-down", Difficulty: model.Medium, PaidOnly: true},
	}

	require.NoError(t, c.ReplaceCatalog("/data/problems.json", want, FileInfo{MtimeNs: 123, SizeBytes: 456, ParseErrors: 2}))

	got, err := c.LoadProblems()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	fi, ok, err := c.TrackedFile("/data/problems.json")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, FileInfo{MtimeNs: 123, SizeBytes: 456, ParseErrors: 2}, fi)
}

func TestReplaceCatalogDropsPreviousFile(t *testing.T) {
	c := openCache(t)

	require.NoError(t, c.ReplaceCatalog("/a.json", []model.Problem{{ID: 1, Title: "a", Slug: "a", Difficulty: model.Easy}}, FileInfo{MtimeNs: 1, SizeBytes: 1}))
	require.NoError(t, c.ReplaceCatalog("/b.json", []model.Problem{{ID: 2, Title: "b", Slug: "b", Difficulty: model.Medium}}, FileInfo{MtimeNs: 2, SizeBytes: 2}))

	n, err := c.ProblemCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, ok, err := c.TrackedFile("/a.json")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenAddsMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE file_tracker (
		file_path TEXT PRIMARY KEY, mtime_ns INTEGER NOT NULL,
		size_bytes INTEGER NOT NULL, indexed_at TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO file_tracker VALUES ('/old.json', 5, 6, 'then')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	c, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	fi, ok, err := c.TrackedFile("/old.json")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, FileInfo{MtimeNs: 5, SizeBytes: 6}, fi)
}
