package problems

import (
	"fmt"
	"os"

	"github.com/theirongolddev/resolution/internal/model"
	"github.com/theirongolddev/resolution/internal/store"
)

// LoadResult holds the catalog and where it came from.
type LoadResult struct {
	Problems    []model.Problem
	ParseErrors int
	FromCache   bool
}

// Load parses the catalog file directly.
func Load(path string) (*LoadResult, error) {
	if path == "" {
		return nil, fmt.Errorf("no problem catalog configured")
	}
	pr, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return &LoadResult{Problems: pr.Problems, ParseErrors: pr.ParseErrors}, nil
}

// LoadWithCache serves the catalog from cache while the file's mtime and
// size are unchanged, and reparses and re-indexes it otherwise.
func LoadWithCache(path string, cache *store.Cache) (*LoadResult, error) {
	if path == "" {
		return nil, fmt.Errorf("no problem catalog configured")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading problem catalog: %w", err)
	}

	tracked, ok, err := cache.TrackedFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	if ok && tracked.MtimeNs == info.ModTime().UnixNano() && tracked.SizeBytes == info.Size() {
		cached, err := cache.LoadProblems()
		if err != nil {
			return nil, fmt.Errorf("reading cache: %w", err)
		}
		return &LoadResult{Problems: cached, ParseErrors: tracked.ParseErrors, FromCache: true}, nil
	}

	pr, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	fi := store.FileInfo{MtimeNs: info.ModTime().UnixNano(), SizeBytes: info.Size(), ParseErrors: pr.ParseErrors}
	if err := cache.ReplaceCatalog(path, pr.Problems, fi); err != nil {
		return nil, fmt.Errorf("writing cache: %w", err)
	}
	return &LoadResult{Problems: pr.Problems, ParseErrors: pr.ParseErrors}, nil
}
