// Package problems parses the practice-problem catalog and picks problems
// for the daily coding step.
package problems

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/theirongolddev/resolution/internal/model"
)

// ParseResult holds the output of parsing a catalog file.
type ParseResult struct {
	Problems    []model.Problem
	ParseErrors int
}

// ParseFile reads a catalog export. Entries that fail to decode, lack an
// id, slug or valid difficulty, or repeat an earlier question id are
// counted in ParseErrors and skipped. Problems come back ordered by id.
func ParseFile(path string) (*ParseResult, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's config
	if err != nil {
		return nil, fmt.Errorf("reading problem catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog JSON already in memory.
func Parse(data []byte) (*ParseResult, error) {
	var top struct {
		Pairs []json.RawMessage `json:"stat_status_pairs"`
	}
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parsing problem catalog: %w", err)
	}

	result := &ParseResult{Problems: make([]model.Problem, 0, len(top.Pairs))}
	seen := make(map[int]bool, len(top.Pairs))
	for _, raw := range top.Pairs {
		var pair RawPair
		if err := json.Unmarshal(raw, &pair); err != nil {
			result.ParseErrors++
			continue
		}
		p, ok := toProblem(pair)
		if !ok || seen[p.ID] {
			result.ParseErrors++
			continue
		}
		seen[p.ID] = true
		result.Problems = append(result.Problems, p)
	}
	slices.SortFunc(result.Problems, func(a, b model.Problem) int { return cmp.Compare(a.ID, b.ID) })
	return result, nil
}

func toProblem(pair RawPair) (model.Problem, bool) {
	if pair.Stat.QuestionID == 0 || pair.Stat.Slug == "" || pair.Difficulty == nil {
		return model.Problem{}, false
	}
	d := model.Difficulty(pair.Difficulty.Level)
	if !d.Valid() {
		return model.Problem{}, false
	}
	return model.Problem{
		ID:         pair.Stat.QuestionID,
		FrontendID: pair.Stat.FrontendQuestionID,
		Title:      pair.Stat.Title,
		Slug:       pair.Stat.Slug,
		Difficulty: d,
		PaidOnly:   pair.PaidOnly,
		Hidden:     pair.Stat.Hidden,
	}, true
}
