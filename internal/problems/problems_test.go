package problems

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/resolution/internal/model"
	"github.com/theirongolddev/resolution/internal/store"
)

const sampleCatalog = `{
  "num_total": 6,
  "stat_status_pairs": [
    {"stat": {"question_id": 1, "frontend_question_id": 1, "question__title": "Two Sum", "question__title_slug": "two-sum", "question__hide": false}, "difficulty": {"level": 1}, "paid_only": false},
    {"stat": {"question_id": 2, "frontend_question_id": 2, "question__title": "Add Two Numbers", "question__title_slug": "add-two-numbers", "question__hide": false}, "difficulty": {"level": 2}, "paid_only": false},
    {"stat": {"question_id": 4, "frontend_question_id": 4, "question__title": "Median of Two Sorted Arrays", "question__title_slug": "median-of-two-sorted-arrays"}, "difficulty": {"level": 3}, "paid_only": false},
    {"stat": {"question_id": 156, "frontend_question_id": 156, "question__title": "Binary Tree Upside Down", "question__title_slug": "binary-tree-upside-down"}, "difficulty": {"level": 2}, "paid_only": true},
    {"stat": {"question_id": 20, "frontend_question_id": 20, "question__title": "Valid Parentheses", "question__title_slug": "valid-parentheses", "question__hide": true}, "difficulty": {"level": 1}, "paid_only": false},
    {"stat": {"question_id": 9, "frontend_question_id": 9, "question__title": "Palindrome Number", "question__title_slug": "palindrome-number"}, "difficulty": {"level": 1}, "paid_only": false},
    {"stat": {"question_id": 0, "question__title_slug": ""}, "difficulty": {"level": 1}},
    {"stat": "broken"},
    {"stat": {"question_id": 99, "question__title_slug": "nine-nine"}, "difficulty": {"level": 7}}
  ]
}`

// writeCatalog creates a temp catalog file and returns its path.
func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leetcode_problems.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseSkipsMalformedEntries(t *testing.T) {
	pr, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	assert.Len(t, pr.Problems, 6)
	assert.Equal(t, 3, pr.ParseErrors)

	first := pr.Problems[0]
	assert.Equal(t, model.Problem{ID: 1, FrontendID: 1, Title: "Two Sum", Slug: "two-sum", Difficulty: model.Easy}, first)
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", first.URL())
}

func TestParseRejectsNonJSON(t *testing.T) {
	_, err := Parse([]byte("not json"))
	assert.Error(t, err)
}

func TestAvailableFiltersPaidHiddenCompleted(t *testing.T) {
	pr, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	easy := Available(pr.Problems, model.Easy, map[int]bool{})
	ids := make([]int, 0, len(easy))
	for _, p := range easy {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []int{1, 9}, ids)

	easy = Available(pr.Problems, model.Easy, map[int]bool{1: true})
	require.Len(t, easy, 1)
	assert.Equal(t, 9, easy[0].ID)

	medium := Available(pr.Problems, model.Medium, nil)
	require.Len(t, medium, 1)
	assert.Equal(t, 2, medium[0].ID)
}

func TestPick(t *testing.T) {
	candidates := make([]model.Problem, 10)
	for i := range candidates {
		candidates[i] = model.Problem{ID: i + 1}
	}
	r := rand.New(rand.NewPCG(1, 2))

	got := Pick(r, candidates, 3)
	require.Len(t, got, 3)
	seen := map[int]bool{}
	for _, p := range got {
		assert.False(t, seen[p.ID], "duplicate pick %d", p.ID)
		seen[p.ID] = true
	}

	assert.Len(t, Pick(r, candidates[:2], 3), 2)
	assert.Empty(t, Pick(r, candidates, 0))
}

func TestStats(t *testing.T) {
	pr, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	stats := Stats(pr.Problems, map[int]bool{1: true, 4: true})
	assert.Equal(t, 2, stats.TotalCompleted)
	assert.Equal(t, model.DifficultyStats{Completed: 1, Total: 2}, stats.ByDifficulty[model.Easy])
	assert.Equal(t, model.DifficultyStats{Completed: 0, Total: 1}, stats.ByDifficulty[model.Medium])
	assert.Equal(t, model.DifficultyStats{Completed: 1, Total: 1}, stats.ByDifficulty[model.Hard])
}

func TestLoadWithCache(t *testing.T) {
	path := writeCatalog(t, sampleCatalog)
	cache, err := store.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer func() { _ = cache.Close() }()

	first, err := LoadWithCache(path, cache)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Len(t, first.Problems, 6)

	second, err := LoadWithCache(path, cache)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Problems, second.Problems)
	assert.Equal(t, first.ParseErrors, second.ParseErrors)

	// Changing the file invalidates the cache.
	trimmed := strings.Replace(sampleCatalog, `"Two Sum"`, `"Two Sum II"`, 1)
	require.NoError(t, os.WriteFile(path, []byte(trimmed), 0o600))
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	third, err := LoadWithCache(path, cache)
	require.NoError(t, err)
	assert.False(t, third.FromCache)
	p, ok := Find(third.Problems, 1)
	require.True(t, ok)
	assert.Equal(t, "Two Sum II", p.Title)
}

const renumberedCatalog = `{"stat_status_pairs": [
  {"stat": {"question_id": 1013, "frontend_question_id": 1000, "question__title": "Minimum Cost to Merge Stones", "question__title_slug": "minimum-cost-to-merge-stones"}, "difficulty": {"level": 3}, "paid_only": false},
  {"stat": {"question_id": 1000, "frontend_question_id": 1021, "question__title": "Remove Outermost Parentheses", "question__title_slug": "remove-outermost-parentheses"}, "difficulty": {"level": 1}, "paid_only": false},
  {"stat": {"question_id": 1013, "frontend_question_id": 1000, "question__title": "Minimum Cost to Merge Stones (dup)", "question__title_slug": "minimum-cost-to-merge-stones"}, "difficulty": {"level": 3}, "paid_only": false}
]}`

func TestFindByFrontendID(t *testing.T) {
	pr, err := Parse([]byte(renumberedCatalog))
	require.NoError(t, err)

	p, ok := FindByFrontendID(pr.Problems, 1000)
	require.True(t, ok)
	assert.Equal(t, 1013, p.ID)
	assert.Equal(t, model.Hard, p.Difficulty)

	p, ok = Find(pr.Problems, 1000)
	require.True(t, ok)
	assert.Equal(t, 1021, p.FrontendID)

	_, ok = FindByFrontendID(pr.Problems, 1013)
	assert.False(t, ok)
}

func TestParseDropsDuplicateIDs(t *testing.T) {
	pr, err := Parse([]byte(renumberedCatalog))
	require.NoError(t, err)

	require.Len(t, pr.Problems, 2)
	assert.Equal(t, 1, pr.ParseErrors)
	assert.Equal(t, 1000, pr.Problems[0].ID)
	assert.Equal(t, "Minimum Cost to Merge Stones", pr.Problems[1].Title)
}

func TestCachedCatalogMatchesParsed(t *testing.T) {
	path := writeCatalog(t, renumberedCatalog)
	cache, err := store.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer func() { _ = cache.Close() }()

	parsed, err := Load(path)
	require.NoError(t, err)

	_, err = LoadWithCache(path, cache)
	require.NoError(t, err)
	cached, err := LoadWithCache(path, cache)
	require.NoError(t, err)
	require.True(t, cached.FromCache)

	assert.Equal(t, parsed.Problems, cached.Problems)
	assert.Equal(t, parsed.ParseErrors, cached.ParseErrors)
}

func TestLoadWithoutPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}
