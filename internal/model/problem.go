package model

import (
	"fmt"
	"strings"
)

// Difficulty is a problem's difficulty level as used by the catalog (1-3).
type Difficulty int

const (
	Easy   Difficulty = 1
	Medium Difficulty = 2
	Hard   Difficulty = 3
)

// Difficulties lists the valid levels in ascending order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// Valid reports whether d is one of the known levels.
func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Hard
}

// ParseDifficulty accepts "easy"/"medium"/"hard" (any case) or "1"/"2"/"3".
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "1":
		return Easy, nil
	case "medium", "2":
		return Medium, nil
	case "hard", "3":
		return Hard, nil
	}
	return 0, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidInput, s)
}

// Problem is one entry of the practice problem catalog.
type Problem struct {
	ID         int
	FrontendID int
	Title      string
	Slug       string
	Difficulty Difficulty
	PaidOnly   bool
	Hidden     bool
}

// URL returns the problem page.
func (p Problem) URL() string {
	return fmt.Sprintf("https://leetcode.com/problems/%s/", p.Slug)
}

// DifficultyStats counts completions for one difficulty level.
type DifficultyStats struct {
	Completed int
	Total     int
}

// ProblemStats summarizes completion across the catalog.
type ProblemStats struct {
	TotalCompleted int
	ByDifficulty   map[Difficulty]DifficultyStats
}
