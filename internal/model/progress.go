// Package model defines domain types for resolution state, the shop and the
// problem catalog.
package model

import "sort"

// DefaultStartDate is the first day of the reading plan for new installs.
var DefaultStartDate = Date{Year: 2026, Month: 1, Day: 1}

// ProgressState is the singleton progress document.
type ProgressState struct {
	LastRunDate         *Date `json:"last_run_date"`
	Coins               int   `json:"coins"`
	CompletedProblemIDs []int `json:"completed_leetcode_ids"`
	BibleChaptersRead   int   `json:"bible_chapters_read"`
	StartDate           Date  `json:"start_date"`
	ShopNextID          int   `json:"shop_next_id"`
}

// DefaultProgressState returns the state of a fresh install.
func DefaultProgressState() ProgressState {
	return ProgressState{
		CompletedProblemIDs: []int{},
		StartDate:           DefaultStartDate,
		ShopNextID:          1,
	}
}

// HasCompleted reports whether a problem id is in the completed set.
func (s *ProgressState) HasCompleted(id int) bool {
	for _, c := range s.CompletedProblemIDs {
		if c == id {
			return true
		}
	}
	return false
}

// MarkCompleted adds id to the completed set. It returns false if the id
// was already present.
func (s *ProgressState) MarkCompleted(id int) bool {
	if s.HasCompleted(id) {
		return false
	}
	s.CompletedProblemIDs = append(s.CompletedProblemIDs, id)
	sort.Ints(s.CompletedProblemIDs)
	return true
}

// CompletedSet returns the completed problem ids as a set.
func (s *ProgressState) CompletedSet() map[int]bool {
	set := make(map[int]bool, len(s.CompletedProblemIDs))
	for _, id := range s.CompletedProblemIDs {
		set[id] = true
	}
	return set
}

// DailyGoals is the goals document. Goals only count for Date.
type DailyGoals struct {
	Date  *Date    `json:"date"`
	Goals []string `json:"goals"`
}
