package ledger

import (
	"fmt"

	"github.com/theirongolddev/resolution/internal/model"
)

// EventKind tags a rewardable event.
type EventKind string

const (
	BibleChapter        EventKind = "bible_chapter"
	BibleCatchupChapter EventKind = "bible_catchup_chapter"
	LeetcodeEasy        EventKind = "leetcode_easy"
	LeetcodeMedium      EventKind = "leetcode_medium"
	LeetcodeHard        EventKind = "leetcode_hard"
	GoalCompleted       EventKind = "goal_completed"
)

// EventKinds lists every kind in display order.
var EventKinds = []EventKind{
	BibleChapter,
	BibleCatchupChapter,
	LeetcodeEasy,
	LeetcodeMedium,
	LeetcodeHard,
	GoalCompleted,
}

// RewardTable maps event kinds to coin amounts.
type RewardTable map[EventKind]int

// DefaultRewards returns the built-in rates.
func DefaultRewards() RewardTable {
	return RewardTable{
		BibleChapter:        5,
		BibleCatchupChapter: 3,
		LeetcodeEasy:        10,
		LeetcodeMedium:      25,
		LeetcodeHard:        50,
		GoalCompleted:       15,
	}
}

// WithOverrides returns a copy of t with the given per-kind amounts applied.
// Unknown kinds and negative amounts are rejected.
func (t RewardTable) WithOverrides(overrides map[string]int) (RewardTable, error) {
	out := make(RewardTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	for name, amount := range overrides {
		kind := EventKind(name)
		if _, ok := t[kind]; !ok {
			return nil, fmt.Errorf("%w: unknown reward kind %q", model.ErrInvalidInput, name)
		}
		if amount < 0 {
			return nil, fmt.Errorf("%w: reward %q must not be negative", model.ErrInvalidInput, name)
		}
		out[kind] = amount
	}
	return out, nil
}

// KindForDifficulty maps a problem difficulty to its reward kind.
func KindForDifficulty(d model.Difficulty) (EventKind, error) {
	switch d {
	case model.Easy:
		return LeetcodeEasy, nil
	case model.Medium:
		return LeetcodeMedium, nil
	case model.Hard:
		return LeetcodeHard, nil
	}
	return "", fmt.Errorf("%w: unknown difficulty %d", model.ErrInvalidInput, int(d))
}
