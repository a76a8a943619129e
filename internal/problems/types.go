package problems

// RawCatalog is the top level of a LeetCode problem-list export.
type RawCatalog struct {
	Pairs []RawPair `json:"stat_status_pairs"`
}

// RawPair is one problem entry.
type RawPair struct {
	Stat       RawStat        `json:"stat"`
	Difficulty *RawDifficulty `json:"difficulty,omitempty"`
	PaidOnly   bool           `json:"paid_only"`
}

// RawStat holds the problem identity fields.
type RawStat struct {
	QuestionID         int    `json:"question_id"`
	FrontendQuestionID int    `json:"frontend_question_id"`
	Title              string `json:"question__title"`
	Slug               string `json:"question__title_slug"`
	Hidden             bool   `json:"question__hide"`
}

// RawDifficulty wraps the numeric level (1 easy, 2 medium, 3 hard).
type RawDifficulty struct {
	Level int `json:"level"`
}
