package pacing

import (
	"encoding/json"
	"fmt"
	"os"
)

// Book is one entry of a reading plan.
type Book struct {
	Name     string `json:"name"`
	Chapters int    `json:"chapters"`
}

// Plan is an ordered list of books read front to back.
type Plan []Book

// TotalChapters sums the chapter counts of every book.
func (p Plan) TotalChapters() int {
	total := 0
	for _, b := range p {
		total += b.Chapters
	}
	return total
}

// index returns the position of the named book, or -1.
func (p Plan) index(name string) int {
	for i, b := range p {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// DefaultPlan is the 66-book Protestant canon, 1189 chapters.
var DefaultPlan = Plan{
	// Old Testament
	{"Genesis", 50},
	{"Exodus", 40},
	{"Leviticus", 27},
	{"Numbers", 36},
	{"Deuteronomy", 34},
	{"Joshua", 24},
	{"Judges", 21},
	{"Ruth", 4},
	{"1 Samuel", 31},
	{"2 Samuel", 24},
	{"1 Kings", 22},
	{"2 Kings", 25},
	{"1 Chronicles", 29},
	{"2 Chronicles", 36},
	{"Ezra", 10},
	{"Nehemiah", 13},
	{"Esther", 10},
	{"Job", 42},
	{"Psalms", 150},
	{"Proverbs", 31},
	{"Ecclesiastes", 12},
	{"Song of Solomon", 8},
	{"Isaiah", 66},
	{"Jeremiah", 52},
	{"Lamentations", 5},
	{"Ezekiel", 48},
	{"Daniel", 12},
	{"Hosea", 14},
	{"Joel", 3},
	{"Amos", 9},
	{"Obadiah", 1},
	{"Jonah", 4},
	{"Micah", 7},
	{"Nahum", 3},
	{"Habakkuk", 3},
	{"Zephaniah", 3},
	{"Haggai", 2},
	{"Zechariah", 14},
	{"Malachi", 4},
	// New Testament
	{"Matthew", 28},
	{"Mark", 16},
	{"Luke", 24},
	{"John", 21},
	{"Acts", 28},
	{"Romans", 16},
	{"1 Corinthians", 16},
	{"2 Corinthians", 13},
	{"Galatians", 6},
	{"Ephesians", 6},
	{"Philippians", 4},
	{"Colossians", 4},
	{"1 Thessalonians", 5},
	{"2 Thessalonians", 3},
	{"1 Timothy", 6},
	{"2 Timothy", 4},
	{"Titus", 3},
	{"Philemon", 1},
	{"Hebrews", 13},
	{"James", 5},
	{"1 Peter", 5},
	{"2 Peter", 3},
	{"1 John", 5},
	{"2 John", 1},
	{"3 John", 1},
	{"Jude", 1},
	{"Revelation", 22},
}

// LoadPlan reads a plan override file of the form {"books": [{"name", "chapters"}]}.
// An empty path returns DefaultPlan.
func LoadPlan(path string) (Plan, error) {
	if path == "" {
		return DefaultPlan, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's config
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}

	var raw struct {
		Books Plan `json:"books"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}
	if len(raw.Books) == 0 {
		return nil, fmt.Errorf("plan %s has no books", path)
	}
	for _, b := range raw.Books {
		if b.Name == "" || b.Chapters < 1 {
			return nil, fmt.Errorf("plan %s: invalid book %+v", path, b)
		}
	}
	return raw.Books, nil
}
