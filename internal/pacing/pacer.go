// Package pacing computes Bible-reading pace from a start date and a
// chapters-read counter, and turns flat chapter counts into book ranges.
package pacing

import (
	"fmt"
	"math"

	"github.com/theirongolddev/resolution/internal/model"
)

// Policy holds the pacing parameters. MinDaily/MaxDaily bound the daily
// assignment so a day never asks for less or more than a readable chunk.
type Policy struct {
	TotalChapters int
	DaysInYear    int
	MinDaily      int
	MaxDaily      int
}

// DefaultPolicy reads the whole Bible in a year, 3-4 chapters a day.
func DefaultPolicy() Policy {
	return Policy{
		TotalChapters: 1189,
		DaysInYear:    365,
		MinDaily:      3,
		MaxDaily:      4,
	}
}

// ReadingStatus is a snapshot of progress against the plan.
type ReadingStatus struct {
	ChaptersRead    int
	Expected        int
	Total           int
	BehindBy        int
	AheadBy         int
	ChaptersToday   int
	DaysElapsed     int
	PercentComplete float64
}

// Position locates the next chapter to read.
type Position struct {
	Book           string
	Chapter        int
	ChaptersInBook int
	Complete       bool
}

// Range is a contiguous run of chapters within one book.
type Range struct {
	Book  string
	Start int
	End   int
}

func (r Range) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%s %d", r.Book, r.Start)
	}
	return fmt.Sprintf("%s %d-%d", r.Book, r.Start, r.End)
}

// DailyTarget is the average number of chapters per day.
func (p Policy) DailyTarget() float64 {
	return float64(p.TotalChapters) / float64(p.DaysInYear)
}

// DaysElapsed counts the start day as day 1. Days before the start are 0.
func (p Policy) DaysElapsed(start, today model.Date) int {
	if today.Before(start) {
		return 0
	}
	return today.DaysSince(start) + 1
}

// cumulative is floor(days * DailyTarget) in exact integer arithmetic.
func (p Policy) cumulative(days int) int {
	if days <= 0 {
		return 0
	}
	return days * p.TotalChapters / p.DaysInYear
}

// ExpectedChapters is how many chapters should have been read by today.
func (p Policy) ExpectedChapters(start, today model.Date) int {
	return min(p.cumulative(p.DaysElapsed(start, today)), p.TotalChapters)
}

// ChaptersDueToday is the assignment for the given plan day, clamped into
// [MinDaily, MaxDaily]. Before the plan starts nothing is due.
func (p Policy) ChaptersDueToday(daysElapsed int) int {
	if daysElapsed < 1 {
		return 0
	}
	due := p.cumulative(daysElapsed) - p.cumulative(daysElapsed-1)
	return max(p.MinDaily, min(p.MaxDaily, due))
}

// Status reports progress for chaptersRead as of today.
func (p Policy) Status(chaptersRead int, start, today model.Date) ReadingStatus {
	days := p.DaysElapsed(start, today)
	expected := p.ExpectedChapters(start, today)

	st := ReadingStatus{
		ChaptersRead:  chaptersRead,
		Expected:      expected,
		Total:         p.TotalChapters,
		BehindBy:      max(0, expected-chaptersRead),
		AheadBy:       max(0, chaptersRead-expected),
		ChaptersToday: p.ChaptersDueToday(days),
		DaysElapsed:   days,
	}
	if p.TotalChapters > 0 {
		st.PercentComplete = math.Round(float64(chaptersRead)/float64(p.TotalChapters)*1000) / 10
	}
	return st
}

// CurrentPosition finds the book and chapter holding chapter chaptersRead+1.
// Once the plan is finished the position is pinned at its last chapter.
func CurrentPosition(chaptersRead int, plan Plan) Position {
	if chaptersRead < 0 {
		chaptersRead = 0
	}

	cumulative := 0
	for _, b := range plan {
		if cumulative+b.Chapters > chaptersRead {
			return Position{
				Book:           b.Name,
				Chapter:        chaptersRead - cumulative + 1,
				ChaptersInBook: b.Chapters,
			}
		}
		cumulative += b.Chapters
	}

	if len(plan) == 0 {
		return Position{Complete: true}
	}
	last := plan[len(plan)-1]
	return Position{
		Book:           last.Name,
		Chapter:        last.Chapters,
		ChaptersInBook: last.Chapters,
		Complete:       true,
	}
}

// Allocate takes count chapters starting at start, moving on to the next
// book whenever one runs out. It returns one Range per book touched and
// stops early if the plan ends first.
func Allocate(start Position, count int, plan Plan) ([]Range, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: chapter count must be positive, got %d", model.ErrInvalidInput, count)
	}
	idx := plan.index(start.Book)
	if idx < 0 {
		return nil, fmt.Errorf("%w: book %q is not in the plan", model.ErrInvalidInput, start.Book)
	}
	if start.Chapter < 1 || start.Chapter > plan[idx].Chapters {
		return nil, fmt.Errorf("%w: %s has no chapter %d", model.ErrInvalidInput, start.Book, start.Chapter)
	}

	var ranges []Range
	chapter := start.Chapter
	remaining := count
	for ; remaining > 0 && idx < len(plan); idx++ {
		book := plan[idx]
		take := min(remaining, book.Chapters-chapter+1)
		ranges = append(ranges, Range{
			Book:  book.Name,
			Start: chapter,
			End:   chapter + take - 1,
		})
		remaining -= take
		chapter = 1
	}
	return ranges, nil
}

// TodaysReading is today's assignment as book ranges. It is empty before
// the start date and after the plan is complete.
func (p Policy) TodaysReading(chaptersRead int, start, today model.Date, plan Plan) ([]Range, error) {
	pos := CurrentPosition(chaptersRead, plan)
	if pos.Complete {
		return nil, nil
	}
	due := p.ChaptersDueToday(p.DaysElapsed(start, today))
	if due == 0 {
		return nil, nil
	}
	return Allocate(pos, due, plan)
}
