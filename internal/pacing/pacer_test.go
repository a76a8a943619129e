package pacing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/resolution/internal/model"
)

func TestDefaultPlanTotals(t *testing.T) {
	assert.Len(t, DefaultPlan, 66)
	assert.Equal(t, 1189, DefaultPlan.TotalChapters())
	assert.Equal(t, DefaultPolicy().TotalChapters, DefaultPlan.TotalChapters())
}

func TestDailyTarget(t *testing.T) {
	assert.InDelta(t, 3.2575, DefaultPolicy().DailyTarget(), 0.0001)
}

func TestFirstDayScenario(t *testing.T) {
	p := DefaultPolicy()
	start := model.MustDate("2026-01-01")

	days := p.DaysElapsed(start, start)
	assert.Equal(t, 1, days)
	assert.Equal(t, 3, p.ExpectedChapters(start, start))
	assert.Equal(t, 3, p.ChaptersDueToday(days))
}

func TestDaysElapsed(t *testing.T) {
	p := DefaultPolicy()
	start := model.MustDate("2026-01-01")

	tests := []struct {
		today string
		want  int
	}{
		{"2025-12-31", 0},
		{"2025-06-01", 0},
		{"2026-01-01", 1},
		{"2026-01-02", 2},
		{"2026-03-01", 60},
		{"2026-12-31", 365},
	}
	for _, tt := range tests {
		t.Run(tt.today, func(t *testing.T) {
			assert.Equal(t, tt.want, p.DaysElapsed(start, model.MustDate(tt.today)))
		})
	}
}

func TestExpectedChaptersMonotonicAndCapped(t *testing.T) {
	p := DefaultPolicy()
	start := model.MustDate("2026-01-01")

	prev := 0
	for i := -10; i < 800; i++ {
		got := p.ExpectedChapters(start, start.AddDays(i))
		require.GreaterOrEqual(t, got, prev, "day offset %d", i)
		require.LessOrEqual(t, got, 1189, "day offset %d", i)
		prev = got
	}
	assert.Equal(t, 1189, p.ExpectedChapters(start, model.MustDate("2026-12-31")))
}

func TestChaptersDueTodayBounds(t *testing.T) {
	p := DefaultPolicy()
	for d := 1; d <= 1000; d++ {
		got := p.ChaptersDueToday(d)
		if got != 3 && got != 4 {
			t.Fatalf("ChaptersDueToday(%d) = %d, want 3 or 4", d, got)
		}
	}
	assert.Equal(t, 0, p.ChaptersDueToday(0))
}

func TestChaptersDueTodaySumsToExpected(t *testing.T) {
	p := DefaultPolicy()
	sum := 0
	for d := 1; d <= 365; d++ {
		sum += p.ChaptersDueToday(d)
	}
	assert.Equal(t, 1189, sum)
}

func TestChaptersDueTodayUsesPolicyClamp(t *testing.T) {
	p := DefaultPolicy()
	p.MinDaily = 5
	p.MaxDaily = 6
	assert.Equal(t, 5, p.ChaptersDueToday(1))
}

func TestStatusBehindAheadExclusive(t *testing.T) {
	p := DefaultPolicy()
	start := model.MustDate("2026-01-01")

	for _, offset := range []int{0, 10, 100, 364} {
		today := start.AddDays(offset)
		for read := 0; read <= 1189; read += 7 {
			st := p.Status(read, start, today)
			if st.BehindBy != 0 && st.AheadBy != 0 {
				t.Fatalf("read=%d offset=%d: behind=%d ahead=%d", read, offset, st.BehindBy, st.AheadBy)
			}
		}
	}
}

func TestStatusFields(t *testing.T) {
	p := DefaultPolicy()
	start := model.MustDate("2026-01-01")
	today := model.MustDate("2026-01-10")

	st := p.Status(20, start, today)
	assert.Equal(t, 10, st.DaysElapsed)
	assert.Equal(t, 32, st.Expected)
	assert.Equal(t, 12, st.BehindBy)
	assert.Equal(t, 0, st.AheadBy)
	assert.Equal(t, 1189, st.Total)
	assert.InDelta(t, 1.7, st.PercentComplete, 1e-9)

	st = p.Status(40, start, today)
	assert.Equal(t, 0, st.BehindBy)
	assert.Equal(t, 8, st.AheadBy)
}

func TestCurrentPositionStart(t *testing.T) {
	pos := CurrentPosition(0, DefaultPlan)
	assert.Equal(t, Position{Book: "Genesis", Chapter: 1, ChaptersInBook: 50}, pos)
}

func TestCurrentPositionBookBoundary(t *testing.T) {
	pos := CurrentPosition(49, DefaultPlan)
	assert.Equal(t, "Genesis", pos.Book)
	assert.Equal(t, 50, pos.Chapter)

	pos = CurrentPosition(50, DefaultPlan)
	assert.Equal(t, "Exodus", pos.Book)
	assert.Equal(t, 1, pos.Chapter)
}

func TestCurrentPositionWindowProperty(t *testing.T) {
	for read := 0; read < 1189; read++ {
		pos := CurrentPosition(read, DefaultPlan)
		require.False(t, pos.Complete, "read=%d", read)

		before := 0
		for _, b := range DefaultPlan {
			if b.Name == pos.Book {
				break
			}
			before += b.Chapters
		}
		next := read + 1
		require.Greater(t, next, before, "read=%d", read)
		require.LessOrEqual(t, next, before+pos.ChaptersInBook, "read=%d", read)
		require.Equal(t, next-before, pos.Chapter, "read=%d", read)
	}
}

func TestCurrentPositionComplete(t *testing.T) {
	pos := CurrentPosition(1189, DefaultPlan)
	assert.True(t, pos.Complete)
	assert.Equal(t, "Revelation", pos.Book)
	assert.Equal(t, 22, pos.Chapter)

	assert.True(t, CurrentPosition(0, nil).Complete)
}

func TestAllocateSpillsIntoNextBook(t *testing.T) {
	plan := Plan{{"Genesis", 50}, {"Exodus", 40}}

	got, err := Allocate(Position{Book: "Genesis", Chapter: 49}, 3, plan)
	require.NoError(t, err)
	assert.Equal(t, []Range{
		{Book: "Genesis", Start: 49, End: 50},
		{Book: "Exodus", Start: 1, End: 1},
	}, got)
	assert.Equal(t, "Genesis 49-50", got[0].String())
	assert.Equal(t, "Exodus 1", got[1].String())
}

func TestAllocateAcrossSeveralBooks(t *testing.T) {
	got, err := Allocate(Position{Book: "Obadiah", Chapter: 1}, 6, DefaultPlan)
	require.NoError(t, err)
	assert.Equal(t, []Range{
		{Book: "Obadiah", Start: 1, End: 1},
		{Book: "Jonah", Start: 1, End: 4},
		{Book: "Micah", Start: 1, End: 1},
	}, got)
}

func TestAllocatePartialAtPlanEnd(t *testing.T) {
	got, err := Allocate(Position{Book: "Revelation", Chapter: 21}, 4, DefaultPlan)
	require.NoError(t, err)
	assert.Equal(t, []Range{{Book: "Revelation", Start: 21, End: 22}}, got)
}

func TestAllocateInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		start Position
		count int
	}{
		{"zero count", Position{Book: "Genesis", Chapter: 1}, 0},
		{"negative count", Position{Book: "Genesis", Chapter: 1}, -2},
		{"unknown book", Position{Book: "Hezekiah", Chapter: 1}, 3},
		{"chapter past end", Position{Book: "Jude", Chapter: 2}, 3},
		{"chapter zero", Position{Book: "Jude", Chapter: 0}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Allocate(tt.start, tt.count, DefaultPlan)
			assert.True(t, errors.Is(err, model.ErrInvalidInput), "err = %v", err)
		})
	}
}

func TestTodaysReading(t *testing.T) {
	p := DefaultPolicy()
	start := model.MustDate("2026-01-01")

	got, err := p.TodaysReading(0, start, start, DefaultPlan)
	require.NoError(t, err)
	assert.Equal(t, []Range{{Book: "Genesis", Start: 1, End: 3}}, got)

	got, err = p.TodaysReading(1189, start, start, DefaultPlan)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = p.TodaysReading(0, start, model.MustDate("2025-12-01"), DefaultPlan)
	require.NoError(t, err)
	assert.Empty(t, got)
}
