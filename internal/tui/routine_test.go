package tui

import (
	"bytes"
	"errors"
	"log"
	"math/rand/v2"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/resolution/internal/model"
	"github.com/theirongolddev/resolution/internal/routine"
	"github.com/theirongolddev/resolution/internal/state"
)

// scripted answers prompts from a fixed queue and records every title.
type scripted struct {
	t       *testing.T
	answers []any
	asked   []string
}

func (s *scripted) call(title string) (any, error) {
	s.t.Helper()
	s.asked = append(s.asked, title)
	if len(s.answers) == 0 {
		s.t.Fatalf("unexpected prompt %q", title)
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	if err, ok := a.(error); ok {
		return nil, err
	}
	return a, nil
}

func (s *scripted) Input(title, _ string) (string, error) {
	v, err := s.call(title)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *scripted) Confirm(title string, _ bool) (bool, error) {
	v, err := s.call(title)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (s *scripted) Number(title string, _ int) (int, error) {
	v, err := s.call(title)
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (s *scripted) Choose(title string, _ []Choice, _ int) (int, error) {
	v, err := s.call(title)
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

var catalog = []model.Problem{
	{ID: 1, FrontendID: 1, Title: "Two Sum", Slug: "two-sum", Difficulty: model.Easy},
	{ID: 9, FrontendID: 9, Title: "Palindrome Number", Slug: "palindrome-number", Difficulty: model.Easy},
	{ID: 2, FrontendID: 2, Title: "Add Two Numbers", Slug: "add-two-numbers", Difficulty: model.Medium},
}

func newRoutine(t *testing.T, answers ...any) (*Routine, *scripted, *bytes.Buffer) {
	t.Helper()
	st := state.Open(t.TempDir(), state.Options{Logger: log.New(&bytes.Buffer{}, "", 0)})
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.Local)
	svc := routine.New(st, routine.Options{
		Problems: catalog,
		Now:      func() time.Time { return now },
	})
	p := &scripted{t: t, answers: answers}
	out := &bytes.Buffer{}
	return &Routine{
		Service: svc,
		Prompt:  p,
		Out:     out,
		Rand:    rand.New(rand.NewPCG(7, 7)),
	}, p, out
}

func TestMorningRoutine(t *testing.T) {
	r, p, out := newRoutine(t,
		"exercise, write blog post", // goals
		true,                        // read today's chapters
		false,                       // no catch-up
		int(model.Medium),           // difficulty
		0,                           // first offered problem
	)
	var opened string
	r.OpenURL = func(url string) error { opened = url; return nil }

	require.NoError(t, r.Morning())
	assert.Empty(t, p.answers)

	status, err := r.Service.Status()
	require.NoError(t, err)
	assert.True(t, status.RanToday)
	assert.Equal(t, []string{"exercise", "write blog post"}, status.Goals)
	assert.Equal(t, 3, status.Reading.ChaptersRead)
	assert.Equal(t, 15+25, status.Coins)
	assert.Equal(t, "https://leetcode.com/problems/add-two-numbers/", opened)
	assert.Contains(t, out.String(), "Morning Routine Complete!")
	assert.Contains(t, out.String(), "Genesis 1-3")
}

func TestMorningCatchUpAndShop(t *testing.T) {
	r, _, _ := newRoutine(t,
		"",              // no goals
		true,            // read today's chapters
		true,            // did catch-up
		10,              // chapters of catch-up
		int(model.Easy), // difficulty
		1,               // second offered problem
		true,            // visit shop
		1,               // item id 1
		true,            // confirm purchase
	)
	_, err := r.Service.AddItem("Coffee treat", 50)
	require.NoError(t, err)

	require.NoError(t, r.Morning())

	bal, err := r.Service.Balance()
	require.NoError(t, err)
	// 3*5 + 10*3 + 10 - 50
	assert.Equal(t, 5, bal)
	items, err := r.Service.ShopItems()
	require.NoError(t, err)
	assert.True(t, items[0].Purchased)
}

func TestMorningWithoutCatalog(t *testing.T) {
	r, p, out := newRoutine(t, "focus", false, false)
	r.Service = routine.New(r.Service.Store(), routine.Options{
		Now: func() time.Time { return time.Date(2026, 1, 1, 8, 0, 0, 0, time.Local) },
	})

	require.NoError(t, r.Morning())
	// goals, today's reading, catch-up; nothing for problems
	assert.Len(t, p.asked, 3)
	assert.Contains(t, out.String(), "No problem catalog loaded")
}

func TestMorningInterruptedStillMarksRun(t *testing.T) {
	r, _, _ := newRoutine(t, ErrInterrupted)

	err := r.Morning()
	assert.ErrorIs(t, err, ErrInterrupted)

	ran, err := r.Service.Store().HasRunToday(r.Service.Today())
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestEvening(t *testing.T) {
	r, _, out := newRoutine(t, true, false, true, true)
	_, err := r.Service.SaveGoals([]string{"a", "b", "c"})
	require.NoError(t, err)
	shutdowns := 0
	r.Shutdown = func() error { shutdowns++; return nil }

	require.NoError(t, r.Evening())

	bal, err := r.Service.Balance()
	require.NoError(t, err)
	assert.Equal(t, 30, bal)
	assert.Equal(t, 1, shutdowns)
	assert.Contains(t, out.String(), "Completed 2/3 goals")
}

func TestEveningWithoutGoals(t *testing.T) {
	r, p, out := newRoutine(t)
	require.NoError(t, r.Evening())
	assert.Empty(t, p.asked)
	assert.Contains(t, out.String(), "No goals were set today.")
}

func TestResetNeedsTwoConfirmations(t *testing.T) {
	r, _, _ := newRoutine(t, true, false)
	_, err := r.Service.EndOfDay(1)
	require.NoError(t, err)

	done, err := r.Reset()
	require.NoError(t, err)
	assert.False(t, done)
	bal, _ := r.Service.Balance()
	assert.Equal(t, 15, bal)

	r.Prompt = &scripted{t: t, answers: []any{true, true}}
	done, err = r.Reset()
	require.NoError(t, err)
	assert.True(t, done)
	bal, _ = r.Service.Balance()
	assert.Equal(t, 0, bal)
}

func TestShopFlow(t *testing.T) {
	r, p, out := newRoutine(t,
		actionAdd, "Video game", 600,
		actionAdd, "", 10, // rejected, shown to the user
		actionPurchase, 1, true, // insufficient funds, shown to the user
		actionUpdate, 1, "", "550",
		actionDelete, 1, true,
		actionQuit,
	)

	require.NoError(t, r.Shop())
	assert.Empty(t, p.answers)
	assert.Contains(t, out.String(), "Added 'Video game' for 600 coins!")
	assert.Contains(t, out.String(), "insufficient funds")
	assert.Contains(t, out.String(), "Item updated!")
	assert.Contains(t, out.String(), "Item deleted!")

	items, err := r.Service.ShopItems()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoadingModelQuitsWithResult(t *testing.T) {
	m := newLoadingModel("Indexing", func() (int, error) { return 42, nil })

	next, cmd := m.Update(loadedMsg[int]{value: 42})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	lm := next.(loadingModel[int])
	assert.Equal(t, 42, lm.value)
	assert.Empty(t, lm.View())

	failed, _ := m.Update(loadedMsg[int]{err: errors.New("boom")})
	assert.EqualError(t, failed.(loadingModel[int]).err, "boom")
}
