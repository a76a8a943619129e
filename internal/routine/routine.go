// Package routine runs the morning and evening flows against the state
// store. It holds no presentation; callers prompt and render.
package routine

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/theirongolddev/resolution/internal/ledger"
	"github.com/theirongolddev/resolution/internal/model"
	"github.com/theirongolddev/resolution/internal/pacing"
	"github.com/theirongolddev/resolution/internal/problems"
	"github.com/theirongolddev/resolution/internal/shop"
	"github.com/theirongolddev/resolution/internal/state"
)

// OfferSize is how many problems the morning routine offers.
const OfferSize = 3

// Options configures a Service. Zero fields fall back to defaults.
type Options struct {
	Policy   pacing.Policy
	Plan     pacing.Plan
	Problems []model.Problem
	Now      func() time.Time
}

// Service composes the store with pacing, the ledger and the problem catalog.
type Service struct {
	store    *state.Store
	policy   pacing.Policy
	plan     pacing.Plan
	problems []model.Problem
	now      func() time.Time
}

// New returns a service over st.
func New(st *state.Store, opts Options) *Service {
	if opts.Policy == (pacing.Policy{}) {
		opts.Policy = pacing.DefaultPolicy()
	}
	if len(opts.Plan) == 0 {
		opts.Plan = pacing.DefaultPlan
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Policy.TotalChapters = opts.Plan.TotalChapters()
	return &Service{
		store:    st,
		policy:   opts.Policy,
		plan:     opts.Plan,
		problems: opts.Problems,
		now:      opts.Now,
	}
}

// Store returns the underlying state store.
func (s *Service) Store() *state.Store {
	return s.store
}

// Policy returns the pacing policy in effect.
func (s *Service) Policy() pacing.Policy {
	return s.policy
}

// Today is the local calendar date.
func (s *Service) Today() model.Date {
	return model.DateOf(s.now())
}

// HasProblems reports whether a problem catalog was loaded.
func (s *Service) HasProblems() bool {
	return len(s.problems) > 0
}

// Status is everything the status screen shows.
type Status struct {
	Coins    int
	Reading  pacing.ReadingStatus
	Position pacing.Position
	Today    []pacing.Range
	Problems model.ProblemStats
	Goals    []string
	RanToday bool
}

// Status snapshots progress for today.
func (s *Service) Status() (Status, error) {
	today := s.Today()
	st, err := s.store.Load()
	if err != nil {
		return Status{}, err
	}
	goals, err := s.store.Goals(today)
	if err != nil {
		return Status{}, err
	}
	reading, err := s.policy.TodaysReading(st.BibleChaptersRead, st.StartDate, today, s.plan)
	if err != nil {
		return Status{}, fmt.Errorf("planning today's reading: %w", err)
	}

	completed := st.CompletedSet()
	return Status{
		Coins:    st.Coins,
		Reading:  s.policy.Status(st.BibleChaptersRead, st.StartDate, today),
		Position: pacing.CurrentPosition(st.BibleChaptersRead, s.plan),
		Today:    reading,
		Problems: problems.Stats(s.problems, completed),
		Goals:    goals,
		RanToday: st.LastRunDate != nil && *st.LastRunDate == today,
	}, nil
}

// ParseGoals splits comma-separated input into trimmed, non-empty goals.
func ParseGoals(input string) []string {
	goals := []string{}
	for _, g := range strings.Split(input, ",") {
		if g = strings.TrimSpace(g); g != "" {
			goals = append(goals, g)
		}
	}
	return goals
}

// SaveGoals stores today's goals. Blank entries are dropped.
func (s *Service) SaveGoals(goals []string) ([]string, error) {
	clean := make([]string, 0, len(goals))
	for _, g := range goals {
		if g = strings.TrimSpace(g); g != "" {
			clean = append(clean, g)
		}
	}
	if err := s.store.SaveGoals(s.Today(), clean); err != nil {
		return nil, err
	}
	return clean, nil
}

// Goals returns today's goals.
func (s *Service) Goals() ([]string, error) {
	return s.store.Goals(s.Today())
}

// Reading is the outcome of recording chapters.
type Reading struct {
	Recorded  int
	Earned    int
	TotalRead int
	Complete  bool
}

// RecordReading adds n chapters and awards coins at the regular or
// catch-up rate. Chapters past the end of the plan are neither counted
// nor rewarded.
func (s *Service) RecordReading(n int, catchup bool) (Reading, error) {
	if n < 1 {
		return Reading{}, fmt.Errorf("%w: chapter count must be positive, got %d", model.ErrInvalidInput, n)
	}
	kind := ledger.BibleChapter
	if catchup {
		kind = ledger.BibleCatchupChapter
	}

	var out Reading
	err := s.store.UpdateLedger(func(l *ledger.Ledger, st *model.ProgressState) error {
		total := s.plan.TotalChapters()
		recorded := min(n, max(total-st.BibleChaptersRead, 0))
		if recorded > 0 {
			earned, err := l.Award(kind, recorded)
			if err != nil {
				return err
			}
			out.Earned = earned
		}
		st.BibleChaptersRead += recorded
		out.Recorded = recorded
		out.TotalRead = st.BibleChaptersRead
		out.Complete = st.BibleChaptersRead >= total
		return nil
	})
	return out, err
}

// ReadToday records today's assigned chapters at the regular rate.
func (s *Service) ReadToday() (Reading, error) {
	st, err := s.store.Load()
	if err != nil {
		return Reading{}, err
	}
	due := s.policy.ChaptersDueToday(s.policy.DaysElapsed(st.StartDate, s.Today()))
	if due == 0 {
		return Reading{TotalRead: st.BibleChaptersRead}, nil
	}
	return s.RecordReading(due, false)
}

// Offer picks up to n unsolved problems of difficulty d.
func (s *Service) Offer(d model.Difficulty, n int, r *rand.Rand) ([]model.Problem, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: difficulty %d", model.ErrInvalidInput, d)
	}
	st, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return problems.Pick(r, problems.Available(s.problems, d, st.CompletedSet()), n), nil
}

// FindProblem looks up the problem LeetCode lists as number, the same
// number the routine shows next to each offered problem.
func (s *Service) FindProblem(number int) (model.Problem, error) {
	p, ok := problems.FindByFrontendID(s.problems, number)
	if !ok {
		return model.Problem{}, fmt.Errorf("%w: problem %d", model.ErrNotFound, number)
	}
	return p, nil
}

// ResolveProblem is FindProblem for callers that may know the difficulty
// themselves. Without a catalog the number can't be mapped to a question
// id, so it is recorded as typed under difficulty d. With a catalog
// loaded, d is ignored and unknown numbers are ErrNotFound.
func (s *Service) ResolveProblem(number int, d model.Difficulty) (model.Problem, error) {
	if number <= 0 {
		return model.Problem{}, fmt.Errorf("%w: problem %d", model.ErrInvalidInput, number)
	}
	if s.HasProblems() {
		return s.FindProblem(number)
	}
	if !d.Valid() {
		return model.Problem{}, fmt.Errorf("%w: problem %d needs a difficulty without a catalog", model.ErrNotFound, number)
	}
	return model.Problem{ID: number, FrontendID: number, Difficulty: d}, nil
}

// Completion is the outcome of marking a problem done.
type Completion struct {
	Problem model.Problem
	Earned  int
	Already bool
}

// CompleteProblem marks p completed and awards its difficulty reward.
// A problem completed before is not rewarded again.
func (s *Service) CompleteProblem(p model.Problem) (Completion, error) {
	if p.ID <= 0 {
		return Completion{}, fmt.Errorf("%w: problem id %d", model.ErrInvalidInput, p.ID)
	}
	if _, err := s.ProblemReward(p.Difficulty); err != nil {
		return Completion{}, err
	}

	out := Completion{Problem: p}
	err := s.store.UpdateLedger(func(l *ledger.Ledger, st *model.ProgressState) error {
		if !st.MarkCompleted(p.ID) {
			out.Already = true
			return nil
		}
		reward, err := l.RewardForDifficulty(p.Difficulty)
		if err != nil {
			return err
		}
		if _, err := l.Deposit(reward); err != nil {
			return err
		}
		out.Earned = reward
		return nil
	})
	return out, err
}

// ProblemReward is the coin reward for solving a problem of difficulty d.
func (s *Service) ProblemReward(d model.Difficulty) (int, error) {
	return ledger.New(&model.ProgressState{}, s.store.Rewards()).RewardForDifficulty(d)
}

// EndOfDay awards the goal reward for each completed goal.
func (s *Service) EndOfDay(completed int) (int, error) {
	if completed < 0 {
		return 0, fmt.Errorf("%w: completed goals %d", model.ErrInvalidInput, completed)
	}
	if completed == 0 {
		return 0, nil
	}
	var earned int
	err := s.store.UpdateLedger(func(l *ledger.Ledger, _ *model.ProgressState) error {
		var err error
		earned, err = l.Award(ledger.GoalCompleted, completed)
		return err
	})
	return earned, err
}

// Balance returns the current coin balance.
func (s *Service) Balance() (int, error) {
	st, err := s.store.Load()
	if err != nil {
		return 0, err
	}
	return st.Coins, nil
}

// Affordable lists unpurchased shop items the balance covers.
func (s *Service) Affordable() ([]model.ShopItem, error) {
	st, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	cat, err := s.store.Catalog()
	if err != nil {
		return nil, err
	}
	return cat.Affordable(st.Coins), nil
}

// Purchase buys a shop item. Domain failures come back wrapped around the
// model sentinels.
func (s *Service) Purchase(id int) (string, error) {
	var msg string
	err := s.store.UpdateShop(func(c *shop.Catalog, l *ledger.Ledger) error {
		var err error
		msg, err = c.Purchase(id, l)
		return err
	})
	return msg, err
}

// ShopItems returns the catalog in insertion order.
func (s *Service) ShopItems() ([]model.ShopItem, error) {
	return s.store.ShopItems()
}

// AddItem adds a shop item.
func (s *Service) AddItem(name string, cost int) (model.ShopItem, error) {
	var item model.ShopItem
	err := s.store.UpdateShop(func(c *shop.Catalog, _ *ledger.Ledger) error {
		var err error
		item, err = c.Add(name, cost)
		return err
	})
	return item, err
}

// UpdateItem changes the fields set in p.
func (s *Service) UpdateItem(id int, p shop.Patch) error {
	return s.store.UpdateShop(func(c *shop.Catalog, _ *ledger.Ledger) error {
		return c.Update(id, p)
	})
}

// DeleteItem removes a shop item.
func (s *Service) DeleteItem(id int) error {
	return s.store.UpdateShop(func(c *shop.Catalog, _ *ledger.Ledger) error {
		return c.Delete(id)
	})
}

// Reset wipes all progress, goals and the shop.
func (s *Service) Reset() error {
	return s.store.Reset()
}

// InitShop seeds the default items into an empty shop. It reports whether
// anything was added.
func (s *Service) InitShop() (bool, error) {
	added := false
	err := s.store.UpdateShop(func(c *shop.Catalog, _ *ledger.Ledger) error {
		if len(c.Items()) > 0 {
			return nil
		}
		for _, seed := range shop.DefaultItems() {
			if _, err := c.Add(seed.Name, seed.Cost); err != nil {
				return err
			}
		}
		added = true
		return nil
	})
	return added, err
}

// MarkRan records today as run.
func (s *Service) MarkRan() error {
	return s.store.MarkRanToday(s.Today())
}

// ShouldRun reports whether the morning routine is due: past morningHour
// and not yet run today.
func (s *Service) ShouldRun(morningHour int) (bool, error) {
	ran, err := s.store.HasRunToday(s.Today())
	if err != nil {
		return false, err
	}
	return ShouldRunAt(s.now(), morningHour, ran), nil
}

// ShouldRunAt is the run gate as a pure function.
func ShouldRunAt(now time.Time, morningHour int, ranToday bool) bool {
	return now.Hour() >= morningHour && !ranToday
}
