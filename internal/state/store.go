// Package state persists the progress, goals and shop documents as JSON
// files and frames every mutation as load, mutate, save.
//
// There is no cross-process locking: two invocations running at once can
// overwrite each other's writes.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/theirongolddev/resolution/internal/ledger"
	"github.com/theirongolddev/resolution/internal/model"
	"github.com/theirongolddev/resolution/internal/pacing"
	"github.com/theirongolddev/resolution/internal/shop"
)

const (
	stateFile = "state.json"
	goalsFile = "goals.json"
	shopFile  = "shop_items.json"
)

// Options tunes a Store. The zero value is usable.
type Options struct {
	Logger  *log.Logger
	Rewards ledger.RewardTable
	// TotalChapters caps bible_chapters_read on load. Zero means the
	// built-in plan's total.
	TotalChapters int
}

// Store reads and writes the documents under one directory.
type Store struct {
	dir           string
	logger        *log.Logger
	rewards       ledger.RewardTable
	totalChapters int
}

// Open returns a store rooted at dir. Nothing is created until the first save.
func Open(dir string, opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "[resolution] ", 0)
	}
	if opts.Rewards == nil {
		opts.Rewards = ledger.DefaultRewards()
	}
	if opts.TotalChapters <= 0 {
		opts.TotalChapters = pacing.DefaultPolicy().TotalChapters
	}
	return &Store{dir: dir, logger: opts.Logger, rewards: opts.Rewards, totalChapters: opts.TotalChapters}
}

// Dir returns the directory holding the documents.
func (s *Store) Dir() string {
	return s.dir
}

// Rewards returns the reward table ledgers opened by this store use.
func (s *Store) Rewards() ledger.RewardTable {
	return s.rewards
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// readJSON decodes path into v. A missing file reports found=false. A file
// that does not parse is logged and also reported as not found so callers
// fall back to defaults; the next save replaces it.
func (s *Store) readJSON(name string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Printf("warning: %s is unreadable (%v), using defaults", s.path(name), err)
		return false, nil
	}
	return true, nil
}

// readObject reads a document as raw fields so one bad value only costs
// that field. A document that is not an object at all (truncated, say) is
// treated like readJSON treats it.
func (s *Store) readObject(name string) (map[string]json.RawMessage, bool, error) {
	var fields map[string]json.RawMessage
	found, err := s.readJSON(name, &fields)
	if err != nil || !found {
		return nil, false, err
	}
	return fields, fields != nil, nil
}

// decodeField sets *dst from fields[key]. A missing key leaves *dst alone;
// a value that does not decode is logged and also leaves *dst alone.
func decodeField[T any](s *Store, name string, fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Printf("warning: %s in %s is unreadable (%v), using the default", key, s.path(name), err)
		return
	}
	*dst = v
}

// writeJSON replaces name with the encoding of v via a temp file and rename.
func (s *Store) writeJSON(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", name, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}

// Load returns the progress document, with defaults for anything missing
// or unreadable.
func (s *Store) Load() (model.ProgressState, error) {
	st := model.DefaultProgressState()
	fields, found, err := s.readObject(stateFile)
	if err != nil || !found {
		return st, err
	}

	decodeField(s, stateFile, fields, "last_run_date", &st.LastRunDate)
	decodeField(s, stateFile, fields, "coins", &st.Coins)
	decodeField(s, stateFile, fields, "completed_leetcode_ids", &st.CompletedProblemIDs)
	decodeField(s, stateFile, fields, "bible_chapters_read", &st.BibleChaptersRead)
	decodeField(s, stateFile, fields, "start_date", &st.StartDate)
	decodeField(s, stateFile, fields, "shop_next_id", &st.ShopNextID)

	if st.CompletedProblemIDs == nil {
		st.CompletedProblemIDs = []int{}
	}
	if st.StartDate.IsZero() {
		st.StartDate = model.DefaultStartDate
	}
	if st.Coins < 0 {
		s.logger.Printf("warning: negative coin balance %d in %s, resetting to 0", st.Coins, stateFile)
		st.Coins = 0
	}
	switch {
	case st.BibleChaptersRead < 0:
		st.BibleChaptersRead = 0
	case st.BibleChaptersRead > s.totalChapters:
		s.logger.Printf("warning: bible_chapters_read %d in %s is past the plan's %d chapters, capping",
			st.BibleChaptersRead, stateFile, s.totalChapters)
		st.BibleChaptersRead = s.totalChapters
	}
	if st.ShopNextID < 1 {
		st.ShopNextID = 1
	}
	return st, nil
}

// Save overwrites the progress document.
func (s *Store) Save(st model.ProgressState) error {
	if st.CompletedProblemIDs == nil {
		st.CompletedProblemIDs = []int{}
	}
	return s.writeJSON(stateFile, st)
}

// Update loads the progress document, applies fn and saves the result.
// Nothing is written if fn returns an error.
func (s *Store) Update(fn func(*model.ProgressState) error) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(&st); err != nil {
		return err
	}
	return s.Save(st)
}

// UpdateLedger is Update with a ledger over the loaded state.
func (s *Store) UpdateLedger(fn func(*ledger.Ledger, *model.ProgressState) error) error {
	return s.Update(func(st *model.ProgressState) error {
		return fn(ledger.New(st, s.rewards), st)
	})
}

// HasRunToday reports whether the morning routine already ran on today.
func (s *Store) HasRunToday(today model.Date) (bool, error) {
	st, err := s.Load()
	if err != nil {
		return false, err
	}
	return st.LastRunDate != nil && *st.LastRunDate == today, nil
}

// MarkRanToday records today as the last run date.
func (s *Store) MarkRanToday(today model.Date) error {
	return s.Update(func(st *model.ProgressState) error {
		d := today
		st.LastRunDate = &d
		return nil
	})
}

// Goals returns the goals saved for today. Goals saved on another day are
// not returned.
func (s *Store) Goals(today model.Date) ([]string, error) {
	fields, found, err := s.readObject(goalsFile)
	if err != nil {
		return nil, err
	}
	var doc model.DailyGoals
	if found {
		decodeField(s, goalsFile, fields, "date", &doc.Date)
		decodeField(s, goalsFile, fields, "goals", &doc.Goals)
	}
	if doc.Date == nil || *doc.Date != today || doc.Goals == nil {
		return []string{}, nil
	}
	return doc.Goals, nil
}

// SaveGoals replaces the goals document with today's goals.
func (s *Store) SaveGoals(today model.Date, goals []string) error {
	if goals == nil {
		goals = []string{}
	}
	d := today
	return s.writeJSON(goalsFile, model.DailyGoals{Date: &d, Goals: goals})
}

// ShopItems returns the shop document. Entries that do not decode are
// logged and left out.
func (s *Store) ShopItems() ([]model.ShopItem, error) {
	var raw []json.RawMessage
	if _, err := s.readJSON(shopFile, &raw); err != nil {
		return nil, err
	}
	items := make([]model.ShopItem, 0, len(raw))
	for i, r := range raw {
		var item model.ShopItem
		if err := json.Unmarshal(r, &item); err != nil {
			s.logger.Printf("warning: shop entry %d in %s is unreadable (%v), dropping it", i, s.path(shopFile), err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// SaveShopItems overwrites the shop document.
func (s *Store) SaveShopItems(items []model.ShopItem) error {
	if items == nil {
		items = []model.ShopItem{}
	}
	return s.writeJSON(shopFile, items)
}

// Catalog loads the shop as a catalog, read-only.
func (s *Store) Catalog() (*shop.Catalog, error) {
	st, err := s.Load()
	if err != nil {
		return nil, err
	}
	items, err := s.ShopItems()
	if err != nil {
		return nil, err
	}
	return shop.New(items, st.ShopNextID), nil
}

// UpdateShop runs fn over the shop catalog and a ledger on the progress
// document, then saves both. Neither document is written if fn fails.
func (s *Store) UpdateShop(fn func(*shop.Catalog, *ledger.Ledger) error) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	items, err := s.ShopItems()
	if err != nil {
		return err
	}

	cat := shop.New(items, st.ShopNextID)
	if err := fn(cat, ledger.New(&st, s.rewards)); err != nil {
		return err
	}

	st.ShopNextID = cat.NextID()
	if err := s.Save(st); err != nil {
		return err
	}
	return s.SaveShopItems(cat.Items())
}

// Reset deletes every document. The next Load returns a fresh install.
func (s *Store) Reset() error {
	for _, name := range []string{stateFile, goalsFile, shopFile} {
		if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", name, err)
		}
	}
	return nil
}
