// Package ledger implements the coin economy over a progress document.
package ledger

import (
	"fmt"

	"github.com/theirongolddev/resolution/internal/model"
)

// Ledger guards the coin balance of a ProgressState. Every change to
// state.Coins goes through Deposit or Withdraw.
type Ledger struct {
	state   *model.ProgressState
	rewards RewardTable
}

// New returns a ledger over state. A nil table uses DefaultRewards.
func New(state *model.ProgressState, rewards RewardTable) *Ledger {
	if rewards == nil {
		rewards = DefaultRewards()
	}
	return &Ledger{state: state, rewards: rewards}
}

// Balance returns the current coin balance.
func (l *Ledger) Balance() int {
	return l.state.Coins
}

// Deposit adds amount and returns the new balance.
func (l *Ledger) Deposit(amount int) (int, error) {
	if amount < 0 {
		return l.state.Coins, fmt.Errorf("%w: deposit of %d", model.ErrInvalidInput, amount)
	}
	l.state.Coins += amount
	return l.state.Coins, nil
}

// Withdraw subtracts amount. The balance is left untouched on failure.
func (l *Ledger) Withdraw(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: withdrawal of %d", model.ErrInvalidInput, amount)
	}
	if amount > l.state.Coins {
		return fmt.Errorf("%w: need %d, have %d", model.ErrInsufficientFunds, amount, l.state.Coins)
	}
	l.state.Coins -= amount
	return nil
}

// RewardFor looks up the coin amount for one event of kind.
func (l *Ledger) RewardFor(kind EventKind) (int, error) {
	amount, ok := l.rewards[kind]
	if !ok {
		return 0, fmt.Errorf("%w: unknown reward kind %q", model.ErrInvalidInput, kind)
	}
	return amount, nil
}

// RewardForDifficulty looks up the reward for solving a problem of d.
func (l *Ledger) RewardForDifficulty(d model.Difficulty) (int, error) {
	kind, err := KindForDifficulty(d)
	if err != nil {
		return 0, err
	}
	return l.RewardFor(kind)
}

// Award deposits RewardFor(kind)*multiplier and returns the amount deposited.
func (l *Ledger) Award(kind EventKind, multiplier int) (int, error) {
	if multiplier < 1 {
		return 0, fmt.Errorf("%w: multiplier must be at least 1, got %d", model.ErrInvalidInput, multiplier)
	}
	rate, err := l.RewardFor(kind)
	if err != nil {
		return 0, err
	}
	coins := rate * multiplier
	if _, err := l.Deposit(coins); err != nil {
		return 0, err
	}
	return coins, nil
}

// Rewards returns a copy of the reward table.
func (l *Ledger) Rewards() RewardTable {
	out := make(RewardTable, len(l.rewards))
	for k, v := range l.rewards {
		out[k] = v
	}
	return out
}
