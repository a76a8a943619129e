package model

import "errors"

// Expected, recoverable failures of the core operations. Callers branch on
// them with errors.Is; wrapped errors carry the details.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyPurchased  = errors.New("already purchased")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidInput      = errors.New("invalid input")
)
