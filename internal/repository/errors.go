package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrInsufficientFunds is returned when a wallet debit would drive
	// the balance negative. The balance is left untouched.
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
)
