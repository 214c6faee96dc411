package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrBudgetExhausted = errors.New("transaction budget exhausted")
	ErrLockHeld        = errors.New("lock already held")
)
