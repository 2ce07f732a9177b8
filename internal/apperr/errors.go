// Package apperr holds the sentinel errors shared by the planner packages.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
)

// Ordering faults. Callers surface these as "can't move item" and keep the list as is.
var (
	ErrUnknownID       = errors.New("unknown id")
	ErrIndexOutOfRange = errors.New("index out of bounds")
	ErrSameIndex       = errors.New("source and destination are the same")
	ErrInvertedBounds  = errors.New("lower bound is not below upper bound")
	ErrNoKeySpace      = errors.New("no ordering key fits between bounds")
)

// Calendar and period faults.
var (
	ErrOutOfRange    = errors.New("day outside supported calendar range")
	ErrBadDaysRange  = errors.New("provided days range is not correct")
	ErrLongDaysRange = errors.New("provided days range is too long")
	ErrBadWeekLength = errors.New("week length must be positive")
)
