package core

import "errors"

// Structural errors are fatal to the triggering call; they indicate a caller
// bug and are never swallowed. Lookup misses are not errors — operations on
// unknown ids return false.
var (
	ErrDuplicateID      = errors.New("duplicate id")
	ErrInvalidShape     = errors.New("invalid shape")
	ErrInvalidParameter = errors.New("invalid parameter")
)
