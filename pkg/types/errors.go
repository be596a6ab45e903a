package types

import "errors"

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Catalog management errors.
var (
	ErrNotFound         = errors.New("checkpoint not found")
	ErrInvalidID        = errors.New("invalid checkpoint ID")
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidURL       = errors.New("invalid URL")
	ErrInvalidDirection = errors.New("direction must be up or down")
	ErrDuplicateID      = errors.New("duplicate checkpoint ID")
)
