package domain

import "errors"

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInternalError    = errors.New("internal error")
	ErrScenarioNotFound = errors.New("scenario not found")
)

// Validation constants
const (
	MaxScenarioTitleLength       = 255
	MaxScenarioDescriptionLength = 1000
)
