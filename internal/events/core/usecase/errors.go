package usecase

import "errors"

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrInvalidEvent     = errors.New("invalid event")
	ErrInvalidDateRange = errors.New("end date cannot be before start date")
)
