package view

import "errors"

var (
	ErrMissingContainer = errors.New("page skeleton has no .table tbody or .eventlist_add-btn")
	ErrUnknownRow       = errors.New("unknown row")
	ErrWrongMode        = errors.New("action not available in the row's mode")
)
