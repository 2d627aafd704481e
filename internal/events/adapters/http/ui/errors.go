package ui

import "errors"

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrDeleteFailed  = errors.New("delete failed")
)
