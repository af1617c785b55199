package models

import "errors"

// Custom errors
var (
	ErrAccountNameRequired = errors.New("account name is required")
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateDay        = errors.New("daily performance already recorded for date and account")
	ErrUnknownAccount      = errors.New("unknown account")
)
