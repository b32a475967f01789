package maintenance

import "errors"

var (
	ErrEmptyIssue       = errors.New("issue description is required")
	ErrNotCheckedIn     = errors.New("equipment is not checked in")
	ErrInvalidSelection = errors.New("select a valid equipment")
)
