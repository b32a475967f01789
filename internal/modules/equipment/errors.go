package equipment

import "errors"

var (
	ErrEmptyName         = errors.New("equipment name is required")
	ErrInvalidRate       = errors.New("rate must be a positive number")
	ErrInvalidID         = errors.New("equipment id must be an integer")
	ErrNoSelection       = errors.New("no equipment selected")
	ErrNotFound          = errors.New("equipment record not found")
	ErrAlreadyCheckedOut = errors.New("equipment is already checked out")
	ErrStore             = errors.New("record store failure")
)

// IsValidation reports whether err was rejected before any store call.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrInvalidRate) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrNoSelection)
}
