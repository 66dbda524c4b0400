package twisty

import "errors"

// Sentinel errors for the twisty package.
var (
	// Parsing errors
	ErrInvalidNotation = errors.New("twisty: invalid move notation")
	ErrInvalidSkin     = errors.New("twisty: unknown skin")
	ErrInvalidSpeed    = errors.New("twisty: unknown transition speed")
	ErrInvalidEasing   = errors.New("twisty: unknown easing function")
	ErrInvalidSize     = errors.New("twisty: unknown puzzle size")

	// State errors
	ErrBusy          = errors.New("twisty: puzzle is scrambling")
	ErrInvalidState  = errors.New("twisty: malformed puzzle state")
	ErrInvalidConfig = errors.New("twisty: malformed puzzle config")
)
