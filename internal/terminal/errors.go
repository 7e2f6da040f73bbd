package terminal

import "errors"

// ErrInvalidSize is returned when a session is created with a non-positive
// width or height.
var ErrInvalidSize = errors.New("terminal: invalid screen size")
