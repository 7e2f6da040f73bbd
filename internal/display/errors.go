package display

import "errors"

// ErrInvalidSize is returned when a grid is created with a non-positive dimension.
var ErrInvalidSize = errors.New("display: grid dimensions must be positive")
