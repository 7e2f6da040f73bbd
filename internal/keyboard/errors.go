package keyboard

import (
	"errors"
	"fmt"
)

var (
	// ErrShortReport is returned when a report is shorter than the boot layout.
	ErrShortReport = errors.New("keyboard: short boot report")

	// ErrRollover is returned when the keyboard reports too many keys held.
	ErrRollover = errors.New("keyboard: key rollover error")

	// ErrUnknownLayout is returned for a layout name that is not supported.
	ErrUnknownLayout = errors.New("keyboard: unknown layout")

	// ErrRunnerStarted is returned when a Runner is started twice.
	ErrRunnerStarted = errors.New("keyboard: runner already started")
)

// ReportError wraps a report failure with the device that produced it.
type ReportError struct {
	Device Device
	Err    error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	return fmt.Sprintf("keyboard %s: %v", e.Device, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}
