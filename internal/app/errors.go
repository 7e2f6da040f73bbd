package app

import (
	"errors"
	"fmt"
)

// Sentinel errors for application lifecycle.
var (
	// ErrQuit is returned by Run when the user asked to leave.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrShutdown is returned by Run after Shutdown.
	ErrShutdown = errors.New("application shut down")
)

// InitError reports which component failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
