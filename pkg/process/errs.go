package process

import "errors"

var (
	// ErrNotReady is returned when a scheduler tries to admit a process
	// that isn't in the READY state.
	ErrNotReady = errors.New("process: not in READY state")

	// ErrNotRunning is returned by RunFor when called on a process that
	// isn't RUNNING.
	ErrNotRunning = errors.New("process: not in RUNNING state")

	// ErrAlreadyTerminated means a caller tried to act on a process whose
	// lifecycle already ended. No transition out of TERMINATED exists.
	ErrAlreadyTerminated = errors.New("process: already terminated")

	// ErrBadQuantum means RunFor was called with q < 1.
	ErrBadQuantum = errors.New("process: quantum must be >= 1")

	// ErrBadIOProbability means a Spawn call supplied an io_probability
	// outside [0, 1].
	ErrBadIOProbability = errors.New("process: io_probability must be in [0, 1]")

	// ErrBadWork means a Spawn call supplied a negative explicit
	// time_to_completion.
	ErrBadWork = errors.New("process: time_to_completion must be >= 0")

	// ErrUnknownPID means a Registry lookup or removal targeted a pid not
	// present in the process table.
	ErrUnknownPID = errors.New("process: unknown pid")
)
