package config

import "errors"

// ErrUnknownScheduler is returned when a scenario names a scheduler kind
// Build doesn't recognize.
var ErrUnknownScheduler = errors.New("config: unknown scheduler kind")

// ErrNoProcesses is returned by Build when a scenario admits zero
// processes: an empty simulation has nothing to demonstrate.
var ErrNoProcesses = errors.New("config: scenario has no processes")
