package scheduler

import "errors"

var (
	// ErrNoRunnable is returned by PickNext when HasWork would report
	// false. The dispatcher never triggers it; it is always a caller bug
	// (spec.md §7).
	ErrNoRunnable = errors.New("scheduler: no runnable process")
)
