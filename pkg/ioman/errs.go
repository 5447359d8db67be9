package ioman

import "errors"

// ErrNotWaiting is returned by Park when called on a process that isn't in
// the WAITING state — parking is always preceded by a RunFor transition to
// WAITING, so this is a contract violation (spec.md §4.2, §7).
var ErrNotWaiting = errors.New("ioman: process not in WAITING state")
