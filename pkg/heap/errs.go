package heap

import "errors"

// ErrInvalidSize is returned by Malloc when n is zero.
var ErrInvalidSize = errors.New("heap: invalid allocation size")

// ErrOutOfMemory is returned by Malloc when no free region (fit family) or
// size class (buddy) can satisfy the request (spec.md §7).
var ErrOutOfMemory = errors.New("heap: out of memory")

// ErrInvalidPointer is returned by Free when ptr was never returned by
// Malloc, or has already been freed (a double free).
var ErrInvalidPointer = errors.New("heap: invalid or already-freed pointer")

// ErrNotPowerOfTwo is returned by NewBuddy when the requested arena size
// isn't a power of two (spec.md §4.4.2 assumes it is).
var ErrNotPowerOfTwo = errors.New("heap: arena size must be a power of two")
