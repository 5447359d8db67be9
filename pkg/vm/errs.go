package vm

import "errors"

// ErrSegfault is returned when a translation touches an address outside a
// process's mapped range, or a page-table entry marked invalid (spec.md
// §4.5).
var ErrSegfault = errors.New("vm: segmentation fault")

// ErrOutOfFrames is returned by the paging façade's page-fault handler
// when RAM's frame pool is exhausted.
var ErrOutOfFrames = errors.New("vm: no free frame available")

// ErrUnmappedProcess is returned when a process has no mapping registered
// at all — distinct from an address within a known process falling
// outside its bound.
var ErrUnmappedProcess = errors.New("vm: process has no memory mapping")
