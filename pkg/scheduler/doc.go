// Package scheduler implements the five scheduler variants in spec.md §4.1:
// Simple (FIFO-to-completion), RoundRobin, MLFQ, Lottery, and CFS. Each is a
// tagged variant with its own state struct implementing the common
// Scheduler interface (Admit, PickNext, QuantumFor, HasWork) — no
// inheritance, matching the "polymorphic Scheduler" design note (spec.md
// §9).
//
// Schedulers never observe WAITING or TERMINATED processes in their ready
// structures once the common cleanup contract (§4.1.6) has run: every
// PickNext/HasWork call starts by dropping per-pid auxiliary state for
// pids the process Registry no longer holds, or that have terminated.
//
// MLFQ additionally implements ClockAware, since its auto-boost
// bookkeeping is driven by the simulation clock rather than anything the
// uniform Scheduler interface carries.
package scheduler
