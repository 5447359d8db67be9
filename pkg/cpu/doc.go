// Package cpu implements the dispatcher: the single-threaded driver loop
// that owns the global clock, pulls a process from the scheduler, asks it
// for a quantum, runs the process for that quantum, routes the outcome
// (terminated / blocked on I/O / still ready), and polls the I/O manager
// every tick (spec.md §4.3).
//
// The dispatcher never re-enters the scheduler from inside RunFor, and it
// is the only place that owns the clock: schedulers and the I/O manager
// never read or write it directly, except through the optional
// scheduler.ClockAware hook, which the dispatcher drives.
package cpu
