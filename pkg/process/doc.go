// Package process models a single simulated process: its identity,
// remaining work, cumulative work, I/O probability, and lifecycle state
// (spec.md §3), plus the process-wide Registry ("process table") that
// schedulers consult to prune stale references on termination.
//
// Only a RUNNING process may decrement TimeToCompletion (via RunFor); no
// transition into TERMINATED is reversible; only a READY process may be
// admitted to a scheduler. Spawn is the only way to create a Process, and
// it always goes through a Registry so pids stay unique and monotonic for
// the lifetime of that registry.
package process
