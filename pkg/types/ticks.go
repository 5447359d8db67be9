package types

// Ticks counts units of the simulation clock. The clock is a plain integer,
// not wall-clock time (spec.md §1): Ticks exists so signatures read as
// "this is clock math" instead of a bare int that could be a pid or a size.
type Ticks int64
