package config

// SchedulerKind names one of the five scheduler variants a scenario can
// select (spec.md §4.1).
type SchedulerKind string

const (
	Simple     SchedulerKind = "simple"
	RoundRobin SchedulerKind = "round_robin"
	MLFQ       SchedulerKind = "mlfq"
	Lottery    SchedulerKind = "lottery"
	CFS        SchedulerKind = "cfs"
)

// SchedulerSpec configures one scheduler variant. Only the fields relevant
// to Kind are read; zero values fall back to that variant's own defaults
// (spec.md §4.1's per-variant DefaultX constants). TicketsPerAdmission is
// not read by Build: Lottery always grants DefaultTicketsPerAdmission.
type SchedulerSpec struct {
	Kind                SchedulerKind `yaml:"kind"`
	Quantum             int           `yaml:"quantum,omitempty"`
	Levels              []int         `yaml:"levels,omitempty"`
	BoostThreshold      int           `yaml:"boost_threshold,omitempty"`
	TicketsPerAdmission int           `yaml:"tickets_per_admission,omitempty"`
	BaseQuantum         int           `yaml:"base_quantum,omitempty"`
	MinQuantum          int           `yaml:"min_quantum,omitempty"`
}

// ProcessSpec describes one group of identical processes to spawn at
// startup. Work of 0 draws the process factory's default random range
// (spec.md §6).
type ProcessSpec struct {
	Count         int     `yaml:"count"`
	ArrivalTime   int     `yaml:"arrival_time,omitempty"`
	IOProbability float64 `yaml:"io_probability,omitempty"`
	Work          int     `yaml:"work,omitempty"`
}

// Scenario is the complete input to one simulation run: the PRNG seed, the
// scheduler to drive it, and the process mix to admit before Run starts.
type Scenario struct {
	Seed      uint64        `yaml:"seed"`
	Scheduler SchedulerSpec `yaml:"scheduler"`
	Processes []ProcessSpec `yaml:"processes"`
}

// Default returns the scenario cmd/osim runs when no --config is given:
// Round-Robin over three processes with no I/O, mirroring spec.md §8
// scenario 2's shape.
func Default() *Scenario {
	return &Scenario{
		Seed: 1,
		Scheduler: SchedulerSpec{
			Kind:    RoundRobin,
			Quantum: 3,
		},
		Processes: []ProcessSpec{
			{Count: 3, Work: 0, IOProbability: 0},
		},
	}
}
