package config

import (
	"fmt"

	"github.com/vtsched/osim/pkg/prng"
	"github.com/vtsched/osim/pkg/process"
	"github.com/vtsched/osim/pkg/scheduler"
	"github.com/vtsched/osim/pkg/types"
)

// Build realizes a Scenario: it creates a Registry and PRNG source seeded
// from the scenario, constructs the selected scheduler, spawns and admits
// every process the scenario's mix describes, and returns everything the
// dispatcher needs.
func Build(s *Scenario) (*process.Registry, *prng.Source, scheduler.Scheduler, error) {
	if len(s.Processes) == 0 {
		return nil, nil, nil, ErrNoProcesses
	}

	reg := process.NewRegistry()
	rng := prng.New(s.Seed)

	sched, err := newScheduler(reg, rng, s.Scheduler)
	if err != nil {
		return nil, nil, nil, err
	}

	for _, ps := range s.Processes {
		for i := 0; i < ps.Count; i++ {
			p, err := reg.Spawn(rng, types.Ticks(ps.ArrivalTime), ps.IOProbability, ps.Work)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("config: spawning process: %w", err)
			}
			if err := sched.Admit(p); err != nil {
				return nil, nil, nil, fmt.Errorf("config: admitting pid %d: %w", p.PID, err)
			}
		}
	}

	return reg, rng, sched, nil
}

// newScheduler dispatches on Kind to construct the matching variant,
// falling back to each constructor's own zero-value defaults (spec.md
// §4.1).
func newScheduler(reg *process.Registry, rng *prng.Source, spec SchedulerSpec) (scheduler.Scheduler, error) {
	switch spec.Kind {
	case "", Simple:
		return scheduler.NewSimple(reg), nil
	case RoundRobin:
		return scheduler.NewRoundRobin(reg, spec.Quantum), nil
	case MLFQ:
		return scheduler.NewMLFQ(reg, spec.Levels, spec.BoostThreshold), nil
	case Lottery:
		return scheduler.NewLottery(reg, rng, spec.Quantum), nil
	case CFS:
		return scheduler.NewCFS(reg, spec.BaseQuantum, spec.MinQuantum), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheduler, spec.Kind)
	}
}
