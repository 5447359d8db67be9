package vm

import (
	"fmt"

	"github.com/vtsched/osim/pkg/types"
)

// BaseBound is the simplest translation scheme: one (base, bound) pair per
// process, mapping virtual address va to physical byte base+va whenever
// va < bound (spec.md §4.5).
type BaseBound struct {
	ram   []byte
	table map[int]baseBoundMapping
}

type baseBoundMapping struct {
	base  types.Address
	bound types.Bytes
}

// NewBaseBound returns a base-and-bound façade addressing into ram.
func NewBaseBound(ram []byte) *BaseBound {
	return &BaseBound{ram: ram, table: make(map[int]baseBoundMapping)}
}

// Map registers pid's entire address space as [base, base+bound).
func (b *BaseBound) Map(pid int, base types.Address, bound types.Bytes) {
	b.table[pid] = baseBoundMapping{base: base, bound: bound}
}

// Retrieve translates va for pid and returns the physical byte it names.
func (b *BaseBound) Retrieve(pid int, va types.Address) (byte, error) {
	m, ok := b.table[pid]
	if !ok {
		return 0, fmt.Errorf("%w: pid %d", ErrUnmappedProcess, pid)
	}
	if va >= types.Address(m.bound) {
		return 0, fmt.Errorf("%w: pid %d va %s outside bound %d", ErrSegfault, pid, va, m.bound)
	}
	phys := m.base + va
	if int(phys) >= len(b.ram) {
		return 0, fmt.Errorf("%w: pid %d va %s maps past RAM", ErrSegfault, pid, va)
	}
	return b.ram[phys], nil
}
