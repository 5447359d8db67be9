package vm

import (
	"fmt"

	"github.com/vtsched/osim/pkg/types"
)

// Segment names one of the three equally-sized regions a process's virtual
// address space is divided into (spec.md §4.5).
type Segment int

const (
	Code Segment = iota
	Heap
	Stack
	segmentCount = 3
)

func (s Segment) String() string {
	switch s {
	case Code:
		return "code"
	case Heap:
		return "heap"
	case Stack:
		return "stack"
	default:
		return "unknown"
	}
}

type segMapping struct {
	base  types.Address
	bound types.Bytes
}

// Segmented maps {code, heap, stack} to independent (base, bound) pairs
// per process. retrieve dispatches on va/segmentSize, where segmentSize is
// the address space divided equally among the three segments (spec.md
// §4.5).
type Segmented struct {
	ram          []byte
	segmentSize  types.Bytes
	table        map[int][segmentCount]segMapping
	tableSet     map[int][segmentCount]bool
}

// NewSegmented returns a Segmented façade addressing into ram, with a
// virtual address space of addrSpaceSize split equally among the three
// segments.
func NewSegmented(ram []byte, addrSpaceSize types.Bytes) *Segmented {
	return &Segmented{
		ram:         ram,
		segmentSize: addrSpaceSize / segmentCount,
		table:       make(map[int][segmentCount]segMapping),
		tableSet:    make(map[int][segmentCount]bool),
	}
}

// Map registers pid's mapping for one segment.
func (s *Segmented) Map(pid int, seg Segment, base types.Address, bound types.Bytes) {
	m := s.table[pid]
	m[seg] = segMapping{base: base, bound: bound}
	s.table[pid] = m

	set := s.tableSet[pid]
	set[seg] = true
	s.tableSet[pid] = set
}

// Retrieve dispatches va to a segment by va/segmentSize, then translates
// the remainder within that segment's (base, bound).
func (s *Segmented) Retrieve(pid int, va types.Address) (byte, error) {
	idx := int(va / types.Address(s.segmentSize))
	if idx < 0 || idx >= segmentCount {
		return 0, fmt.Errorf("%w: pid %d va %s outside the address space", ErrSegfault, pid, va)
	}
	seg := Segment(idx)

	if !s.tableSet[pid][seg] {
		return 0, fmt.Errorf("%w: pid %d segment %s unmapped", ErrSegfault, pid, seg)
	}
	m := s.table[pid][seg]

	offset := va - types.Address(idx)*types.Address(s.segmentSize)
	if offset >= types.Address(m.bound) {
		return 0, fmt.Errorf("%w: pid %d va %s outside segment %s bound %d", ErrSegfault, pid, va, seg, m.bound)
	}

	phys := m.base + offset
	if int(phys) >= len(s.ram) {
		return 0, fmt.Errorf("%w: pid %d va %s maps past RAM", ErrSegfault, pid, va)
	}
	return s.ram[phys], nil
}
