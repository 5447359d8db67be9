package vm

import (
	"fmt"

	"github.com/vtsched/osim/pkg/types"
)

// PageTableEntry is one process's mapping for a single virtual page
// (spec.md §4.5). UserModeAllowed is carried for shape-completeness with
// the source design but never enforced: kernel/user mode separation is an
// explicit non-goal.
type PageTableEntry struct {
	FrameNumber     int
	Valid           bool
	Dirty           bool
	Present         bool
	WriteAllowed    bool
	UserModeAllowed bool
}

// Frame is one slot of physical RAM a page can be loaded into.
type Frame struct {
	Data     []byte
	OwnerPID int
	Occupied bool
}

type diskKey struct {
	pid  int
	page int
}

// Paging implements demand paging over a fixed frame pool and a simulated
// disk (spec.md §4.5). A page not yet present is loaded lazily on first
// access by the page-fault handler, which allocates a free frame and
// reads the page from disk, zero-filled the first time it's touched.
type Paging struct {
	pageSize types.Bytes
	frames   []Frame
	freeList []int // stack of free frame indices, LIFO

	tables map[int]map[int]*PageTableEntry // pid -> page number -> entry
	disk   map[diskKey][]byte
}

// NewPaging returns a Paging façade with frameCount frames of pageSize
// bytes each.
func NewPaging(frameCount int, pageSize types.Bytes) *Paging {
	frames := make([]Frame, frameCount)
	free := make([]int, frameCount)
	for i := range free {
		free[i] = frameCount - 1 - i // pop from the tail gives ascending frame numbers
	}
	return &Paging{
		pageSize: pageSize,
		frames:   frames,
		freeList: free,
		tables:   make(map[int]map[int]*PageTableEntry),
		disk:     make(map[diskKey][]byte),
	}
}

// MapPage installs a page-table entry for pid's pageNumber, not yet
// present: the first Retrieve/Write against it triggers a page fault.
func (p *Paging) MapPage(pid, pageNumber int, writeAllowed, userModeAllowed bool) {
	table, ok := p.tables[pid]
	if !ok {
		table = make(map[int]*PageTableEntry)
		p.tables[pid] = table
	}
	table[pageNumber] = &PageTableEntry{
		Valid:           true,
		WriteAllowed:    writeAllowed,
		UserModeAllowed: userModeAllowed,
	}
}

func (p *Paging) entry(pid int, va types.Address) (*PageTableEntry, int, error) {
	pageNumber := int(va / types.Address(p.pageSize))
	offset := int(va % types.Address(p.pageSize))

	table, ok := p.tables[pid]
	if !ok {
		return nil, 0, fmt.Errorf("%w: pid %d", ErrUnmappedProcess, pid)
	}
	e, ok := table[pageNumber]
	if !ok || !e.Valid {
		return nil, 0, fmt.Errorf("%w: pid %d va %s page %d invalid", ErrSegfault, pid, va, pageNumber)
	}
	if !e.Present {
		if err := p.pageFault(pid, pageNumber, e); err != nil {
			return nil, 0, err
		}
	}
	return e, offset, nil
}

// Retrieve translates va for pid, faulting the page in if necessary, and
// returns the byte at that offset.
func (p *Paging) Retrieve(pid int, va types.Address) (byte, error) {
	e, offset, err := p.entry(pid, va)
	if err != nil {
		return 0, err
	}
	return p.frames[e.FrameNumber].Data[offset], nil
}

// Write translates va for pid and stores value, marking the page dirty.
// ErrSegfault if the page's entry disallows writes.
func (p *Paging) Write(pid int, va types.Address, value byte) error {
	e, offset, err := p.entry(pid, va)
	if err != nil {
		return err
	}
	if !e.WriteAllowed {
		return fmt.Errorf("%w: pid %d va %s is read-only", ErrSegfault, pid, va)
	}
	p.frames[e.FrameNumber].Data[offset] = value
	e.Dirty = true
	return nil
}

// pageFault allocates a free frame, loads pageNumber's bytes from the
// simulated disk (zero-filled the first time that page is touched), and
// installs the frame into e (spec.md §4.5).
func (p *Paging) pageFault(pid, pageNumber int, e *PageTableEntry) error {
	if len(p.freeList) == 0 {
		return ErrOutOfFrames
	}
	frameIdx := p.freeList[len(p.freeList)-1]
	p.freeList = p.freeList[:len(p.freeList)-1]

	p.frames[frameIdx] = Frame{Data: p.readDisk(pid, pageNumber), OwnerPID: pid, Occupied: true}
	e.FrameNumber = frameIdx
	e.Present = true
	return nil
}

// readDisk returns (pid, pageNumber)'s backing bytes, allocating a
// zero-filled page the first time it's touched.
func (p *Paging) readDisk(pid, pageNumber int) []byte {
	key := diskKey{pid: pid, page: pageNumber}
	data, ok := p.disk[key]
	if !ok {
		data = make([]byte, p.pageSize)
		p.disk[key] = data
	}
	return data
}
