package types

import "fmt"

// Address is a byte offset into a heap arena or a process virtual address
// space. It is a plain uint64 wrapper so call sites can't accidentally mix
// it up with a tick count or a size.
type Address uint64

// String renders the address the conventional hex way.
func (a Address) String() string {
	return fmt.Sprintf("0x%08x", uint64(a))
}

// Add returns a+n, saturating is not performed: callers are expected to
// stay within arena bounds, which the allocators and VM façade enforce.
func (a Address) Add(n Bytes) Address {
	return a + Address(n)
}
