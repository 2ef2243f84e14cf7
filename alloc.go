package vmem

import "sync"

// Allocation owns a freshly mapped, contiguous run of pages. It is unique
// (non-copyable by convention, callers should not take a second reference
// to its fields) and may be moved by passing the pointer on; Release must
// run exactly once, on every exit path.
type Allocation struct {
	mu         sync.Mutex
	base       uintptr
	size       uintptr
	protection Protection
	released   bool
}

// Base returns the allocation's base address.
func (a *Allocation) Base() uintptr { return a.base }

// Len returns the allocation size in bytes, a positive multiple of the
// page size.
func (a *Allocation) Len() uintptr { return a.size }

// Protection returns the protection the allocation was created with.
func (a *Allocation) Protection() Protection { return a.protection }

// Bytes returns a []byte view over the allocation's backing memory. The
// slice is valid only until Release; using it afterward is undefined
// behavior.
func (a *Allocation) Bytes() []byte { return sliceAt(a.base, a.size) }

// Release unmaps the entire originally-allocated range. Partial unmapping
// is not supported. Release is idempotent: calling it more than once is a
// no-op after the first call.
func (a *Allocation) Release() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.released {
		return nil
	}
	a.released = true
	if err := releaseNative(a.base, a.size); err != nil {
		logDropError("allocation_release", err)
		return err
	}
	return nil
}

// Alloc allocates PageCeil(size) bytes at an OS-chosen address with the
// requested protection. Fails with KindInvalidParameter for zero size and
// KindOutOfMemory when the kernel refuses.
func Alloc(size uintptr, prot Protection) (*Allocation, error) {
	return allocAt(0, size, prot, false)
}

// AllocAt attempts to allocate at PageFloor(addr). If the hint collides
// with an existing mapping, or the OS cannot otherwise honor it exactly,
// AllocAt fails with KindInvalidMapping rather than relocating or
// replacing what is already there.
func AllocAt(addr, size uintptr, prot Protection) (*Allocation, error) {
	if addr == 0 {
		return nil, newErr("alloc_at", KindInvalidMapping, nil)
	}
	return allocAt(PageFloor(addr), size, prot, true)
}

func allocAt(hint uintptr, size uintptr, prot Protection, fixed bool) (*Allocation, error) {
	if size == 0 {
		return nil, newErr("alloc", KindInvalidParameter, nil)
	}
	ceiled, err := PageCeil(size)
	if err != nil {
		return nil, err
	}
	base, err := allocNative(hint, ceiled, prot, fixed)
	if err != nil {
		return nil, err
	}
	return &Allocation{base: base, size: ceiled, protection: prot}, nil
}
