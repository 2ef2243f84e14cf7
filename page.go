package vmem

import (
	"math"

	"github.com/vmemgo/vmem/internal/pagesize"
)

// PageSize returns the process page size in bytes. It is a positive power
// of two, fixed for the lifetime of the process, and cheap to call after
// the first call (atomic loads only, no locking).
func PageSize() uintptr {
	return uintptr(pagesize.Get())
}

// PageCeil rounds addr up to the next page boundary. If addr is already
// page-aligned it is returned unchanged. Returns an *Error of
// KindOverflow if rounding up would overflow the address space.
func PageCeil(addr uintptr) (uintptr, error) {
	size := PageSize()
	if addr%size == 0 {
		return addr, nil
	}
	floor := addr - addr%size
	if math.MaxUint64-uint64(floor) < uint64(size) {
		return 0, newErr("page_ceil", KindOverflow, nil)
	}
	return floor + size, nil
}

// PageFloor rounds addr down to the previous page boundary.
func PageFloor(addr uintptr) uintptr {
	size := PageSize()
	return addr - addr%size
}

// PageRange is a normalized, page-aligned half-open byte range
// [Base, Base+Size).
type PageRange struct {
	Base uintptr
	Size uintptr
}

// End returns the exclusive end address of the range.
func (r PageRange) End() uintptr { return r.Base + r.Size }

// RangeToPageRange normalizes [addr, addr+len) to
// [floor(addr), ceil(addr+len)). It fails with KindInvalidParameter when
// len == 0, and with KindOverflow when addr+len or the ceiling overflows.
func RangeToPageRange(addr uintptr, length uintptr) (PageRange, error) {
	if length == 0 {
		return PageRange{}, newErr("range_to_page_range", KindInvalidParameter, nil)
	}
	if math.MaxUint64-uint64(addr) < uint64(length) {
		return PageRange{}, newErr("range_to_page_range", KindOverflow, nil)
	}
	end := addr + length
	base := PageFloor(addr)
	ceilEnd, err := PageCeil(end)
	if err != nil {
		return PageRange{}, newErr("range_to_page_range", KindOverflow, err)
	}
	return PageRange{Base: base, Size: ceilEnd - base}, nil
}
