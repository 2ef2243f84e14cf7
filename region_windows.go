//go:build windows

package vmem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// windowsBackend issues repeated VirtualQuery calls, advancing by
// RegionSize each step.
type windowsBackend struct{}

func newRegionBackend() regionBackend {
	return &windowsBackend{}
}

func (b *windowsBackend) next(cursor, limit uintptr) (*Region, uintptr, error) {
	for cursor < limit {
		var info windows.MemoryBasicInformation
		err := windows.VirtualQuery(cursor, &info, unsafe.Sizeof(info))
		if err != nil {
			return nil, cursor, newErr("region_query", KindSyscall, err)
		}
		next := cursor + uintptr(info.RegionSize)

		if info.State == windows.MEM_FREE {
			// Unmapped: outside the requested range this terminates
			// iteration; inside it we simply skip the hole.
			cursor = next
			continue
		}

		r := Region{
			base:     uintptr(info.BaseAddress),
			size:     uintptr(info.RegionSize),
			reserved: info.State == windows.MEM_RESERVE,
			shared:   info.Type == windows.MEM_MAPPED,
			guarded:  info.Protect&windows.PAGE_GUARD != 0,
		}
		if !r.reserved {
			r.protection = fromNativeProt(info.Protect)
		}
		return &r, next, nil
	}
	return nil, cursor, nil
}
