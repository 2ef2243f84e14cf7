//go:build windows

package vmem

import "golang.org/x/sys/windows"

func allocNative(hint, size uintptr, prot Protection, fixed bool) (uintptr, error) {
	addr, err := windows.VirtualAlloc(hint, size, windows.MEM_COMMIT|windows.MEM_RESERVE, toNativeProt(prot))
	if err != nil {
		return 0, virtualAllocErr(err)
	}
	if fixed && addr != hint {
		// VirtualAlloc rounds a reserving address down to the allocation
		// granularity, so a page-aligned hint can come back as a lower
		// address; that result is released and refused.
		windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
		return 0, newErr("alloc_at", KindInvalidMapping, nil)
	}
	return addr, nil
}

func releaseNative(base, size uintptr) error {
	if err := windows.VirtualFree(base, 0, windows.MEM_RELEASE); err != nil {
		return newErr("allocation_release", KindSyscall, err)
	}
	return nil
}

func virtualAllocErr(err error) error {
	if err == windows.ERROR_NOT_ENOUGH_MEMORY || err == windows.ERROR_COMMITMENT_LIMIT {
		return newErr("alloc", KindOutOfMemory, err)
	}
	return newErr("alloc", KindSyscall, err)
}
