//go:build windows

package vmem

import "golang.org/x/sys/windows"

func protectNative(base, size uintptr, prot Protection) error {
	var old uint32
	if err := windows.VirtualProtect(base, size, toNativeProt(prot), &old); err != nil {
		if err == windows.ERROR_ACCESS_DENIED || err == windows.ERROR_INVALID_ACCESS {
			return newErr("protect", KindAccessDenied, err)
		}
		return newErr("protect", KindSyscall, err)
	}
	return nil
}
