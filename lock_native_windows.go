//go:build windows

package vmem

import "golang.org/x/sys/windows"

func lockNative(base, size uintptr) error {
	if err := windows.VirtualLock(base, size); err != nil {
		if err == windows.ERROR_NOT_ENOUGH_MEMORY || err == windows.ERROR_WORKING_SET_QUOTA {
			return newErr("lock", KindOutOfMemory, err)
		}
		if err == windows.ERROR_ACCESS_DENIED {
			return newErr("lock", KindAccessDenied, err)
		}
		return newErr("lock", KindSyscall, err)
	}
	return nil
}

func unlockNative(base, size uintptr) error {
	if err := windows.VirtualUnlock(base, size); err != nil {
		return newErr("lock_guard_close", KindSyscall, err)
	}
	return nil
}
