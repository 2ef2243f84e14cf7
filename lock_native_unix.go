//go:build unix

package vmem

import "golang.org/x/sys/unix"

func lockNative(base, size uintptr) error {
	if err := unix.Mlock(sliceAt(base, size)); err != nil {
		if err == unix.ENOMEM || err == unix.EAGAIN {
			return newErr("lock", KindOutOfMemory, err)
		}
		if err == unix.EPERM {
			return newErr("lock", KindAccessDenied, err)
		}
		return newErr("lock", KindSyscall, err)
	}
	return nil
}

func unlockNative(base, size uintptr) error {
	if err := unix.Munlock(sliceAt(base, size)); err != nil {
		return newErr("lock_guard_close", KindSyscall, err)
	}
	return nil
}
