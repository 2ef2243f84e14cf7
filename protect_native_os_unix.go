//go:build unix

package vmem

import "golang.org/x/sys/unix"

func protectNative(base, size uintptr, prot Protection) error {
	if err := unix.Mprotect(sliceAt(base, size), toNativeProt(prot)); err != nil {
		if err == unix.EACCES || err == unix.EPERM {
			return newErr("protect", KindAccessDenied, err)
		}
		if err == unix.ENOMEM {
			return newErr("protect", KindUnmappedRegion, err)
		}
		return newErr("protect", KindSyscall, err)
	}
	return nil
}
