//go:build unix && !darwin && !linux

package vmem

import "golang.org/x/sys/unix"

// allocNative issues mmap(2) directly via unix.Syscall rather than
// unix.Mmap, because unix.Mmap's wrapper has no way to pass an address
// hint (it always lets the kernel choose). A hint (used by AllocAt) needs
// the raw syscall form.
//
// This platform has no MAP_FIXED_NOREPLACE equivalent, so a fixed request
// is checked against the existing address space first; MAP_FIXED itself
// would silently replace a colliding mapping rather than fail.
func allocNative(hint, size uintptr, prot Protection, fixed bool) (uintptr, error) {
	if fixed {
		if err := checkFixedCollision("alloc_at", hint, size); err != nil {
			return 0, err
		}
	}
	flags := unix.MAP_PRIVATE | unix.MAP_ANON
	if fixed {
		flags |= unix.MAP_FIXED
	}
	addr, _, errno := unix.Syscall6(unix.SYS_MMAP, hint, size,
		uintptr(toNativeProt(prot)), uintptr(flags), ^uintptr(0), 0)
	if errno != 0 {
		return 0, mmapErrno(errno)
	}
	return addr, nil
}

// releaseNative issues munmap(2) directly: unix.Munmap only accepts slices
// that unix.Mmap itself returned, and allocNative bypasses unix.Mmap.
func releaseNative(base, size uintptr) error {
	if _, _, errno := unix.Syscall(unix.SYS_MUNMAP, base, size, 0); errno != 0 {
		return newErr("allocation_release", KindSyscall, errno)
	}
	return nil
}

func mmapErrno(errno unix.Errno) error {
	if errno == unix.ENOMEM {
		return newErr("alloc", KindOutOfMemory, errno)
	}
	return newErr("alloc", KindSyscall, errno)
}
