//go:build linux

package vmem

import "golang.org/x/sys/unix"

// allocNative issues mmap(2) directly via unix.Syscall rather than
// unix.Mmap, because unix.Mmap's wrapper has no way to pass an address
// hint (it always lets the kernel choose). A hint (used by AllocAt) needs
// the raw syscall form.
//
// A fixed request uses MAP_FIXED_NOREPLACE (since Linux 4.17) rather than
// plain MAP_FIXED: it fails with EEXIST on overlap instead of silently
// replacing whatever mapping is already there.
func allocNative(hint, size uintptr, prot Protection, fixed bool) (uintptr, error) {
	flags := unix.MAP_PRIVATE | unix.MAP_ANON
	if fixed {
		flags |= unix.MAP_FIXED_NOREPLACE
	}
	addr, _, errno := unix.Syscall6(unix.SYS_MMAP, hint, size,
		uintptr(toNativeProt(prot)), uintptr(flags), ^uintptr(0), 0)
	if errno != 0 {
		if fixed && errno == unix.EEXIST {
			return 0, newErr("alloc_at", KindInvalidMapping, nil)
		}
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
