//go:build darwin

package vmem

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// mapJit is MAP_JIT (sys/mman.h), not exposed by golang.org/x/sys/unix on
// darwin.
const mapJit = 0x0800

// allocNative mirrors the generic POSIX path but sets MAP_JIT whenever the
// requested protection is a superset of ReadWriteExecute on Apple Silicon
// (arm64 refuses RWX mappings without it).
//
// Darwin has no MAP_FIXED_NOREPLACE equivalent, so a fixed request is
// checked against the existing address space first; MAP_FIXED itself
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
	if runtime.GOARCH == "arm64" && prot.Has(ReadWriteExecute) {
		flags |= mapJit
	}
	addr, _, errno := unix.Syscall6(unix.SYS_MMAP, hint, size,
		uintptr(toNativeProt(prot)), uintptr(flags), ^uintptr(0), 0)
	if errno != 0 {
		return 0, mmapErrno(errno)
	}
	return addr, nil
}

func releaseNative(base, size uintptr) error {
	if err := unix.Munmap(sliceAt(base, size)); err != nil {
		return newErr("allocation_release", KindSyscall, err)
	}
	return nil
}

func mmapErrno(errno unix.Errno) error {
	if errno == unix.ENOMEM {
		return newErr("alloc", KindOutOfMemory, errno)
	}
	return newErr("alloc", KindSyscall, errno)
}
