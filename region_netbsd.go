//go:build netbsd

package vmem

import (
	"encoding/binary"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

func newRegionBackend() regionBackend {
	return &lazyListBackend{enumerate: enumerateNetBSDVMMap}
}

// kinfoVmentryNetBSD mirrors NetBSD's struct kinfo_vmentry closely enough
// to decode base, size, and protection; sharing is not decoded, so these
// regions always report IsShared false. Like OpenBSD, x/sys/unix
// does not wrap this sysctl, so it is decoded by hand after a raw two-call
// sysctl(2) round trip.
type kinfoVmentryNetBSD struct {
	Start      uint64
	End        uint64
	Offset     uint64
	Type       uint32
	Flags      uint32
	Protection uint32
	MaxProt    uint32
	Advice     uint32
	WiredCount uint32
	Refcnt     uint32
	Pad        [8]byte
}

func sysctlNetBSD(mib []int32) ([]byte, error) {
	var oldlen uintptr
	_, _, errno := unix.Syscall6(unix.SYS___SYSCTL,
		uintptr(unsafe.Pointer(&mib[0])), uintptr(len(mib)),
		0, uintptr(unsafe.Pointer(&oldlen)), 0, 0)
	if errno != 0 {
		return nil, errno
	}

	buf := make([]byte, oldlen)
	_, _, errno = unix.Syscall6(unix.SYS___SYSCTL,
		uintptr(unsafe.Pointer(&mib[0])), uintptr(len(mib)),
		uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&oldlen)), 0, 0)
	if errno != 0 {
		return nil, errno
	}
	return buf[:oldlen], nil
}

func enumerateNetBSDVMMap() ([]Region, error) {
	mib := []int32{unix.CTL_KERN, unix.KERN_PROC_VMMAP, int32(os.Getpid())}

	data, err := sysctlNetBSD(mib)
	if err != nil {
		return nil, newErr("region_query", KindProcfsInput, err)
	}

	const recSize = 56
	var regions []Region
	for off := 0; off+recSize <= len(data); off += recSize {
		var kve kinfoVmentryNetBSD
		if err := binary.Read(sliceReader(data[off:off+recSize]), binary.LittleEndian, &kve); err != nil {
			return nil, newErr("region_query", KindProcfsInput, err)
		}
		regions = append(regions, Region{
			base:       uintptr(kve.Start),
			size:       uintptr(kve.End - kve.Start),
			protection: fromNativeProt(int(kve.Protection)),
		})
	}
	return regions, nil
}
