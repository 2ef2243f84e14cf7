//go:build openbsd

package vmem

import (
	"encoding/binary"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

func newRegionBackend() regionBackend {
	return &lazyListBackend{enumerate: enumerateOpenBSDVMMap}
}

// kinfoVmentryOpenBSD mirrors OpenBSD's struct kinfo_vmentry (sys/sysctl.h)
// closely enough to decode base, size, and protection; sharing is not
// decoded, so these regions always report IsShared false. x/sys/unix does
// not wrap this sysctl, so the record is decoded by hand.
type kinfoVmentryOpenBSD struct {
	Start       uint64
	End         uint64
	Offset      uint64
	VnodeSize   uint64
	Flags       uint32
	Type        uint32
	Protection  uint32
	MaxProt     uint32
	Inheritance uint32
	WiredCount  uint32
	Refcnt      uint32
	Advice      uint32
	Pad         [8]byte
}

// sysctlVMMap performs the classic two-call sysctl(2) pattern: a first
// call with a nil buffer returns the needed length via oldlenp, a second
// call fills a buffer of that size. KERN_PROC_VMMAP has no dotted name on
// OpenBSD, so the numeric mib is issued directly.
func sysctlVMMap(mib []int32) ([]byte, error) {
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

func enumerateOpenBSDVMMap() ([]Region, error) {
	mib := []int32{unix.CTL_KERN, unix.KERN_PROC_VMMAP, int32(os.Getpid())}

	data, err := sysctlVMMap(mib)
	if err != nil {
		return nil, newErr("region_query", KindProcfsInput, err)
	}

	const recSize = 64 // sizeof(kinfoVmentryOpenBSD), padded to the kernel's record stride
	var regions []Region
	for off := 0; off+recSize <= len(data); off += recSize {
		var kve kinfoVmentryOpenBSD
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
