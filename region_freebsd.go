//go:build freebsd

package vmem

import (
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

func newRegionBackend() regionBackend {
	return &lazyListBackend{enumerate: enumerateFreeBSDVMMap}
}

// enumerateFreeBSDVMMap is the Go analogue of libutil's kinfo_getvmmap: a
// single sysctl(kern.proc.vmmap.<pid>) round trip returning a packed array
// of variable-length kinfo_vmentry records.
func enumerateFreeBSDVMMap() ([]Region, error) {
	data, err := unix.SysctlRaw("kern.proc.vmmap", os.Getpid())
	if err != nil {
		return nil, newErr("region_query", KindProcfsInput, err)
	}

	var regions []Region
	for len(data) > 0 {
		if len(data) < int(unsafe.Sizeof(unix.KinfoVmentry{})) {
			break
		}
		var kve unix.KinfoVmentry
		if err := binary.Read(sliceReader(data), binary.LittleEndian, &kve); err != nil {
			return nil, newErr("region_query", KindProcfsInput, err)
		}
		structSize := int(kve.Structsize)
		if structSize <= 0 || structSize > len(data) {
			return nil, newErr("region_query", KindProcfsInput, fmt.Errorf("kinfo_vmentry: bad structsize %d", structSize))
		}

		regions = append(regions, Region{
			base:       uintptr(kve.Start),
			size:       uintptr(kve.End - kve.Start),
			protection: fromNativeProt(int(kve.Protection)),
			shared:     kve.Type == unix.KVME_TYPE_SHARED,
			guarded:    kve.Flags&unix.KVME_FLAG_GUARD != 0,
		})

		data = data[structSize:]
	}
	return regions, nil
}
