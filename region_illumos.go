//go:build illumos || solaris

package vmem

import (
	"encoding/binary"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

func newRegionBackend() regionBackend {
	return &lazyListBackend{enumerate: enumerateIllumosXMap}
}

// prxmapEntry mirrors illumos's prxmap_t (sys/procfs.h): a fixed-size
// binary record, one per mapped segment, read wholesale from
// /proc/self/xmap.
type prxmapEntry struct {
	Offset     uint64
	Addr       uint64
	Size       uint64
	PathName   [64]byte
	Flags      uint32
	Pagesize   int32
	Shmid      int32
	Pad0       int32
	Protection uint32
	Pad1       uint32
}

const prxmapEntrySize = 112 // sizeof(prxmap_t) on LP64 illumos

func enumerateIllumosXMap() ([]Region, error) {
	f, err := os.Open("/proc/self/xmap")
	if err != nil {
		return nil, newErr("region_query", KindProcfsInput, err)
	}
	defer f.Close()

	var regions []Region
	buf := make([]byte, prxmapEntrySize)
	for {
		if _, err := io.ReadFull(f, buf); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, newErr("region_query", KindProcfsInput, err)
		}
		var e prxmapEntry
		if err := binary.Read(sliceReader(buf), binary.LittleEndian, &e); err != nil {
			return nil, newErr("region_query", KindProcfsInput, err)
		}
		regions = append(regions, Region{
			base:       uintptr(e.Addr),
			size:       uintptr(e.Size),
			protection: fromNativeProt(int(e.Protection)),
			shared:     e.Flags&uint32(unix.MAP_SHARED) != 0,
		})
	}
	return regions, nil
}
