package vmem

// coalesce merges adjacent regions (same end/base boundary) that share
// identical protection, sharing, guard, and commit characterization.
// regions must already be sorted by base address.
func coalesce(regions []Region) []Region {
	if len(regions) == 0 {
		return regions
	}
	out := regions[:1]
	for _, r := range regions[1:] {
		last := &out[len(out)-1]
		if last.End() == r.base && sameCharacterization(*last, r) {
			last.size += r.size
			continue
		}
		out = append(out, r)
	}
	return out
}

func sameCharacterization(a, b Region) bool {
	return a.protection == b.protection &&
		a.shared == b.shared &&
		a.guarded == b.guarded &&
		a.reserved == b.reserved
}

// listBackend implements regionBackend over an eagerly-enumerated,
// coalesced, base-sorted slice of regions. Linux and the BSD/Illumos
// backends, whose underlying OS sources (/proc/self/maps, a sysctl
// round-trip, /proc/self/xmap) must be read in full anyway, build one of
// these; Windows and Darwin enumerate truly incrementally instead (see
// region_windows.go, region_darwin.go).
type listBackend struct {
	regions []Region
	idx     int
}

func newListBackend(regions []Region) *listBackend {
	return &listBackend{regions: coalesce(regions)}
}

func (b *listBackend) next(cursor, limit uintptr) (*Region, uintptr, error) {
	for b.idx < len(b.regions) {
		r := b.regions[b.idx]
		b.idx++
		if r.End() <= cursor {
			continue // entirely before the window; skip without yielding
		}
		if r.base >= limit {
			return nil, cursor, nil // first region beyond the window ends iteration
		}
		return &r, r.End(), nil
	}
	return nil, cursor, nil
}

// bytesReader adapts a byte slice for encoding/binary.Read without the
// extra allocation bytes.NewReader's interface boxing would add; used by
// the BSD/Illumos fixed-layout kinfo_vmentry/prxmap_t decoders.
type bytesReader struct {
	b   []byte
	off int
}

func sliceReader(b []byte) *bytesReader { return &bytesReader{b: b} }

func (r *bytesReader) Read(p []byte) (int, error) {
	n := copy(p, r.b[r.off:])
	r.off += n
	return n, nil
}
