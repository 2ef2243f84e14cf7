package vmem

// Region is an immutable descriptor of a maximal run of contiguous pages
// sharing identical protection, sharing, guard, and commit status.
type Region struct {
	base       uintptr
	size       uintptr
	protection Protection
	shared     bool
	guarded    bool
	reserved   bool
}

// Base returns the page-aligned base address of the region.
func (r Region) Base() uintptr { return r.base }

// Len returns the region size in bytes, a positive multiple of the page
// size.
func (r Region) Len() uintptr { return r.size }

// End returns the exclusive end address of the region.
func (r Region) End() uintptr { return r.base + r.size }

// AsRange returns the region's half-open byte range as (base, end).
func (r Region) AsRange() (uintptr, uintptr) { return r.base, r.End() }

// Protection returns the region's current protection bitset.
func (r Region) Protection() Protection { return r.protection }

// IsShared reports whether the region is backed by a shared mapping.
func (r Region) IsShared() bool { return r.shared }

// IsGuarded reports whether the region is a guard page.
func (r Region) IsGuarded() bool { return r.guarded }

// IsCommitted reports whether the region is committed (always true
// outside Windows, where reserved-but-uncommitted address space is
// possible).
func (r Region) IsCommitted() bool { return !r.reserved }

// Query returns the single region containing the page at addr. It fails
// with KindUnmappedRegion if that page is not mapped.
func Query(addr uintptr) (Region, error) {
	it := QueryIter(addr, 1)
	if !it.Next() {
		if err := it.Err(); err != nil {
			return Region{}, err
		}
		return Region{}, newErr("query", KindUnmappedRegion, nil)
	}
	return it.Region(), nil
}

// QueryRange eagerly collects and returns the full sequence of regions
// covering [addr, addr+length). The backend yields only mapped regions and
// silently skips any hole, so QueryRange itself checks that the returned
// regions gaplessly cover the whole requested range: the first region must
// start at or before the range's base, each next region must start exactly
// where the previous one ended, and the last must reach or pass the range's
// end. Regions keep their true extents and are not clipped. Fails with
// KindUnmappedRegion if any page in the range is unmapped, including the
// case where none of it is.
func QueryRange(addr, length uintptr) ([]Region, error) {
	pr, err := RangeToPageRange(addr, length)
	if err != nil {
		return nil, err
	}
	it := QueryIter(addr, length)
	var regions []Region
	for it.Next() {
		regions = append(regions, it.Region())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	if len(regions) == 0 || regions[0].Base() > pr.Base {
		return nil, newErr("query_range", KindUnmappedRegion, nil)
	}
	for i := 1; i < len(regions); i++ {
		if regions[i].Base() != regions[i-1].End() {
			return nil, newErr("query_range", KindUnmappedRegion, nil)
		}
	}
	if regions[len(regions)-1].End() < pr.End() {
		return nil, newErr("query_range", KindUnmappedRegion, nil)
	}
	return regions, nil
}

// RegionIter is a lazy, forward-only, non-restartable sequence of regions
// covering a queried address range. Shaped like bufio.Scanner/
// database/sql.Rows: call Next until it returns false, then check Err.
//
// The iterator cannot snapshot the address space (mappings may change
// between successive Next calls from any thread, this one included). It is
// robust against holes (a page it already enumerated being freed by
// another thread) in the sense that it will not crash, but its sequence
// may then skip or include stale entries.
type RegionIter struct {
	backend regionBackend
	cursor  uintptr
	limit   uintptr
	current Region
	err     error
	done    bool
}

// QueryIter returns a lazy iterator over the regions covering
// [addr, addr+length).
func QueryIter(addr, length uintptr) *RegionIter {
	pr, err := RangeToPageRange(addr, length)
	if err != nil {
		return &RegionIter{err: err, done: true}
	}
	return &RegionIter{
		backend: newRegionBackend(),
		cursor:  pr.Base,
		limit:   pr.End(),
	}
}

// Next advances the iterator and reports whether a region is available.
// It returns false both at end of range and on error; call Err to
// distinguish the two.
func (it *RegionIter) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	if it.cursor >= it.limit {
		it.done = true
		return false
	}
	region, next, err := it.backend.next(it.cursor, it.limit)
	if err != nil {
		it.err = err
		it.done = true
		return false
	}
	if region == nil {
		it.done = true
		return false
	}
	it.current = *region
	it.cursor = next
	return true
}

// Region returns the region produced by the most recent successful Next
// call.
func (it *RegionIter) Region() Region { return it.current }

// Err returns the error, if any, that stopped iteration.
func (it *RegionIter) Err() error { return it.err }

// regionBackend is the capability every per-OS region source must
// implement: "yield the next region at or after cursor, not exceeding
// limit" and nothing else.
type regionBackend interface {
	// next returns the next mapped region at or after cursor. It returns
	// a nil region (no error) once no further region begins before
	// limit. The returned nextCursor is where the next call should
	// resume from.
	next(cursor, limit uintptr) (region *Region, nextCursor uintptr, err error)
}
