package vmem

// Protect changes the protection of every page in
// [floor(addr), ceil(addr+len)) to prot uniformly. The OS call is issued
// once over the full range; atomicity across pages is not guaranteed.
func Protect(addr, length uintptr, prot Protection) error {
	pr, err := RangeToPageRange(addr, length)
	if err != nil {
		return err
	}
	return protectNative(pr.Base, pr.Size, prot)
}

// protectSegment is a (range, prior protection) tuple captured before
// applying a new protection over a range with heterogeneous existing
// protection.
type protectSegment struct {
	base uintptr
	size uintptr
	prot Protection
}

// ProtectGuard owns the obligation to restore a previously observed
// per-page protection map over a range. Close re-applies the recorded
// segments in order; a restoration failure is swallowed (logged) rather
// than surfaced.
type ProtectGuard struct {
	segments []protectSegment
	closed   bool
}

// Close restores every recorded segment to its prior protection. It is
// idempotent and infallible from the caller's point of view: any
// underlying syscall failure is logged and otherwise discarded.
func (g *ProtectGuard) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	for _, seg := range g.segments {
		if err := protectNative(seg.base, seg.size, seg.prot); err != nil {
			logDropError("protect_guard_close", err)
		}
	}
	return nil
}

// ProtectWithHandle changes the protection of [addr, addr+length) to prot
// and returns a guard that restores the exact prior per-page protection on
// Close:
//
//  1. normalize the range to page boundaries
//  2. snapshot the existing heterogeneous protection as an ordered list of
//     (intersection, observed protection) segments
//  3. apply prot uniformly
//  4. return a guard owning the snapshot
func ProtectWithHandle(addr, length uintptr, prot Protection) (*ProtectGuard, error) {
	pr, err := RangeToPageRange(addr, length)
	if err != nil {
		return nil, err
	}

	segments, err := snapshotProtection(pr)
	if err != nil {
		return nil, err
	}

	if err := protectNative(pr.Base, pr.Size, prot); err != nil {
		return nil, err
	}

	// A segment already at the about-to-be-applied protection need not
	// be restored on Close.
	filtered := segments[:0]
	for _, seg := range segments {
		if seg.prot != prot {
			filtered = append(filtered, seg)
		}
	}

	return &ProtectGuard{segments: filtered}, nil
}

// snapshotProtection enumerates the regions intersecting pr and records
// one segment per intersection, in ascending base order. A
// reserved-but-uncommitted Windows region intersecting the range fails the
// whole capture with KindUnmappedRegion, rather than being silently
// skipped.
func snapshotProtection(pr PageRange) ([]protectSegment, error) {
	it := QueryIter(pr.Base, pr.Size)
	var segments []protectSegment
	for it.Next() {
		r := it.Region()
		if !r.IsCommitted() {
			return nil, newErr("protect_with_handle", KindUnmappedRegion, nil)
		}
		base, end := intersect(r.Base(), r.End(), pr.Base, pr.End())
		if end <= base {
			continue
		}
		segments = append(segments, protectSegment{base: base, size: end - base, prot: r.Protection()})
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, newErr("protect_with_handle", KindUnmappedRegion, nil)
	}
	return segments, nil
}

func intersect(aBase, aEnd, bBase, bEnd uintptr) (uintptr, uintptr) {
	base := aBase
	if bBase > base {
		base = bBase
	}
	end := aEnd
	if bEnd < end {
		end = bEnd
	}
	return base, end
}
