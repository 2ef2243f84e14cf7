//go:build unix && !linux

package vmem

// checkFixedCollision reports whether any page in [hint, hint+size) is
// already mapped. POSIX mmap's MAP_FIXED does not fail on overlap, it
// silently unmaps whatever is there and succeeds, so platforms without a
// NOREPLACE-style flag (everything here except Linux) must check first and
// refuse instead of clobbering an existing mapping.
//
// This uses QueryIter directly rather than QueryRange: QueryRange demands
// gapless full coverage and fails on a partial overlap too, but a partial
// overlap is exactly the case that must be caught here, so any region
// returned at all (full or partial) is a collision.
func checkFixedCollision(op string, hint, size uintptr) error {
	it := QueryIter(hint, size)
	if it.Next() {
		return newErr(op, KindInvalidMapping, nil)
	}
	if err := it.Err(); err != nil {
		return err
	}
	return nil
}
