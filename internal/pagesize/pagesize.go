// Package pagesize caches the process-wide OS page size.
//
// The size is a process lifetime constant. It is queried from the OS at
// most once: the first caller (of however many race to get there) wins the
// query and every caller, first or not, observes the same value afterwards.
package pagesize

import (
	"sync"
	"sync/atomic"
)

var (
	once  sync.Once
	value atomic.Uint64
)

// Get returns the process page size in bytes, querying the OS on first
// call and caching the result for the remaining lifetime of the process.
//
// Concurrent first callers all block on the same sync.Once; exactly one of
// them performs queryOS, and every caller (the winner and every loser
// alike) reads the same published value back out of the atomic afterwards.
func Get() uint64 {
	once.Do(func() {
		value.Store(queryOS())
	})
	return value.Load()
}
