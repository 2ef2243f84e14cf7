package pagepool

import "github.com/vmemgo/vmem"

// Block is a pool-managed []byte backed by one page-aligned vmem.Allocation.
// Blocks are never partially released: a Block's lifetime is tied to the
// Pool that handed it out.
type Block struct {
	bytes []byte
	alloc *vmem.Allocation
}

// Bytes returns the block's backing slice, len(size) == cap(size) == the
// pool's configured block size.
func (b *Block) Bytes() []byte { return b.bytes }

func (b *Block) addr() uintptr {
	if b.alloc == nil {
		return 0
	}
	return b.alloc.Base()
}
