// Package pagepool is a fixed-block-size pooling allocator built on top of
// package vmem's Alloc/Allocation: a buffered-channel handoff between
// callers and a background loop that expands the pool under sustained
// pressure and shrinks it back once idle.
package pagepool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/vmemgo/vmem"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config holds the fixed parameters of a Pool.
type Config struct {
	BlockSize int
	MaxBlocks int
}

// Pool manages a scaling pool of fixed-size, ReadWrite-protected blocks.
type Pool struct {
	blockSize         int
	maxBlockCount     int
	initialBlockCount int

	mu                    sync.Mutex
	currentAllocatedCount int
	allMappedBlocks       map[uintptr]*Block
	lastExpansionTime     time.Time

	available chan *Block
	returned  chan *Block

	group  *errgroup.Group
	cancel context.CancelFunc

	logger *zap.Logger
}

// New creates and initializes a Pool, eagerly allocating
// InitialAllocationRatio of cfg.MaxBlocks blocks.
func New(cfg Config) (*Pool, error) {
	if cfg.BlockSize <= 0 || cfg.MaxBlocks <= 0 {
		return nil, fmt.Errorf("pagepool: block size and max block count must be positive")
	}

	initial := int(float64(cfg.MaxBlocks) * InitialAllocationRatio)
	if initial == 0 {
		initial = 1
	}
	if initial > cfg.MaxBlocks {
		initial = cfg.MaxBlocks
	}

	p := &Pool{
		blockSize:         cfg.BlockSize,
		maxBlockCount:     cfg.MaxBlocks,
		initialBlockCount: initial,
		allMappedBlocks:   make(map[uintptr]*Block),
		available:         make(chan *Block, cfg.MaxBlocks),
		returned:          make(chan *Block, cfg.MaxBlocks),
		logger:            zap.NewNop(),
	}

	if _, err := p.allocateBlocks(initial); err != nil {
		return nil, fmt.Errorf("pagepool: failed to pre-allocate initial blocks: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	g, gctx := errgroup.WithContext(ctx)
	p.group = g
	g.Go(func() error { return p.handleReturnedBlocks(gctx) })
	g.Go(func() error { return p.monitorAndScale(gctx) })

	return p, nil
}

// SetLogger overrides the pool's diagnostic logger.
func (p *Pool) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	p.logger = l
}

// Stats returns (allocated, available, pending) block counts.
func (p *Pool) Stats() (allocated, available, pending int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentAllocatedCount, len(p.available), len(p.returned)
}

// Get blocks until a block is available or ctx is done.
func (p *Pool) Get(ctx context.Context) (*Block, error) {
	select {
	case b := <-p.available:
		return b, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("pagepool: timed out waiting for a block: %w", ctx.Err())
	}
}

// GetDefault is Get with a fixed defaultGetTimeout deadline, for callers
// that do not want to plumb their own context.
func (p *Pool) GetDefault() (*Block, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultGetTimeout)
	defer cancel()
	return p.Get(ctx)
}

// Put returns a block to the pool. The block must have been obtained from
// this Pool's Get.
func (p *Pool) Put(b *Block) error {
	if b == nil {
		return fmt.Errorf("pagepool: cannot return a nil block")
	}
	p.mu.Lock()
	_, ok := p.allMappedBlocks[b.addr()]
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("pagepool: attempted to return an unknown block at %#x", b.addr())
	}

	select {
	case p.returned <- b:
		return nil
	default:
		return fmt.Errorf("pagepool: returned-block channel full, block at %#x dropped", b.addr())
	}
}

// Close stops the background scaling loop and releases every outstanding
// allocation via a drain-then-unmap sequence.
func (p *Pool) Close() error {
	p.cancel()
	groupErr := p.group.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	drain := func(ch chan *Block) {
		for {
			select {
			case b := <-ch:
				p.allMappedBlocks[b.addr()] = b
			default:
				return
			}
		}
	}
	drain(p.available)
	drain(p.returned)

	for addr, b := range p.allMappedBlocks {
		if err := b.alloc.Release(); err != nil {
			p.logger.Warn("pagepool: release failed during close", zap.Uintptr("addr", addr), zap.Error(err))
		}
	}
	p.allMappedBlocks = make(map[uintptr]*Block)
	p.currentAllocatedCount = 0

	return groupErr
}

// allocateBlocks must be called with p.mu unlocked; it locks internally.
func (p *Pool) allocateBlocks(count int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := 0
	for ; i < count; i++ {
		if p.currentAllocatedCount >= p.maxBlockCount {
			return i, nil
		}
		alloc, err := vmem.Alloc(uintptr(p.blockSize), vmem.ReadWrite)
		if err != nil {
			return i, fmt.Errorf("pagepool: alloc failed for block %d: %w", i, err)
		}
		b := &Block{bytes: alloc.Bytes()[:p.blockSize:p.blockSize], alloc: alloc}

		select {
		case p.available <- b:
			p.allMappedBlocks[b.addr()] = b
			p.currentAllocatedCount++
		default:
			alloc.Release()
			return i, fmt.Errorf("pagepool: available channel full during allocation")
		}
	}
	return i, nil
}

func (p *Pool) deallocateBlocks(count int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := 0
	for ; i < count; i++ {
		if p.currentAllocatedCount <= p.initialBlockCount {
			return i, nil
		}
		select {
		case b := <-p.available:
			if _, ok := p.allMappedBlocks[b.addr()]; !ok {
				continue
			}
			if err := b.alloc.Release(); err != nil {
				p.available <- b
				return i, fmt.Errorf("pagepool: release failed for block at %#x: %w", b.addr(), err)
			}
			delete(p.allMappedBlocks, b.addr())
			p.currentAllocatedCount--
		default:
			return i, nil
		}
	}
	return i, nil
}

func (p *Pool) handleReturnedBlocks(ctx context.Context) error {
	for {
		select {
		case b := <-p.returned:
			select {
			case p.available <- b:
			default:
				if err := b.alloc.Release(); err != nil {
					p.logger.Warn("pagepool: release failed for excess returned block", zap.Error(err))
				}
				p.mu.Lock()
				delete(p.allMappedBlocks, b.addr())
				p.currentAllocatedCount--
				p.mu.Unlock()
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// monitorAndScale runs for the lifetime of the pool: a ticker drives usage
// sampling and expansion decisions, an idle timer drives shrink decisions.
// Expansion retries transient allocation failures with bounded backoff.
func (p *Pool) monitorAndScale(ctx context.Context) error {
	ticker := time.NewTicker(idleCheckInterval)
	defer ticker.Stop()

	idleTimer := time.NewTimer(ShrinkTimeout)
	idleTimer.Stop()
	idleArmed := false

	for {
		select {
		case <-ticker.C:
			p.mu.Lock()
			available := len(p.available)
			allocated := p.currentAllocatedCount
			p.mu.Unlock()

			usage := 0.0
			if allocated > 0 {
				usage = float64(allocated-available) / float64(allocated)
			}
			availablePct := float64(available) / float64(p.maxBlockCount)

			if usage >= expansionThreshold && allocated < p.maxBlockCount {
				if err := p.expandWithRetry(); err != nil {
					p.logger.Warn("pagepool: expansion failed", zap.Error(err))
				}
				resetTimer(idleTimer, ShrinkTimeout)
				idleArmed = true
			} else if availablePct > ShrinkThreshold && allocated > p.initialBlockCount {
				if !idleArmed {
					resetTimer(idleTimer, ShrinkTimeout)
					idleArmed = true
				}
			} else {
				stopTimer(idleTimer)
				idleArmed = false
			}

		case <-idleTimer.C:
			idleArmed = false
			p.mu.Lock()
			available := len(p.available)
			allocated := p.currentAllocatedCount
			availablePct := float64(available) / float64(p.maxBlockCount)
			p.mu.Unlock()

			if availablePct > ShrinkThreshold && allocated > p.initialBlockCount {
				toFree := int(float64(p.maxBlockCount) * ShrinkRatio)
				if toFree == 0 {
					toFree = 1
				}
				if allocated-toFree < p.initialBlockCount {
					toFree = allocated - p.initialBlockCount
				}
				if toFree > 0 {
					if _, err := p.deallocateBlocks(toFree); err != nil {
						p.logger.Warn("pagepool: shrink failed", zap.Error(err))
					}
				}
			}

		case <-ctx.Done():
			stopTimer(idleTimer)
			return nil
		}
	}
}

func (p *Pool) expandWithRetry() error {
	p.mu.Lock()
	allocated := p.currentAllocatedCount
	p.mu.Unlock()

	toAllocate := int(float64(p.maxBlockCount) * ExpansionRatio)
	if toAllocate == 0 {
		toAllocate = 1
	}
	if allocated+toAllocate > p.maxBlockCount {
		toAllocate = p.maxBlockCount - allocated
	}
	if toAllocate <= 0 {
		return nil
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	return backoff.Retry(func() error {
		_, err := p.allocateBlocks(toAllocate)
		return err
	}, bo)
}

func resetTimer(t *time.Timer, d time.Duration) {
	stopTimer(t)
	t.Reset(d)
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
