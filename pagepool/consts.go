package pagepool

import "time"

// Ratios governing the pool's growth and shrink steps.
const (
	InitialAllocationRatio = 0.20 // 20% of maxBlocks for initial allocation
	ExpansionRatio         = 0.10 // Expand by 10% of maxBlocks
	ShrinkRatio            = 0.10 // Shrink by 10% of maxBlocks
	ShrinkThreshold        = 0.50 // Shrink when available blocks exceed 50% of maxBlocks

	expansionThreshold = 0.80 // Expand when usage exceeds 80% of allocated blocks

	idleCheckInterval = 5 * time.Second
	defaultGetTimeout = 5 * time.Second
)

// ShrinkTimeout is how long the pool must stay idle, per the shrink
// criteria, before it actually shrinks.
var ShrinkTimeout = 1 * time.Minute
