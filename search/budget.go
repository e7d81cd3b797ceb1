package search

import (
	"time"

	"github.com/pbnjay/memory"
)

// DefaultDFSDepth bounds depth-first search when no depth is given.
const DefaultDFSDepth = 50

// approxNodeSize is a rough upper bound on the memory held per visited
// state: the node, its board copy and its visited-set entry.
const approxNodeSize = 1024

// Budget bounds a search. Zero values mean "no limit". MaxDepth only
// applies to DFS, where zero falls back to DefaultDFSDepth.
type Budget struct {
	MaxTime  time.Duration
	MaxNodes uint64
	MaxDepth int
}

func (b Budget) resolve(s Strategy) Budget {
	switch {
	case s != DFS:
		b.MaxDepth = 0
	case b.MaxDepth <= 0:
		b.MaxDepth = DefaultDFSDepth
	}
	return b
}

// DefaultMaxNodes derives a node budget from the machine's memory, so that
// the visited states use at most a fraction of it.
func DefaultMaxNodes(fractionOfMemory float64) uint64 {
	totalMem := memory.TotalMemory()
	if totalMem == 0 {
		// Unknown platform; pick something that fits in a few GB.
		return 1 << 22
	}
	return uint64(fractionOfMemory * float64(totalMem) / approxNodeSize)
}
