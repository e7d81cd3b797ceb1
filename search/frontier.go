package search

import (
	"container/heap"
)

// Frontier holds the nodes waiting to be expanded. Its pop order is what
// distinguishes one strategy from another.
type Frontier interface {
	Push(n *node, priority float64)
	Pop() *node
	Len() int
}

func newFrontier(s Strategy) Frontier {
	switch s {
	case BFS:
		return &queueFrontier{}
	case DFS:
		return &stackFrontier{}
	default:
		return &priorityFrontier{}
	}
}

type pqItem struct {
	n        *node
	priority float64
	seq      uint64
}

type pqItems []pqItem

func (p pqItems) Len() int { return len(p) }

// Equal priorities pop in insertion order, which keeps runs reproducible.
func (p pqItems) Less(i, j int) bool {
	if p[i].priority != p[j].priority {
		return p[i].priority < p[j].priority
	}
	return p[i].seq < p[j].seq
}

func (p pqItems) Swap(i, j int) { p[i], p[j] = p[j], p[i] }

func (p *pqItems) Push(x any) { *p = append(*p, x.(pqItem)) }

func (p *pqItems) Pop() any {
	old := *p
	n := len(old)
	it := old[n-1]
	old[n-1] = pqItem{}
	*p = old[:n-1]
	return it
}

// priorityFrontier pops the node with the lowest priority first.
type priorityFrontier struct {
	items pqItems
	seq   uint64
}

func (f *priorityFrontier) Push(n *node, priority float64) {
	heap.Push(&f.items, pqItem{n: n, priority: priority, seq: f.seq})
	f.seq++
}

func (f *priorityFrontier) Pop() *node {
	if len(f.items) == 0 {
		return nil
	}
	return heap.Pop(&f.items).(pqItem).n
}

func (f *priorityFrontier) Len() int { return len(f.items) }

// queueFrontier is FIFO. Priorities are ignored.
type queueFrontier struct {
	nodes []*node
	head  int
}

func (f *queueFrontier) Push(n *node, _ float64) {
	f.nodes = append(f.nodes, n)
}

func (f *queueFrontier) Pop() *node {
	if f.head == len(f.nodes) {
		return nil
	}
	n := f.nodes[f.head]
	f.nodes[f.head] = nil
	f.head++
	// Reclaim the consumed prefix once it dominates the slice.
	if f.head > 1024 && f.head*2 > len(f.nodes) {
		f.nodes = append([]*node(nil), f.nodes[f.head:]...)
		f.head = 0
	}
	return n
}

func (f *queueFrontier) Len() int { return len(f.nodes) - f.head }

// stackFrontier is LIFO. Priorities are ignored.
type stackFrontier struct {
	nodes []*node
}

func (f *stackFrontier) Push(n *node, _ float64) {
	f.nodes = append(f.nodes, n)
}

func (f *stackFrontier) Pop() *node {
	if len(f.nodes) == 0 {
		return nil
	}
	n := f.nodes[len(f.nodes)-1]
	f.nodes[len(f.nodes)-1] = nil
	f.nodes = f.nodes[:len(f.nodes)-1]
	return n
}

func (f *stackFrontier) Len() int { return len(f.nodes) }
