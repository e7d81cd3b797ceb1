package search

import (
	"testing"

	"github.com/matryer/is"
)

func TestPriorityFrontier(t *testing.T) {
	is := is.New(t)
	f := newFrontier(AStar)
	a, b, c, d := &node{depth: 1}, &node{depth: 2}, &node{depth: 3}, &node{depth: 4}
	f.Push(a, 5)
	f.Push(b, 1)
	f.Push(c, 5)
	f.Push(d, -2)
	is.Equal(f.Len(), 4)
	is.Equal(f.Pop(), d)
	is.Equal(f.Pop(), b)
	// Ties come out in insertion order.
	is.Equal(f.Pop(), a)
	is.Equal(f.Pop(), c)
	is.True(f.Pop() == nil)
}

func TestQueueFrontier(t *testing.T) {
	is := is.New(t)
	f := newFrontier(BFS)
	nodes := make([]*node, 3000)
	for i := range nodes {
		nodes[i] = &node{depth: i}
		f.Push(nodes[i], float64(-i))
	}
	for i := range nodes {
		is.Equal(f.Pop(), nodes[i])
		is.Equal(f.Len(), len(nodes)-i-1)
	}
	is.True(f.Pop() == nil)
}

func TestStackFrontier(t *testing.T) {
	is := is.New(t)
	f := newFrontier(DFS)
	a, b := &node{}, &node{depth: 1}
	f.Push(a, 0)
	f.Push(b, 100)
	is.Equal(f.Pop(), b)
	is.Equal(f.Pop(), a)
	is.Equal(f.Len(), 0)
}
