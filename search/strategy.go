package search

import (
	"fmt"
	"strings"
)

// Strategy selects the frontier ordering of the search.
type Strategy int

const (
	// AStar orders by heuristic score plus depth.
	AStar Strategy = iota
	// Greedy orders by heuristic score alone.
	Greedy
	// BFS explores level by level and finds the shortest solution.
	BFS
	// DFS explores one branch at a time, up to a depth bound.
	DFS
)

var strategyNames = map[Strategy]string{
	AStar:  "astar",
	Greedy: "greedy",
	BFS:    "bfs",
	DFS:    "dfs",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy accepts the names printed by String, plus a few aliases.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "astar", "a*", "a-star":
		return AStar, nil
	case "greedy", "gbfs", "best-first":
		return Greedy, nil
	case "bfs", "breadth-first":
		return BFS, nil
	case "dfs", "depth-first":
		return DFS, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// AllStrategies lists every strategy, in a stable order.
func AllStrategies() []Strategy {
	return []Strategy{AStar, Greedy, BFS, DFS}
}
