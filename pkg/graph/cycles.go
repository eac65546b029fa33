package graph

import "slices"

// Colors for the cycle-detection DFS.
const (
	white = iota // unvisited
	gray         // on the current DFS path
	black        // fully explored
)

// FindCycles enumerates dependency cycles using a depth-first search over
// deps edges with three-color marking. Roots are visited in ascending ID
// order so output is reproducible. Each cycle is the DFS path from the first
// occurrence of the repeated node to the current node, with the repeated
// node appended: A->B->A reports ["A", "B", "A"].
//
// Edges to dangling IDs are skipped. The same structural cycle may be
// reported more than once when it is reachable from multiple DFS roots; no
// global deduplication is performed. A self-dependency reports as a one-node
// cycle ["A", "A"].
func (g *Graph) FindCycles() [][]string {
	color := make(map[string]int, len(g.tickets))
	var cycles [][]string
	var path []string

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		path = append(path, node)

		for _, dep := range g.blockersOf[node] {
			if _, ok := g.tickets[dep]; !ok {
				continue // dangling reference
			}
			switch color[dep] {
			case gray:
				start := slices.Index(path, dep)
				cycle := append(slices.Clone(path[start:]), dep)
				cycles = append(cycles, cycle)
			case white:
				dfs(dep)
			}
		}

		path = path[:len(path)-1]
		color[node] = black
	}

	for _, id := range g.ids() {
		if color[id] == white {
			dfs(id)
		}
	}

	return cycles
}

// HasCycle reports whether any dependency cycle exists.
func (g *Graph) HasCycle() bool {
	return len(g.FindCycles()) > 0
}
