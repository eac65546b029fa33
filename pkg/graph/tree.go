package graph

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// maxFallbackRoots caps the number of starting points when no dep-free
// ticket exists (typically because every ticket sits on a cycle), so the
// forest view stays bounded instead of failing.
const maxFallbackRoots = 5

// FormatTree renders the dependency tree rooted at rootID as prefix-drawn
// ASCII art. Each line shows the ticket's ID, status, and title; children
// are the ticket's dependents (the tickets it blocks), sorted by ID:
//
//	└── bg-a1b2c3 [open] Implement auth
//	    ├── bg-d4e5f6 [closed] Design auth flow
//	    └── bg-g7h8i9 [open] Set up JWT library
//	        └── bg-j0k1l2 [closed] Research JWT options
//
// With an empty rootID, every root ticket (a ticket with no deps of its own)
// becomes a tree, sorted by ID. If no dep-free ticket exists, the first
// maxFallbackRoots IDs are used instead.
//
// A node revisited on the same downward path renders as a terminal "(cycle)"
// marker; an ID with no ticket record renders as "(not found)". FormatTree
// never fails: the empty graph renders as an empty string.
func (g *Graph) FormatTree(rootID string) string {
	if rootID != "" {
		return g.subtree(rootID, "", true, nil)
	}

	var roots []string
	for id := range g.tickets {
		if len(g.blockersOf[id]) == 0 {
			roots = append(roots, id)
		}
	}

	if len(roots) == 0 {
		// Every ticket has deps (cycles). Bounded arbitrary starting points.
		roots = g.ids()
		if len(roots) > maxFallbackRoots {
			roots = roots[:maxFallbackRoots]
		}
	}
	slices.Sort(roots)

	lines := make([]string, 0, len(roots))
	for _, root := range roots {
		lines = append(lines, g.subtree(root, "", true, nil))
	}
	return strings.Join(lines, "\n")
}

// subtree recursively renders one node and its dependents. The visited set
// is copied per path (not shared globally), so a ticket reachable through
// two independent branches renders fully in both; only a revisit on the same
// downward path is cut with a "(cycle)" marker.
func (g *Graph) subtree(id, prefix string, isLast bool, visited map[string]bool) string {
	connector := "├── "
	if isLast {
		connector = "└── "
	}

	t, ok := g.tickets[id]
	if !ok {
		return fmt.Sprintf("%s%s%s (not found)", prefix, connector, id)
	}
	if visited[id] {
		return fmt.Sprintf("%s%s%s (cycle)", prefix, connector, id)
	}

	pathVisited := maps.Clone(visited)
	if pathVisited == nil {
		pathVisited = make(map[string]bool)
	}
	pathVisited[id] = true

	node := fmt.Sprintf("%s%s%s [%s] %s", prefix, connector, id, t.Status, t.Title)

	children := slices.Sorted(slices.Values(g.blockedBy[id]))
	if len(children) == 0 {
		return node
	}

	childPrefix := prefix + "│   "
	if isLast {
		childPrefix = prefix + "    "
	}

	lines := []string{node}
	for i, child := range children {
		lines = append(lines, g.subtree(child, childPrefix, i == len(children)-1, pathVisited))
	}
	return strings.Join(lines, "\n")
}
