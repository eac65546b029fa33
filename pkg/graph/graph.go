// Package graph implements the dependency graph engine for tickets.
//
// The graph is an immutable point-in-time snapshot: it is built once from a
// list of tickets and answers readiness queries, enumerates blockers, detects
// cycles, and renders dependency trees. It never mutates ticket data and
// never performs I/O; callers rebuild a fresh graph after changing tickets.
//
// # Edge direction
//
// A ticket's deps list its blockers: A.Deps = [B] means B blocks A, and A is
// blocked until B is closed. The forward adjacency (blockersOf) follows deps
// edges; the reverse adjacency (blockedBy) finds dependents.
//
// # Failure semantics
//
// No query returns an error. Dangling references (dep IDs with no ticket
// record) and structural cycles are tolerated by every operation: dangling
// IDs never count as blocking and render as "(not found)", cycles are
// reported as data by FindCycles and render as "(cycle)" markers. Every
// traversal tracks visited state, so all queries terminate on any input.
package graph

import (
	"slices"

	"github.com/bodega-dev/bodega/pkg/ticket"
)

// Edge is a directed dependency edge: From depends on (is blocked by) To.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is an immutable snapshot of ticket dependency relationships.
//
// The zero value is not usable - use New. Graph methods never mutate the
// snapshot, so a single instance can serve any number of queries.
type Graph struct {
	tickets    map[string]*ticket.Ticket
	blockersOf map[string][]string // id -> direct blockers (deps order, deduplicated)
	blockedBy  map[string][]string // id -> direct dependents
}

// New builds a graph from a snapshot of tickets in one linear pass.
//
// Every ID in a ticket's deps becomes an edge, even when no ticket with that
// ID exists in the snapshot (a dangling reference). Dangling IDs appear as
// edge endpoints but have no ticket entry; they surface as "(not found)" at
// query time rather than failing the build. Duplicate deps entries collapse
// to a single edge.
func New(tickets []*ticket.Ticket) *Graph {
	g := &Graph{
		tickets:    make(map[string]*ticket.Ticket, len(tickets)),
		blockersOf: make(map[string][]string),
		blockedBy:  make(map[string][]string),
	}

	for _, t := range tickets {
		g.tickets[t.ID] = t
		for _, dep := range t.Deps {
			if slices.Contains(g.blockersOf[t.ID], dep) {
				continue
			}
			g.blockersOf[t.ID] = append(g.blockersOf[t.ID], dep)
			g.blockedBy[dep] = append(g.blockedBy[dep], t.ID)
		}
	}

	return g
}

// Ticket returns the snapshot's ticket for id, or false if id is unknown
// (which includes dangling dependency targets).
func (g *Graph) Ticket(id string) (*ticket.Ticket, bool) {
	t, ok := g.tickets[id]
	return t, ok
}

// Tickets returns all tickets in the snapshot, sorted by ID.
func (g *Graph) Tickets() []*ticket.Ticket {
	out := make([]*ticket.Ticket, 0, len(g.tickets))
	for _, id := range g.ids() {
		out = append(out, g.tickets[id])
	}
	return out
}

// Edges returns every dependency edge in the snapshot, ordered by source
// ticket ID and then by deps order. Edges to dangling IDs are included.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, id := range g.ids() {
		for _, dep := range g.blockersOf[id] {
			out = append(out, Edge{From: id, To: dep})
		}
	}
	return out
}

// Len returns the number of tickets in the snapshot.
func (g *Graph) Len() int { return len(g.tickets) }

// ids returns all ticket IDs in ascending order.
func (g *Graph) ids() []string {
	ids := make([]string, 0, len(g.tickets))
	for id := range g.tickets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// IsBlocked reports whether the ticket exists and at least one of its direct
// deps resolves to a known, non-closed ticket. Dangling deps never block;
// tickets with no deps are never blocked.
func (g *Graph) IsBlocked(id string) bool {
	t, ok := g.tickets[id]
	if !ok {
		return false
	}
	for _, dep := range t.Deps {
		if blocker, ok := g.tickets[dep]; ok && blocker.Status != ticket.StatusClosed {
			return true
		}
	}
	return false
}

// Blockers returns the ticket's direct deps that resolve to a known,
// non-closed ticket, preserving the original deps order. Unknown IDs return
// an empty list.
func (g *Graph) Blockers(id string) []string {
	t, ok := g.tickets[id]
	if !ok {
		return nil
	}
	var blockers []string
	for _, dep := range t.Deps {
		if blocker, ok := g.tickets[dep]; ok && blocker.Status != ticket.StatusClosed {
			blockers = append(blockers, dep)
		}
	}
	return blockers
}

// AllBlockers returns the transitive closure of the ticket's blockers,
// reachable by following deps edges from id. The result excludes id itself,
// contains each ID at most once, and is ordered by first discovery in a
// depth-first traversal. Dangling IDs are included but not expanded, and a
// visited set guarantees termination on cyclic graphs.
func (g *Graph) AllBlockers(id string) []string {
	var result []string
	visited := map[string]bool{id: true}

	var walk func(node string)
	walk = func(node string) {
		for _, dep := range g.blockersOf[node] {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			result = append(result, dep)
			walk(dep)
		}
	}
	walk(id)

	return result
}

// Ready returns all non-closed tickets that are not blocked, sorted by ID.
func (g *Graph) Ready() []*ticket.Ticket {
	return g.partition(false)
}

// Blocked returns all non-closed tickets that are blocked, sorted by ID.
func (g *Graph) Blocked() []*ticket.Ticket {
	return g.partition(true)
}

func (g *Graph) partition(blocked bool) []*ticket.Ticket {
	var out []*ticket.Ticket
	for _, id := range g.ids() {
		t := g.tickets[id]
		if t.Status == ticket.StatusClosed {
			continue
		}
		if g.IsBlocked(id) == blocked {
			out = append(out, t)
		}
	}
	return out
}

// WouldCreateCycle reports whether adding candidate as a dep of id would
// create a cycle: true iff id is already reachable from candidate via
// existing deps edges. This is a pre-check only - the graph never writes the
// edge. Terminates on graphs that already contain cycles or dangling
// references.
func (g *Graph) WouldCreateCycle(id, candidate string) bool {
	visited := map[string]bool{}
	stack := []string{candidate}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current == id {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true

		if t, ok := g.tickets[current]; ok {
			stack = append(stack, t.Deps...)
		}
	}

	return false
}
