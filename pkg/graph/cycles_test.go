package graph

import (
	"slices"
	"testing"

	"github.com/bodega-dev/bodega/pkg/ticket"
)

func TestFindCyclesAcyclic(t *testing.T) {
	g := New([]*ticket.Ticket{
		tk("bg-a", ticket.StatusOpen, "bg-b"),
		tk("bg-b", ticket.StatusOpen, "bg-c"),
		tk("bg-c", ticket.StatusOpen),
	})

	if cycles := g.FindCycles(); len(cycles) != 0 {
		t.Errorf("FindCycles() = %v, want empty for acyclic graph", cycles)
	}
	if g.HasCycle() {
		t.Error("HasCycle() = true for acyclic graph")
	}
}

func TestFindCyclesTwoNode(t *testing.T) {
	g := New([]*ticket.Ticket{
		tk("bg-a", ticket.StatusOpen, "bg-b"),
		tk("bg-b", ticket.StatusOpen, "bg-a"),
	})

	cycles := g.FindCycles()
	if len(cycles) == 0 {
		t.Fatal("FindCycles() found no cycles")
	}

	// Roots are visited in ascending ID order, so the first report starts
	// at bg-a: a -> b -> a.
	want := []string{"bg-a", "bg-b", "bg-a"}
	if !slices.Equal(cycles[0], want) {
		t.Errorf("FindCycles()[0] = %v, want %v", cycles[0], want)
	}
	if !g.HasCycle() {
		t.Error("HasCycle() = false")
	}

	// Both participants remain blocked: each has a non-closed dep.
	if !g.IsBlocked("bg-a") || !g.IsBlocked("bg-b") {
		t.Error("both cycle members should report blocked")
	}
}

func TestFindCyclesThreeNode(t *testing.T) {
	g := New([]*ticket.Ticket{
		tk("bg-a", ticket.StatusOpen, "bg-b"),
		tk("bg-b", ticket.StatusOpen, "bg-c"),
		tk("bg-c", ticket.StatusOpen, "bg-a"),
	})

	cycles := g.FindCycles()
	if len(cycles) == 0 {
		t.Fatal("FindCycles() found no cycles")
	}

	cycle := cycles[0]
	if len(cycle) != 4 {
		t.Fatalf("cycle = %v, want 4 entries (repeated node appended)", cycle)
	}
	if cycle[0] != cycle[len(cycle)-1] {
		t.Errorf("cycle = %v, must start and end at the repeated node", cycle)
	}
	for _, id := range []string{"bg-a", "bg-b", "bg-c"} {
		if !slices.Contains(cycle, id) {
			t.Errorf("cycle %v missing %s", cycle, id)
		}
	}
}

func TestFindCyclesSelfReference(t *testing.T) {
	g := New([]*ticket.Ticket{
		tk("bg-a", ticket.StatusOpen, "bg-a"),
	})

	cycles := g.FindCycles()
	if len(cycles) != 1 {
		t.Fatalf("FindCycles() = %v, want one self-loop", cycles)
	}
	if !slices.Equal(cycles[0], []string{"bg-a", "bg-a"}) {
		t.Errorf("FindCycles()[0] = %v, want one-node cycle", cycles[0])
	}
}

func TestFindCyclesSkipsDangling(t *testing.T) {
	g := New([]*ticket.Ticket{
		tk("bg-a", ticket.StatusOpen, "bg-gone", "bg-b"),
		tk("bg-b", ticket.StatusOpen, "bg-missing"),
	})

	if cycles := g.FindCycles(); len(cycles) != 0 {
		t.Errorf("FindCycles() = %v, dangling refs must not report cycles", cycles)
	}
}

func TestFindCyclesDisjointComponents(t *testing.T) {
	g := New([]*ticket.Ticket{
		// Acyclic component.
		tk("bg-a", ticket.StatusOpen, "bg-b"),
		tk("bg-b", ticket.StatusOpen),
		// Cyclic component.
		tk("bg-x", ticket.StatusOpen, "bg-y"),
		tk("bg-y", ticket.StatusOpen, "bg-x"),
	})

	cycles := g.FindCycles()
	if len(cycles) == 0 {
		t.Fatal("FindCycles() missed the cycle in the second component")
	}
	for _, cycle := range cycles {
		if slices.Contains(cycle, "bg-a") || slices.Contains(cycle, "bg-b") {
			t.Errorf("cycle %v contains acyclic nodes", cycle)
		}
	}
}

func TestFindCyclesDeterministic(t *testing.T) {
	build := func() *Graph {
		return New([]*ticket.Ticket{
			tk("bg-m", ticket.StatusOpen, "bg-n"),
			tk("bg-n", ticket.StatusOpen, "bg-m"),
			tk("bg-a", ticket.StatusOpen, "bg-b"),
			tk("bg-b", ticket.StatusOpen, "bg-a"),
		})
	}

	first := build().FindCycles()
	for range 10 {
		again := build().FindCycles()
		if len(again) != len(first) {
			t.Fatalf("cycle count varies: %d vs %d", len(again), len(first))
		}
		for i := range first {
			if !slices.Equal(first[i], again[i]) {
				t.Fatalf("cycle order varies: %v vs %v", first, again)
			}
		}
	}
}
