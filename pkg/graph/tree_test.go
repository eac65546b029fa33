package graph

import (
	"strings"
	"testing"

	"github.com/bodega-dev/bodega/pkg/ticket"
)

func TestFormatTreeSimple(t *testing.T) {
	g := New([]*ticket.Ticket{
		tk("bg-root", ticket.StatusOpen),
		tk("bg-child", ticket.StatusOpen, "bg-root"),
	})

	got := g.FormatTree("bg-root")
	want := "└── bg-root [open] Ticket bg-root\n" +
		"    └── bg-child [open] Ticket bg-child"
	if got != want {
		t.Errorf("FormatTree() =\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatTreeMultipleChildren(t *testing.T) {
	g := New([]*ticket.Ticket{
		tk("bg-root", ticket.StatusOpen),
		tk("bg-child1", ticket.StatusOpen, "bg-root"),
		tk("bg-child2", ticket.StatusClosed, "bg-root"),
	})

	got := g.FormatTree("bg-root")

	if !strings.Contains(got, "├── bg-child1 [open]") {
		t.Errorf("missing sibling connector for first child:\n%s", got)
	}
	if !strings.Contains(got, "└── bg-child2 [closed]") {
		t.Errorf("missing last-child connector for second child:\n%s", got)
	}
}

func TestFormatTreeNestedContinuation(t *testing.T) {
	g := New([]*ticket.Ticket{
		tk("bg-root", ticket.StatusOpen),
		tk("bg-a", ticket.StatusOpen, "bg-root"),
		tk("bg-b", ticket.StatusOpen, "bg-root"),
		tk("bg-deep", ticket.StatusOpen, "bg-a"),
	})

	got := g.FormatTree("bg-root")

	// bg-a is not the last child, so its subtree carries the vertical bar.
	if !strings.Contains(got, "│   └── bg-deep") {
		t.Errorf("missing vertical continuation:\n%s", got)
	}
}

func TestFormatTreeStatusAndTitle(t *testing.T) {
	g := New([]*ticket.Ticket{
		tk("bg-a", ticket.StatusInProgress),
	})

	got := g.FormatTree("bg-a")
	if !strings.Contains(got, "bg-a [in-progress] Ticket bg-a") {
		t.Errorf("FormatTree() = %q", got)
	}
}

func TestFormatTreeNotFound(t *testing.T) {
	g := New([]*ticket.Ticket{
		tk("bg-a", ticket.StatusOpen, "bg-gone"),
	})

	got := g.FormatTree("bg-gone")
	if !strings.Contains(got, "bg-gone (not found)") {
		t.Errorf("FormatTree() = %q, want (not found) marker", got)
	}
	// The dangling node must not be expanded even though bg-a depends on it.
	if strings.Contains(got, "bg-a") {
		t.Errorf("FormatTree() = %q, dangling node must not recurse", got)
	}
}

func TestFormatTreeCycleMarker(t *testing.T) {
	g := New([]*ticket.Ticket{
		tk("bg-a", ticket.StatusOpen, "bg-b"),
		tk("bg-b", ticket.StatusOpen, "bg-a"),
	})

	got := g.FormatTree("bg-a")
	if !strings.Contains(got, "(cycle)") {
		t.Errorf("FormatTree() = %q, want (cycle) marker", got)
	}
	// The marker is terminal: the cycle line is the deepest line.
	lines := strings.Split(got, "\n")
	last := lines[len(lines)-1]
	if !strings.Contains(last, "(cycle)") {
		t.Errorf("cycle marker must end the path:\n%s", got)
	}
}

func TestFormatTreeSharedNodeAcrossBranches(t *testing.T) {
	// bg-shared is a dependent of both bg-left and bg-right; the visited set
	// is per-path, so it renders fully under both branches.
	g := New([]*ticket.Ticket{
		tk("bg-root", ticket.StatusOpen),
		tk("bg-left", ticket.StatusOpen, "bg-root"),
		tk("bg-right", ticket.StatusOpen, "bg-root"),
		tk("bg-shared", ticket.StatusOpen, "bg-left", "bg-right"),
	})

	got := g.FormatTree("bg-root")
	if strings.Count(got, "bg-shared [open]") != 2 {
		t.Errorf("shared node must render in both sibling branches, not as a false cycle:\n%s", got)
	}
	if strings.Contains(got, "(cycle)") {
		t.Errorf("no cycle marker expected across sibling branches:\n%s", got)
	}
}

func TestFormatTreeAllRoots(t *testing.T) {
	g := New([]*ticket.Ticket{
		tk("bg-root2", ticket.StatusOpen),
		tk("bg-root1", ticket.StatusOpen),
		tk("bg-child", ticket.StatusOpen, "bg-root1"),
	})

	got := g.FormatTree("")

	if !strings.Contains(got, "bg-root1") || !strings.Contains(got, "bg-root2") {
		t.Errorf("FormatTree(\"\") = %q, want both roots", got)
	}
	// Roots sorted by ID.
	if strings.Index(got, "bg-root1") > strings.Index(got, "bg-root2") {
		t.Errorf("roots out of order:\n%s", got)
	}
	// bg-child has deps, so it is not a root of its own tree.
	if strings.HasPrefix(got, "└── bg-child") {
		t.Errorf("ticket with deps must not be a root:\n%s", got)
	}
}

func TestFormatTreeAllCyclicFallback(t *testing.T) {
	// Every ticket has deps, so there is no dep-free root. The renderer must
	// still produce bounded output.
	g := New([]*ticket.Ticket{
		tk("bg-a", ticket.StatusOpen, "bg-b"),
		tk("bg-b", ticket.StatusOpen, "bg-c"),
		tk("bg-c", ticket.StatusOpen, "bg-a"),
	})

	got := g.FormatTree("")
	if got == "" {
		t.Fatal("FormatTree(\"\") returned empty output for cyclic graph")
	}
	if !strings.Contains(got, "(cycle)") {
		t.Errorf("expected cycle markers in fallback rendering:\n%s", got)
	}
}

func TestFormatTreeEmptyGraph(t *testing.T) {
	g := New(nil)
	if got := g.FormatTree(""); got != "" {
		t.Errorf("FormatTree(\"\") = %q, want empty string", got)
	}
}
