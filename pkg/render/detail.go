package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/bodega-dev/bodega/pkg/graph"
	"github.com/bodega-dev/bodega/pkg/ticket"
)

// Detail renders a full single-ticket view, including content sections and
// the ticket's blocking state as seen by the given graph snapshot.
func Detail(t *ticket.Ticket, g *graph.Graph) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", styleHeading.Render(t.ID), t.Title)
	fmt.Fprintf(&b, "%s %s\n", styleLabel.Render("status:  "), statusStyle(t.Status).Render(string(t.Status)))
	fmt.Fprintf(&b, "%s %s\n", styleLabel.Render("type:    "), string(t.Type))
	fmt.Fprintf(&b, "%s p%d\n", styleLabel.Render("priority:"), t.Priority)
	if t.Assignee != "" {
		fmt.Fprintf(&b, "%s %s\n", styleLabel.Render("assignee:"), t.Assignee)
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(&b, "%s %s\n", styleLabel.Render("tags:    "), strings.Join(t.Tags, ", "))
	}
	if t.Parent != "" {
		fmt.Fprintf(&b, "%s %s\n", styleLabel.Render("parent:  "), t.Parent)
	}
	if t.ExternalRef != "" {
		fmt.Fprintf(&b, "%s %s\n", styleLabel.Render("ref:     "), t.ExternalRef)
	}
	fmt.Fprintf(&b, "%s %s\n", styleLabel.Render("created: "), t.Created.Format(time.RFC3339))
	fmt.Fprintf(&b, "%s %s\n", styleLabel.Render("updated: "), t.Updated.Format(time.RFC3339))

	if len(t.Deps) > 0 {
		b.WriteString(styleLabel.Render("deps:") + "\n")
		for _, dep := range t.Deps {
			b.WriteString("  " + depLine(g, dep) + "\n")
		}
	}
	if len(t.Links) > 0 {
		fmt.Fprintf(&b, "%s %s\n", styleLabel.Render("links:   "), strings.Join(t.Links, ", "))
	}

	section(&b, "Description", t.Description)
	section(&b, "Design", t.Design)
	section(&b, "Acceptance Criteria", t.AcceptanceCriteria)
	if len(t.Notes) > 0 {
		b.WriteString("\n" + styleHeading.Render("Notes") + "\n")
		for _, n := range t.Notes {
			b.WriteString("  - " + n + "\n")
		}
	}

	return b.String()
}

// depLine renders one dependency with its current state: the blocker's
// status and title when known, "(not found)" for dangling references.
func depLine(g *graph.Graph, dep string) string {
	blocker, ok := g.Ticket(dep)
	if !ok {
		return styleID.Render(dep) + " " + styleDim.Render("(not found)")
	}
	return fmt.Sprintf("%s %s %s",
		styleID.Render(dep),
		statusStyle(blocker.Status).Render("["+string(blocker.Status)+"]"),
		blocker.Title)
}

func section(b *strings.Builder, heading, body string) {
	if body == "" {
		return
	}
	b.WriteString("\n" + styleHeading.Render(heading) + "\n")
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
}
