package graph

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/goccy/go-graphviz"

	"github.com/bodega-dev/bodega/pkg/ticket"
)

// DotOptions configures DOT export.
type DotOptions struct {
	// Titles includes ticket titles in node labels.
	// When false, only the ticket ID is shown.
	Titles bool
}

// ToDOT converts the dependency graph to Graphviz DOT format. Edges point
// from a ticket to its blockers. Nodes are colored by status; dangling
// references are rendered with dashed grey outlines. The resulting DOT
// string can be rendered with [RenderSVG] or [RenderPNG].
func (g *Graph) ToDOT(opts DotOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph deps {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	edges := g.Edges()

	// Dangling edge targets still need node declarations.
	dangling := map[string]bool{}
	for _, e := range edges {
		if _, ok := g.tickets[e.To]; !ok {
			dangling[e.To] = true
		}
	}

	for _, t := range g.Tickets() {
		label := t.ID
		if opts.Titles {
			label = t.ID + "\n" + t.Title
		}
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%s];\n", t.ID, label, statusFill(t.Status))
	}
	for _, id := range sortedKeys(dangling) {
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n", id, id+"\n(not found)")
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func statusFill(s ticket.Status) string {
	switch s {
	case ticket.StatusClosed:
		return "palegreen"
	case ticket.StatusInProgress:
		return "khaki"
	default:
		return "white"
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
