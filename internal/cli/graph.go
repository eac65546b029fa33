package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bodega-dev/bodega/pkg/errors"
	"github.com/bodega-dev/bodega/pkg/graph"
)

// treeCommand creates the "tree" command.
func (c *CLI) treeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [id]",
		Short: "Show the dependency tree",
		Long:  `Show tickets as an ASCII tree. Children are the tickets a node blocks. Without an ID, every root ticket (one with no dependencies of its own) starts a tree.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}
			g, err := buildGraph(store)
			if err != nil {
				return err
			}

			root := ""
			if len(args) == 1 {
				// Resolve partial IDs before rendering.
				t, err := store.Get(args[0])
				if err != nil {
					return err
				}
				root = t.ID
			}

			out := g.FormatTree(root)
			if out == "" {
				printInfo("No tickets")
				return nil
			}
			fmt.Println(out)
			return nil
		},
	}
}

// cyclesCommand creates the "cycles" command.
func (c *CLI) cyclesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cycles",
		Short: "Detect dependency cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}
			g, err := buildGraph(store)
			if err != nil {
				return err
			}

			cycles := g.FindCycles()
			if len(cycles) == 0 {
				printSuccess("No dependency cycles")
				return nil
			}

			printWarning("Found %d cycle(s)", len(cycles))
			for _, cycle := range cycles {
				printDetail("%s", strings.Join(cycle, " "+iconArrow+" "))
			}
			return errors.New(errors.ErrCodeDependencyCycle, "dependency graph contains cycles")
		},
	}
}

// blockersCommand creates the "blockers" command.
func (c *CLI) blockersCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "blockers <id>",
		Short: "List what blocks a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}
			t, err := store.Get(args[0])
			if err != nil {
				return err
			}
			g, err := buildGraph(store)
			if err != nil {
				return err
			}

			var blockers []string
			if all {
				blockers = g.AllBlockers(t.ID)
			} else {
				blockers = g.Blockers(t.ID)
			}

			if len(blockers) == 0 {
				printSuccess("%s is not blocked", t.ID)
				return nil
			}
			for _, id := range blockers {
				if blocker, ok := g.Ticket(id); ok {
					printDetail("%s [%s] %s", id, blocker.Status, blocker.Title)
				} else {
					printDetail("%s (not found)", id)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include transitive blockers")
	return cmd
}

// graphCommand creates the "graph" command for exporting the dependency
// graph as DOT, SVG, or PNG.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format string
		output string
		titles bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the dependency graph (dot, svg, png)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}
			g, err := buildGraph(store)
			if err != nil {
				return err
			}

			dot := g.ToDOT(graph.DotOptions{Titles: titles})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = graph.RenderSVG(cmd.Context(), dot)
			case "png":
				data, err = graph.RenderPNG(cmd.Context(), dot)
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown graph format %q (use dot, svg, or png)", format)
			}
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Exported dependency graph")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "export format (dot, svg, png)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&titles, "titles", false, "include ticket titles in node labels")
	return cmd
}
