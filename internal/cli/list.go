package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bodega-dev/bodega/pkg/graph"
	"github.com/bodega-dev/bodega/pkg/ops"
	"github.com/bodega-dev/bodega/pkg/render"
	"github.com/bodega-dev/bodega/pkg/storage"
	"github.com/bodega-dev/bodega/pkg/ticket"
)

// listCommand creates the "list" command.
func (c *CLI) listCommand() *cobra.Command {
	var (
		status        string
		ticketType    string
		tag           string
		assignee      string
		priority      int
		includeClosed bool
		format        string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tickets",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := c.openStore()
			if err != nil {
				return err
			}

			filter := ops.Filter{
				Status:        status,
				Type:          ticketType,
				Tag:           tag,
				Assignee:      assignee,
				IncludeClosed: includeClosed,
			}
			if cmd.Flags().Changed("priority") {
				filter.Priority = &priority
			}

			tickets, err := ops.Query(store, filter)
			if err != nil {
				return err
			}
			return c.printTickets(tickets, format, cfg.ListFormat)
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "filter by status")
	cmd.Flags().StringVarP(&ticketType, "type", "t", "", "filter by type")
	cmd.Flags().StringVar(&tag, "tag", "", "filter by tag")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "filter by assignee")
	cmd.Flags().IntVarP(&priority, "priority", "p", 2, "filter by priority")
	cmd.Flags().BoolVar(&includeClosed, "all", false, "include closed tickets")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (table, compact, ids, json)")
	return cmd
}

// readyCommand creates the "ready" command.
func (c *CLI) readyCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "ready",
		Short: "List tickets that are ready to work on (not blocked)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := c.openStore()
			if err != nil {
				return err
			}
			g, err := buildGraph(store)
			if err != nil {
				return err
			}
			return c.printTickets(g.Ready(), format, cfg.ListFormat)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (table, compact, ids, json)")
	return cmd
}

// blockedCommand creates the "blocked" command.
func (c *CLI) blockedCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "blocked",
		Short: "List tickets that are blocked by open dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := c.openStore()
			if err != nil {
				return err
			}
			g, err := buildGraph(store)
			if err != nil {
				return err
			}
			return c.printTickets(g.Blocked(), format, cfg.ListFormat)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (table, compact, ids, json)")
	return cmd
}

// closedCommand creates the "closed" command.
func (c *CLI) closedCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "closed",
		Short: "List closed tickets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := c.openStore()
			if err != nil {
				return err
			}
			tickets, err := ops.Query(store, ops.Filter{Status: string(ticket.StatusClosed)})
			if err != nil {
				return err
			}
			return c.printTickets(tickets, format, cfg.ListFormat)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (table, compact, ids, json)")
	return cmd
}

// statusCommand creates the "status" command, a one-screen repository summary.
func (c *CLI) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show a summary of the repository",
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

			var open, inProgress, closed int
			for _, t := range g.Tickets() {
				switch t.Status {
				case ticket.StatusOpen:
					open++
				case ticket.StatusInProgress:
					inProgress++
				case ticket.StatusClosed:
					closed++
				}
			}

			printKeyValue("tickets", fmt.Sprintf("%d", g.Len()))
			printKeyValue("open", fmt.Sprintf("%d", open))
			printKeyValue("in-progress", fmt.Sprintf("%d", inProgress))
			printKeyValue("closed", fmt.Sprintf("%d", closed))
			printKeyValue("ready", fmt.Sprintf("%d", len(g.Ready())))
			printKeyValue("blocked", fmt.Sprintf("%d", len(g.Blocked())))

			if cycles := g.FindCycles(); len(cycles) > 0 {
				printWarning("%d dependency cycle(s) detected - run 'bodega cycles'", len(cycles))
			}
			return nil
		},
	}
}

// printTickets renders tickets in the flag format, falling back to the
// configured default.
func (c *CLI) printTickets(tickets []*ticket.Ticket, flagFormat, cfgFormat string) error {
	name := flagFormat
	if name == "" {
		name = cfgFormat
	}
	format, err := render.ParseFormat(name)
	if err != nil {
		return err
	}

	out, err := render.List(tickets, format)
	if err != nil {
		return err
	}
	if out == "" {
		printInfo("No tickets")
		return nil
	}
	fmt.Print(out)
	return nil
}

// buildGraph loads every ticket and builds a graph snapshot over them.
func buildGraph(store *storage.Store) (*graph.Graph, error) {
	tickets, err := store.List()
	if err != nil {
		return nil, err
	}
	return graph.New(tickets), nil
}
