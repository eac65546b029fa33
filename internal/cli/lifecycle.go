package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bodega-dev/bodega/pkg/graph"
	"github.com/bodega-dev/bodega/pkg/ops"
	"github.com/bodega-dev/bodega/pkg/storage"
	"github.com/bodega-dev/bodega/pkg/ticket"
)

// startCommand creates the "start" command.
func (c *CLI) startCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Mark a ticket as in-progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}

			t, changed, err := ops.Start(store, args[0])
			if err != nil {
				return err
			}
			if !changed {
				printInfo("%s is already in progress", t.ID)
				return nil
			}

			printSuccess("Started %s", t.ID)
			warnIfBlocked(store, t)
			return nil
		},
	}
}

// closeCommand creates the "close" command.
func (c *CLI) closeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "close <id>",
		Short: "Close a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}

			t, changed, err := ops.Close(store, args[0])
			if err != nil {
				return err
			}
			if !changed {
				printInfo("%s is already closed", t.ID)
				return nil
			}

			printSuccess("Closed %s", t.ID)

			// Closing a blocker can free up its dependents.
			g, err := buildGraph(store)
			if err != nil {
				return err
			}
			var freed []string
			for _, other := range g.Ready() {
				if other.HasDep(t.ID) {
					freed = append(freed, other.ID)
				}
			}
			if len(freed) > 0 {
				printDetail("unblocked %s", strings.Join(freed, ", "))
			}
			return nil
		},
	}
}

// reopenCommand creates the "reopen" command.
func (c *CLI) reopenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <id>",
		Short: "Reopen a closed ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}

			t, changed, err := ops.Reopen(store, args[0])
			if err != nil {
				return err
			}
			if !changed {
				printInfo("%s is not closed", t.ID)
				return nil
			}
			printSuccess("Reopened %s", t.ID)
			return nil
		},
	}
}

// warnIfBlocked tells the user when they start work on a blocked ticket.
func warnIfBlocked(store *storage.Store, t *ticket.Ticket) {
	tickets, err := store.List()
	if err != nil {
		return
	}
	g := graph.New(tickets)
	if blockers := g.Blockers(t.ID); len(blockers) > 0 {
		printWarning("%s is blocked by %s", t.ID, strings.Join(blockers, ", "))
	}
}
