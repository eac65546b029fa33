package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bodega-dev/bodega/pkg/ops"
)

// createCommand creates the "create" command.
func (c *CLI) createCommand() *cobra.Command {
	var (
		ticketType string
		priority   int
		assignee   string
		tags       []string
		deps       []string
		parent     string
		desc       string
	)

	cmd := &cobra.Command{
		Use:     "create <title>",
		Aliases: []string{"new"},
		Short:   "Create a new ticket",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := c.openStore()
			if err != nil {
				return err
			}

			params := ops.CreateParams{
				Title:       strings.Join(args, " "),
				Type:        ticketType,
				Assignee:    assignee,
				Tags:        tags,
				Deps:        deps,
				Parent:      parent,
				Description: desc,
			}
			if cmd.Flags().Changed("priority") {
				params.Priority = &priority
			}

			t, err := ops.Create(store, cfg, params)
			if err != nil {
				return err
			}

			printSuccess("Created %s", t.ID)
			printDetail("%s [%s] p%d", t.Title, t.Type, t.Priority)
			if len(t.Deps) > 0 {
				printDetail("blocked by %s", strings.Join(t.Deps, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&ticketType, "type", "t", "", "ticket type (bug, feature, task, epic, chore)")
	cmd.Flags().IntVarP(&priority, "priority", "p", 2, "priority 0 (urgent) to 4 (trivial)")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "assignee")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag (repeatable)")
	cmd.Flags().StringSliceVarP(&deps, "dep", "d", nil, "blocking dependency ID (repeatable)")
	cmd.Flags().StringVar(&parent, "parent", "", "parent epic ID")
	cmd.Flags().StringVar(&desc, "description", "", "description text")
	return cmd
}
