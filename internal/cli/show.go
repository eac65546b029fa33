package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bodega-dev/bodega/pkg/ops"
	"github.com/bodega-dev/bodega/pkg/render"
)

// showCommand creates the "show" command.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a ticket in full",
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
			fmt.Print(render.Detail(t, g))
			return nil
		},
	}
}

// noteCommand creates the "note" command.
func (c *CLI) noteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "note <id> <text>",
		Short: "Append a note to a ticket",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}
			t, err := ops.AddNote(store, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			printSuccess("Added note to %s", t.ID)
			return nil
		},
	}
}

// editCommand creates the "edit" command for updating ticket metadata.
func (c *CLI) editCommand() *cobra.Command {
	var (
		title      string
		ticketType string
		priority   int
		assignee   string
		tags       []string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a ticket's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}

			var params ops.EditParams
			if cmd.Flags().Changed("title") {
				params.Title = &title
			}
			if cmd.Flags().Changed("type") {
				params.Type = &ticketType
			}
			if cmd.Flags().Changed("priority") {
				params.Priority = &priority
			}
			if cmd.Flags().Changed("assignee") {
				params.Assignee = &assignee
			}
			if cmd.Flags().Changed("tag") {
				params.Tags = &tags
			}

			t, err := ops.Edit(store, args[0], params)
			if err != nil {
				return err
			}
			printSuccess("Updated %s", t.ID)
			printDetail("%s [%s] p%d", t.Title, t.Type, t.Priority)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&ticketType, "type", "t", "", "new type")
	cmd.Flags().IntVarP(&priority, "priority", "p", 2, "new priority")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "new assignee")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "replace tags (repeatable)")
	return cmd
}
