package cli

import (
	"github.com/spf13/cobra"

	"github.com/bodega-dev/bodega/pkg/ops"
)

// depCommand creates the "dep" command.
func (c *CLI) depCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dep <id> <blocker-id>",
		Short: "Record that a ticket is blocked by another",
		Long:  `Record that <id> cannot be worked on until <blocker-id> is closed. The edge is rejected if it would create a dependency cycle.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}

			t, changed, err := ops.AddDependency(store, args[0], args[1])
			if err != nil {
				return err
			}
			if !changed {
				printInfo("%s already depends on %s", t.ID, args[1])
				return nil
			}
			printSuccess("%s is now blocked by %s", t.ID, t.Deps[len(t.Deps)-1])
			return nil
		},
	}
}

// undepCommand creates the "undep" command.
func (c *CLI) undepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "undep <id> <blocker-id>",
		Short: "Remove a blocking dependency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}

			t, changed, err := ops.RemoveDependency(store, args[0], args[1])
			if err != nil {
				return err
			}
			if !changed {
				printInfo("%s does not depend on %s", t.ID, args[1])
				return nil
			}
			printSuccess("Removed dependency from %s", t.ID)
			return nil
		},
	}
}

// linkCommand creates the "link" command.
func (c *CLI) linkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "link <id> <other-id>",
		Short: "Link two related tickets (non-blocking)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}

			t, changed, err := ops.AddLink(store, args[0], args[1])
			if err != nil {
				return err
			}
			if !changed {
				printInfo("%s and %s are already linked", t.ID, args[1])
				return nil
			}
			printSuccess("Linked %s and %s", t.ID, t.Links[len(t.Links)-1])
			return nil
		},
	}
}

// unlinkCommand creates the "unlink" command.
func (c *CLI) unlinkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <id> <other-id>",
		Short: "Remove a link between two tickets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}

			t, changed, err := ops.RemoveLink(store, args[0], args[1])
			if err != nil {
				return err
			}
			if !changed {
				printInfo("%s and %s are not linked", t.ID, args[1])
				return nil
			}
			printSuccess("Unlinked %s and %s", t.ID, args[1])
			return nil
		},
	}
}
