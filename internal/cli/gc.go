package cli

import (
	"github.com/spf13/cobra"

	"github.com/bodega-dev/bodega/pkg/ops"
)

// gcCommand creates the "gc" command.
func (c *CLI) gcCommand() *cobra.Command {
	var (
		age    string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "gc",
		Short: "Delete closed tickets older than a given age",
		Long:  `Delete closed tickets whose last update is older than --age. Closed tickets still listed as a dependency of a surviving ticket are kept. The deletion runs under the repository lock.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}

			result, err := ops.GC(store, age, dryRun)
			if err != nil {
				return err
			}

			if len(result.Removed) == 0 {
				printInfo("Nothing to collect")
			} else if dryRun {
				printInfo("Would delete %d ticket(s)", len(result.Removed))
			} else {
				printSuccess("Deleted %d ticket(s)", len(result.Removed))
			}
			for _, id := range result.Removed {
				printDetail("%s", id)
			}
			for _, id := range result.Kept {
				printDetail("%s kept (still referenced)", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&age, "age", "30d", "minimum age of closed tickets to delete (30d, 12h, 45m)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would be deleted without deleting")
	return cmd
}
