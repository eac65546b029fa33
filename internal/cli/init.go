package cli

import (
	"github.com/spf13/cobra"

	"github.com/bodega-dev/bodega/pkg/storage"
)

// initCommand creates the "init" command.
func (c *CLI) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a bodega repository in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := storage.Init(c.dir, force)
			if err != nil {
				return err
			}
			printSuccess("Initialized bodega repository")
			printFile(dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "reinitialize an existing repository")
	return cmd
}
