// Package cli implements the bodega command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bodega-dev/bodega/pkg/buildinfo"
	"github.com/bodega-dev/bodega/pkg/config"
	"github.com/bodega-dev/bodega/pkg/render"
	"github.com/bodega-dev/bodega/pkg/storage"
)

// appName is the application name used for directories and display.
const appName = "bodega"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// dir is where repository discovery starts; set by the --dir flag.
	dir string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		dir: ".",
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Bodega is a local, file-backed issue tracker",
		Long:         `Bodega tracks work as markdown tickets in a .bodega directory, with first-class blocking dependencies: it can tell you what is ready to work on, what is blocked and by what, and whether your dependency graph has cycles.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if render.NoColorRequested() || !isatty.IsTerminal(os.Stdout.Fd()) {
				render.DisableColor()
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.dir, "dir", ".", "directory to start repository discovery from")

	// Register all subcommands
	root.AddCommand(c.initCommand())
	root.AddCommand(c.createCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.readyCommand())
	root.AddCommand(c.blockedCommand())
	root.AddCommand(c.closedCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.noteCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.startCommand())
	root.AddCommand(c.closeCommand())
	root.AddCommand(c.reopenCommand())
	root.AddCommand(c.statusCommand())
	root.AddCommand(c.depCommand())
	root.AddCommand(c.undepCommand())
	root.AddCommand(c.linkCommand())
	root.AddCommand(c.unlinkCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.cyclesCommand())
	root.AddCommand(c.blockersCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.gcCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// openStore discovers the repository from the --dir starting point and loads
// its configuration.
func (c *CLI) openStore() (*storage.Store, config.Config, error) {
	dir, err := storage.Discover(c.dir)
	if err != nil {
		return nil, config.Config{}, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, config.Config{}, err
	}
	return storage.Open(dir), cfg, nil
}
