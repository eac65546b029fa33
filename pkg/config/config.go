// Package config loads bodega configuration from TOML files.
//
// Configuration is layered: built-in defaults, then the global file at
// ~/.config/bodega/config.toml, then the per-repository file at
// .bodega/config.toml. Later layers override earlier ones field by field.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bodega-dev/bodega/pkg/errors"
)

// appName is used for the global config directory (~/.config/bodega/).
const appName = "bodega"

// FileName is the config file name inside a repository's .bodega directory.
const FileName = "config.toml"

// Config holds all bodega settings.
type Config struct {
	// Defaults applied to newly created tickets.
	Defaults Defaults `toml:"defaults"`

	// IDPrefix is the prefix for generated ticket IDs (default "bg").
	IDPrefix string `toml:"id_prefix"`

	// Editor overrides $EDITOR for `bodega edit`.
	Editor string `toml:"editor,omitempty"`

	// ListFormat selects the default list output: table, compact, ids, json.
	ListFormat string `toml:"list_format"`

	// DateFormat is the Go reference layout used for displayed timestamps.
	DateFormat string `toml:"date_format"`
}

// Defaults are the initial values for new tickets.
type Defaults struct {
	Type     string `toml:"type"`
	Priority int    `toml:"priority"`
	Assignee string `toml:"assignee,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Defaults: Defaults{
			Type:     "task",
			Priority: 2,
		},
		IDPrefix:   "bg",
		ListFormat: "table",
		DateFormat: "2006-01-02 15:04",
	}
}

// Load builds the effective configuration for a repository rooted at
// bodegaDir (the .bodega directory). Either layer file may be absent;
// malformed TOML is an error.
func Load(bodegaDir string) (Config, error) {
	cfg := Default()

	if global, err := globalPath(); err == nil {
		if err := mergeFile(&cfg, global); err != nil {
			return Config{}, err
		}
	}

	if bodegaDir != "" {
		if err := mergeFile(&cfg, filepath.Join(bodegaDir, FileName)); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// mergeFile decodes path into cfg, leaving cfg untouched when the file does
// not exist. TOML decoding only overwrites keys present in the file, which
// gives the layered override behavior for free.
func mergeFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "parse config %s", path)
	}
	return nil
}

// globalPath returns the location of the user-wide config file.
func globalPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, FileName), nil
}

// DefaultTemplate is written into new repositories by `bodega init`.
// Every key is commented out so the file documents itself.
const DefaultTemplate = `# bodega configuration

# Default values for new tickets
# [defaults]
# type = "task"
# priority = 2
# assignee = ""  # empty = unassigned

# ID prefix for generated ticket IDs
# id_prefix = "bg"

# Editor command (defaults to $EDITOR)
# editor = "vim"

# List output format: table, compact, ids, json
# list_format = "table"

# Date format for display (Go reference layout)
# date_format = "2006-01-02 15:04"
`
