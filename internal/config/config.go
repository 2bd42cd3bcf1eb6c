// Package config loads the debugger front end's settings from a TOML
// file. All settings have working defaults; a missing config file is
// not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds every user-tunable setting.
type Config struct {
	Gdb GdbSettings `toml:"gdb"`
	UI  UISettings  `toml:"ui"`
	Log LogSettings `toml:"log"`
}

// GdbSettings controls how the debugger process is launched.
type GdbSettings struct {
	// Path is the gdb executable to run.
	Path string `toml:"path"`
}

// UISettings controls the appearance of the front end.
type UISettings struct {
	// Theme names the chroma style used for source highlighting.
	// Unknown names fall back to plain text.
	Theme string `toml:"theme"`
}

// LogSettings controls the application log. The log goes to a file
// because the terminal belongs to the UI.
type LogSettings struct {
	// File receives log output. Empty disables logging.
	File string `toml:"file"`

	// Level is the minimum level written: debug, info, warn or error.
	Level string `toml:"level"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Gdb: GdbSettings{Path: "gdb"},
		UI:  UISettings{Theme: "monokai"},
		Log: LogSettings{Level: "info"},
	}
}

// DefaultPath returns the standard config file location,
// ~/.config/gdbtui/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "gdbtui", "config.toml"), nil
}

// Load reads the file at path on top of the defaults. A missing file
// returns the defaults unchanged. A file that cannot be parsed returns
// a *ParseError.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return cfg, perr
	}
	return cfg, nil
}
