// Package main is the entry point for gdbtui, a terminal front end
// for gdb.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/dshills/gdbtui/internal/app"
	"github.com/dshills/gdbtui/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		themeName   string
		gdbPath     string
		logPath     string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "path to the configuration file")
	flag.StringVar(&themeName, "theme", "", "chroma style for source highlighting")
	flag.StringVar(&gdbPath, "gdb", "", "gdb executable")
	flag.StringVar(&logPath, "log", "", "write the application log to this file")
	flag.BoolVar(&showVersion, "version", false, "show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gdbtui - a terminal UI for gdb\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gdbtui [options] <program> [args...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gdbtui ./a.out                  Debug a program\n")
		fmt.Fprintf(os.Stderr, "  gdbtui ./a.out --input test.txt Debug a program with arguments\n")
		fmt.Fprintf(os.Stderr, "  gdbtui -theme dracula ./a.out   Pick a highlighting style\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("gdbtui %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	if flag.NArg() == 0 {
		flag.Usage()
		return 2
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: gdbtui must run on a terminal")
		return 1
	}

	path := configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Flags override the config file.
	if themeName != "" {
		cfg.UI.Theme = themeName
	}
	if gdbPath != "" {
		cfg.Gdb.Path = gdbPath
	}
	if logPath != "" {
		cfg.Log.File = logPath
	}

	logger := app.NullLogger
	if cfg.Log.File != "" {
		fileLogger, closer, err := app.OpenLogFile(cfg.Log.File, app.ParseLogLevel(cfg.Log.Level))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer closer.Close()
		logger = fileLogger
	}
	app.SetLogger(logger)

	application, err := app.New(app.Options{
		Debuggee: flag.Args(),
		GdbPath:  cfg.Gdb.Path,
		Theme:    cfg.UI.Theme,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger.Info("gdbtui %s starting", version)
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
