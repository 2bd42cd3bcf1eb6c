// Package app wires the debugger front end together and runs its
// event loop. It owns the process-level pieces: the gdb session, the
// debuggee pty, the terminal backend, the source-file watcher and the
// log.
package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/dshills/gdbtui/internal/gdbmi"
	"github.com/dshills/gdbtui/internal/gui"
	"github.com/dshills/gdbtui/internal/pty"
	"github.com/dshills/gdbtui/internal/render"
)

// Options configures the application.
type Options struct {
	// Debuggee is the program to debug followed by its arguments.
	Debuggee []string

	// GdbPath is the gdb executable. Empty means "gdb" from PATH.
	GdbPath string

	// Theme names the chroma style used for source highlighting.
	Theme string

	// Logger receives diagnostics. Nil falls back to the process-wide
	// logger.
	Logger *Logger
}

// Application hosts the debugger front end for one debuggee.
type Application struct {
	opts   Options
	logger *Logger
	router router

	backend render.Backend
	gui     *gui.Gui
	session *gdbmi.Session
	pty     *pty.Pair
	watcher *sourceWatcher

	ptyCols, ptyRows int

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
}

// New validates the options and prepares an application. Nothing is
// started until Run.
func New(opts Options) (*Application, error) {
	if len(opts.Debuggee) == 0 {
		return nil, ErrNoDebuggee
	}
	if opts.GdbPath == "" {
		opts.GdbPath = "gdb"
	}
	if opts.Theme == "" {
		opts.Theme = "monokai"
	}
	logger := opts.Logger
	if logger == nil {
		logger = GetLogger()
	}
	return &Application{
		opts:   opts,
		logger: logger,
		router: router{focus: gui.TargetConsole},
		done:   make(chan struct{}),
	}, nil
}

// Run starts gdb and the terminal UI and blocks until the session
// ends. It may be called once.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.bootstrap(); err != nil {
		app.cleanup()
		return err
	}
	defer app.cleanup()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM)
	defer signal.Stop(signals)

	terminal := make(chan render.Event, 8)
	go app.pumpTerminal(terminal)
	ptyData := make(chan []byte, 8)
	go app.pumpPty(ptyData)

	return app.eventLoop(context.Background(), terminal, ptyData, signals)
}

// bootstrap starts the components in dependency order: the debuggee
// pty and gdb before the terminal, so launch failures print to a sane
// screen.
func (app *Application) bootstrap() error {
	log := app.logger.WithComponent("app")

	pair, err := pty.Open()
	if err != nil {
		return &InitError{Component: "pty", Err: err}
	}
	app.pty = pair
	log.Info("opened debuggee pty %s", pair.Name())

	session, err := gdbmi.Launch(gdbmi.Options{
		Path: app.opts.GdbPath,
		Args: app.opts.Debuggee,
		TTY:  pair.Name(),
	})
	if err != nil {
		return &InitError{Component: "gdb", Err: err}
	}
	app.session = session
	log.Info("launched %s for %v", app.opts.GdbPath, app.opts.Debuggee)

	if app.backend == nil {
		term, err := render.NewTerminal()
		if err != nil {
			return &InitError{Component: "terminal", Err: err}
		}
		app.backend = term
	}
	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	app.backend.HideCursor()

	app.gui = gui.New(app.pty, app.opts.Theme)

	watcher, err := newSourceWatcher()
	if err != nil {
		log.Warn("source watching disabled: %v", err)
	} else {
		app.watcher = watcher
	}
	return nil
}

// cleanup tears components down in reverse order. Safe to call with a
// partially built application.
func (app *Application) cleanup() {
	app.stopOnce.Do(func() {
		close(app.done)
	})

	if app.watcher != nil {
		_ = app.watcher.Close()
	}
	if app.session != nil {
		_ = app.session.Close()
		go func() {
			for range app.session.Records() {
			}
		}()
		select {
		case <-app.session.Done():
		case <-time.After(3 * time.Second):
			app.logger.WithComponent("app").Warn("gdb did not exit, killing it")
			_ = app.session.Kill()
		}
	}
	if app.pty != nil {
		_ = app.pty.Close()
	}
	if app.backend != nil {
		app.backend.Fini()
	}
}

// pumpTerminal forwards terminal events until the screen finalizes.
func (app *Application) pumpTerminal(out chan<- render.Event) {
	defer close(out)
	for {
		ev := app.backend.PollEvent()
		if ev.Type == render.EventNone {
			return
		}
		select {
		case out <- ev:
		case <-app.done:
			return
		}
	}
}

// pumpPty forwards debuggee output until the pty closes.
func (app *Application) pumpPty(out chan<- []byte) {
	defer close(out)
	buf := make([]byte, 4096)
	for {
		n, err := app.pty.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case out <- data:
			case <-app.done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}
