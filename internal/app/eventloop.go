package app

import (
	"context"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/gdbtui/internal/gui"
	"github.com/dshills/gdbtui/internal/render"
)

// router decides where key presses go. F1, F2 and F3 move focus
// between the console, the source view and the debuggee terminal;
// keeping the switch keys global lets every other key, Tab and control
// characters included, reach the focused region. Ctrl-Q always quits.
type router struct {
	focus gui.Target
}

// Route maps one key event to its destination. The boolean is false
// for focus switches, which are fully handled here.
func (r *router) Route(ev render.Event) (gui.Target, bool) {
	switch ev.Key {
	case render.KeyCtrlQ:
		return gui.TargetQuit, true
	case render.KeyF1:
		r.focus = gui.TargetConsole
		return r.focus, false
	case render.KeyF2:
		r.focus = gui.TargetPager
		return r.focus, false
	case render.KeyF3:
		r.focus = gui.TargetPty
		return r.focus, false
	}
	return r.focus, true
}

// eventLoop runs until the user quits, gdb exits, or a termination
// signal arrives. All widget mutation happens on this goroutine; the
// I/O goroutines only feed the channels.
func (app *Application) eventLoop(ctx context.Context, terminal <-chan render.Event, ptyData <-chan []byte, signals <-chan os.Signal) error {
	log := app.logger.WithComponent("loop")

	var watchEvents <-chan fsnotify.Event
	var watchErrors <-chan error
	if app.watcher != nil {
		watchEvents = app.watcher.Events()
		watchErrors = app.watcher.Errors()
	}

	app.draw()
	for {
		select {
		case sig := <-signals:
			log.Info("received %v, shutting down", sig)
			return nil

		case <-app.session.Done():
			log.Info("gdb exited")
			return nil

		case ev, ok := <-terminal:
			if !ok {
				return nil
			}
			if quit := app.handleTerminalEvent(ctx, ev); quit {
				log.Info("quit requested")
				return nil
			}

		case rec, ok := <-app.session.Records():
			if !ok {
				return nil
			}
			app.gui.AddOutOfBandRecord(rec)
			app.drainRecords()
			app.armWatcher()

		case data, ok := <-ptyData:
			if !ok {
				ptyData = nil
				continue
			}
			app.gui.AddPtyInput(data)

		case fev, ok := <-watchEvents:
			if !ok {
				watchEvents = nil
				continue
			}
			app.handleFileEvent(fev)

		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			log.Warn("file watcher: %v", err)
			continue
		}
		app.draw()
	}
}

// handleTerminalEvent applies one terminal event. It reports true when
// the user asked to quit.
func (app *Application) handleTerminalEvent(ctx context.Context, ev render.Event) bool {
	switch ev.Type {
	case render.EventKey:
		target, dispatch := app.router.Route(ev)
		if !dispatch {
			return false
		}
		if target == gui.TargetQuit {
			return true
		}
		app.gui.Event(ctx, target, ev, app.session)
	case render.EventResize:
		app.backend.Clear()
	}
	return false
}

// drainRecords applies every record already queued so a burst of gdb
// output costs one redraw.
func (app *Application) drainRecords() {
	for {
		select {
		case rec, ok := <-app.session.Records():
			if !ok {
				return
			}
			app.gui.AddOutOfBandRecord(rec)
		default:
			return
		}
	}
}

// armWatcher points the file watcher at the source view's current
// file.
func (app *Application) armWatcher() {
	if app.watcher == nil {
		return
	}
	if err := app.watcher.Watch(app.gui.SourcePath()); err != nil {
		app.logger.WithComponent("watcher").Warn("%v", err)
	}
}

// handleFileEvent reloads the source view when the displayed file is
// written on disk.
func (app *Application) handleFileEvent(ev fsnotify.Event) {
	if app.watcher == nil || !app.watcher.Relevant(ev) {
		return
	}
	if err := app.gui.ReloadSource(); err != nil {
		app.logger.WithComponent("watcher").Warn("reloading %s: %v", ev.Name, err)
	}
}

// draw repaints the whole view and keeps the debuggee pty sized to its
// on-screen region.
func (app *Application) draw() {
	app.backend.Clear()
	app.gui.Draw(render.NewWindow(app.backend))
	app.backend.Show()

	cols, rows := app.gui.PtyViewSize()
	if cols > 0 && rows > 0 && (cols != app.ptyCols || rows != app.ptyRows) {
		if err := app.pty.Resize(uint16(cols), uint16(rows)); err != nil {
			app.logger.WithComponent("pty").Warn("resize to %dx%d: %v", cols, rows, err)
		}
		app.ptyCols, app.ptyRows = cols, rows
	}
}
