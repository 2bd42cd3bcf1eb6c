// Package gui composes the debugger front end: the command console on
// the left, the source pager and the program terminal stacked on the
// right, and the translation of gdb's record stream into view updates.
package gui

import (
	"context"
	"fmt"
	"io"

	"github.com/dshills/gdbtui/internal/gdbmi"
	"github.com/dshills/gdbtui/internal/render"
	"github.com/dshills/gdbtui/internal/ui"
)

// Debugger is the slice of the gdb session the widgets drive.
type Debugger interface {
	Execute(ctx context.Context, command string) (*gdbmi.ResultRecord, error)
	Interrupt() error
}

// Target names the view an input event is routed to.
type Target int

// Routing targets.
const (
	TargetConsole Target = iota
	TargetPager
	TargetPty
	TargetQuit
)

// columnStyle decorates the rule between the console and the right
// column.
var columnStyle = render.NewStyle(render.ColorGreen).
	WithBackground(render.ColorBlue).
	Bold().Italic().Underline()

// Gui is the composed debugger view.
type Gui struct {
	console *Console
	ptyView *PtyView
	pager   *ui.Pager

	leftLayout  ui.VerticalLayout
	rightLayout ui.VerticalLayout
}

// New creates the view. Terminal input for the debugged program is
// written to ptyOut; source files are highlighted with the given theme.
func New(ptyOut io.Writer, theme string) *Gui {
	return &Gui{
		console:     NewConsole(),
		ptyView:     NewPtyView(ptyOut),
		pager:       ui.NewPager(theme),
		leftLayout:  ui.VerticalLayout{Separator: '='},
		rightLayout: ui.VerticalLayout{Separator: '='},
	}
}

// Draw renders the whole view: console left, a two-column rule, then
// the source pager above the program terminal.
func (g *Gui) Draw(win *render.Window) {
	split := win.Width()/2 - 1
	left, rest := win.SplitH(split)
	separator, right := rest.SplitH(2)

	separator.SetDefaultStyle(columnStyle)
	separator.Fill('|')

	g.leftLayout.Draw(left, g.console)
	g.rightLayout.Draw(right, g.pager, g.ptyView)
}

// Event routes one classified input event to its view. Quit events are
// the event loop's job; one arriving here is a routing bug.
func (g *Gui) Event(ctx context.Context, target Target, ev render.Event, dbg Debugger) {
	switch target {
	case TargetConsole:
		g.console.HandleInput(ctx, ev, dbg)
	case TargetPager:
		guard := ui.ScrollGuard{
			Target:      g.pager,
			ForwardsOn:  render.KeyPageDown,
			BackwardsOn: render.KeyPageUp,
		}
		guard.HandleInput(ev)
	case TargetPty:
		guard := ui.WriteGuard{Sink: g.ptyView}
		guard.HandleInput(ev)
	case TargetQuit:
		panic("quit event must be handled by the event loop")
	}
}

// AddOutOfBandRecord translates one record from gdb into view updates.
func (g *Gui) AddOutOfBandRecord(record gdbmi.Record) {
	switch rec := record.(type) {
	case *gdbmi.StreamRecord:
		g.console.WriteOutput(rec.Text)
	case *gdbmi.AsyncRecord:
		g.handleAsyncRecord(rec)
	case *gdbmi.MalformedRecord:
		g.AddDebugMessage(fmt.Sprintf("unparsed gdb output %q: %v", rec.Line, rec.Err))
	case *gdbmi.ResultRecord:
		g.AddDebugMessage("unexpected result record: " + rec.String())
	}
}

func (g *Gui) handleAsyncRecord(rec *gdbmi.AsyncRecord) {
	if rec.Kind == gdbmi.AsyncExec && rec.Class == gdbmi.ClassStopped {
		g.console.AddMessage(fmt.Sprintf("stopped: %v", rec.Results))
		if err := g.showStopLocation(rec.Results); err != nil {
			g.AddDebugMessage(fmt.Sprintf("cannot show stop location: %v", err))
		}
		return
	}
	g.console.AddMessage(fmt.Sprintf("unhandled async_record: [%v, %v] %v",
		rec.Kind, rec.Class, rec.Results))
}

// showStopLocation moves the pager to the source position of a stop
// notification. Stops without a resolvable position, like those in
// code without debug info, are reported but never fatal.
func (g *Gui) showStopLocation(results gdbmi.NamedValues) error {
	frame, err := results.GetTuple("frame")
	if err != nil {
		return err
	}
	path, err := frame.GetString("fullname")
	if err != nil {
		return err
	}
	line, err := frame.GetInt("line")
	if err != nil {
		return err
	}
	// Records count lines from 1, the pager from 0.
	return g.ShowInFileViewer(path, line-1)
}

// ShowInFileViewer brings the given source position into view,
// reloading the pager only when the file changed.
func (g *Gui) ShowInFileViewer(path string, line int) error {
	if g.pager.Path() != path {
		if err := g.pager.Load(path); err != nil {
			return err
		}
	}
	return g.pager.ShowLine(line)
}

// AddPtyInput appends raw output of the debugged program.
func (g *Gui) AddPtyInput(data []byte) {
	g.ptyView.AddBytes(data)
}

// AddDebugMessage reports an internal condition on the console.
func (g *Gui) AddDebugMessage(msg string) {
	g.console.AddMessage("Debug: " + msg)
}

// PtyViewSize returns the extent of the program terminal at the last
// draw.
func (g *Gui) PtyViewSize() (cols, rows int) {
	return g.ptyView.Size()
}

// SourcePath returns the path shown in the pager, or "" when none.
func (g *Gui) SourcePath() string {
	return g.pager.Path()
}

// ReloadSource re-reads the shown file from disk.
func (g *Gui) ReloadSource() error {
	return g.pager.Reload()
}
