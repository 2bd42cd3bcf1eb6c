package gui

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/gdbtui/internal/gdbmi"
	"github.com/dshills/gdbtui/internal/render"
	"github.com/dshills/gdbtui/internal/ui"
)

// interruptToken is the console command that interrupts the target
// instead of being sent to gdb. Typing it works even while the
// debugged program runs.
const interruptToken = "!stop"

// Console is the gdb command line: a scrolling message area above a
// prompt, separated by a rule.
type Console struct {
	log    *ui.LogView
	prompt *ui.PromptLine
	layout ui.VerticalLayout
}

// NewConsole creates an empty console.
func NewConsole() *Console {
	return &Console{
		log:    ui.NewLogView(),
		prompt: ui.NewPromptLine("(gdb) "),
		layout: ui.VerticalLayout{Separator: '='},
	}
}

// AddMessage appends one decorated message line to the console.
func (c *Console) AddMessage(msg string) {
	fmt.Fprintf(c.log, " -=- %s\n", msg)
}

// WriteOutput appends gdb output verbatim, without decoration.
func (c *Console) WriteOutput(text string) {
	c.log.WriteString(text)
}

// HandleInput processes one input event for the console. Enter submits
// the current line; everything else runs through the edit and scroll
// guards. Ctrl-C interrupts the target while the line is empty and
// clears the line otherwise.
func (c *Console) HandleInput(ctx context.Context, ev render.Event, dbg Debugger) {
	if ev.Type == render.EventKey && ev.Key == render.KeyEnter {
		c.submit(ctx, c.prompt.Finish(), dbg)
		return
	}

	chain := ui.Chain{
		ui.KeyGuard{
			Key:    render.KeyCtrlC,
			When:   c.prompt.IsEmpty,
			Action: func() { c.interrupt(dbg) },
		},
		ui.EditGuard{Editor: c.prompt, ClearOn: render.KeyCtrlC},
		ui.ScrollGuard{
			Target:      c.log,
			ForwardsOn:  render.KeyPageDown,
			BackwardsOn: render.KeyPageUp,
		},
	}
	chain.HandleInput(ev)
}

func (c *Console) submit(ctx context.Context, line string, dbg Debugger) {
	if line == interruptToken {
		c.interrupt(dbg)
		return
	}

	c.AddMessage("(gdb) " + line)
	result, err := dbg.Execute(ctx, line)
	switch {
	case err == nil:
		c.AddMessage("Result: " + result.String())
	case errors.Is(err, gdbmi.ErrQuit):
		c.AddMessage("quit")
	case errors.Is(err, gdbmi.ErrBusy):
		c.AddMessage("GDB is running!")
	default:
		c.AddMessage("Error: " + err.Error())
	}
}

func (c *Console) interrupt(dbg Debugger) {
	if err := dbg.Interrupt(); err != nil {
		c.AddMessage("Error: cannot interrupt gdb: " + err.Error())
	}
}

// SpaceDemand implements ui.Widget.
func (c *Console) SpaceDemand() (ui.Demand, ui.Demand) {
	return c.layout.SpaceDemand(c.log, c.prompt)
}

// Draw implements ui.Widget.
func (c *Console) Draw(win *render.Window) {
	c.layout.Draw(win, c.log, c.prompt)
}
