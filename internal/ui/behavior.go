package ui

import "github.com/dshills/gdbtui/internal/render"

// Guard is one link in an input dispatch chain. HandleInput returns
// true when the event was consumed; a false return passes the event to
// the next guard.
type Guard interface {
	HandleInput(ev render.Event) bool
}

// Chain dispatches an event through guards in priority order. The first
// guard that consumes the event wins.
type Chain []Guard

// HandleInput implements Guard, so chains nest.
func (c Chain) HandleInput(ev render.Event) bool {
	for _, g := range c {
		if g.HandleInput(ev) {
			return true
		}
	}
	return false
}

// KeyGuard consumes a single key, optionally gated by a condition.
type KeyGuard struct {
	Key    render.Key
	When   func() bool
	Action func()
}

func (g KeyGuard) HandleInput(ev render.Event) bool {
	if ev.Type != render.EventKey || ev.Key != g.Key {
		return false
	}
	if g.When != nil && !g.When() {
		return false
	}
	g.Action()
	return true
}

// EditGuard routes editing keys to a prompt line: rune insertion,
// cursor movement, history, deletion, and a configurable clear key.
type EditGuard struct {
	Editor  *PromptLine
	ClearOn render.Key
}

func (g EditGuard) HandleInput(ev render.Event) bool {
	if ev.Type != render.EventKey {
		return false
	}
	if g.ClearOn != render.KeyNone && ev.Key == g.ClearOn {
		g.Editor.Clear()
		return true
	}
	switch ev.Key {
	case render.KeyRune:
		g.Editor.InsertRune(ev.Rune)
	case render.KeyLeft:
		g.Editor.MoveLeft()
	case render.KeyRight:
		g.Editor.MoveRight()
	case render.KeyHome:
		g.Editor.MoveToStart()
	case render.KeyEnd:
		g.Editor.MoveToEnd()
	case render.KeyUp:
		g.Editor.HistoryPrev()
	case render.KeyDown:
		g.Editor.HistoryNext()
	case render.KeyBackspace:
		g.Editor.Backspace()
	case render.KeyDelete:
		g.Editor.Delete()
	default:
		return false
	}
	return true
}

// Scrollable is anything with a paged scroll position.
type Scrollable interface {
	ScrollForwards()
	ScrollBackwards()
}

// ScrollGuard binds two keys to paged scrolling of a target.
type ScrollGuard struct {
	Target      Scrollable
	ForwardsOn  render.Key
	BackwardsOn render.Key
}

func (g ScrollGuard) HandleInput(ev render.Event) bool {
	if ev.Type != render.EventKey {
		return false
	}
	switch ev.Key {
	case g.ForwardsOn:
		g.Target.ScrollForwards()
	case g.BackwardsOn:
		g.Target.ScrollBackwards()
	default:
		return false
	}
	return true
}

// RuneSink receives individual input characters, e.g. a terminal's
// input stream.
type RuneSink interface {
	WriteRune(r rune)
}

// WriteGuard translates key events into the characters a terminal
// would receive and feeds them to a sink. Keys without a character
// representation are passed on.
type WriteGuard struct {
	Sink RuneSink
}

func (g WriteGuard) HandleInput(ev render.Event) bool {
	if ev.Type != render.EventKey {
		return false
	}
	var r rune
	switch {
	case ev.Key == render.KeyRune:
		r = ev.Rune
	case ev.Key == render.KeyEnter:
		r = '\n'
	case ev.Key == render.KeyTab:
		r = '\t'
	case ev.Key == render.KeyEscape:
		r = 0x1B
	case ev.Key == render.KeyBackspace:
		r = 0x7F
	case ev.Key.IsCtrl():
		r = ev.Key.CtrlRune()
	default:
		return false
	}
	g.Sink.WriteRune(r)
	return true
}
