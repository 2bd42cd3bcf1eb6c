package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Init()
}

func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cell.IsContinuation() {
		// tcell manages wide-rune continuation itself.
		return
	}
	t.screen.SetContent(x, y, cell.Rune, nil, convertStyle(cell.Style))
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

// PollEvent blocks until the next terminal event. It returns an
// EventInterrupt event after Interrupt is called and an EventNone event
// once the screen is finalized.
func (t *Terminal) PollEvent() Event {
	return convertEvent(t.screen.PollEvent())
}

// Interrupt wakes up a goroutine blocked in PollEvent.
func (t *Terminal) Interrupt() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // best effort
}

// convertStyle converts a Style to tcell.Style.
func convertStyle(s Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		if s.Foreground.Indexed {
			style = style.Foreground(tcell.PaletteColor(int(s.Foreground.R)))
		} else {
			style = style.Foreground(tcell.NewRGBColor(int32(s.Foreground.R), int32(s.Foreground.G), int32(s.Foreground.B)))
		}
	}
	if !s.Background.IsDefault() {
		if s.Background.Indexed {
			style = style.Background(tcell.PaletteColor(int(s.Background.R)))
		} else {
			style = style.Background(tcell.NewRGBColor(int32(s.Background.R), int32(s.Background.G), int32(s.Background.B)))
		}
	}

	if s.Attributes.Has(AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(AttrReverse) {
		style = style.Reverse(true)
	}

	return style
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}

	default:
		return Event{Type: EventNone}
	}
}

// convertKey converts a tcell key to our Key type.
func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyTab:
		return KeyTab
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace
	case tcell.KeyDelete:
		return KeyDelete
	case tcell.KeyInsert:
		return KeyInsert
	case tcell.KeyHome:
		return KeyHome
	case tcell.KeyEnd:
		return KeyEnd
	case tcell.KeyPgUp:
		return KeyPageUp
	case tcell.KeyPgDn:
		return KeyPageDown
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyF1:
		return KeyF1
	case tcell.KeyF2:
		return KeyF2
	case tcell.KeyF3:
		return KeyF3
	case tcell.KeyF4:
		return KeyF4
	case tcell.KeyF5:
		return KeyF5
	case tcell.KeyF6:
		return KeyF6
	case tcell.KeyF7:
		return KeyF7
	case tcell.KeyF8:
		return KeyF8
	case tcell.KeyF9:
		return KeyF9
	case tcell.KeyF10:
		return KeyF10
	case tcell.KeyF11:
		return KeyF11
	case tcell.KeyF12:
		return KeyF12
	case tcell.KeyCtrlSpace:
		return KeyCtrlSpace
	case tcell.KeyCtrlA:
		return KeyCtrlA
	case tcell.KeyCtrlB:
		return KeyCtrlB
	case tcell.KeyCtrlC:
		return KeyCtrlC
	case tcell.KeyCtrlD:
		return KeyCtrlD
	case tcell.KeyCtrlE:
		return KeyCtrlE
	case tcell.KeyCtrlF:
		return KeyCtrlF
	case tcell.KeyCtrlG:
		return KeyCtrlG
	case tcell.KeyCtrlK:
		return KeyCtrlK
	case tcell.KeyCtrlL:
		return KeyCtrlL
	case tcell.KeyCtrlN:
		return KeyCtrlN
	case tcell.KeyCtrlO:
		return KeyCtrlO
	case tcell.KeyCtrlP:
		return KeyCtrlP
	case tcell.KeyCtrlQ:
		return KeyCtrlQ
	case tcell.KeyCtrlR:
		return KeyCtrlR
	case tcell.KeyCtrlS:
		return KeyCtrlS
	case tcell.KeyCtrlT:
		return KeyCtrlT
	case tcell.KeyCtrlU:
		return KeyCtrlU
	case tcell.KeyCtrlV:
		return KeyCtrlV
	case tcell.KeyCtrlW:
		return KeyCtrlW
	case tcell.KeyCtrlX:
		return KeyCtrlX
	case tcell.KeyCtrlY:
		return KeyCtrlY
	case tcell.KeyCtrlZ:
		return KeyCtrlZ
	default:
		return KeyNone
	}
}

// convertMod converts a tcell modifier mask to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}
