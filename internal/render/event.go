package render

// EventType identifies the kind of a terminal event.
type EventType int

// Event types.
const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Key identifies a non-rune key press.
type Key int

// Key codes.
const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyTab
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCtrlSpace
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// IsCtrl returns true for the Ctrl-Space..Ctrl-Z block.
func (k Key) IsCtrl() bool {
	return k >= KeyCtrlSpace && k <= KeyCtrlZ
}

// CtrlRune returns the raw control character a Ctrl key produces on a
// terminal (Ctrl-Space is NUL, Ctrl-A is 0x01, ...). Returns 0 for
// non-Ctrl keys.
func (k Key) CtrlRune() rune {
	if !k.IsCtrl() {
		return 0
	}
	return rune(k - KeyCtrlSpace)
}

// ModMask is a bitmask of modifier keys.
type ModMask int

// Modifier flags.
const (
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Event is a decoded terminal event.
type Event struct {
	Type EventType

	// Key event fields. For KeyRune, Rune holds the character.
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields.
	Width  int
	Height int
}

// KeyEvent builds a key event for a special key.
func KeyEvent(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

// RuneEvent builds a key event for a printable rune.
func RuneEvent(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}
