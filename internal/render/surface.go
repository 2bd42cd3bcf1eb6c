package render

// Surface is the destination widgets draw on. Coordinates are absolute:
// (0,0) is the top-left corner.
type Surface interface {
	// Size returns the surface extent in columns and rows.
	Size() (width, height int)

	// SetCell places a cell at the given position. Out-of-range
	// positions are ignored.
	SetCell(x, y int, cell Cell)
}

// Backend extends Surface with the lifecycle and event source of a real
// terminal. Implemented by Terminal; the rest of the program only draws
// through Surface.
type Backend interface {
	Surface

	Init() error
	Fini()
	Clear()
	Show()
	ShowCursor(x, y int)
	HideCursor()
	PollEvent() Event
	Interrupt()
}

// Window is a clipped view onto a region of a Surface. Widgets receive a
// Window and draw in local coordinates; the window translates and clips.
// A Window carries a default style used for filling and as the base for
// text written without an explicit style.
type Window struct {
	surface Surface
	rect    Rect
	style   Style
}

// NewWindow creates a window covering the whole surface.
func NewWindow(s Surface) *Window {
	w, h := s.Size()
	return &Window{surface: s, rect: RectFromSize(0, 0, h, w), style: DefaultStyle()}
}

// Width returns the window width in columns.
func (w *Window) Width() int { return w.rect.Width() }

// Height returns the window height in rows.
func (w *Window) Height() int { return w.rect.Height() }

// Size returns the window extent.
func (w *Window) Size() (width, height int) {
	return w.rect.Width(), w.rect.Height()
}

// DefaultStyle returns the window's default style.
func (w *Window) DefaultStyle() Style { return w.style }

// SetDefaultStyle sets the style used by Fill and unstyled writes.
func (w *Window) SetDefaultStyle(style Style) { w.style = style }

// SetCell places a cell at window-local coordinates, clipped to the
// window bounds.
func (w *Window) SetCell(x, y int, cell Cell) {
	if x < 0 || y < 0 || x >= w.rect.Width() || y >= w.rect.Height() {
		return
	}
	w.surface.SetCell(w.rect.Left+x, w.rect.Top+y, cell)
}

// Fill covers the whole window with the given rune in the window's
// default style.
func (w *Window) Fill(r rune) {
	w.FillStyled(r, w.style)
}

// FillStyled covers the whole window with the given rune and style.
// Wide runes fall back to a space fill.
func (w *Window) FillStyled(r rune, style Style) {
	if RuneWidth(r) != 1 {
		r = ' '
	}
	cell := NewStyledCell(r, style)
	for y := 0; y < w.rect.Height(); y++ {
		for x := 0; x < w.rect.Width(); x++ {
			w.SetCell(x, y, cell)
		}
	}
}

// WriteString draws a string starting at (x, y) in the given style,
// expanding wide runes into continuation cells. It returns the column
// after the last cell written. Runes past the right edge are clipped.
func (w *Window) WriteString(x, y int, s string, style Style) int {
	for _, r := range s {
		width := RuneWidth(r)
		if width == 0 {
			continue
		}
		if x+width > w.rect.Width() {
			break
		}
		w.SetCell(x, y, NewStyledCell(r, style))
		if width == 2 {
			w.SetCell(x+1, y, ContinuationCell())
		}
		x += width
	}
	return x
}

// Sub returns a window restricted to the given window-local rectangle,
// clipped to this window's bounds. The sub-window inherits the default
// style.
func (w *Window) Sub(rect Rect) *Window {
	abs := Rect{
		Top:    w.rect.Top + rect.Top,
		Left:   w.rect.Left + rect.Left,
		Bottom: w.rect.Top + rect.Bottom,
		Right:  w.rect.Left + rect.Right,
	}
	return &Window{surface: w.surface, rect: abs.Intersection(w.rect), style: w.style}
}

// SplitV splits the window into an upper part of the given height and
// the remaining lower part.
func (w *Window) SplitV(height int) (upper, lower *Window) {
	height = clamp(height, 0, w.rect.Height())
	upper = w.Sub(RectFromSize(0, 0, height, w.rect.Width()))
	lower = w.Sub(NewRect(height, 0, w.rect.Height(), w.rect.Width()))
	return upper, lower
}

// SplitH splits the window into a left part of the given width and the
// remaining right part.
func (w *Window) SplitH(width int) (left, right *Window) {
	width = clamp(width, 0, w.rect.Width())
	left = w.Sub(RectFromSize(0, 0, w.rect.Height(), width))
	right = w.Sub(NewRect(0, width, w.rect.Height(), w.rect.Width()))
	return left, right
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
