package gui

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dshills/gdbtui/internal/render"
	"github.com/dshills/gdbtui/internal/ui"
)

// PtyView shows the output of the debugged program and feeds keystrokes
// straight through to its terminal.
type PtyView struct {
	display *ui.LogView
	out     io.Writer
	pending []byte

	cols int
	rows int
}

// NewPtyView creates a view writing input to the given terminal.
func NewPtyView(out io.Writer) *PtyView {
	return &PtyView{
		display: ui.NewLogView(),
		out:     out,
	}
}

// AddBytes appends raw program output. Bytes are decoded once they form
// valid text; an incomplete trailing sequence stays buffered until its
// continuation arrives. The displayed text is the same no matter how
// the bytes were chunked.
func (v *PtyView) AddBytes(data []byte) {
	v.pending = append(v.pending, data...)
	if utf8.Valid(v.pending) {
		v.display.WriteString(string(v.pending))
		v.pending = v.pending[:0]
		return
	}

	cut := len(v.pending) - incompleteSuffix(v.pending)
	if cut == 0 {
		return
	}
	v.display.WriteString(decodeWithReplacement(v.pending[:cut]))
	v.pending = append(v.pending[:0], v.pending[cut:]...)
}

// incompleteSuffix returns the length of a trailing byte sequence that
// could still grow into a valid encoding.
func incompleteSuffix(b []byte) int {
	n := len(b)
	for i := 1; i <= utf8.UTFMax && i <= n; i++ {
		c := b[n-i]
		if c < 0x80 {
			return 0
		}
		if c >= 0xC0 {
			if sequenceLen(c) > i {
				return i
			}
			return 0
		}
		// Continuation byte, keep scanning for the leading byte.
	}
	return 0
}

// sequenceLen returns the encoded length a leading byte announces.
// Bytes that cannot lead a sequence count as length 1, so they are
// flushed as invalid instead of being held back.
func sequenceLen(c byte) int {
	switch {
	case c >= 0xC0 && c <= 0xDF:
		return 2
	case c >= 0xE0 && c <= 0xEF:
		return 3
	case c >= 0xF0 && c <= 0xF4:
		return 4
	}
	return 1
}

// decodeWithReplacement decodes bytes into text, mapping each invalid
// byte to the replacement character.
func decodeWithReplacement(b []byte) string {
	var s strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			s.WriteRune(utf8.RuneError)
			b = b[1:]
			continue
		}
		s.Write(b[:size])
		b = b[size:]
	}
	return s.String()
}

// WriteRune sends one input character to the debugged program.
func (v *PtyView) WriteRune(r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	_, _ = v.out.Write(buf[:n])
}

// Size returns the extent of the last draw, used to keep the
// pseudoterminal's reported window size in sync with the view.
func (v *PtyView) Size() (cols, rows int) {
	return v.cols, v.rows
}

// SpaceDemand implements ui.Widget.
func (v *PtyView) SpaceDemand() (ui.Demand, ui.Demand) {
	return v.display.SpaceDemand()
}

// Draw implements ui.Widget.
func (v *PtyView) Draw(win *render.Window) {
	v.cols, v.rows = win.Size()
	v.display.Draw(win)
}
