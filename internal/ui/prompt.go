package ui

import "github.com/dshills/gdbtui/internal/render"

// PromptLine is a single-row line editor with a fixed prompt and a
// submission history. The cursor cell is drawn in reverse video.
type PromptLine struct {
	prompt string
	buf    []rune
	cursor int

	history []string
	histPos int
	stash   string
}

// NewPromptLine creates an empty editor with the given prompt text.
func NewPromptLine(prompt string) *PromptLine {
	return &PromptLine{prompt: prompt}
}

// Text returns the current line content without the prompt.
func (p *PromptLine) Text() string {
	return string(p.buf)
}

// IsEmpty returns true if no text has been entered.
func (p *PromptLine) IsEmpty() bool {
	return len(p.buf) == 0
}

// InsertRune inserts a rune at the cursor.
func (p *PromptLine) InsertRune(r rune) {
	p.buf = append(p.buf, 0)
	copy(p.buf[p.cursor+1:], p.buf[p.cursor:])
	p.buf[p.cursor] = r
	p.cursor++
}

// Backspace removes the rune before the cursor.
func (p *PromptLine) Backspace() {
	if p.cursor == 0 {
		return
	}
	p.buf = append(p.buf[:p.cursor-1], p.buf[p.cursor:]...)
	p.cursor--
}

// Delete removes the rune under the cursor.
func (p *PromptLine) Delete() {
	if p.cursor >= len(p.buf) {
		return
	}
	p.buf = append(p.buf[:p.cursor], p.buf[p.cursor+1:]...)
}

// MoveLeft moves the cursor one rune left.
func (p *PromptLine) MoveLeft() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// MoveRight moves the cursor one rune right, at most one past the end.
func (p *PromptLine) MoveRight() {
	if p.cursor < len(p.buf) {
		p.cursor++
	}
}

// MoveToStart moves the cursor to the beginning of the line.
func (p *PromptLine) MoveToStart() {
	p.cursor = 0
}

// MoveToEnd moves the cursor past the last rune.
func (p *PromptLine) MoveToEnd() {
	p.cursor = len(p.buf)
}

// Clear discards the line content.
func (p *PromptLine) Clear() {
	p.buf = p.buf[:0]
	p.cursor = 0
	p.histPos = len(p.history)
}

// Finish returns the entered line and resets the editor. Non-empty
// lines are added to the history.
func (p *PromptLine) Finish() string {
	line := string(p.buf)
	if line != "" {
		p.history = append(p.history, line)
	}
	p.buf = p.buf[:0]
	p.cursor = 0
	p.histPos = len(p.history)
	p.stash = ""
	return line
}

// HistoryPrev replaces the line with the previous history entry,
// stashing the in-progress line on first use.
func (p *PromptLine) HistoryPrev() {
	if p.histPos == 0 {
		return
	}
	if p.histPos == len(p.history) {
		p.stash = string(p.buf)
	}
	p.histPos--
	p.setText(p.history[p.histPos])
}

// HistoryNext moves towards the stashed in-progress line.
func (p *PromptLine) HistoryNext() {
	if p.histPos >= len(p.history) {
		return
	}
	p.histPos++
	if p.histPos == len(p.history) {
		p.setText(p.stash)
		return
	}
	p.setText(p.history[p.histPos])
}

func (p *PromptLine) setText(s string) {
	p.buf = []rune(s)
	p.cursor = len(p.buf)
}

// SpaceDemand wants exactly one row and room for the prompt, the text
// and the cursor.
func (p *PromptLine) SpaceDemand() (Demand, Demand) {
	width := 0
	for _, r := range p.prompt + string(p.buf) {
		width += render.RuneWidth(r)
	}
	return AtLeast(width + 1), Exact(1)
}

// Draw renders the prompt and line, scrolled horizontally so the cursor
// stays visible.
func (p *PromptLine) Draw(win *render.Window) {
	width, height := win.Size()
	if width <= 0 || height <= 0 {
		return
	}

	runes := append([]rune(p.prompt), p.buf...)
	cursorIdx := len([]rune(p.prompt)) + p.cursor

	// Scroll left edge forward until the cursor fits.
	offset := 0
	for colSpan(runes[offset:cursorIdx]) >= width && offset < cursorIdx {
		offset++
	}

	style := win.DefaultStyle()
	x := 0
	for i := offset; i < len(runes); i++ {
		w := render.RuneWidth(runes[i])
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		cs := style
		if i == cursorIdx {
			cs = cs.Reverse()
		}
		win.SetCell(x, 0, render.NewStyledCell(runes[i], cs))
		if w == 2 {
			win.SetCell(x+1, 0, render.ContinuationCell())
		}
		x += w
	}
	if cursorIdx >= len(runes) && x < width {
		win.SetCell(x, 0, render.NewStyledCell(' ', style.Reverse()))
	}
}

func colSpan(runes []rune) int {
	n := 0
	for _, r := range runes {
		n += render.RuneWidth(r)
	}
	return n
}
