package ui

import (
	"strings"

	"github.com/dshills/gdbtui/internal/render"
)

const tabWidth = 4

// LogView is an append-only text buffer with paged scrolling. Text
// arrives in arbitrary chunks; a trailing chunk without a newline stays
// open and is extended by the next write. The view sticks to the bottom
// until scrolled back.
type LogView struct {
	lines   []string
	partial string

	// scrollback counts display lines between the bottom of the buffer
	// and the bottom of the viewport. 0 means following new output.
	scrollback int
	pageSize   int
}

// NewLogView creates an empty log view.
func NewLogView() *LogView {
	return &LogView{}
}

// Write appends raw text to the log. It implements io.Writer so
// formatted messages can be written with the fmt package.
func (l *LogView) Write(p []byte) (int, error) {
	l.WriteString(string(p))
	return len(p), nil
}

// WriteString appends text to the log, splitting it into lines at
// newlines. The text after the last newline remains an open line.
func (l *LogView) WriteString(s string) {
	if s == "" {
		return
	}
	text := l.partial + s
	parts := strings.Split(text, "\n")
	l.lines = append(l.lines, parts[:len(parts)-1]...)
	l.partial = parts[len(parts)-1]
}

// Lines returns all completed lines plus the open line, if any.
func (l *LogView) Lines() []string {
	if l.partial == "" {
		return l.lines
	}
	return append(append([]string(nil), l.lines...), l.partial)
}

// ScrollBackwards moves the viewport one page towards older output.
func (l *LogView) ScrollBackwards() {
	l.scrollback += max(1, l.pageSize)
	if m := l.maxScrollback(); l.scrollback > m {
		l.scrollback = m
	}
}

// ScrollForwards moves the viewport one page towards newer output.
func (l *LogView) ScrollForwards() {
	l.scrollback -= max(1, l.pageSize)
	if l.scrollback < 0 {
		l.scrollback = 0
	}
}

func (l *LogView) lineCount() int {
	n := len(l.lines)
	if l.partial != "" {
		n++
	}
	return n
}

func (l *LogView) maxScrollback() int {
	height := max(1, l.pageSize)
	return max(0, l.lineCount()-height)
}

// SpaceDemand wants at least one cell each way and any amount more.
func (l *LogView) SpaceDemand() (Demand, Demand) {
	return AtLeast(1), AtLeast(1)
}

// Draw renders the visible page, newest lines at the bottom.
func (l *LogView) Draw(win *render.Window) {
	width, height := win.Size()
	if width <= 0 || height <= 0 {
		return
	}
	l.pageSize = height

	visible := l.Lines()
	if l.scrollback > l.maxScrollback() {
		l.scrollback = l.maxScrollback()
	}
	start := len(visible) - height - l.scrollback
	if start < 0 {
		start = 0
	}
	end := min(len(visible), start+height)

	for y, line := range visible[start:end] {
		win.WriteString(0, y, expandTabs(line), win.DefaultStyle())
	}
}

// expandTabs replaces tabs with spaces up to the next tab stop.
func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			stop := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", stop))
			col += stop
			continue
		}
		b.WriteRune(r)
		col += render.RuneWidth(r)
	}
	return b.String()
}
