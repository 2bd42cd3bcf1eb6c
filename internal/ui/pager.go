package ui

import (
	"fmt"
	"strconv"

	"github.com/dshills/gdbtui/internal/render"
)

// Pager displays one file with syntax highlighting, a line-number
// gutter, and a marked active line. Content is replaced wholesale by
// Load; the viewport follows the active line.
type Pager struct {
	theme string

	storage     *FileLineStorage
	highlighter Highlighter
	runs        [][]StyledRun

	current  int // active (marked) line, 0-based
	top      int // first visible line
	pageSize int
}

// NewPager creates an empty pager bound to the given theme.
func NewPager(theme string) *Pager {
	return &Pager{theme: theme}
}

// Path returns the loaded file's path, or "" when nothing is loaded.
func (p *Pager) Path() string {
	if p.storage == nil {
		return ""
	}
	return p.storage.Path()
}

// CurrentLine returns the active line (0-based).
func (p *Pager) CurrentLine() int {
	return p.current
}

// Load replaces the pager content with the given file. The highlighter
// is rebuilt for the new file name; the active line resets to the top.
func (p *Pager) Load(path string) error {
	storage, err := OpenFileLineStorage(path)
	if err != nil {
		return err
	}
	p.storage = storage
	p.highlighter = NewHighlighter(path, p.theme)
	p.runs = p.highlighter.Highlight(storage.Content())
	p.current = 0
	p.top = 0
	return nil
}

// Reload re-reads the loaded file from disk, keeping the active line
// clamped to the new content.
func (p *Pager) Reload() error {
	if p.storage == nil {
		return ErrNoFileLoaded
	}
	storage, err := OpenFileLineStorage(p.storage.Path())
	if err != nil {
		return err
	}
	p.storage = storage
	p.runs = p.highlighter.Highlight(storage.Content())
	if p.current >= storage.LineCount() {
		p.current = max(0, storage.LineCount()-1)
	}
	return nil
}

// ShowLine makes the given 0-based line the active line. The viewport
// is left untouched when the line does not exist.
func (p *Pager) ShowLine(line int) error {
	if p.storage == nil {
		return ErrNoFileLoaded
	}
	if line < 0 || line >= p.storage.LineCount() {
		return fmt.Errorf("%w: line %d in %s", ErrLineDoesNotExist, line+1, p.storage.Path())
	}
	p.current = line
	return nil
}

// ScrollForwards moves the active line one page down.
func (p *Pager) ScrollForwards() {
	p.moveCurrent(max(1, p.pageSize))
}

// ScrollBackwards moves the active line one page up.
func (p *Pager) ScrollBackwards() {
	p.moveCurrent(-max(1, p.pageSize))
}

func (p *Pager) moveCurrent(delta int) {
	if p.storage == nil {
		return
	}
	p.current += delta
	if p.current >= p.storage.LineCount() {
		p.current = p.storage.LineCount() - 1
	}
	if p.current < 0 {
		p.current = 0
	}
}

// SpaceDemand wants at least one cell each way and any amount more.
func (p *Pager) SpaceDemand() (Demand, Demand) {
	return AtLeast(1), AtLeast(1)
}

// Draw renders the visible lines with the gutter and the active-line
// mark.
func (p *Pager) Draw(win *render.Window) {
	width, height := win.Size()
	if width <= 0 || height <= 0 {
		return
	}
	p.pageSize = height

	if p.storage == nil {
		return
	}
	base := p.highlighter.BaseStyle()
	mark := p.highlighter.MarkStyle()
	win.FillStyled(' ', base)

	count := p.storage.LineCount()
	p.clampViewport(height, count)

	gutter := gutterWidth(count)
	gutterStyle := base.Dim()

	for y := 0; y < height; y++ {
		line := p.top + y
		if line >= count {
			break
		}
		marked := line == p.current

		num := strconv.Itoa(line + 1)
		win.WriteString(gutter-1-len(num), y, num, gutterStyle)

		p.drawLine(win, y, line, gutter, width, marked, mark)
	}
}

func (p *Pager) drawLine(win *render.Window, y, line, gutter, width int, marked bool, mark render.Style) {
	x := gutter
	col := 0
	var runs []StyledRun
	if line < len(p.runs) {
		runs = p.runs[line]
	}
	for _, run := range runs {
		style := run.Style
		if marked {
			style = style.WithBackground(mark.Background)
		}
		for _, r := range run.Text {
			if x >= width {
				return
			}
			if r == '\t' {
				stop := tabWidth - col%tabWidth
				for i := 0; i < stop && x < width; i++ {
					win.SetCell(x, y, render.NewStyledCell(' ', style))
					x++
					col++
				}
				continue
			}
			w := render.RuneWidth(r)
			if w == 0 {
				continue
			}
			if x+w > width {
				return
			}
			win.SetCell(x, y, render.NewStyledCell(r, style))
			if w == 2 {
				win.SetCell(x+1, y, render.ContinuationCell())
			}
			x += w
			col += w
		}
	}
	if marked {
		for ; x < width; x++ {
			win.SetCell(x, y, render.NewStyledCell(' ', mark))
		}
	}
}

// clampViewport keeps the active line visible and the window as full as
// the content allows.
func (p *Pager) clampViewport(height, count int) {
	if p.current < p.top {
		p.top = p.current
	}
	if p.current >= p.top+height {
		p.top = p.current - height + 1
	}
	if p.top > count-height {
		p.top = count - height
	}
	if p.top < 0 {
		p.top = 0
	}
}

func gutterWidth(lineCount int) int {
	return len(strconv.Itoa(lineCount)) + 1
}
