package ui

import (
	"testing"

	"github.com/dshills/gdbtui/internal/render"
)

func typeString(p *PromptLine, s string) {
	for _, r := range s {
		p.InsertRune(r)
	}
}

func TestPromptLineEditing(t *testing.T) {
	p := NewPromptLine("> ")
	typeString(p, "brak")
	p.MoveLeft()
	p.Backspace()
	p.InsertRune('e')
	p.MoveToEnd()
	p.InsertRune('k')

	if got := p.Text(); got != "brekk" {
		t.Errorf("expected %q, got %q", "brekk", got)
	}

	p.MoveToStart()
	p.Delete()
	if got := p.Text(); got != "rekk" {
		t.Errorf("expected %q after delete at start, got %q", "rekk", got)
	}
}

func TestPromptLineEditingAtBounds(t *testing.T) {
	p := NewPromptLine("> ")
	p.Backspace()
	p.Delete()
	p.MoveLeft()
	p.MoveRight()
	if !p.IsEmpty() {
		t.Errorf("expected empty line, got %q", p.Text())
	}

	typeString(p, "x")
	p.MoveToEnd()
	p.Delete()
	if got := p.Text(); got != "x" {
		t.Errorf("expected delete past end to be ignored, got %q", got)
	}
}

func TestPromptLineFinish(t *testing.T) {
	p := NewPromptLine("> ")
	typeString(p, "break main")

	if got := p.Finish(); got != "break main" {
		t.Errorf("expected finished line, got %q", got)
	}
	if !p.IsEmpty() {
		t.Errorf("expected editor reset after finish, got %q", p.Text())
	}

	// The empty line finishes too but leaves no history entry.
	if got := p.Finish(); got != "" {
		t.Errorf("expected empty line, got %q", got)
	}
	p.HistoryPrev()
	if got := p.Text(); got != "break main" {
		t.Errorf("expected single history entry, got %q", got)
	}
}

func TestPromptLineHistory(t *testing.T) {
	p := NewPromptLine("> ")
	typeString(p, "first")
	p.Finish()
	typeString(p, "second")
	p.Finish()

	p.HistoryPrev()
	if got := p.Text(); got != "second" {
		t.Errorf("expected %q, got %q", "second", got)
	}
	p.HistoryPrev()
	if got := p.Text(); got != "first" {
		t.Errorf("expected %q, got %q", "first", got)
	}
	p.HistoryPrev()
	if got := p.Text(); got != "first" {
		t.Errorf("expected history to stop at oldest entry, got %q", got)
	}

	p.HistoryNext()
	if got := p.Text(); got != "second" {
		t.Errorf("expected %q, got %q", "second", got)
	}
	p.HistoryNext()
	if got := p.Text(); got != "" {
		t.Errorf("expected empty line past newest entry, got %q", got)
	}
}

func TestPromptLineHistoryStash(t *testing.T) {
	p := NewPromptLine("> ")
	typeString(p, "old")
	p.Finish()
	typeString(p, "in progress")

	p.HistoryPrev()
	if got := p.Text(); got != "old" {
		t.Errorf("expected history entry, got %q", got)
	}
	p.HistoryNext()
	if got := p.Text(); got != "in progress" {
		t.Errorf("expected stashed line restored, got %q", got)
	}
}

func TestPromptLineDraw(t *testing.T) {
	p := NewPromptLine("(gdb) ")
	typeString(p, "run")
	p.MoveToStart()
	p.MoveRight()

	surface := render.NewMemorySurface(20, 1)
	p.Draw(render.NewWindow(surface))

	if got := surface.Line(0); got != "(gdb) run" {
		t.Errorf("expected %q, got %q", "(gdb) run", got)
	}
	// The cursor sits on the 'u' and renders in reverse video.
	cell := surface.CellAt(7, 0)
	if cell.Rune != 'u' || !cell.Style.Attributes.Has(render.AttrReverse) {
		t.Errorf("expected reversed cursor cell on 'u', got %q with %v", cell.Rune, cell.Style.Attributes)
	}
}

func TestPromptLineDrawCursorAtEnd(t *testing.T) {
	p := NewPromptLine("> ")
	typeString(p, "x")

	surface := render.NewMemorySurface(10, 1)
	p.Draw(render.NewWindow(surface))

	cell := surface.CellAt(3, 0)
	if cell.Rune != ' ' || !cell.Style.Attributes.Has(render.AttrReverse) {
		t.Errorf("expected reversed space after text, got %q with %v", cell.Rune, cell.Style.Attributes)
	}
}

func TestPromptLineDrawScrollsToCursor(t *testing.T) {
	p := NewPromptLine("> ")
	typeString(p, "abcdefghij")

	surface := render.NewMemorySurface(6, 1)
	p.Draw(render.NewWindow(surface))

	// The left edge scrolls so the cursor cell stays inside the window.
	found := false
	for x := 0; x < 6; x++ {
		if surface.CellAt(x, 0).Style.Attributes.Has(render.AttrReverse) {
			found = true
		}
	}
	if !found {
		t.Error("expected cursor cell inside the window")
	}
	if got := surface.Line(0); got == "> abcd" {
		t.Errorf("expected scrolled view, got unscrolled %q", got)
	}
}

func TestPromptLineSpaceDemand(t *testing.T) {
	p := NewPromptLine("> ")
	typeString(p, "abc")

	horiz, vert := p.SpaceDemand()
	if horiz.Min != 6 {
		t.Errorf("expected width minimum for prompt, text and cursor, got %d", horiz.Min)
	}
	if vert.Min != 1 || vert.Max != 1 {
		t.Errorf("expected exactly one row, got %+v", vert)
	}
}
