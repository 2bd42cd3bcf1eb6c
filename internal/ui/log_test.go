package ui

import (
	"fmt"
	"testing"

	"github.com/dshills/gdbtui/internal/render"
)

func TestLogViewWriteSplitsLines(t *testing.T) {
	log := NewLogView()
	log.WriteString("one\ntwo\nthr")
	log.WriteString("ee\n")

	lines := log.Lines()
	want := []string{"one", "two", "three"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i, line := range want {
		if lines[i] != line {
			t.Errorf("line %d: expected %q, got %q", i, line, lines[i])
		}
	}
}

func TestLogViewOpenLine(t *testing.T) {
	log := NewLogView()
	log.WriteString("done\npart")

	lines := log.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[1] != "part" {
		t.Errorf("expected open line %q, got %q", "part", lines[1])
	}

	log.WriteString("ial\n")
	lines = log.Lines()
	if len(lines) != 2 || lines[1] != "partial" {
		t.Errorf("expected open line extended to %q, got %v", "partial", lines)
	}
}

func TestLogViewWriter(t *testing.T) {
	log := NewLogView()
	fmt.Fprintf(log, "value: %d\n", 42)

	lines := log.Lines()
	if len(lines) != 1 || lines[0] != "value: 42" {
		t.Errorf("expected formatted line, got %v", lines)
	}
}

func TestLogViewDrawShowsTail(t *testing.T) {
	log := NewLogView()
	for i := 0; i < 10; i++ {
		fmt.Fprintf(log, "line%d\n", i)
	}

	surface := render.NewMemorySurface(10, 3)
	log.Draw(render.NewWindow(surface))

	want := []string{"line7", "line8", "line9"}
	for y, line := range want {
		if got := surface.Line(y); got != line {
			t.Errorf("row %d: expected %q, got %q", y, line, got)
		}
	}
}

func TestLogViewScrollPages(t *testing.T) {
	log := NewLogView()
	for i := 0; i < 10; i++ {
		fmt.Fprintf(log, "line%d\n", i)
	}

	surface := render.NewMemorySurface(10, 3)
	log.Draw(render.NewWindow(surface))

	log.ScrollBackwards()
	log.Draw(render.NewWindow(surface))
	if got := surface.Line(0); got != "line4" {
		t.Errorf("expected one page back to start at line4, got %q", got)
	}

	// Scrolling past the oldest line clamps.
	for i := 0; i < 5; i++ {
		log.ScrollBackwards()
	}
	log.Draw(render.NewWindow(surface))
	if got := surface.Line(0); got != "line0" {
		t.Errorf("expected clamp at oldest line, got %q", got)
	}

	// Forward scrolling returns to the tail and clamps there.
	for i := 0; i < 9; i++ {
		log.ScrollForwards()
	}
	log.Draw(render.NewWindow(surface))
	if got := surface.Line(2); got != "line9" {
		t.Errorf("expected tail after scrolling forwards, got %q", got)
	}
}

func TestLogViewFollowsNewOutput(t *testing.T) {
	log := NewLogView()
	for i := 0; i < 5; i++ {
		fmt.Fprintf(log, "line%d\n", i)
	}

	surface := render.NewMemorySurface(10, 3)
	log.Draw(render.NewWindow(surface))

	log.WriteString("line5\n")
	log.Draw(render.NewWindow(surface))
	if got := surface.Line(2); got != "line5" {
		t.Errorf("expected viewport to follow new output, got %q", got)
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"\tx", "    x"},
		{"ab\tx", "ab  x"},
		{"abcd\tx", "abcd    x"},
		{"a\tb\tc", "a   b   c"},
	}
	for _, tt := range tests {
		if got := expandTabs(tt.in); got != tt.want {
			t.Errorf("expandTabs(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
