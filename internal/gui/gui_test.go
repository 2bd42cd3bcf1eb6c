package gui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/gdbtui/internal/gdbmi"
	"github.com/dshills/gdbtui/internal/render"
)

func newTestGui() (*Gui, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(out, "monokai"), out
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}
	return path
}

func stoppedRecord(path string, line string) *gdbmi.AsyncRecord {
	return &gdbmi.AsyncRecord{
		Kind:  gdbmi.AsyncExec,
		Class: gdbmi.ClassStopped,
		Results: gdbmi.NamedValues{
			{Name: "reason", Value: gdbmi.Value{Kind: gdbmi.ValueConst, Const: "breakpoint-hit"}},
			{Name: "frame", Value: gdbmi.Value{Kind: gdbmi.ValueTuple, Tuple: gdbmi.NamedValues{
				{Name: "fullname", Value: gdbmi.Value{Kind: gdbmi.ValueConst, Const: path}},
				{Name: "line", Value: gdbmi.Value{Kind: gdbmi.ValueConst, Const: line}},
			}}},
		},
	}
}

func TestGuiStreamRecordsAppearVerbatim(t *testing.T) {
	g, _ := newTestGui()

	g.AddOutOfBandRecord(&gdbmi.StreamRecord{Kind: gdbmi.StreamConsole, Text: "Reading symbols...\n"})

	lines := g.console.log.Lines()
	if len(lines) != 1 || lines[0] != "Reading symbols..." {
		t.Errorf("expected undecorated output, got %v", lines)
	}
}

func TestGuiStoppedRecordMovesPager(t *testing.T) {
	g, _ := newTestGui()
	path := writeSource(t, "main.c", "int main() {\n\treturn 0;\n}\n")

	g.AddOutOfBandRecord(stoppedRecord(path, "2"))

	if got := g.pager.Path(); got != path {
		t.Errorf("expected pager on %q, got %q", path, got)
	}
	if got := g.pager.CurrentLine(); got != 1 {
		t.Errorf("expected active line 1, got %d", got)
	}
	if !logContains(g.console, "stopped:") {
		t.Errorf("expected stop message, got %v", g.console.log.Lines())
	}
}

func TestGuiStoppedRecordReloadsOnlyOnPathChange(t *testing.T) {
	g, _ := newTestGui()
	path := writeSource(t, "main.c", "first\nsecond\nthird\n")

	g.AddOutOfBandRecord(stoppedRecord(path, "1"))

	// Rewriting the file does not show up while the path is unchanged.
	if err := os.WriteFile(path, []byte("changed\nchanged\nchanged\n"), 0o644); err != nil {
		t.Fatalf("failed to rewrite file: %v", err)
	}
	g.AddOutOfBandRecord(stoppedRecord(path, "2"))

	surface := render.NewMemorySurface(20, 3)
	g.pager.Draw(render.NewWindow(surface))
	if got := surface.Line(0); got != "1 first" {
		t.Errorf("expected stale content without reload, got %q", got)
	}

	other := writeSource(t, "other.c", "fresh\n")
	g.AddOutOfBandRecord(stoppedRecord(other, "1"))
	g.pager.Draw(render.NewWindow(surface))
	if got := surface.Line(0); got != "1 fresh" {
		t.Errorf("expected new file loaded, got %q", got)
	}
}

func TestGuiMalformedStoppedIsRecoverable(t *testing.T) {
	g, _ := newTestGui()

	rec := &gdbmi.AsyncRecord{
		Kind:  gdbmi.AsyncExec,
		Class: gdbmi.ClassStopped,
		Results: gdbmi.NamedValues{
			{Name: "reason", Value: gdbmi.Value{Kind: gdbmi.ValueConst, Const: "signal-received"}},
		},
	}
	g.AddOutOfBandRecord(rec)

	if !logContains(g.console, "Debug: cannot show stop location") {
		t.Errorf("expected recoverable debug message, got %v", g.console.log.Lines())
	}
	if got := g.pager.Path(); got != "" {
		t.Errorf("expected pager untouched, got %q", got)
	}
}

func TestGuiStoppedWithMissingFileIsRecoverable(t *testing.T) {
	g, _ := newTestGui()

	g.AddOutOfBandRecord(stoppedRecord("/no/such/file.c", "3"))

	if !logContains(g.console, "Debug: cannot show stop location") {
		t.Errorf("expected recoverable debug message, got %v", g.console.log.Lines())
	}
}

func TestGuiUnhandledAsyncRecord(t *testing.T) {
	g, _ := newTestGui()

	g.AddOutOfBandRecord(&gdbmi.AsyncRecord{
		Kind:  gdbmi.AsyncNotify,
		Class: "thread-group-added",
		Results: gdbmi.NamedValues{
			{Name: "id", Value: gdbmi.Value{Kind: gdbmi.ValueConst, Const: "i1"}},
		},
	})

	want := ` -=- unhandled async_record: [notify, thread-group-added] {id="i1"}`
	if !logContains(g.console, want) {
		t.Errorf("expected %q, got %v", want, g.console.log.Lines())
	}
}

func TestGuiMalformedRecordLogged(t *testing.T) {
	g, _ := newTestGui()

	g.AddOutOfBandRecord(&gdbmi.MalformedRecord{
		Line: "garbage",
		Err:  &gdbmi.ParseError{Msg: "unrecognized record"},
	})

	if !logContains(g.console, "Debug: unparsed gdb output") {
		t.Errorf("expected debug message, got %v", g.console.log.Lines())
	}
}

func TestGuiPtyInputReachesTerminalView(t *testing.T) {
	g, _ := newTestGui()
	g.AddPtyInput([]byte("program output\n"))

	lines := g.ptyView.display.Lines()
	if len(lines) != 1 || lines[0] != "program output" {
		t.Errorf("expected program output displayed, got %v", lines)
	}
}

func TestGuiEventRouting(t *testing.T) {
	g, out := newTestGui()
	dbg := &stubDebugger{}
	ctx := context.Background()

	g.Event(ctx, TargetConsole, render.RuneEvent('x'), dbg)
	if got := g.console.prompt.Text(); got != "x" {
		t.Errorf("expected console input, got %q", got)
	}

	g.Event(ctx, TargetPty, render.RuneEvent('y'), dbg)
	if got := out.String(); got != "y" {
		t.Errorf("expected terminal input written through, got %q", got)
	}

	path := writeSource(t, "scroll.c", strings.Repeat("line\n", 20))
	if err := g.ShowInFileViewer(path, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	surface := render.NewMemorySurface(20, 5)
	g.pager.Draw(render.NewWindow(surface))

	g.Event(ctx, TargetPager, render.KeyEvent(render.KeyPageDown), dbg)
	if got := g.pager.CurrentLine(); got != 5 {
		t.Errorf("expected pager scrolled one page, got line %d", got)
	}
}

func TestGuiQuitEventPanics(t *testing.T) {
	g, _ := newTestGui()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for a quit event reaching the view")
		}
	}()
	g.Event(context.Background(), TargetQuit, render.KeyEvent(render.KeyCtrlQ), &stubDebugger{})
}

func TestGuiDrawComposition(t *testing.T) {
	g, _ := newTestGui()
	g.console.WriteOutput("left side\n")
	g.AddPtyInput([]byte("right side\n"))

	surface := render.NewMemorySurface(40, 10)
	g.Draw(render.NewWindow(surface))

	// Console fills the left half, ending in the prompt.
	if got := surface.Line(9); !strings.HasPrefix(got, "(gdb)") {
		t.Errorf("expected prompt on the last left row, got %q", got)
	}

	// The two-column rule sits right of the split.
	for y := 0; y < 10; y++ {
		if surface.CellAt(19, y).Rune != '|' || surface.CellAt(20, y).Rune != '|' {
			t.Fatalf("expected rule at row %d, got %q %q",
				y, surface.CellAt(19, y).Rune, surface.CellAt(20, y).Rune)
		}
	}
	style := surface.CellAt(19, 0).Style
	if !style.Foreground.Equals(render.ColorGreen) || !style.Background.Equals(render.ColorBlue) {
		t.Errorf("expected green on blue rule, got %+v", style)
	}
	if !style.Attributes.Has(render.AttrBold) || !style.Attributes.Has(render.AttrItalic) ||
		!style.Attributes.Has(render.AttrUnderline) {
		t.Errorf("expected bold italic underline, got %v", style.Attributes)
	}

	// The right column splits into pager over terminal.
	cols, rows := g.PtyViewSize()
	if cols != 19 || rows != 4 {
		t.Errorf("expected terminal view 19x4, got %dx%d", cols, rows)
	}
	if got := surface.CellAt(21, 5).Rune; got != '=' {
		t.Errorf("expected rule between pager and terminal, got %q", got)
	}
}
