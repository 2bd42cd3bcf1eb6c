package gui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/gdbtui/internal/render"
)

func viewText(v *PtyView) string {
	return strings.Join(v.display.Lines(), "\n")
}

func TestPtyViewPlainOutput(t *testing.T) {
	v := NewPtyView(&bytes.Buffer{})
	v.AddBytes([]byte("hello\nworld"))

	lines := v.display.Lines()
	if len(lines) != 2 || lines[0] != "hello" || lines[1] != "world" {
		t.Errorf("expected output split into lines, got %v", lines)
	}
}

func TestPtyViewReassemblesSplitSequences(t *testing.T) {
	v := NewPtyView(&bytes.Buffer{})

	// A euro sign arriving in two chunks.
	v.AddBytes([]byte{0xE2, 0x82})
	if got := viewText(v); got != "" {
		t.Fatalf("expected incomplete sequence held back, got %q", got)
	}
	v.AddBytes([]byte{0xAC})
	if got := viewText(v); got != "€" {
		t.Errorf("expected reassembled rune, got %q", got)
	}
}

func TestPtyViewFlushesTextBeforeIncompleteTail(t *testing.T) {
	v := NewPtyView(&bytes.Buffer{})

	v.AddBytes([]byte("ok\xE2\x82"))
	if got := viewText(v); got != "ok" {
		t.Fatalf("expected complete prefix flushed, got %q", got)
	}
	v.AddBytes([]byte{0xAC})
	if got := viewText(v); got != "ok€" {
		t.Errorf("expected tail completed in place, got %q", got)
	}
}

func TestPtyViewInvalidBytesBecomeReplacements(t *testing.T) {
	v := NewPtyView(&bytes.Buffer{})

	v.AddBytes([]byte("a\xffb"))
	if got := viewText(v); got != "a�b" {
		t.Errorf("expected replacement for invalid byte, got %q", got)
	}
}

func TestPtyViewChunkingDoesNotChangeOutput(t *testing.T) {
	payload := []byte("h\xc3\xa9llo w\xc3\xb6rld \xe2\x82\xac\xff!\n")

	bulk := NewPtyView(&bytes.Buffer{})
	bulk.AddBytes(payload)

	bytewise := NewPtyView(&bytes.Buffer{})
	for _, b := range payload {
		bytewise.AddBytes([]byte{b})
	}

	if got, want := viewText(bytewise), viewText(bulk); got != want {
		t.Errorf("expected identical output, bulk %q vs bytewise %q", want, got)
	}
}

func TestPtyViewWriteRune(t *testing.T) {
	out := &bytes.Buffer{}
	v := NewPtyView(out)

	for _, r := range "l\n" {
		v.WriteRune(r)
	}
	v.WriteRune('ä')

	if got := out.String(); got != "l\nä" {
		t.Errorf("expected input written through, got %q", got)
	}
}

func TestPtyViewCapturesDrawSize(t *testing.T) {
	v := NewPtyView(&bytes.Buffer{})
	surface := render.NewMemorySurface(30, 7)
	v.Draw(render.NewWindow(surface))

	cols, rows := v.Size()
	if cols != 30 || rows != 7 {
		t.Errorf("expected 30x7, got %dx%d", cols, rows)
	}
}
