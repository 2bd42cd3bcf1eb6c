package ui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestOpenFileLineStorage(t *testing.T) {
	path := writeTempFile(t, "main.c", "int main() {\n\treturn 0;\n}\n")

	storage, err := OpenFileLineStorage(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := storage.Path(); got != path {
		t.Errorf("expected path %q, got %q", path, got)
	}
	if got := storage.LineCount(); got != 3 {
		t.Errorf("expected 3 lines, got %d", got)
	}
	line, ok := storage.Line(1)
	if !ok || line != "\treturn 0;" {
		t.Errorf("expected second line, got %q (ok=%v)", line, ok)
	}
}

func TestOpenFileLineStorageMissing(t *testing.T) {
	_, err := OpenFileLineStorage(filepath.Join(t.TempDir(), "absent.c"))
	if !errors.Is(err, ErrCouldNotOpenFile) {
		t.Errorf("expected ErrCouldNotOpenFile, got %v", err)
	}
}

func TestFileLineStorageLineOutOfRange(t *testing.T) {
	path := writeTempFile(t, "one.c", "only\n")
	storage, err := OpenFileLineStorage(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := storage.Line(-1); ok {
		t.Error("expected no line at -1")
	}
	if _, ok := storage.Line(1); ok {
		t.Error("expected no line past the end")
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"empty", "", nil},
		{"blank lines kept", "a\n\nb\n", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLines(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d lines, got %d: %v", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}
