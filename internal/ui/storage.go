package ui

import (
	"fmt"
	"os"
	"strings"
)

// FileLineStorage holds the content of one file, indexed by line.
type FileLineStorage struct {
	path  string
	lines []string
}

// OpenFileLineStorage reads the file at path into line storage.
func OpenFileLineStorage(path string) (*FileLineStorage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCouldNotOpenFile, err)
	}
	return &FileLineStorage{path: path, lines: splitLines(string(data))}, nil
}

// Path returns the path the storage was loaded from.
func (s *FileLineStorage) Path() string {
	return s.path
}

// LineCount returns the number of lines in the file.
func (s *FileLineStorage) LineCount() int {
	return len(s.lines)
}

// Line returns the line at the given 0-based index.
func (s *FileLineStorage) Line(i int) (string, bool) {
	if i < 0 || i >= len(s.lines) {
		return "", false
	}
	return s.lines[i], true
}

// Content returns the file content joined back into one string.
func (s *FileLineStorage) Content() string {
	return strings.Join(s.lines, "\n")
}

// splitLines splits file content into lines, dropping the final empty
// fragment of a trailing newline and stripping carriage returns.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
