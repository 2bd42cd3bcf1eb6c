package render

import "strings"

// MemorySurface is an in-memory Surface used by tests and headless
// rendering. It records every cell set on it.
type MemorySurface struct {
	width  int
	height int
	cells  [][]Cell
}

// NewMemorySurface creates a memory surface of the given size, filled
// with empty cells.
func NewMemorySurface(width, height int) *MemorySurface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]Cell, height)
	for y := range cells {
		row := make([]Cell, width)
		for x := range row {
			row[x] = EmptyCell()
		}
		cells[y] = row
	}
	return &MemorySurface{width: width, height: height, cells: cells}
}

func (m *MemorySurface) Size() (int, int) {
	return m.width, m.height
}

func (m *MemorySurface) SetCell(x, y int, cell Cell) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	m.cells[y][x] = cell
}

// CellAt returns the cell at the given position. Out-of-range positions
// return an empty cell.
func (m *MemorySurface) CellAt(x, y int) Cell {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return EmptyCell()
	}
	return m.cells[y][x]
}

// Line returns the text content of a row with trailing spaces trimmed.
// Continuation cells contribute nothing.
func (m *MemorySurface) Line(y int) string {
	if y < 0 || y >= m.height {
		return ""
	}
	var b strings.Builder
	for x := 0; x < m.width; x++ {
		c := m.cells[y][x]
		if c.IsContinuation() {
			continue
		}
		if c.Rune == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Rune)
	}
	return strings.TrimRight(b.String(), " ")
}

// Lines returns all rows as trimmed text.
func (m *MemorySurface) Lines() []string {
	lines := make([]string, m.height)
	for y := 0; y < m.height; y++ {
		lines[y] = m.Line(y)
	}
	return lines
}

// String renders the surface as newline-joined trimmed rows.
func (m *MemorySurface) String() string {
	return strings.Join(m.Lines(), "\n")
}
