// Package render provides the display primitives for the debugger UI:
// colors, styles, cells, rectangles, and the surfaces widgets draw on.
package render

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint/dim text
	AttrItalic              // Italic text
	AttrUnderline           // Underlined text
	AttrReverse             // Reverse video (swap fg/bg)
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Color represents a color value.
// Supports true color (RGB) and terminal palette colors.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	// G and B are ignored in indexed mode.
	Indexed bool
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack  = Color{R: 0, G: 0, B: 0}
	ColorWhite  = Color{R: 255, G: 255, B: 255}
	ColorRed    = Color{R: 255, G: 0, B: 0}
	ColorGreen  = Color{R: 0, G: 255, B: 0}
	ColorBlue   = Color{R: 0, G: 0, B: 255}
	ColorYellow = Color{R: 255, G: 255, B: 0}
	ColorGray   = Color{R: 128, G: 128, B: 128}
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// IsDefault returns true if this is the default/transparent color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default != other.Default {
		return false
	}
	if c.Default {
		return true
	}
	if c.Indexed != other.Indexed {
		return false
	}
	if c.Indexed {
		return c.R == other.R
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.IsDefault() {
		return "default"
	}
	if c.Indexed {
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Style represents the visual style of text.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{
		Foreground: ColorDefault,
		Background: ColorDefault,
		Attributes: AttrNone,
	}
}

// NewStyle creates a style with the given foreground color.
func NewStyle(fg Color) Style {
	return Style{
		Foreground: fg,
		Background: ColorDefault,
		Attributes: AttrNone,
	}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Bold returns a new style with bold attribute added.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Dim returns a new style with dim attribute added.
func (s Style) Dim() Style {
	s.Attributes |= AttrDim
	return s
}

// Italic returns a new style with italic attribute added.
func (s Style) Italic() Style {
	s.Attributes |= AttrItalic
	return s
}

// Underline returns a new style with underline attribute added.
func (s Style) Underline() Style {
	s.Attributes |= AttrUnderline
	return s
}

// Reverse returns a new style with reverse video attribute added.
func (s Style) Reverse() Style {
	s.Attributes |= AttrReverse
	return s
}

// Merge combines two styles. Non-default colors of other win.
func (s Style) Merge(other Style) Style {
	result := s
	if !other.Foreground.IsDefault() {
		result.Foreground = other.Foreground
	}
	if !other.Background.IsDefault() {
		result.Background = other.Background
	}
	result.Attributes |= other.Attributes
	return result
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.Attributes == other.Attributes
}

// Cell represents a single display cell.
type Cell struct {
	// Rune is the character to display.
	Rune rune

	// Width is the display width of this cell.
	Width int

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns an empty cell with default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()}
}

// NewCell creates a cell with the given rune and default style.
func NewCell(r rune) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: DefaultStyle()}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// IsContinuation returns true if this is a continuation cell, the
// placeholder occupying the second column of a wide character.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Rune == 0
}

// ContinuationCell returns a continuation cell for wide characters.
func ContinuationCell() Cell {
	return Cell{Rune: 0, Width: 0, Style: DefaultStyle()}
}

// RuneWidth returns the display width of a rune.
func RuneWidth(r rune) int {
	if r < 32 || r == 0x7F {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// Rect represents a rectangular region on a surface.
type Rect struct {
	Top    int // First row (inclusive)
	Left   int // First column (inclusive)
	Bottom int // Last row (exclusive)
	Right  int // Last column (exclusive)
}

// NewRect creates a rectangle from its edges.
func NewRect(top, left, bottom, right int) Rect {
	return Rect{Top: top, Left: left, Bottom: bottom, Right: right}
}

// RectFromSize creates a rectangle from position and size.
func RectFromSize(top, left, height, width int) Rect {
	return Rect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the width of the rectangle.
func (r Rect) Width() int {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() int {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains returns true if the cell position is within the rectangle.
func (r Rect) Contains(row, col int) bool {
	return row >= r.Top && row < r.Bottom && col >= r.Left && col < r.Right
}

// Intersection returns the overlapping region of two rectangles.
func (r Rect) Intersection(other Rect) Rect {
	result := Rect{
		Top:    max(r.Top, other.Top),
		Left:   max(r.Left, other.Left),
		Bottom: min(r.Bottom, other.Bottom),
		Right:  min(r.Right, other.Right),
	}
	if result.IsEmpty() {
		return Rect{}
	}
	return result
}
