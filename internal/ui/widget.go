// Package ui provides the widgets the debugger front end is composed
// of: scrolling logs, a prompt line, a syntax-highlighted file pager,
// demand-driven layouts, and input behavior chains.
package ui

import "github.com/dshills/gdbtui/internal/render"

// Unbounded marks a demand with no upper limit.
const Unbounded = -1

// Demand describes how much space a widget wants along one axis.
// Max is Unbounded when the widget can use any amount.
type Demand struct {
	Min int
	Max int
}

// Exact returns a demand for exactly n cells.
func Exact(n int) Demand {
	return Demand{Min: n, Max: n}
}

// AtLeast returns a demand for n or more cells.
func AtLeast(n int) Demand {
	return Demand{Min: n, Max: Unbounded}
}

// Add combines two demands along the same axis (stacked widgets).
func (d Demand) Add(other Demand) Demand {
	result := Demand{Min: d.Min + other.Min}
	if d.Max == Unbounded || other.Max == Unbounded {
		result.Max = Unbounded
	} else {
		result.Max = d.Max + other.Max
	}
	return result
}

// Combine merges two demands competing for the same space (widgets side
// by side on the other axis): the larger minimum and the larger maximum
// win.
func (d Demand) Combine(other Demand) Demand {
	result := Demand{Min: max(d.Min, other.Min)}
	if d.Max == Unbounded || other.Max == Unbounded {
		result.Max = Unbounded
	} else {
		result.Max = max(d.Max, other.Max)
	}
	return result
}

// Widget is a drawable UI element. SpaceDemand reports the wanted
// extent along both axes; Draw renders into the given window. Demands
// are recomputed on every redraw, never cached.
type Widget interface {
	SpaceDemand() (horizontal, vertical Demand)
	Draw(win *render.Window)
}
