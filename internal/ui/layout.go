package ui

import "github.com/dshills/gdbtui/internal/render"

// VerticalLayout stacks widgets top to bottom, optionally drawing a
// one-row separator line between them. Space is assigned bottom-up from
// the widgets' demands on every draw; drawing is then top-down with the
// computed allocation.
type VerticalLayout struct {
	// Separator is drawn on a full row between adjacent widgets when
	// nonzero.
	Separator rune

	// SeparatorStyle decorates the separator rows. The zero style
	// inherits the window's default style.
	SeparatorStyle render.Style
}

func (l *VerticalLayout) separatorRows() int {
	if l.Separator == 0 {
		return 0
	}
	return 1
}

// SpaceDemand aggregates the demands of the stacked widgets: widths
// compete, heights add up together with the separator rows.
func (l *VerticalLayout) SpaceDemand(widgets ...Widget) (Demand, Demand) {
	var horiz, vert Demand
	for i, w := range widgets {
		wh, wv := w.SpaceDemand()
		if i == 0 {
			horiz, vert = wh, wv
			continue
		}
		horiz = horiz.Combine(wh)
		vert = vert.Add(wv).Add(Exact(l.separatorRows()))
	}
	return horiz, vert
}

// Draw assigns the window height to the widgets and renders them.
func (l *VerticalLayout) Draw(win *render.Window, widgets ...Widget) {
	if len(widgets) == 0 || win.Width() <= 0 || win.Height() <= 0 {
		return
	}

	sep := l.separatorRows()
	available := win.Height() - sep*(len(widgets)-1)
	demands := make([]Demand, len(widgets))
	for i, w := range widgets {
		_, demands[i] = w.SpaceDemand()
	}
	heights := assignSpace(demands, available)

	sepStyle := l.SeparatorStyle
	if sepStyle.Equals(render.Style{}) {
		sepStyle = win.DefaultStyle()
	}

	y := 0
	for i, w := range widgets {
		if i > 0 && sep > 0 {
			line := win.Sub(render.RectFromSize(y, 0, 1, win.Width()))
			line.FillStyled(l.Separator, sepStyle)
			y++
		}
		if heights[i] > 0 {
			w.Draw(win.Sub(render.RectFromSize(y, 0, heights[i], win.Width())))
		}
		y += heights[i]
	}
}

// assignSpace distributes the available extent over the demands:
// minimums are granted first in order, then the remainder is handed out
// round-robin to widgets that can still grow.
func assignSpace(demands []Demand, available int) []int {
	alloc := make([]int, len(demands))
	if available <= 0 {
		return alloc
	}

	remaining := available
	for i, d := range demands {
		give := min(d.Min, remaining)
		alloc[i] = give
		remaining -= give
		if remaining == 0 {
			break
		}
	}

	for remaining > 0 {
		grew := false
		for i, d := range demands {
			if remaining == 0 {
				break
			}
			if d.Max != Unbounded && alloc[i] >= d.Max {
				continue
			}
			alloc[i]++
			remaining--
			grew = true
		}
		if !grew {
			break
		}
	}
	return alloc
}
