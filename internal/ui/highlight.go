package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/gdbtui/internal/render"
)

// StyledRun is a fragment of one line rendered in a single style.
type StyledRun struct {
	Text  string
	Style render.Style
}

// Highlighter turns file content into per-line styled runs bound to one
// theme.
type Highlighter interface {
	// Highlight splits content into lines of styled runs.
	Highlight(content string) [][]StyledRun

	// BaseStyle is the theme's default text style, also used for the
	// area not covered by runs.
	BaseStyle() render.Style

	// MarkStyle is the background used to mark the stopped line.
	MarkStyle() render.Style
}

// NewHighlighter builds a highlighter for the given file name and theme.
// A syntax definition is selected by matching the file name; when none
// matches, the fallback renders plain text in the theme's base colors.
// Unknown theme names resolve to the chroma fallback style.
func NewHighlighter(path, theme string) Highlighter {
	lexer := lexers.Match(path)
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}
	return &chromaHighlighter{
		lexer: lexer,
		style: styles.Get(theme),
		cache: make(map[chroma.TokenType]render.Style),
	}
}

type chromaHighlighter struct {
	lexer chroma.Lexer // nil renders plain text
	style *chroma.Style
	cache map[chroma.TokenType]render.Style
}

func (h *chromaHighlighter) Highlight(content string) [][]StyledRun {
	if h.lexer == nil {
		return h.plain(content)
	}
	it, err := h.lexer.Tokenise(nil, content)
	if err != nil {
		return h.plain(content)
	}

	runs := [][]StyledRun{nil}
	for tok := it(); tok != chroma.EOF; tok = it() {
		style := h.tokenStyle(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				runs = append(runs, nil)
			}
			if part == "" {
				continue
			}
			last := len(runs) - 1
			runs[last] = append(runs[last], StyledRun{Text: part, Style: style})
		}
	}
	return runs
}

func (h *chromaHighlighter) plain(content string) [][]StyledRun {
	base := h.BaseStyle()
	lines := splitLines(content)
	runs := make([][]StyledRun, len(lines))
	for i, line := range lines {
		if line != "" {
			runs[i] = []StyledRun{{Text: line, Style: base}}
		}
	}
	return runs
}

func (h *chromaHighlighter) tokenStyle(t chroma.TokenType) render.Style {
	if s, ok := h.cache[t]; ok {
		return s
	}
	entry := h.style.Get(t)
	s := render.Style{
		Foreground: convertColour(entry.Colour),
		Background: convertColour(entry.Background),
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold()
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic()
	}
	if entry.Underline == chroma.Yes {
		s = s.Underline()
	}
	h.cache[t] = s
	return s
}

func (h *chromaHighlighter) BaseStyle() render.Style {
	fg := h.style.Get(chroma.Text).Colour
	bg := h.style.Get(chroma.Background).Background
	return render.Style{
		Foreground: convertColour(fg),
		Background: convertColour(bg),
	}
}

// MarkStyle derives the stopped-line background by nudging the theme
// background towards the foreground, so the mark reads on dark and
// light themes alike.
func (h *chromaHighlighter) MarkStyle() render.Style {
	fg := h.style.Get(chroma.Text).Colour
	bg := h.style.Get(chroma.Background).Background

	base := chromaToColorful(bg, colorful.Color{R: 0.1, G: 0.1, B: 0.1})
	tint := chromaToColorful(fg, colorful.Color{R: 0.9, G: 0.9, B: 0.9})
	blended := base.BlendLab(tint, 0.2).Clamped()
	r, g, b := blended.RGB255()

	return render.Style{
		Foreground: render.ColorDefault,
		Background: render.ColorFromRGB(r, g, b),
	}
}

func convertColour(c chroma.Colour) render.Color {
	if !c.IsSet() {
		return render.ColorDefault
	}
	return render.ColorFromRGB(c.Red(), c.Green(), c.Blue())
}

func chromaToColorful(c chroma.Colour, fallback colorful.Color) colorful.Color {
	if !c.IsSet() {
		return fallback
	}
	return colorful.Color{
		R: float64(c.Red()) / 255,
		G: float64(c.Green()) / 255,
		B: float64(c.Blue()) / 255,
	}
}
