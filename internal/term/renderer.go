// Package term paints scroll frames into a row of a tcell screen, one cell
// per unit of width, blending faded cells toward the background colour.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/edward-ap/scrolllabel/internal/marquee"
)

// TextWidth measures s in terminal cells, the unit the engine works in here.
func TextWidth(s string) float64 {
	return float64(runewidth.StringWidth(s))
}

type glyph struct {
	r     rune
	col   int // cell column relative to the text start
	width int
}

// Renderer owns the text of one marquee row.
type Renderer struct {
	fg, bg colorful.Color
	bgTerm tcell.Color
	glyphs []glyph
	width  int
}

// NewRenderer prepares text for painting with the given colours. Colours
// without an RGB value (tcell.ColorDefault) fall back to white on black.
func NewRenderer(text string, fg, bg tcell.Color) *Renderer {
	r := &Renderer{
		fg:     toColorful(fg, colorful.Color{R: 1, G: 1, B: 1}),
		bg:     toColorful(bg, colorful.Color{}),
		bgTerm: bg,
	}
	r.SetText(text)
	return r
}

// SetText replaces the painted text.
func (r *Renderer) SetText(text string) {
	r.glyphs = r.glyphs[:0]
	col := 0
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		r.glyphs = append(r.glyphs, glyph{r: ch, col: col, width: w})
		col += w
	}
	r.width = col
}

// Width is the text width in cells.
func (r *Renderer) Width() int { return r.width }

// Draw paints f into the cells [x, x+width) of row y. Cells outside the text
// are cleared to the background.
func (r *Renderer) Draw(screen tcell.Screen, x, y, width int, f marquee.Frame) {
	base := tcell.StyleDefault.Background(r.bgTerm)
	for c := 0; c < width; c++ {
		screen.SetContent(x+c, y, ' ', nil, base)
	}
	for _, off := range f.Offsets {
		start := int(math.Floor(off + 0.5))
		for _, g := range r.glyphs {
			col := start + g.col
			if col < 0 || col+g.width > width {
				continue
			}
			op := f.Fade.Opacity(float64(col) + float64(g.width)/2)
			if op <= 0 {
				continue
			}
			screen.SetContent(x+col, y, g.r, nil, base.Foreground(r.blend(op)))
		}
	}
}

// blend mixes the text colour toward the background by the fade opacity.
func (r *Renderer) blend(opacity float64) tcell.Color {
	c := r.bg.BlendRgb(r.fg, opacity)
	cr, cg, cb := c.RGB255()
	return tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))
}

func toColorful(c tcell.Color, fallback colorful.Color) colorful.Color {
	cr, cg, cb := c.RGB()
	if cr < 0 || cg < 0 || cb < 0 {
		return fallback
	}
	return colorful.Color{R: float64(cr) / 255, G: float64(cg) / 255, B: float64(cb) / 255}
}
