package ui

import (
	"image"
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/edward-ap/scrolllabel/internal/marquee"
)

var (
	parsedFontsMu sync.Mutex
	parsedFonts   = map[string]*opentype.Font{}
)

// textFace loads the theme font for style at size points times scale and
// falls back to a bitmap face when unavailable. Hinting is off so advances
// scale linearly and a width measured at scale 1 matches the raster.
func textFace(size float32, style fyne.TextStyle, scale float64) font.Face {
	res := theme.TextFont()
	if style.Bold {
		res = theme.TextBoldFont()
	}
	pt := float64(size)
	if pt <= 0 {
		pt = 14
	}
	if scale <= 0 {
		scale = 1
	}
	pt *= scale
	if pt < 6 {
		pt = 6
	}
	if ttf := parseThemeFont(res); ttf != nil {
		if face, err := opentype.NewFace(ttf, &opentype.FaceOptions{Size: pt, DPI: 72, Hinting: font.HintingNone}); err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}

func parseThemeFont(res fyne.Resource) *opentype.Font {
	if res == nil {
		return nil
	}
	parsedFontsMu.Lock()
	defer parsedFontsMu.Unlock()
	if f, ok := parsedFonts[res.Name()]; ok {
		return f
	}
	data := res.Content()
	if len(data) == 0 {
		return nil
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil
	}
	parsedFonts[res.Name()] = f
	return f
}

func closeFace(face font.Face) {
	if closer, ok := face.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

// measureTextWidth returns the advance of text in fyne units.
func measureTextWidth(text string, size float32, style fyne.TextStyle) float64 {
	if text == "" {
		return 0
	}
	face := textFace(size, style, 1)
	defer closeFace(face)
	d := &font.Drawer{Face: face}
	return float64(d.MeasureString(text)) / 64
}

// textStrip is the text rasterized once at a given pixel scale; frames only
// blit it at different offsets.
type textStrip struct {
	text  string
	size  float32
	style fyne.TextStyle
	col   color.Color
	scale float64
	h     int
	img   *image.RGBA
}

func (s *textStrip) matches(text string, size float32, style fyne.TextStyle, col color.Color, scale float64, h int) bool {
	return s != nil && s.text == text && s.size == size && s.style == style &&
		s.col == col && s.scale == scale && s.h == h
}

// rasterizeStrip draws text vertically centred into an image h pixels tall.
func rasterizeStrip(text string, size float32, style fyne.TextStyle, col color.Color, scale float64, h int) *textStrip {
	face := textFace(size, style, scale)
	defer closeFace(face)

	d := &font.Drawer{Face: face}
	w := d.MeasureString(text).Ceil()
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	metrics := face.Metrics()
	textH := (metrics.Ascent + metrics.Descent).Ceil()
	d.Dst = img
	d.Src = image.NewUniform(color.NRGBAModel.Convert(col))
	d.Dot = fixed.P(0, (h-textH)/2+metrics.Ascent.Ceil())
	d.DrawString(text)

	return &textStrip{text: text, size: size, style: style, col: col, scale: scale, h: h, img: img}
}

// composeFrame paints every text copy of f into a w x h image, scale pixels
// per fyne unit, and applies the edge fade.
func composeFrame(strip *textStrip, f marquee.Frame, w, h int, scale float64) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if strip == nil || strip.img == nil {
		return dst
	}
	sw := strip.img.Bounds().Dx()
	for _, off := range f.Offsets {
		x := int(math.Round(off * scale))
		if x >= w || x+sw <= 0 {
			continue
		}
		draw.Draw(dst, image.Rect(x, 0, x+sw, h), strip.img, image.Point{}, draw.Over)
	}
	applyFade(dst, f.Fade, scale)
	return dst
}

// applyFade multiplies every column of the premultiplied image by the fade
// opacity at its centre.
func applyFade(img *image.RGBA, fade marquee.FadeProfile, scale float64) {
	if fade.Length <= 0 || scale <= 0 {
		return
	}
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		op := fade.Opacity((float64(x) + 0.5) / scale)
		if op >= 1 {
			continue
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := img.PixOffset(x, y)
			px := img.Pix[i : i+4 : i+4]
			for c := range px {
				px[c] = uint8(float64(px[c])*op + 0.5)
			}
		}
	}
}
