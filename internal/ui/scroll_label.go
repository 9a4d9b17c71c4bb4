package ui

import (
	"image"
	"image/color"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/edward-ap/scrolllabel/internal/marquee"
)

// minScrollLabelWidth lets layouts squeeze the label well below its text
// width; overflow is what the marquee is for.
const minScrollLabelWidth = 32

// overflowTolerance is the measured overflow, in fyne units, still drawn
// statically. Glyph advances carry sub-pixel noise, and half a unit of
// travel would only make the text crawl.
const overflowTolerance = 0.5

// ScrollLabel is a single-line label that scrolls its text when it does not
// fit and fades the clipped edges. SetText, StartScroll and StopScroll are
// safe to call from any goroutine.
type ScrollLabel struct {
	widget.BaseWidget

	// TextStyle selects bold/italic/monospace; call Refresh after changing it.
	TextStyle fyne.TextStyle
	// Color overrides the theme foreground when set.
	Color color.Color

	scroller *marquee.Scroller

	mu         sync.Mutex
	text       string
	wantScroll bool
	strip      *textStrip
}

// NewScrollLabel creates a label with the default scroll configuration.
func NewScrollLabel(text string) *ScrollLabel {
	return NewScrollLabelWithSource(text, marquee.DefaultConfig(), defaultTimeSource())
}

// NewScrollLabelWithRate creates a forward-looping label with the given speed
// in pixels per second, edge fade and gap between loop repetitions.
func NewScrollLabelWithRate(text string, rate, fadeLength, tailBlankLength float64) *ScrollLabel {
	cfg := marquee.DefaultConfig()
	cfg.Rate = rate
	cfg.FadeLength = fadeLength
	cfg.TailBlankLength = tailBlankLength
	return NewScrollLabelWithSource(text, cfg, defaultTimeSource())
}

// NewScrollLabelWithSource creates a label driven by src. An invalid cfg is
// logged and replaced by the default configuration.
func NewScrollLabelWithSource(text string, cfg marquee.Config, src marquee.TimeSource) *ScrollLabel {
	l := &ScrollLabel{
		text:     text,
		scroller: marquee.NewScroller(src, nil),
	}
	if err := l.scroller.Configure(cfg); err != nil {
		log.Println("scroll label:", err)
	}
	l.scroller.OnRedraw(func(marquee.Frame) {
		CallOnMain(l.Refresh)
	})
	l.ExtendBaseWidget(l)
	return l
}

// Scroller exposes the engine, mostly for observation.
func (l *ScrollLabel) Scroller() *marquee.Scroller { return l.scroller }

// Text returns the current text.
func (l *ScrollLabel) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text
}

// SetText replaces the text. If scrolling was requested it restarts from the
// beginning, including the start delay.
func (l *ScrollLabel) SetText(text string) {
	l.mu.Lock()
	if text == l.text {
		l.mu.Unlock()
		return
	}
	l.text = text
	l.mu.Unlock()

	l.updateMetrics()
	l.Refresh()
}

// Configure applies a new scroll configuration; the running animation, if
// any, restarts with it.
func (l *ScrollLabel) Configure(cfg marquee.Config) error {
	if err := l.scroller.Configure(cfg); err != nil {
		return err
	}
	l.restartIfWanted()
	l.Refresh()
	return nil
}

// Config returns the active scroll configuration.
func (l *ScrollLabel) Config() marquee.Config { return l.scroller.Config() }

// StartScroll begins scrolling whenever the text overflows, now and after
// every later text or size change.
func (l *ScrollLabel) StartScroll() error {
	l.mu.Lock()
	l.wantScroll = true
	l.mu.Unlock()
	l.updateMetrics()
	return l.scroller.Start()
}

// Scrolling reports whether scrolling was requested with StartScroll. The
// engine may still be idle while the text fits.
func (l *ScrollLabel) Scrolling() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.wantScroll
}

// StopScroll stops scrolling and shows the text at its home position.
func (l *ScrollLabel) StopScroll() {
	l.mu.Lock()
	l.wantScroll = false
	l.mu.Unlock()
	l.scroller.Stop()
	l.Refresh()
}

// Close stops any scrolling animation.
func (l *ScrollLabel) Close() {
	l.StopScroll()
}

// Resize updates the viewport width reported to the scroll engine.
func (l *ScrollLabel) Resize(size fyne.Size) {
	l.BaseWidget.Resize(size)
	l.updateMetrics()
}

func (l *ScrollLabel) CreateRenderer() fyne.WidgetRenderer {
	l.ExtendBaseWidget(l)
	r := &scrollLabelRenderer{l: l}
	r.raster = canvas.NewRaster(l.draw)
	r.objs = []fyne.CanvasObject{r.raster}
	return r
}

// updateMetrics re-measures text and viewport and, if scrolling is wanted,
// starts again on the fresh plan.
func (l *ScrollLabel) updateMetrics() {
	l.mu.Lock()
	text := l.text
	style := l.TextStyle
	l.mu.Unlock()

	viewW := float64(l.Size().Width)
	textW := fitMeasuredWidth(measureTextWidth(text, theme.TextSize(), style), viewW)
	l.scroller.SetMetrics(textW, viewW)
	l.restartIfWanted()
}

// fitMeasuredWidth snaps a text width that overflows the viewport by no more
// than overflowTolerance down to the viewport width.
func fitMeasuredWidth(textW, viewW float64) float64 {
	if textW > viewW && textW-viewW <= overflowTolerance {
		return viewW
	}
	return textW
}

func (l *ScrollLabel) restartIfWanted() {
	l.mu.Lock()
	want := l.wantScroll
	l.mu.Unlock()
	if !want {
		return
	}
	if err := l.scroller.Start(); err != nil {
		log.Println("scroll label:", err)
	}
}

func (l *ScrollLabel) textColor() color.Color {
	if l.Color != nil {
		return l.Color
	}
	return theme.ForegroundColor()
}

// draw is the raster generator: w and h are in pixels.
func (l *ScrollLabel) draw(w, h int) image.Image {
	size := l.Size()
	if w <= 0 || h <= 0 || size.Width <= 0 {
		return image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	}
	scale := float64(w) / float64(size.Width)
	f := l.scroller.Frame()

	col := l.textColor()
	textSize := theme.TextSize()
	l.mu.Lock()
	if !l.strip.matches(l.text, textSize, l.TextStyle, col, scale, h) {
		l.strip = rasterizeStrip(l.text, textSize, l.TextStyle, col, scale, h)
	}
	strip := l.strip
	l.mu.Unlock()

	return composeFrame(strip, f, w, h, scale)
}

type scrollLabelRenderer struct {
	l      *ScrollLabel
	raster *canvas.Raster
	objs   []fyne.CanvasObject
}

func (r *scrollLabelRenderer) Layout(sz fyne.Size) {
	r.raster.Move(fyne.NewPos(0, 0))
	r.raster.Resize(sz)
}

// MinSize keeps the text height but allows any width down to a small floor.
func (r *scrollLabelRenderer) MinSize() fyne.Size {
	h := fyne.MeasureText("Mg", theme.TextSize(), r.l.TextStyle).Height
	return fyne.NewSize(minScrollLabelWidth, h+theme.InnerPadding())
}

func (r *scrollLabelRenderer) Refresh() {
	r.Layout(r.l.Size())
	canvas.Refresh(r.raster)
}

func (r *scrollLabelRenderer) Destroy() {}

func (r *scrollLabelRenderer) Objects() []fyne.CanvasObject { return r.objs }
