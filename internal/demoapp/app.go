// Package demoapp wires the scroll label widget, its controls and the
// persisted configuration into a small fyne window.
package demoapp

import (
	"fmt"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	config "github.com/edward-ap/scrolllabel/internal/config"
	"github.com/edward-ap/scrolllabel/internal/marquee"
	ui "github.com/edward-ap/scrolllabel/internal/ui"
)

var modeOptions = []string{
	marquee.ForwardLoop.String(),
	marquee.BackwardLoop.String(),
	marquee.RightToLeftBounce.String(),
	marquee.LeftToRightBounce.String(),
}

// App owns the fyne application, the window, the label and its controls.
type App struct {
	fa     fyne.App
	w      fyne.Window
	config *config.Config
	path   string // empty means the default config location

	label    *ui.ScrollLabel
	textIn   *widget.Entry
	modeSel  *widget.Select
	rateIn   *widget.Slider
	fadeIn   *widget.Slider
	startBtn *widget.Button
}

// NewApp loads configuration (from path when non-empty) and builds the window.
func NewApp(path string) *App {
	cfg, err := loadConfig(path)
	if err != nil {
		log.Println("config load error:", err)
		cfg = &config.Config{Text: config.DefaultText, Scroll: marquee.DefaultConfig(), AutoStart: true, WindowW: config.DefaultWidth, WindowH: config.DefaultHeight}
	}

	fa := app.NewWithID(config.AppID)
	fa.Settings().SetTheme(theme.DarkTheme())
	w := fa.NewWindow("ScrollLabel")
	w.SetMaster()
	w.Resize(fyne.NewSize(float32(cfg.WindowW), float32(cfg.WindowH)))

	a := &App{fa: fa, w: w, config: cfg, path: path}
	a.buildUI()

	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		cfg.WindowW = int(sz.Width)
		cfg.WindowH = int(sz.Height)
		cfg.Text = a.label.Text()
		cfg.Scroll = a.label.Config()
		if err := a.saveConfig(); err != nil {
			log.Println("config save error:", err)
		}
		a.label.Close()
		w.Close()
	})
	return a
}

// Run shows the window and blocks until it is closed.
func (a *App) Run() {
	if a.config.AutoStart {
		a.toggleScroll()
	}
	a.w.ShowAndRun()
}

func (a *App) buildUI() {
	cfg := a.config
	a.label = ui.NewScrollLabel(cfg.Text)
	if err := a.label.Configure(cfg.Scroll); err != nil {
		log.Println("scroll config:", err)
	}

	a.textIn = widget.NewEntry()
	a.textIn.SetText(cfg.Text)
	a.textIn.OnSubmitted = func(s string) {
		if strings.TrimSpace(s) == "" {
			s = config.DefaultText
		}
		a.label.SetText(s)
	}

	a.modeSel = widget.NewSelect(modeOptions, func(s string) {
		m, err := marquee.ParseMode(s)
		if err != nil {
			dialog.ShowError(err, a.w)
			return
		}
		sc := a.label.Config()
		sc.Mode = m
		a.applyScroll(sc)
	})
	a.modeSel.SetSelected(cfg.Scroll.Mode.String())

	a.rateIn = widget.NewSlider(5, 300)
	a.rateIn.Step = 5
	a.rateIn.SetValue(cfg.Scroll.Rate)
	a.rateIn.OnChangeEnded = func(v float64) {
		sc := a.label.Config()
		sc.Rate = v
		a.applyScroll(sc)
	}

	a.fadeIn = widget.NewSlider(0, 60)
	a.fadeIn.SetValue(cfg.Scroll.FadeLength)
	a.fadeIn.OnChangeEnded = func(v float64) {
		sc := a.label.Config()
		sc.FadeLength = v
		a.applyScroll(sc)
	}

	a.startBtn = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), a.toggleScroll)

	form := widget.NewForm(
		widget.NewFormItem("Text", a.textIn),
		widget.NewFormItem("Mode", a.modeSel),
		widget.NewFormItem("Rate", a.rateIn),
		widget.NewFormItem("Fade", a.fadeIn),
	)
	top := container.NewBorder(nil, nil, a.startBtn, nil, a.label)
	a.w.SetContent(container.NewBorder(container.NewPadded(top), nil, nil, nil, form))
}

func (a *App) applyScroll(sc marquee.Config) {
	if err := a.label.Configure(sc); err != nil {
		dialog.ShowError(fmt.Errorf("cannot apply scroll settings: %w", err), a.w)
	}
}

func (a *App) toggleScroll() {
	if a.label.Scrolling() {
		a.label.StopScroll()
		a.startBtn.SetIcon(theme.MediaPlayIcon())
		return
	}
	if err := a.label.StartScroll(); err != nil {
		dialog.ShowError(err, a.w)
		return
	}
	a.startBtn.SetIcon(theme.MediaStopIcon())
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func (a *App) saveConfig() error {
	if a.path == "" {
		return a.config.Save()
	}
	return a.config.SaveFile(a.path)
}
