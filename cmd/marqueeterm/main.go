package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	config "github.com/edward-ap/scrolllabel/internal/config"
	"github.com/edward-ap/scrolllabel/internal/marquee"
	"github.com/edward-ap/scrolllabel/internal/term"
)

const (
	marginX = 2
	rowY    = 1
)

var modeCycle = []marquee.Mode{
	marquee.ForwardLoop,
	marquee.BackwardLoop,
	marquee.RightToLeftBounce,
	marquee.LeftToRightBounce,
}

type app struct {
	screen   tcell.Screen
	src      *marquee.ManualSource
	scroller *marquee.Scroller
	renderer *term.Renderer
	frameDur time.Duration

	width, height int
	dirty         bool
	paused        bool
}

func main() {
	cfgPath := flag.String("config", "", "settings file (.json, .yaml or .toml)")
	text := flag.String("text", "", "text to scroll")
	mode := flag.String("mode", "", "forward, backward, rightToLeft or leftToRight")
	rate := flag.Float64("rate", 0, "speed in cells per second")
	fade := flag.Float64("fade", -1, "fade length in cells")
	tail := flag.Float64("tail", -1, "gap between loop repetitions in cells")
	delay := flag.Float64("delay", -1, "seconds to wait before scrolling")
	traceLog := flag.String("traceLog", "", "write scroll phase changes to this file")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *text != "" {
		cfg.Text = *text
	}
	if *mode != "" {
		m, err := marquee.ParseMode(*mode)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg.Scroll.Mode = m
	}
	if *rate != 0 {
		cfg.Scroll.Rate = *rate
	}
	if *fade >= 0 {
		cfg.Scroll.FadeLength = *fade
	}
	if *tail >= 0 {
		cfg.Scroll.TailBlankLength = *tail
	}
	if *delay >= 0 {
		cfg.Scroll.StartDelay = *delay
	}

	// the screen owns the terminal, so logs go to a file or nowhere
	log.SetOutput(io.Discard)
	if *traceLog != "" {
		f, err := os.Create(*traceLog)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
		marquee.SetTraceLoggingEnabled(true)
	}

	a, err := newApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer a.screen.Fini()
	a.run()
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func newApp(cfg *config.Config) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	a := &app{
		screen:   screen,
		src:      marquee.NewManualSource(time.Now()),
		renderer: term.NewRenderer(cfg.Text, tcell.ColorWhite, tcell.ColorBlack),
		frameDur: time.Second / time.Duration(cfg.FrameRate),
		dirty:    true,
	}
	a.scroller = marquee.NewScroller(a.src, nil)
	if err := a.scroller.Configure(cfg.Scroll); err != nil {
		screen.Fini()
		return nil, err
	}
	a.scroller.OnRedraw(func(marquee.Frame) { a.dirty = true })
	a.width, a.height = screen.Size()
	a.relayout()
	return a, nil
}

// relayout reports the current widths and restarts unless paused.
func (a *app) relayout() {
	a.scroller.SetMetrics(float64(a.renderer.Width()), float64(a.viewport()))
	if !a.paused {
		if err := a.scroller.Start(); err != nil {
			log.Printf("marqueeterm: %v", err)
		}
	}
	a.dirty = true
}

func (a *app) viewport() int {
	return max(a.width-2*marginX, 0)
}

func (a *app) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			a.paused = !a.paused
			if a.paused {
				a.scroller.Stop()
				a.dirty = true
			} else {
				a.relayout()
			}
		case 'm':
			a.cycleMode()
		}
	case *tcell.EventResize:
		a.width, a.height = a.screen.Size()
		a.screen.Sync()
		a.relayout()
	}
	return true
}

func (a *app) cycleMode() {
	cfg := a.scroller.Config()
	for i, m := range modeCycle {
		if m == cfg.Mode {
			cfg.Mode = modeCycle[(i+1)%len(modeCycle)]
			break
		}
	}
	if err := a.scroller.Configure(cfg); err != nil {
		log.Printf("marqueeterm: %v", err)
		return
	}
	a.relayout()
}

func (a *app) draw() {
	a.screen.Clear()
	f := a.scroller.Frame()
	a.renderer.Draw(a.screen, marginX, rowY, a.viewport(), f)

	status := fmt.Sprintf("%s  %s  %.0f cells/s   [space] pause  [m] mode  [q] quit",
		f.Phase, a.scroller.Config().Mode, a.scroller.Config().Rate)
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, ch := range []rune(status) {
		if marginX+i >= a.width {
			break
		}
		a.screen.SetContent(marginX+i, rowY+2, ch, nil, style)
	}
	a.screen.Show()
	a.dirty = false
}

func (a *app) run() {
	ticker := time.NewTicker(a.frameDur)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- a.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return
			}
			if !a.handleInput(ev) {
				a.scroller.Stop()
				return
			}
		case now := <-ticker.C:
			a.src.Fire(now)
		}
		if a.dirty {
			a.draw()
		}
	}
}
