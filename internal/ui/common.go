// Package ui contains the fyne widgets that present the scroll engine.
package ui

import (
	"fyne.io/fyne/v2"

	"github.com/edward-ap/scrolllabel/internal/marquee"
)

type runOnMainDriver interface {
	RunOnMain(func())
}

type callOnMainDriver interface {
	CallOnMain(func())
}

// CallOnMain dispatches f onto the UI thread if the current Fyne driver
// supports it; otherwise executes f inline (best-effort fallback).
func CallOnMain(f func()) {
	if f == nil {
		return
	}
	app := fyne.CurrentApp()
	if app == nil {
		f()
		return
	}
	drv := app.Driver()
	if drv == nil {
		f()
		return
	}
	if r, ok := drv.(runOnMainDriver); ok {
		r.RunOnMain(f)
		return
	}
	if c, ok := drv.(callOnMainDriver); ok {
		c.CallOnMain(f)
		return
	}
	f()
}

// defaultTimeSource ticks on the fyne animation loop when an app is running
// and falls back to a background ticker otherwise (tests, headless use).
func defaultTimeSource() marquee.TimeSource {
	if fyne.CurrentApp() == nil {
		return marquee.NewTickerSource(marquee.DefaultTickInterval)
	}
	return newAnimationSource()
}
