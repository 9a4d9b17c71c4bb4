package demoapp

import "github.com/edward-ap/scrolllabel/internal/marquee"

// SetTraceLogEnabled toggles verbose logging of scroll phase changes.
// Call this before creating the App.
func SetTraceLogEnabled(b bool) { marquee.SetTraceLoggingEnabled(b) }
