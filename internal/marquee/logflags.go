package marquee

import (
	"log"
	"sync/atomic"
)

// Logger is the small logging interface the engine reports through.
type Logger interface {
	Printf(format string, args ...any)
}

// stdLogger adapts the standard log package to Logger.
type stdLogger struct{}

func (stdLogger) Printf(format string, args ...any) {
	log.Printf(format, args...)
}

var traceLogEnabled atomic.Bool

// SetTraceLoggingEnabled toggles verbose logging of every phase change and
// replan for all scrollers.
func SetTraceLoggingEnabled(enabled bool) {
	traceLogEnabled.Store(enabled)
}

func isTraceLoggingEnabled() bool {
	return traceLogEnabled.Load()
}
