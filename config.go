package lathe

import (
	"log/slog"

	"github.com/lathehq/lathe/eval"
)

// Option is a function that configures an Engine
type Option func(*Engine)

// WithWorkersCount sets the number of concurrent passes EvaluateAll may run.
// n <= 0 removes the limit
var WithWorkersCount = func(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithLog sets the logger for the engine
var WithLog = func(log *slog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithProgress sets the sink receiving per-node progress events
var WithProgress = func(sink eval.ProgressSink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

// WithState seeds the engine with an existing evaluation cache, for example
// one restored from a snapshot
var WithState = func(st *eval.State) Option {
	return func(e *Engine) {
		e.st = st
	}
}

// NullLogger creates a logger that discards all output
func NullLogger() *slog.Logger {
	return eval.NullLogger()
}
