package eval

import "log/slog"

// Option is a function that configures an Evaluator
type Option func(*Evaluator)

// WithLog sets the logger for the evaluator
var WithLog = func(log *slog.Logger) Option {
	return func(e *Evaluator) {
		e.log = log
	}
}

// WithProgress sets the sink receiving per-node progress events
var WithProgress = func(sink ProgressSink) Option {
	return func(e *Evaluator) {
		e.sink = sink
	}
}

// NullWriter is a writer that discards all data
type NullWriter struct{}

func (NullWriter) Write([]byte) (int, error) { return 0, nil }

// NullLogger creates a logger that discards all output
func NullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(NullWriter{}, nil))
}
