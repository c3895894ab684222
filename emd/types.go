package emd

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/pillars/sched"
)

// Options configures Bulk.
type Options struct {
	// Mode selects serial iteration or one parallel unit per reference.
	// Default: sched.Serial.
	Mode sched.Mode

	// Workers bounds the reference pool; 0 means runtime.GOMAXPROCS(0).
	Workers int

	// Logger receives debug-level batch summaries. Default: zap.NewNop().
	Logger *zap.Logger
}

// DefaultOptions returns serial mode with a no-op logger.
func DefaultOptions() Options {
	return Options{Mode: sched.Serial, Logger: zap.NewNop()}
}

// Option mutates Options.
type Option func(*Options)

// WithMode selects the execution mode of the reference axis.
func WithMode(m sched.Mode) Option {
	return func(o *Options) { o.Mode = m }
}

// WithWorkers bounds the number of references evaluated concurrently.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLogger injects a logger; nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func gather(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
