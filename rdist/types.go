package rdist

import "github.com/katalvlaran/pillars/sched"

// Options configures Euclidean. The zero value is not used directly; call
// DefaultOptions or pass Option setters.
type Options struct {
	// Mode selects serial rows or parallel row blocks. Default: sched.Serial.
	Mode sched.Mode

	// Workers bounds the row-block pool; 0 means runtime.GOMAXPROCS(0).
	Workers int
}

// DefaultOptions returns the serial configuration.
func DefaultOptions() Options {
	return Options{Mode: sched.Serial}
}

// Option mutates Options.
type Option func(*Options)

// WithMode selects the execution mode.
func WithMode(m sched.Mode) Option {
	return func(o *Options) { o.Mode = m }
}

// WithWorkers bounds the number of concurrent row blocks (parallel mode only).
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
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
