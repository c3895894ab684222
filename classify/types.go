package classify

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/pillars/sched"
)

// ProgressFunc is told how many of total queries have finished. Calls are
// serialized and done increases by one per call.
type ProgressFunc func(done, total int)

// Options configures Closest and ClosestBulk.
type Options struct {
	// Mode of the parallel axis: references for Closest, queries for
	// ClosestBulk. Default: sched.Parallel.
	Mode sched.Mode

	// Workers bounds the pool; 0 means runtime.GOMAXPROCS(0).
	Workers int

	// Tolerance filter on the EMD scores, active when HasTolerance is set.
	Tolerance    float64
	HasTolerance bool

	// Logger receives debug summaries. Default: zap.NewNop().
	Logger *zap.Logger

	// Progress, when set, is called after every finished query (ClosestBulk).
	Progress ProgressFunc
}

// DefaultOptions returns parallel mode, no tolerance and a no-op logger.
func DefaultOptions() Options {
	return Options{Mode: sched.Parallel, Logger: zap.NewNop()}
}

// Option mutates Options.
type Option func(*Options)

// WithMode selects the execution mode of the parallel axis.
func WithMode(m sched.Mode) Option {
	return func(o *Options) { o.Mode = m }
}

// WithWorkers bounds the worker pool.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithTolerance keeps only references whose EMD is within t of the best one.
func WithTolerance(t float64) Option {
	return func(o *Options) {
		o.Tolerance = t
		o.HasTolerance = true
	}
}

// WithLogger injects a logger; nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithProgress registers a progress callback for ClosestBulk.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) { o.Progress = fn }
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
