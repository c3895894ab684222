// Command pillars ranks reference arrays ("markers") against one query or a
// batch of queries by exact EMD and prints the selected indices as JSON.
//
//	pillars -queries q.json -markers m.json -k 10
//	pillars -demo -demo-queries 100 -demo-markers 1000 -rows 17 -cols 11
//
// Configuration comes from PILLARS_* variables (see package config); flags
// override it.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/pillars/classify"
	"github.com/katalvlaran/pillars/config"
	"github.com/katalvlaran/pillars/internal/fixture"
	"github.com/katalvlaran/pillars/internal/logging"
	"github.com/katalvlaran/pillars/matrix"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "pillars:", err)
		os.Exit(1)
	}
}

type options struct {
	queries, markers string
	envFile          string
	k                int
	tol              float64
	mode             string
	workers          int
	progress         bool

	demo                     bool
	demoQueries, demoMarkers int
	rows, cols               int
	seed                     int64
}

// result is the JSON document written to stdout.
type result struct {
	Indices any `json:"indices"`
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pillars", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var o options
	fs.StringVar(&o.queries, "queries", "", "JSON file with one query [[...]] or a batch [[[...]]]")
	fs.StringVar(&o.markers, "markers", "", "JSON file with the reference stack [[[...]]]")
	fs.StringVar(&o.envFile, "env", "", "optional .env file loaded before PILLARS_* variables")
	fs.IntVar(&o.k, "k", 10, "number of closest markers per query")
	fs.Float64Var(&o.tol, "tol", -1, "keep markers within tol of the best (negative disables)")
	fs.StringVar(&o.mode, "mode", "parallel", "execution mode: serial or parallel")
	fs.IntVar(&o.workers, "workers", 0, "worker pool size (0 = all CPUs)")
	fs.BoolVar(&o.progress, "progress", false, "draw a progress bar on stderr for query batches")
	fs.BoolVar(&o.demo, "demo", false, "classify random arrays instead of reading files")
	fs.IntVar(&o.demoQueries, "demo-queries", 10, "demo: number of queries")
	fs.IntVar(&o.demoMarkers, "demo-markers", 100, "demo: number of markers")
	fs.IntVar(&o.rows, "rows", 17, "demo: rows per array")
	fs.IntVar(&o.cols, "cols", 11, "demo: columns per array")
	fs.Int64Var(&o.seed, "seed", 1, "demo: random seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var envFiles []string
	if o.envFile != "" {
		envFiles = append(envFiles, o.envFile)
	}
	cfg, err := config.Read(envFiles...)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "k":
			cfg.K = o.k
		case "tol":
			cfg.Tolerance = o.tol
		case "mode":
			cfg.Mode = o.mode
		case "workers":
			cfg.Workers = o.workers
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	lc := cfg.Logging()
	lc.Output = zapcore.AddSync(stderr)
	logger, err := logging.New(lc)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, logger)
		defer func() { _ = srv.Close() }()
	}

	queries, markers, err := loadInputs(o)
	if err != nil {
		return err
	}

	copts := []classify.Option{
		classify.WithMode(cfg.ExecMode()),
		classify.WithWorkers(cfg.Workers),
		classify.WithLogger(logger),
	}
	if cfg.HasTolerance() {
		copts = append(copts, classify.WithTolerance(cfg.Tolerance))
	}

	start := time.Now()
	var out result
	switch q := queries.(type) {
	case *matrix.Dense:
		idx, err := classify.ClosestContext(ctx, q, markers, cfg.K, copts...)
		if err != nil {
			return err
		}
		out.Indices = idx
	case *matrix.Stack:
		if o.progress {
			bar := progressbar.NewOptions(q.Len(),
				progressbar.OptionSetWriter(stderr),
				progressbar.OptionSetDescription("Classifying queries"),
			)
			copts = append(copts, classify.WithProgress(func(done, _ int) { _ = bar.Set(done) }))
			defer func() { _ = bar.Finish() }()
		}
		rows, err := classify.ClosestBulkContext(ctx, q, markers, cfg.K, copts...)
		if err != nil {
			return err
		}
		out.Indices = rows
	default:
		return fmt.Errorf("queries: %w", matrix.ErrUnsupportedInput)
	}
	logger.Info("classification finished",
		zap.Int("markers", markers.Len()),
		zap.Int("k", cfg.K),
		zap.String("mode", cfg.Mode),
		zap.Duration("elapsed", time.Since(start)),
	)

	enc := json.NewEncoder(stdout)
	return enc.Encode(out)
}

// loadInputs returns the queries (Dense or Stack) and the marker stack.
func loadInputs(o options) (matrix.Array, *matrix.Stack, error) {
	if o.demo {
		src := fixture.New(o.seed)
		queries, err := src.Stream(0).Stack(o.demoQueries, o.rows, o.cols)
		if err != nil {
			return nil, nil, fmt.Errorf("demo queries: %w", err)
		}
		markers, err := src.Stream(1).Stack(o.demoMarkers, o.rows, o.cols)
		if err != nil {
			return nil, nil, fmt.Errorf("demo markers: %w", err)
		}
		return queries, markers, nil
	}

	if o.queries == "" || o.markers == "" {
		return nil, nil, errors.New("both -queries and -markers are required (or use -demo)")
	}
	queries, err := readArray(o.queries)
	if err != nil {
		return nil, nil, fmt.Errorf("queries: %w", err)
	}
	m, err := readArray(o.markers)
	if err != nil {
		return nil, nil, fmt.Errorf("markers: %w", err)
	}
	markers, ok := m.(*matrix.Stack)
	if !ok {
		return nil, nil, fmt.Errorf("markers: want a stack of arrays: %w", matrix.ErrUnsupportedInput)
	}

	return queries, markers, nil
}

func serveMetrics(addr string, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("Starting metrics server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to start metrics server", zap.Error(err))
		}
	}()

	return srv
}
