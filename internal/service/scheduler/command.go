package scheduler

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/oshokin/alarm-scheduler/internal/config"
	domain "github.com/oshokin/alarm-scheduler/internal/domain/alarm"
	"github.com/oshokin/alarm-scheduler/internal/logger"
	core "github.com/oshokin/alarm-scheduler/internal/scheduler"
)

// Options controls the alarm-scheduler process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	// Empty means built-in defaults, no file is read.
	ConfigPath string
	// LogLevel provides an optional log level override.
	LogLevel string
	// Input is the request line source. Defaults to standard input.
	Input io.Reader
	// Output is the prompt destination. Defaults to standard output.
	Output io.Writer
}

// Run wires the coordinator to its four roles and blocks until the input
// source is exhausted or the context is canceled. End of input stops the
// dispatcher and workers before returning, so the process exits cleanly
// instead of abandoning them mid-cycle.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-scheduler")

	// Load settings and apply the log level, CLI override first.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	levelName := cfg.LogLevel
	if opts.LogLevel != "" {
		levelName = opts.LogLevel
	}

	level, ok := logger.ParseLogLevel(levelName)
	if !ok {
		return fmt.Errorf("unknown log level %q", levelName)
	}

	logger.SetLevel(level)

	input := opts.Input
	if input == nil {
		input = os.Stdin
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	coordinator := core.NewCoordinator(nil)

	// The roles run until this context is canceled.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		coordinator.RunDispatcher(gctx)

		return nil
	})

	for _, id := range []domain.WorkerID{domain.WorkerA, domain.WorkerB} {
		g.Go(func() error {
			coordinator.RunWorker(gctx, id)

			return nil
		})
	}

	logger.Info(ctx, "Alarm scheduler started")

	// The producer runs outside the group: on interrupt it may stay
	// blocked on a terminal read, and waiting for it would hold the
	// whole shutdown hostage.
	producerDone := make(chan error, 1)

	go func() {
		producerDone <- coordinator.RunProducer(ctx, input, output, cfg.Prompt)
	}()

	var runErr error

	select {
	case runErr = <-producerDone:
		// End of input.
	case <-ctx.Done():
		// Interrupted.
	}

	// Free pausing roles first, then wake waiting workers.
	cancel()
	coordinator.Stop()

	_ = g.Wait()

	logger.InfoKV(ctx, "Alarm scheduler stopped", coordinator.Stats().KV()...)

	return runErr
}
