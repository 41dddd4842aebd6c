package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/lazykit/config"
	"github.com/kbukum/lazykit/lazylist"
	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/observability"
	"github.com/kbukum/lazykit/version"
)

const serviceName = "lazyseq"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	Verbose    bool
	Format     string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// app is the state shared by the commands of one invocation.
type app struct {
	opts    *RootOptions
	cfg     *config.Config
	log     *logger.Logger
	list    *lazylist.List[string]
	closers []func(context.Context) error
	printer *printer
}

// NewRootCommand creates the root command for the lazyseq CLI.
func NewRootCommand() *cobra.Command {
	a := &app{opts: &RootOptions{}}

	cmd := &cobra.Command{
		Use:   "lazyseq",
		Short: "Run list operations over lazily fetched sources",
		Long: `lazyseq builds one lazy list from the sources in its configuration
(slices, ranges, Redis lists, SQL columns, paginated HTTP APIs) and runs a
list operation on it. Sources are read only as far as the operation needs.`,
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(ValidFormats, a.opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", a.opts.Format, ValidFormats)
			}
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVarP(&a.opts.ConfigFile, "config", "c", "", "config file (default: search for lazyseq.yml / config.yml)")
	cmd.PersistentFlags().BoolVarP(&a.opts.Verbose, "verbose", "v", false, "debug logging of source activity")
	cmd.PersistentFlags().StringVar(&a.opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(newGetCommand(a))
	cmd.AddCommand(newSliceCommand(a))
	cmd.AddCommand(newLenCommand(a))
	cmd.AddCommand(newHeadCommand(a))
	cmd.AddCommand(newReverseCommand(a))
	cmd.AddCommand(newContainsCommand(a))
	cmd.AddCommand(newGrepCommand(a))
	cmd.AddCommand(newDebugCommand(a))

	return cmd
}

// setup loads configuration, starts telemetry and assembles the list.
func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var opts []config.LoaderOption
	if a.opts.ConfigFile != "" {
		opts = append(opts, config.WithConfigFile(a.opts.ConfigFile))
	}
	cfg, err := config.Load(serviceName, config.Config{Name: serviceName, Version: version.Get().Short()}, opts...)
	if err != nil {
		return err
	}
	if a.opts.Verbose {
		cfg.Logging.Level = "debug"
	}
	a.cfg = cfg
	a.log = logger.NewWithWriter(&cfg.Logging, cfg.Name, cmd.ErrOrStderr())
	logger.SetGlobalLogger(a.log)
	logger.RegisterComponents(a.log,
		logger.ComponentLazyList,
		logger.ComponentRedisSource,
		logger.ComponentSQLSource,
		logger.ComponentHTTPSource,
	)
	a.printer = &printer{format: a.opts.Format, w: cmd.OutOrStdout()}

	if err := a.assemble(ctx); err != nil {
		_ = a.teardown(ctx)
		return err
	}
	return nil
}

func (a *app) assemble(ctx context.Context) error {
	listOpts := []lazylist.Option{lazylist.WithLogger(logger.Get(logger.ComponentLazyList)), lazylist.WithName(a.cfg.Name)}
	obs, err := a.startTelemetry(ctx)
	if err != nil {
		return err
	}
	if obs != nil {
		listOpts = append(listOpts, lazylist.WithObserver(obs))
	}

	list, closers, err := buildList(ctx, a.cfg, a.log, listOpts...)
	a.closers = append(a.closers, closers...)
	if err != nil {
		return err
	}
	a.list = list
	return nil
}

// startTelemetry starts the enabled exporters and returns an observer, or
// nil when neither metrics nor tracing is enabled.
func (a *app) startTelemetry(ctx context.Context) (lazylist.Observer, error) {
	var (
		tracer  trace.Tracer
		metrics *observability.Metrics
	)
	if a.cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(ctx, &a.cfg.Metrics)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, mp.Shutdown)
		if metrics, err = observability.NewMetrics(observability.Meter(serviceName)); err != nil {
			return nil, err
		}
	}
	if a.cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, &a.cfg.Tracing)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, tp.Shutdown)
		tracer = observability.Tracer(serviceName)
	}
	if tracer == nil && metrics == nil {
		return nil, nil
	}
	return observability.NewObserver(a.cfg.Name, tracer, metrics), nil
}

// teardown releases sources and flushes telemetry in reverse order.
func (a *app) teardown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.log.Warn("shutdown step failed", logger.Fields(logger.FieldError, err.Error()))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	a.closers = nil
	return firstErr
}
