// Package cmdutil provides shared utilities for neutronctl commands.
package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/marmos91/neutronctl/internal/cli/credentials"
	"github.com/marmos91/neutronctl/internal/cli/output"
	"github.com/marmos91/neutronctl/internal/logger"
	"github.com/marmos91/neutronctl/internal/telemetry"
	"github.com/marmos91/neutronctl/pkg/config"
	"github.com/marmos91/neutronctl/pkg/metrics/prometheus"
	"github.com/marmos91/neutronctl/pkg/neutron/command"
	"github.com/marmos91/neutronctl/pkg/neutron/resources"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
)

// Runtime is the state of one neutronctl invocation. The root command
// fills it in PersistentPreRunE through Setup; Finish releases it.
type Runtime struct {
	Flags   GlobalFlags
	Version string

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *prometheus.APIMetrics

	// Env is handed to every resource command.
	Env *command.Env

	store       *credentials.Store
	context     *credentials.Context
	contextName string

	spanCtx context.Context
	span    trace.Span
	closers []func(context.Context) error
}

// NewRuntime creates a runtime whose Env is wired to the full resource
// registry.
func NewRuntime(version string) *Runtime {
	r := &Runtime{Version: version, Logger: logger.Discard()}
	r.Env = &command.Env{
		Registry: resources.NewRegistry(),
		Connect:  r.Connect,
		Format:   r.Format,
		Logger:   r.Logger,
	}
	return r
}

// Setup loads the configuration, applies the credential context and flag
// overrides, and starts logging, tracing, profiling and metrics.
func (r *Runtime) Setup(cmd *cobra.Command) error {
	cfg, err := config.Load(r.Flags.ConfigPath)
	if err != nil {
		return err
	}

	if err := r.selectContext(&cfg.Cloud); err != nil {
		return err
	}
	r.Flags.apply(&cfg.Cloud)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	r.Config = cfg

	if err := r.setupLogging(); err != nil {
		return err
	}
	r.Env.PageSize = cfg.Output.PageSize

	if path := cfg.Metrics.Textfile; path != "" {
		m := prometheus.NewAPIMetrics()
		r.Metrics = m
		r.Env.Metrics = m
		r.closers = append(r.closers, func(context.Context) error { return m.WriteTextfile(path) })
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tcfg := telemetry.DefaultConfig()
	tcfg.Enabled = cfg.Telemetry.Enabled
	tcfg.ServiceVersion = r.Version
	tcfg.Insecure = cfg.Telemetry.Insecure
	tcfg.Headers = cfg.Telemetry.Headers
	tcfg.SampleRate = cfg.Telemetry.SampleRate
	if cfg.Telemetry.Endpoint != "" {
		tcfg.Endpoint = cfg.Telemetry.Endpoint
	}
	shutdown, err := telemetry.Init(ctx, tcfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	r.closers = append(r.closers, shutdown)

	stop, err := telemetry.InitProfiling(telemetry.ProfilingConfig{
		Enabled:        cfg.Telemetry.Profiling.Enabled,
		ServiceName:    tcfg.ServiceName,
		ServiceVersion: r.Version,
		Endpoint:       cfg.Telemetry.Profiling.Endpoint,
		ProfileTypes:   cfg.Telemetry.Profiling.ProfileTypes,
		Tags:           map[string]string{"command": cmd.Name()},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize profiling: %w", err)
	}
	r.closers = append(r.closers, func(context.Context) error { return stop() })

	r.spanCtx, r.span = telemetry.StartCommandSpan(ctx, cmd.Name())
	cmd.SetContext(r.spanCtx)

	r.Logger.Debug("configuration loaded",
		"command", cmd.CommandPath(),
		"context", r.contextName,
		"auth_url", cfg.Cloud.AuthURL,
		"trace_id", telemetry.TraceID(r.spanCtx))
	return nil
}

func (r *Runtime) setupLogging() error {
	cfg := r.Config.Logging
	if r.Flags.Verbose || r.Flags.Debug {
		cfg.Level = "DEBUG"
	}

	log, closer, err := logger.New(logger.Config{Level: cfg.Level, Format: cfg.Format, Output: cfg.Output})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	r.closers = append(r.closers, func(context.Context) error { return closer.Close() })
	r.Logger = log
	r.Env.Logger = log
	return nil
}

// selectContext picks the --context context or the current one and lets
// its cloud settings override the loaded configuration. A missing context
// is reported when a client is needed, so login can create it.
func (r *Runtime) selectContext(cloud *config.CloudConfig) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}
	r.store = store

	name := r.Flags.Context
	if name == "" {
		name = store.GetCurrentContextName()
	}
	if name == "" {
		return nil
	}
	c, err := store.GetContext(name)
	if err != nil {
		return nil
	}
	r.context, r.contextName = c, name

	for _, o := range []struct {
		value string
		field *string
	}{
		{c.AuthURL, &cloud.AuthURL},
		{c.Region, &cloud.Region},
		{c.Interface, &cloud.Interface},
		{c.Username, &cloud.Username},
		{c.UserDomainName, &cloud.UserDomainName},
		{c.ProjectName, &cloud.ProjectName},
		{c.ProjectID, &cloud.ProjectID},
		{c.ProjectDomainName, &cloud.ProjectDomainName},
	} {
		if o.value != "" {
			*o.field = o.value
		}
	}
	if c.Insecure {
		cloud.Insecure = true
	}
	return nil
}

// Store returns the credential store opened by Setup.
func (r *Runtime) Store() (*credentials.Store, error) {
	if r.store != nil {
		return r.store, nil
	}
	store, err := credentials.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}
	r.store = store
	return store, nil
}

// Format returns the output format chosen by flag or configuration.
func (r *Runtime) Format() (output.Format, error) {
	name := r.Flags.Output
	if name == "" && r.Config != nil {
		name = r.Config.Output.Format
	}
	return output.ParseFormat(name)
}

// Printer returns a printer for cmd's output in the selected format.
func (r *Runtime) Printer(cmd *cobra.Command) (*output.Printer, error) {
	format, err := r.Format()
	if err != nil {
		return nil, err
	}
	return output.NewPrinter(cmd.OutOrStdout(), format, output.ColorEnabled(cmd.OutOrStdout())), nil
}

// Finish ends the command span, records err on it and releases everything
// Setup started, most recent first.
func (r *Runtime) Finish(ctx context.Context, err error) error {
	if r.span != nil {
		if err != nil {
			telemetry.RecordError(r.spanCtx, err)
		}
		r.span.End()
		r.span = nil
	}

	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if cerr := r.closers[i](ctx); cerr != nil {
			errs = append(errs, cerr)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

// AnnotationNoSetup marks commands that run without configuration,
// credentials or telemetry. It applies to the whole subtree.
const AnnotationNoSetup = "neutronctl/no-setup"

// NeedsSetup reports whether cmd needs Setup before it runs.
func NeedsSetup(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[AnnotationNoSetup] != "" {
			return false
		}
	}
	return true
}
