// Package command builds the cobra commands shared by every Neutron resource:
// list, show, create, update, delete and member actions. Resource packages
// parameterize these shapes with a descriptor name and a declarative option
// table instead of writing their own RunE functions.
package command

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/marmos91/neutronctl/internal/cli/output"
	"github.com/marmos91/neutronctl/internal/logger"
	"github.com/marmos91/neutronctl/internal/telemetry"
	"github.com/marmos91/neutronctl/pkg/metrics"
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Env is shared by all commands of one process. The root command fills the
// runtime fields before any RunE executes; commands only read them.
type Env struct {
	Registry *neutron.Registry

	// Connect returns an authenticated client. It is called at most once
	// per invocation and only when a command needs the network.
	Connect func(ctx context.Context) (neutron.Client, error)

	Logger  *slog.Logger
	Metrics metrics.APIMetrics

	// Format returns the output format selected for this run. Nil means
	// table.
	Format func() (output.Format, error)

	// PageSize is the page size used when --page-size is not given.
	// Zero fetches each list with a single request.
	PageSize int
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return logger.Discard()
	}
	return e.Logger
}

// Invocation carries everything a hook needs while one command runs.
type Invocation struct {
	Ctx context.Context
	Cmd *cobra.Command

	// Resource is the registry name of the resource the command acts on.
	Resource string

	// ID is the target identifier given on the command line for show,
	// update and delete, before resolution.
	ID string

	// Args are the positional arguments, excluding ID and anything after
	// "--".
	Args []string

	// Extra holds the parsed arguments given after "--".
	Extra map[string]any

	env      *Env
	client   neutron.Client
	resolver *neutron.Resolver
}

func newInvocation(env *Env, cmd *cobra.Command, resource string, args []string) (*Invocation, error) {
	positional, rest := splitArgs(cmd, args)
	extra, err := neutron.ParseExtraArgs(rest)
	if err != nil {
		return nil, err
	}

	if f, _ := cmd.Flags().GetString("request-format"); f != "" && f != "json" {
		return nil, neutron.InvalidArgumentf("--request-format: invalid choice %q (choose from json)", f)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithContext(ctx, &logger.LogContext{Command: cmd.Name(), Resource: resource})
	telemetry.SetAttributes(ctx, telemetry.Resource(resource))

	return &Invocation{
		Ctx:      ctx,
		Cmd:      cmd,
		Resource: resource,
		Args:     positional,
		Extra:    extra,
		env:      env,
	}, nil
}

// splitArgs separates positional arguments from the extra arguments that
// follow "--".
func splitArgs(cmd *cobra.Command, args []string) (positional, extra []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

// Logger returns the injected logger.
func (in *Invocation) Logger() *slog.Logger {
	return in.env.logger()
}

// Flags returns the command's flag set.
func (in *Invocation) Flags() *pflag.FlagSet {
	return in.Cmd.Flags()
}

// Registry returns the resource registry.
func (in *Invocation) Registry() *neutron.Registry {
	return in.env.Registry
}

// Descriptor returns the descriptor of the invocation's resource.
func (in *Invocation) Descriptor() (*neutron.Descriptor, error) {
	return in.Lookup(in.Resource)
}

// Lookup returns a registered descriptor.
func (in *Invocation) Lookup(resource string) (*neutron.Descriptor, error) {
	d, ok := in.env.Registry.Lookup(resource)
	if !ok {
		return nil, fmt.Errorf("unknown resource type %q", resource)
	}
	return d, nil
}

// API returns the descriptor whose endpoint serves resource.
func (in *Invocation) API(resource string) (*neutron.Descriptor, error) {
	d, err := in.Lookup(resource)
	if err != nil {
		return nil, err
	}
	return in.env.Registry.API(d), nil
}

// Client connects on first use.
func (in *Invocation) Client() (neutron.Client, error) {
	if in.client != nil {
		return in.client, nil
	}
	if in.env.Connect == nil {
		return nil, fmt.Errorf("no Neutron client configured")
	}
	c, err := in.env.Connect(in.Ctx)
	if err != nil {
		return nil, err
	}
	in.client = c
	return c, nil
}

// Resolve turns a name or ID of resource into an ID.
func (in *Invocation) Resolve(resource, identifier string, opts ...neutron.ResolveOption) (string, error) {
	if neutron.IsID(identifier) {
		return identifier, nil
	}
	if in.resolver == nil {
		c, err := in.Client()
		if err != nil {
			return "", err
		}
		in.resolver = neutron.NewResolver(c, in.env.Registry, in.Logger())
	}
	id, err := in.resolver.Resolve(in.Ctx, resource, identifier, opts...)
	if err != nil {
		return "", err
	}
	in.Logger().DebugContext(in.Ctx, "resolved name", logger.KeyName, identifier, logger.KeyID, id)
	return id, nil
}

// resolveTarget resolves the command's own ID argument, honoring the
// descriptor's AllowNames.
func (in *Invocation) resolveTarget(d *neutron.Descriptor) (string, error) {
	if !d.AllowNames {
		if in.ID == "" {
			return "", neutron.InvalidArgumentf("%s ID must not be empty", d.Name)
		}
		return in.ID, nil
	}
	return in.Resolve(d.Name, in.ID)
}

// Printer returns a printer for the selected output format.
func (in *Invocation) Printer() (*output.Printer, error) {
	format := output.FormatTable
	if in.env.Format != nil {
		f, err := in.env.Format()
		if err != nil {
			return nil, neutron.InvalidArgumentf("%v", err)
		}
		format = f
	}
	return output.NewPrinter(in.Cmd.OutOrStdout(), format, output.ColorEnabled(in.Cmd.OutOrStdout())), nil
}

// Printf writes a status line to the command's output.
func (in *Invocation) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(in.Cmd.OutOrStdout(), format, args...)
}

// positionalArgs validates the number of positional arguments before "--".
func positionalArgs(names ...string) cobra.PositionalArgs {
	required, optional := 0, 0
	for _, n := range names {
		if strings.HasPrefix(n, "[") {
			optional++
		} else {
			required++
		}
	}
	return func(cmd *cobra.Command, args []string) error {
		positional, _ := splitArgs(cmd, args)
		n := len(positional)
		if n < required || n > required+optional {
			return neutron.InvalidArgumentf("%s expects %s, got %d argument(s)",
				cmd.Name(), strings.Join(names, " "), n)
		}
		return nil
	}
}

// use builds the cobra Use line.
func use(name string, positionals ...string) string {
	parts := append([]string{name, "[flags]"}, positionals...)
	return strings.Join(parts, " ") + " [-- extra args]"
}
