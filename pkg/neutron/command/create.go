package command

import (
	"github.com/marmos91/neutronctl/internal/cli/output"
	"github.com/marmos91/neutronctl/internal/telemetry"
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/spf13/cobra"
)

// BodyBuilder maps parsed arguments into request body fields.
type BodyBuilder interface {
	Body(in *Invocation, body neutron.Fields) error
}

// BodyFunc adapts a function to BodyBuilder.
type BodyFunc func(in *Invocation, body neutron.Fields) error

func (f BodyFunc) Body(in *Invocation, body neutron.Fields) error { return f(in, body) }

// MutateSpec parameterizes create and update commands.
type MutateSpec struct {
	Name     string
	Resource string
	Short    string
	Example  string

	// Table declares flags and positionals and fills the body first.
	Table *Table

	// Hook runs after Table for fields that need code: validation,
	// cross-flag rules or nested structures.
	Hook BodyBuilder
}

func (s MutateSpec) build(in *Invocation) (neutron.Fields, error) {
	body := neutron.Fields{}
	if err := s.Table.Body(in, body); err != nil {
		return nil, err
	}
	if s.Hook != nil {
		if err := s.Hook.Body(in, body); err != nil {
			return nil, err
		}
	}
	return body.Merge(in.Extra), nil
}

// NewCreate builds a "<resource>-create" command.
func NewCreate(env *Env, spec MutateSpec) *cobra.Command {
	positionals := spec.Table.usage()
	cmd := &cobra.Command{
		Use:     use(spec.Name, positionals...),
		Short:   spec.Short,
		Example: spec.Example,
		Args:    positionalArgs(positionals...),
	}
	cmd.Flags().String("tenant-id", "", "The owner tenant ID")
	addRequestFormat(cmd)
	spec.Table.Register(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		in, err := newInvocation(env, cmd, spec.Resource, args)
		if err != nil {
			return err
		}
		return runCreate(in, spec)
	}
	return cmd
}

func runCreate(in *Invocation, spec MutateSpec) error {
	d, err := in.Descriptor()
	if err != nil {
		return err
	}
	printer, err := in.Printer()
	if err != nil {
		return err
	}

	body, err := spec.build(in)
	if err != nil {
		return err
	}
	if tenant := in.String("tenant-id"); tenant != "" {
		body.Set("tenant_id", tenant)
	}

	client, err := in.Client()
	if err != nil {
		return err
	}
	api := in.Registry().API(d)
	obj, err := client.Create(in.Ctx, api.CollectionPath(), api.ObjectKey(), body.Envelope(api.ObjectKey()))
	if err != nil {
		return err
	}
	if id, ok := obj["id"].(string); ok {
		telemetry.SetAttributes(in.Ctx, telemetry.ResourceID(id))
	}

	if !printer.Format().Structured() {
		in.Printf("Created a new %s:\n", d.Name)
	}
	return printer.Print(&output.FieldTable{Object: obj})
}
