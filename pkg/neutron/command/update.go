package command

import (
	"github.com/marmos91/neutronctl/internal/telemetry"
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/spf13/cobra"
)

// NewUpdate builds a "<resource>-update" command. Table positionals follow
// the target argument.
func NewUpdate(env *Env, spec MutateSpec) *cobra.Command {
	positionals := append([]string{idMetavar(env, spec.Resource)}, spec.Table.usage()...)
	cmd := &cobra.Command{
		Use:     use(spec.Name, positionals...),
		Short:   spec.Short,
		Example: spec.Example,
		Args:    positionalArgs(positionals...),
	}
	addRequestFormat(cmd)
	spec.Table.Register(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		in, err := newInvocation(env, cmd, spec.Resource, args)
		if err != nil {
			return err
		}
		in.ID, in.Args = in.Args[0], in.Args[1:]
		return runUpdate(in, spec)
	}
	return cmd
}

func runUpdate(in *Invocation, spec MutateSpec) error {
	d, err := in.Descriptor()
	if err != nil {
		return err
	}

	body, err := spec.build(in)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return neutron.CommandErrorf("Must specify new values to update %s", d.Name)
	}

	id, err := in.resolveTarget(d)
	if err != nil {
		return err
	}
	telemetry.SetAttributes(in.Ctx, telemetry.ResourceID(id))

	client, err := in.Client()
	if err != nil {
		return err
	}
	api := in.Registry().API(d)
	if _, err := client.Update(in.Ctx, api.ItemPath(id), api.ObjectKey(), body.Envelope(api.ObjectKey())); err != nil {
		return err
	}

	in.Printf("Updated %s: %s\n", d.Name, in.ID)
	return nil
}
