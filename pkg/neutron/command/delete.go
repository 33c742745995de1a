package command

import (
	"github.com/marmos91/neutronctl/internal/telemetry"
	"github.com/spf13/cobra"
)

// DeleteSpec parameterizes a delete command.
type DeleteSpec struct {
	Name     string
	Resource string
	Short    string
}

// NewDelete builds a "<resource>-delete" command.
func NewDelete(env *Env, spec DeleteSpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use(spec.Name, idMetavar(env, spec.Resource)),
		Short: spec.Short,
		Args:  positionalArgs(idMetavar(env, spec.Resource)),
	}
	addRequestFormat(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		in, err := newInvocation(env, cmd, spec.Resource, args)
		if err != nil {
			return err
		}
		in.ID = in.Args[0]
		return runDelete(in)
	}
	return cmd
}

func runDelete(in *Invocation) error {
	d, err := in.Descriptor()
	if err != nil {
		return err
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
	if err := client.Delete(in.Ctx, in.Registry().API(d).ItemPath(id)); err != nil {
		return err
	}

	in.Printf("Deleted %s: %s\n", d.Name, in.ID)
	return nil
}
