package command

import (
	"github.com/marmos91/neutronctl/internal/cli/output"
	"github.com/marmos91/neutronctl/internal/telemetry"
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/spf13/cobra"
)

// ShowSpec parameterizes a show command.
type ShowSpec struct {
	Name     string
	Resource string
	Short    string
}

// NewShow builds a "<resource>-show" command.
func NewShow(env *Env, spec ShowSpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use(spec.Name, idMetavar(env, spec.Resource)),
		Short: spec.Short,
		Args:  positionalArgs(idMetavar(env, spec.Resource)),
	}
	cmd.Flags().StringArrayP("fields", "F", nil, "Specify the field(s) to be returned by server (repeatable)")
	addRequestFormat(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		in, err := newInvocation(env, cmd, spec.Resource, args)
		if err != nil {
			return err
		}
		in.ID, in.Args = in.Args[0], in.Args[1:]
		return runShow(in)
	}
	return cmd
}

func runShow(in *Invocation) error {
	d, err := in.Descriptor()
	if err != nil {
		return err
	}
	printer, err := in.Printer()
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

	query := neutron.QueryFilters(in.Extra)
	for _, f := range in.Strings("fields") {
		query.Add("fields", f)
	}

	api := in.Registry().API(d)
	obj, err := client.Get(in.Ctx, api.ItemPath(id), api.ObjectKey(), query)
	if err != nil {
		return err
	}
	return printer.Print(&output.FieldTable{Object: obj})
}

// idMetavar is the usage name of a command's target argument.
func idMetavar(env *Env, resource string) string {
	if d, ok := env.Registry.Lookup(resource); ok && !d.AllowNames {
		return "ID"
	}
	return "ID_OR_NAME"
}

// addRequestFormat registers the legacy --request-format flag. Only json is
// supported.
func addRequestFormat(cmd *cobra.Command) {
	cmd.Flags().String("request-format", "json", "The XML or JSON request format {json}")
	_ = cmd.Flags().MarkHidden("request-format")
}
