package command

import (
	"github.com/spf13/cobra"
)

// ActionSpec parameterizes a command that is not plain CRUD, such as
// router-interface-add or lbaas-loadbalancer-stats.
type ActionSpec struct {
	Name     string
	Resource string
	Short    string

	// Args are the positional metavars; "[NAME]" marks an optional one.
	Args []string

	// Table declares flags; its Body is not called by the framework.
	Table *Table

	Run func(in *Invocation) error
}

// NewAction builds an action command.
func NewAction(env *Env, spec ActionSpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use(spec.Name, spec.Args...),
		Short: spec.Short,
		Args:  positionalArgs(spec.Args...),
	}
	addRequestFormat(cmd)
	spec.Table.Register(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		in, err := newInvocation(env, cmd, spec.Resource, args)
		if err != nil {
			return err
		}
		return spec.Run(in)
	}
	return cmd
}
