package resources

import (
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/marmos91/neutronctl/pkg/neutron/command"
	"github.com/spf13/cobra"
)

func addressScope() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "address_scope",
			ListColumns: []string{"id", "name"},
			Pagination:  true,
			Sorting:     true,
			AllowNames:  true,
		},
		title: "Address Scope",
		commands: func(env *command.Env) []*cobra.Command {
			return crud(env, "address-scope", "address_scope", "address scopes",
				command.NewCreate(env, command.MutateSpec{
					Name:     "address-scope-create",
					Resource: "address_scope",
					Short:    "Create an address scope for a given tenant",
					Table: &command.Table{
						Positionals: []command.Positional{{Name: "NAME", Field: "name"}},
						Options: []command.Option{
							{Flag: "shared", Kind: command.Bool, Field: "shared", Usage: "Set the address scope as shared"},
						},
					},
				}),
				command.NewUpdate(env, command.MutateSpec{
					Name:     "address-scope-update",
					Resource: "address_scope",
					Short:    "Update an address scope",
					Table: &command.Table{
						Options: []command.Option{nameOption("Name of the address scope to update")},
					},
				}),
			)
		},
	}
}
