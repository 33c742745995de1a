package resources

import (
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/marmos91/neutronctl/pkg/neutron/command"
	"github.com/spf13/cobra"
)

func network() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "network",
			ListColumns: []string{"id", "name", "subnets"},
			Pagination:  true,
			Sorting:     true,
			AllowNames:  true,
		},
		title:    "Network",
		commands: networkCommands,
	}
}

func networkCommands(env *command.Env) []*cobra.Command {
	return crud(env, "net", "network", "networks",
		command.NewCreate(env, command.MutateSpec{
			Name:     "net-create",
			Resource: "network",
			Short:    "Create a network for a given tenant",
			Table: &command.Table{
				Positionals: []command.Positional{{Name: "NAME", Field: "name"}},
				Defaults:    adminStateUp,
				Options: []command.Option{
					adminStateDown(),
					{Flag: "shared", Kind: command.Bool, Field: "shared", Usage: "Set the network as shared"},
				},
			},
		}),
		command.NewUpdate(env, command.MutateSpec{
			Name:     "net-update",
			Resource: "network",
			Short:    "Update network's information",
			Table: &command.Table{
				Options: []command.Option{
					nameOption("Name of this network"),
					{Flag: "admin-state-up", Kind: command.BoolString, Field: "admin_state_up", Usage: "Specify the administrative state of the network {True,False}"},
				},
			},
		}),
	)
}
