package resources

import (
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/marmos91/neutronctl/pkg/neutron/command"
	"github.com/spf13/cobra"
)

// LBaaS v1 resources.

func lbPool() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "pool",
			Path:        "lb/pools",
			ListColumns: []string{"id", "name", "lb_method", "protocol", "status"},
			Pagination:  true,
			Sorting:     true,
			AllowNames:  true,
		},
		title: "LBaaS v1 Pool",
		commands: func(env *command.Env) []*cobra.Command {
			return readOnly(env, "lb-pool", "pool", "pools")
		},
	}
}

func lbMember() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "member",
			Path:        "lb/members",
			ListColumns: []string{"id", "address", "protocol_port", "weight", "admin_state_up", "status"},
			Pagination:  true,
			Sorting:     true,
		},
		title: "LBaaS v1 Member",
		commands: func(env *command.Env) []*cobra.Command {
			return crud(env, "lb-member", "member", "members",
				command.NewCreate(env, command.MutateSpec{
					Name:     "lb-member-create",
					Resource: "member",
					Short:    "Create a member",
					Table: &command.Table{
						Positionals: []command.Positional{{Name: "POOL", Field: "pool_id", Resolve: "pool"}},
						Defaults:    adminStateUp,
						Options: []command.Option{
							adminStateDown(),
							{Flag: "weight", Kind: command.Int, Field: "weight", Usage: "Weight of pool member in the pool (default:1, [0..256])"},
							{Flag: "address", Field: "address", Required: true, Usage: "IP address of the pool member on the pool network"},
							{Flag: "protocol-port", Kind: command.Int, Field: "protocol_port", Required: true, Usage: "Port on which the pool member listens for requests or connections"},
						},
					},
				}),
				command.NewUpdate(env, command.MutateSpec{
					Name:     "lb-member-update",
					Resource: "member",
					Short:    "Update a given member",
					Example:  "  neutronctl lb-member-update MEMBER_ID -- --weight type=int 5",
				}),
			)
		},
	}
}
