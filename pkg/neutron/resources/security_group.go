package resources

import (
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/marmos91/neutronctl/pkg/neutron/command"
	"github.com/spf13/cobra"
)

func securityGroup() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "security_group",
			ListColumns: []string{"id", "name", "description"},
			Pagination:  true,
			Sorting:     true,
			AllowNames:  true,
		},
		title: "Security Group",
		commands: func(env *command.Env) []*cobra.Command {
			return crud(env, "security-group", "security_group", "security groups",
				command.NewCreate(env, command.MutateSpec{
					Name:     "security-group-create",
					Resource: "security_group",
					Short:    "Create a security group",
					Table: &command.Table{
						Positionals: []command.Positional{{Name: "NAME", Field: "name"}},
						Options:     []command.Option{descriptionOption("Description of security group")},
					},
				}),
				command.NewUpdate(env, command.MutateSpec{
					Name:     "security-group-update",
					Resource: "security_group",
					Short:    "Update a given security group",
					Table: &command.Table{
						Options: []command.Option{
							nameOption("Name of security group"),
							descriptionOption("Description of security group"),
						},
					},
				}),
			)
		},
	}
}
