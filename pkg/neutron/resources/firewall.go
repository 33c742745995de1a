package resources

import (
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/marmos91/neutronctl/pkg/neutron/command"
	"github.com/spf13/cobra"
)

func firewall() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "firewall",
			Path:        "fw/firewalls",
			ListColumns: []string{"id", "name", "firewall_policy_id"},
			Pagination:  true,
			Sorting:     true,
			AllowNames:  true,
		},
		title: "Firewall",
		commands: func(env *command.Env) []*cobra.Command {
			return crud(env, "firewall", "firewall", "firewalls",
				command.NewCreate(env, command.MutateSpec{
					Name:     "firewall-create",
					Resource: "firewall",
					Short:    "Create a firewall",
					Table: &command.Table{
						Positionals: []command.Positional{
							{Name: "POLICY", Field: "firewall_policy_id", Resolve: "firewall_policy"},
						},
						Defaults: adminStateUp,
						Options: []command.Option{
							nameOption("Name for the firewall"),
							descriptionOption("Description for the firewall rule"),
							{Flag: "shared", Kind: command.Bool, Field: "shared", Usage: "Set shared to True (default False)"},
							adminStateDown(),
						},
					},
				}),
				command.NewUpdate(env, command.MutateSpec{
					Name:     "firewall-update",
					Resource: "firewall",
					Short:    "Update a given firewall",
					Example:  "  neutronctl firewall-update fw1 -- --name fw2",
				}),
			)
		},
	}
}

func firewallPolicy() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "firewall_policy",
			Plural:      "firewall_policies",
			Path:        "fw/firewall_policies",
			ListColumns: []string{"id", "name", "firewall_rules"},
			Pagination:  true,
			Sorting:     true,
			AllowNames:  true,
		},
		title: "Firewall Policy",
		commands: func(env *command.Env) []*cobra.Command {
			return crud(env, "firewall-policy", "firewall_policy", "firewall policies")
		},
	}
}
