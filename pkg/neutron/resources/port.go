package resources

import (
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/marmos91/neutronctl/pkg/neutron/command"
	"github.com/spf13/cobra"
)

func port() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "port",
			ListColumns: []string{"id", "name", "mac_address", "fixed_ips"},
			Pagination:  true,
			Sorting:     true,
			AllowNames:  true,
		},
		title: "Port",
		commands: func(env *command.Env) []*cobra.Command {
			return crud(env, "port", "port", "ports")
		},
	}
}
