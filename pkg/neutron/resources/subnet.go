package resources

import (
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/marmos91/neutronctl/pkg/neutron/command"
	"github.com/spf13/cobra"
)

func subnet() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "subnet",
			ListColumns: []string{"id", "name", "cidr", "allocation_pools"},
			Pagination:  true,
			Sorting:     true,
			AllowNames:  true,
		},
		title:    "Subnet",
		commands: subnetCommands,
	}
}

func subnetCommands(env *command.Env) []*cobra.Command {
	return crud(env, "subnet", "subnet", "subnets",
		command.NewCreate(env, command.MutateSpec{
			Name:     "subnet-create",
			Resource: "subnet",
			Short:    "Create a subnet for a given tenant",
			Example: `  neutronctl subnet-create --gateway 10.0.0.1 private 10.0.0.0/24
  neutronctl subnet-create --allocation-pool start=10.0.0.10,end=10.0.0.20 private 10.0.0.0/24`,
			Table: &command.Table{
				Positionals: []command.Positional{
					{Name: "NETWORK", Field: "network_id", Resolve: "network"},
					{Name: "CIDR", Field: "cidr"},
				},
				Options: []command.Option{
					nameOption("Name of this subnet"),
					{Flag: "ip-version", Kind: command.Int, Field: "ip_version", Default: "4", Choices: []string{"4", "6"}, Usage: "IP version to use"},
					{Flag: "gateway", Field: "gateway_ip", Usage: "Gateway IP of this subnet"},
					{Flag: "no-gateway", Kind: command.Bool, Usage: "No distribution of gateway"},
					{Flag: "allocation-pool", Kind: command.KVArray, Field: "allocation_pools", Keys: []string{"start", "end"}, Usage: "Allocation pool IP addresses, start=IP_ADDR,end=IP_ADDR (repeatable)"},
					{Flag: "host-route", Kind: command.KVArray, Field: "host_routes", Keys: []string{"destination", "nexthop"}, Usage: "Additional route, destination=CIDR,nexthop=IP_ADDR (repeatable)"},
					{Flag: "dns-nameserver", Kind: command.StringArray, Field: "dns_nameservers", Usage: "DNS name server for this subnet (repeatable)"},
					{Flag: "disable-dhcp", Kind: command.Bool, Field: "enable_dhcp", Value: false, Usage: "Disable DHCP for this subnet"},
				},
				Exclusive: [][]string{{"gateway", "no-gateway"}},
			},
			Hook: command.BodyFunc(noGateway),
		}),
		command.NewUpdate(env, command.MutateSpec{
			Name:     "subnet-update",
			Resource: "subnet",
			Short:    "Update subnet's information",
			Table: &command.Table{
				Options: []command.Option{nameOption("Name of this subnet")},
			},
		}),
	)
}

// noGateway sends an explicit null gateway.
func noGateway(in *command.Invocation, body neutron.Fields) error {
	if in.Changed("no-gateway") {
		body["gateway_ip"] = nil
	}
	return nil
}
