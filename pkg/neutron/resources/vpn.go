package resources

import (
	"strconv"

	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/marmos91/neutronctl/pkg/neutron/command"
	"github.com/spf13/cobra"
)

func ipsecPolicy() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "ipsecpolicy",
			Plural:      "ipsecpolicies",
			Path:        "vpn/ipsecpolicies",
			ListColumns: []string{"id", "name", "auth_algorithm", "encryption_algorithm", "pfs"},
			Pagination:  true,
			Sorting:     true,
			AllowNames:  true,
		},
		title:    "VPN IPsec Policy",
		commands: ipsecPolicyCommands,
	}
}

func lifetimeOption() command.Option {
	return command.Option{
		Flag: "lifetime", Kind: command.KV, Field: "lifetime", Keys: []string{"units", "value"},
		Usage: "IPsec lifetime attributes, units=UNITS,value=VALUE. 'units' seconds, default: seconds; 'value' non-negative integer, default: 3600",
	}
}

func ipsecPolicyCommands(env *command.Env) []*cobra.Command {
	return crud(env, "vpn-ipsecpolicy", "ipsecpolicy", "IPsec policies",
		command.NewCreate(env, command.MutateSpec{
			Name:     "vpn-ipsecpolicy-create",
			Resource: "ipsecpolicy",
			Short:    "Create an IPsec policy",
			Table: &command.Table{
				Positionals: []command.Positional{{Name: "NAME", Field: "name"}},
				Options: []command.Option{
					descriptionOption("Description of the IPsec policy"),
					{Flag: "transform-protocol", Field: "transform_protocol", Default: "esp", Choices: []string{"esp", "ah", "ah-esp"}, Usage: "Transform protocol in lowercase"},
					{Flag: "auth-algorithm", Field: "auth_algorithm", Default: "sha1", Choices: []string{"sha1"}, Usage: "Authentication algorithm in lowercase"},
					{Flag: "encryption-algorithm", Field: "encryption_algorithm", Default: "aes-128", Choices: []string{"3des", "aes-128", "aes-192", "aes-256"}, Usage: "Encryption algorithm in lowercase"},
					{Flag: "encapsulation-mode", Field: "encapsulation_mode", Default: "tunnel", Choices: []string{"tunnel", "transport"}, Usage: "Encapsulation mode in lowercase"},
					{Flag: "pfs", Field: "pfs", Default: "group5", Choices: []string{"group2", "group5", "group14"}, Usage: "Perfect Forward Secrecy in lowercase"},
					lifetimeOption(),
				},
			},
			Hook: command.BodyFunc(validateLifetime),
		}),
		command.NewUpdate(env, command.MutateSpec{
			Name:     "vpn-ipsecpolicy-update",
			Resource: "ipsecpolicy",
			Short:    "Update a given IPsec policy",
			Table: &command.Table{
				Options: []command.Option{lifetimeOption()},
			},
			Hook: command.BodyFunc(validateLifetime),
		}),
	)
}

// validateLifetime accepts lifetimes in seconds with a positive value.
func validateLifetime(in *command.Invocation, body neutron.Fields) error {
	lifetime, ok := body["lifetime"].(map[string]any)
	if !ok {
		return nil
	}
	if units, ok := lifetime["units"]; ok && units != "seconds" {
		return neutron.InvalidArgumentf("Invalid lifetime units %q, supported units: seconds", units)
	}
	if raw, ok := lifetime["value"]; ok {
		s, _ := raw.(string)
		if n, err := strconv.Atoi(s); err != nil || n <= 0 {
			return neutron.InvalidArgumentf("Invalid lifetime value %q, must be a positive integer", s)
		}
	}
	return nil
}

func vpnService() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "vpnservice",
			Path:        "vpn/vpnservices",
			ListColumns: []string{"id", "name", "router_id", "status"},
			Pagination:  true,
			Sorting:     true,
			AllowNames:  true,
		},
		title: "VPN Service",
		commands: func(env *command.Env) []*cobra.Command {
			return crud(env, "vpn-service", "vpnservice", "VPN service configurations",
				command.NewCreate(env, command.MutateSpec{
					Name:     "vpn-service-create",
					Resource: "vpnservice",
					Short:    "Create a VPN service",
					Table: &command.Table{
						Positionals: []command.Positional{
							{Name: "ROUTER", Field: "router_id", Resolve: "router"},
							{Name: "SUBNET", Field: "subnet_id", Resolve: "subnet"},
						},
						Defaults: adminStateUp,
						Options: []command.Option{
							adminStateDown(),
							nameOption("Set a name for the VPN service"),
							descriptionOption("Set a description for the VPN service"),
						},
					},
				}),
				command.NewUpdate(env, command.MutateSpec{
					Name:     "vpn-service-update",
					Resource: "vpnservice",
					Short:    "Update a given VPN service",
					Example:  "  neutronctl vpn-service-update vpn1 -- --name vpn2",
				}),
			)
		},
	}
}
