package resources

import (
	"github.com/marmos91/neutronctl/internal/telemetry"
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/marmos91/neutronctl/pkg/neutron/command"
	"github.com/spf13/cobra"
)

func floatingIP() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "floatingip",
			ListColumns: []string{"id", "fixed_ip_address", "floating_ip_address", "port_id"},
			Pagination:  true,
			Sorting:     true,
		},
		title:    "Floating IP",
		commands: floatingIPCommands,
	}
}

func floatingIPCommands(env *command.Env) []*cobra.Command {
	cmds := crud(env, "floatingip", "floatingip", "floating IPs",
		command.NewCreate(env, command.MutateSpec{
			Name:     "floatingip-create",
			Resource: "floatingip",
			Short:    "Create a floating IP for a given tenant",
			Table: &command.Table{
				Positionals: []command.Positional{
					{Name: "FLOATING_NETWORK", Field: "floating_network_id", Resolve: "network"},
				},
				Options: []command.Option{
					{Flag: "port-id", Field: "port_id", Usage: "ID of the port to be associated with the floating IP"},
					{Flag: "fixed-ip-address", Field: "fixed_ip_address", Usage: "IP address on the port (only required if port has multiple IPs)"},
					{Flag: "floating-ip-address", Field: "floating_ip_address", Usage: "IP address of the floating IP"},
					{Flag: "subnet", Field: "subnet_id", Resolve: "subnet", Usage: "Subnet name or ID on which to create the floating IP"},
				},
			},
		}),
	)

	return append(cmds,
		command.NewAction(env, command.ActionSpec{
			Name:     "floatingip-associate",
			Resource: "floatingip",
			Short:    "Create a mapping between a floating IP and a fixed IP",
			Args:     []string{"FLOATINGIP_ID", "PORT"},
			Table: &command.Table{
				Options: []command.Option{
					{Flag: "fixed-ip-address", Usage: "IP address on the port (only required if port has multiple IPs)"},
				},
			},
			Run: func(in *command.Invocation) error {
				portID, err := in.Resolve("port", in.Args[1])
				if err != nil {
					return err
				}
				body := neutron.Fields{"port_id": portID}
				body.SetString("fixed_ip_address", in.String("fixed-ip-address"))
				if err := updateFloatingIP(in, body); err != nil {
					return err
				}
				in.Printf("Associated floating IP %s\n", in.Args[0])
				return nil
			},
		}),
		command.NewAction(env, command.ActionSpec{
			Name:     "floatingip-disassociate",
			Resource: "floatingip",
			Short:    "Remove a mapping from a floating IP to a fixed IP",
			Args:     []string{"FLOATINGIP_ID"},
			Run: func(in *command.Invocation) error {
				if err := updateFloatingIP(in, neutron.Fields{"port_id": nil}); err != nil {
					return err
				}
				in.Printf("Disassociated floating IP %s\n", in.Args[0])
				return nil
			},
		}),
	)
}

// updateFloatingIP updates the floating IP named by the first argument.
// Floating IPs have no names, so the ID is used verbatim.
func updateFloatingIP(in *command.Invocation, body neutron.Fields) error {
	id := in.Args[0]
	telemetry.SetAttributes(in.Ctx, telemetry.ResourceID(id))

	client, err := in.Client()
	if err != nil {
		return err
	}
	api, err := in.API("floatingip")
	if err != nil {
		return err
	}
	_, err = client.Update(in.Ctx, api.ItemPath(id), api.ObjectKey(), body.Envelope(api.ObjectKey()))
	return err
}
