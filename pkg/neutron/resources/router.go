package resources

import (
	"strings"

	"github.com/marmos91/neutronctl/internal/telemetry"
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/marmos91/neutronctl/pkg/neutron/command"
	"github.com/spf13/cobra"
)

func router() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "router",
			ListColumns: []string{"id", "name", "external_gateway_info"},
			Pagination:  true,
			Sorting:     true,
			AllowNames:  true,
		},
		title:    "Router",
		commands: routerCommands,
	}
}

func routerCommands(env *command.Env) []*cobra.Command {
	cmds := crud(env, "router", "router", "routers",
		command.NewCreate(env, command.MutateSpec{
			Name:     "router-create",
			Resource: "router",
			Short:    "Create a router for a given tenant",
			Table: &command.Table{
				Positionals: []command.Positional{{Name: "NAME", Field: "name"}},
				Defaults:    adminStateUp,
				Options: []command.Option{
					adminStateDown(),
					{Flag: "distributed", Kind: command.BoolString, Field: "distributed", Usage: "Create a distributed router {True,False}"},
					{Flag: "ha", Kind: command.BoolString, Field: "ha", Usage: "Create a highly available router {True,False}"},
					{Flag: "availability-zone-hint", Kind: command.StringArray, Field: "availability_zone_hints", Usage: "Availability zone candidate for the router (repeatable)"},
				},
			},
		}),
		command.NewUpdate(env, command.MutateSpec{
			Name:     "router-update",
			Resource: "router",
			Short:    "Update router's information",
			Example:  "  neutronctl router-update r1 --route destination=10.0.3.0/24,nexthop=10.0.0.10",
			Table: &command.Table{
				Options: []command.Option{
					nameOption("Name of this router"),
					{Flag: "admin-state-up", Kind: command.BoolString, Field: "admin_state_up", Usage: "Specify the administrative state of the router {True,False}"},
					{Flag: "distributed", Kind: command.BoolString, Field: "distributed", Usage: "True means this router should operate in distributed mode {True,False}"},
					{Flag: "route", Kind: command.KVArray, Field: "routes", Keys: []string{"destination", "nexthop"}, Usage: "Route to associate with the router, destination=CIDR,nexthop=IP_ADDR (repeatable)"},
					{Flag: "no-routes", Kind: command.Bool, Usage: "Remove routes associated with the router"},
				},
				Exclusive: [][]string{{"route", "no-routes"}},
			},
			Hook: command.BodyFunc(func(in *command.Invocation, body neutron.Fields) error {
				if in.Changed("no-routes") {
					body["routes"] = nil
				}
				return nil
			}),
		}),
	)

	return append(cmds,
		command.NewAction(env, command.ActionSpec{
			Name:     "router-interface-add",
			Resource: "router",
			Short:    "Add an internal network interface to a router",
			Args:     []string{"ROUTER", "INTERFACE"},
			Run:      func(in *command.Invocation) error { return routerInterface(in, "add_router_interface") },
		}),
		command.NewAction(env, command.ActionSpec{
			Name:     "router-interface-delete",
			Resource: "router",
			Short:    "Remove an internal network interface from a router",
			Args:     []string{"ROUTER", "INTERFACE"},
			Run:      func(in *command.Invocation) error { return routerInterface(in, "remove_router_interface") },
		}),
		command.NewAction(env, command.ActionSpec{
			Name:     "router-gateway-set",
			Resource: "router",
			Short:    "Set the external network gateway for a router",
			Args:     []string{"ROUTER", "EXTERNAL-NETWORK"},
			Table: &command.Table{
				Options: []command.Option{
					{Flag: "disable-snat", Kind: command.Bool, Usage: "Disable source NAT on the router gateway"},
					{Flag: "fixed-ip", Kind: command.KVArray, Usage: "Desired IP and/or subnet on external network, subnet_id=SUBNET,ip_address=IP_ADDR (repeatable)"},
				},
			},
			Run: setGateway,
		}),
		command.NewAction(env, command.ActionSpec{
			Name:     "router-gateway-clear",
			Resource: "router",
			Short:    "Remove an external network gateway from a router",
			Args:     []string{"ROUTER"},
			Run: func(in *command.Invocation) error {
				if err := updateGateway(in, in.Args[0], map[string]any{}); err != nil {
					return err
				}
				in.Printf("Removed gateway from router %s\n", in.Args[0])
				return nil
			},
		}),
	)
}

// routerInterface adds or removes a router interface. INTERFACE is
// "subnet=X", "port=X" or a bare subnet.
func routerInterface(in *command.Invocation, action string) error {
	kind, ref := "subnet", in.Args[1]
	if k, v, ok := strings.Cut(ref, "="); ok {
		if k != "subnet" && k != "port" {
			return neutron.InvalidArgumentf("You must specify either subnet or port for INTERFACE parameter")
		}
		kind, ref = k, v
	}

	routerID, err := in.Resolve("router", in.Args[0])
	if err != nil {
		return err
	}
	telemetry.SetAttributes(in.Ctx, telemetry.ResourceID(routerID))
	refID, err := in.Resolve(kind, ref)
	if err != nil {
		return err
	}

	client, err := in.Client()
	if err != nil {
		return err
	}
	api, err := in.API("router")
	if err != nil {
		return err
	}
	resp, err := client.Put(in.Ctx, api.ItemPath(routerID)+"/"+action, map[string]any{kind + "_id": refID})
	if err != nil {
		return err
	}

	if action == "add_router_interface" {
		portID, _ := resp["port_id"].(string)
		in.Printf("Added interface %s to router %s.\n", portID, in.Args[0])
	} else {
		in.Printf("Removed interface from router %s.\n", in.Args[0])
	}
	return nil
}

func setGateway(in *command.Invocation) error {
	networkID, err := in.Resolve("network", in.Args[1])
	if err != nil {
		return err
	}
	info := map[string]any{"network_id": networkID}
	if in.Changed("disable-snat") {
		info["enable_snat"] = false
	}

	fixedIPs, err := in.KeyValues("fixed-ip", "subnet_id", "ip_address")
	if err != nil {
		return err
	}
	if len(fixedIPs) > 0 {
		ips := make([]any, 0, len(fixedIPs))
		for _, ip := range fixedIPs {
			if subnet, ok := ip["subnet_id"].(string); ok {
				id, err := in.Resolve("subnet", subnet)
				if err != nil {
					return err
				}
				ip["subnet_id"] = id
			}
			ips = append(ips, ip)
		}
		info["external_fixed_ips"] = ips
	}

	if err := updateGateway(in, in.Args[0], info); err != nil {
		return err
	}
	in.Printf("Set gateway for router %s\n", in.Args[0])
	return nil
}

func updateGateway(in *command.Invocation, ref string, info map[string]any) error {
	routerID, err := in.Resolve("router", ref)
	if err != nil {
		return err
	}
	telemetry.SetAttributes(in.Ctx, telemetry.ResourceID(routerID))

	client, err := in.Client()
	if err != nil {
		return err
	}
	api, err := in.API("router")
	if err != nil {
		return err
	}
	body := neutron.Fields{"external_gateway_info": info}
	_, err = client.Update(in.Ctx, api.ItemPath(routerID), api.ObjectKey(), body.Envelope(api.ObjectKey()))
	return err
}
