package resources

import (
	"github.com/marmos91/neutronctl/internal/cli/output"
	"github.com/marmos91/neutronctl/internal/telemetry"
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/marmos91/neutronctl/pkg/neutron/command"
	"github.com/spf13/cobra"
)

// LBaaS v2 resources.

func lbaasPool() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "lbaas_pool",
			Key:         "pool",
			Path:        "lbaas/pools",
			ListColumns: []string{"id", "name", "lb_method", "protocol"},
			Pagination:  true,
			Sorting:     true,
			AllowNames:  true,
		},
		title: "LBaaS Pool",
		commands: func(env *command.Env) []*cobra.Command {
			return readOnly(env, "lbaas-pool", "lbaas_pool", "LBaaS v2 pools")
		},
	}
}

// lbaasHealthMonitor is the endpoint behind the healthmonitor commands.
func lbaasHealthMonitor() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:       "lbaas_healthmonitor",
			Key:        "healthmonitor",
			Path:       "lbaas/healthmonitors",
			Pagination: true,
			Sorting:    true,
			AllowNames: true,
		},
	}
}

func healthMonitor() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "healthmonitor",
			Shadow:      "lbaas_healthmonitor",
			ListColumns: []string{"id", "name", "type", "admin_state_up"},
			Pagination:  true,
			Sorting:     true,
			AllowNames:  true,
		},
		title:    "LBaaS Health Monitor",
		commands: healthMonitorCommands,
	}
}

func healthMonitorCommands(env *command.Env) []*cobra.Command {
	return crud(env, "lbaas-healthmonitor", "healthmonitor", "LBaaS v2 healthmonitors",
		command.NewCreate(env, command.MutateSpec{
			Name:     "lbaas-healthmonitor-create",
			Resource: "healthmonitor",
			Short:    "Create a LBaaS v2 healthmonitor",
			Example:  "  neutronctl lbaas-healthmonitor-create --delay 5 --max-retries 3 --timeout 10 --type HTTP --pool web",
			Table: &command.Table{
				Defaults: adminStateUp,
				Options: []command.Option{
					nameOption("Name of the health monitor to be created"),
					adminStateDown(),
					{Flag: "expected-codes", Field: "expected_codes", Usage: `The list of HTTP status codes expected in response from the member to declare it healthy. Defaults to "200"`},
					{Flag: "http-method", Field: "http_method", Usage: "The HTTP method used for requests by the monitor of type HTTP"},
					{Flag: "url-path", Field: "url_path", Usage: "The HTTP path used in the HTTP request used by the monitor to test a member health"},
					{Flag: "delay", Kind: command.Int, Field: "delay", Required: true, Usage: "The time in seconds between sending probes to members"},
					{Flag: "max-retries", Kind: command.Int, Field: "max_retries", Required: true, Usage: "Number of permissible connection failures before changing the member status to INACTIVE [1..10]"},
					{Flag: "timeout", Kind: command.Int, Field: "timeout", Required: true, Usage: "Maximum number of seconds for a monitor to wait for a connection to be established before it times out"},
					{Flag: "type", Field: "type", Required: true, Choices: []string{"PING", "TCP", "HTTP", "HTTPS"}, Usage: "One of the predefined health monitor types"},
					{Flag: "pool", Field: "pool_id", Required: true, Resolve: "pool", ResolveVia: "lbaas_pool", Usage: "ID or name of the pool that this healthmonitor will monitor"},
				},
			},
		}),
		command.NewUpdate(env, command.MutateSpec{
			Name:     "lbaas-healthmonitor-update",
			Resource: "healthmonitor",
			Short:    "Update a given LBaaS v2 healthmonitor",
			Table: &command.Table{
				Options: []command.Option{nameOption("Updated name of the health monitor")},
			},
		}),
	)
}

func loadBalancer() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "loadbalancer",
			Path:        "lbaas/loadbalancers",
			ListColumns: []string{"id", "name", "vip_address", "provisioning_status", "provider"},
			Pagination:  true,
			Sorting:     true,
			AllowNames:  true,
		},
		title:    "LBaaS Load Balancer",
		commands: loadBalancerCommands,
	}
}

func loadBalancerCommands(env *command.Env) []*cobra.Command {
	cmds := crud(env, "lbaas-loadbalancer", "loadbalancer", "LBaaS v2 loadbalancers",
		command.NewCreate(env, command.MutateSpec{
			Name:     "lbaas-loadbalancer-create",
			Resource: "loadbalancer",
			Short:    "Create a LBaaS v2 loadbalancer",
			Table: &command.Table{
				Positionals: []command.Positional{
					{Name: "VIP_SUBNET", Field: "vip_subnet_id", Resolve: "subnet"},
				},
				Defaults: adminStateUp,
				Options: []command.Option{
					descriptionOption("Description of the load balancer"),
					adminStateDown(),
					nameOption("Name of the load balancer"),
					{Flag: "provider", Field: "provider", Usage: "Provider name of load balancer service"},
					{Flag: "flavor", Field: "flavor_id", Resolve: "flavor", Usage: "ID or name of flavor"},
					{Flag: "vip-address", Field: "vip_address", Usage: "VIP address for the load balancer"},
				},
			},
		}),
		command.NewUpdate(env, command.MutateSpec{
			Name:     "lbaas-loadbalancer-update",
			Resource: "loadbalancer",
			Short:    "Update a given LBaaS v2 loadbalancer",
			Table: &command.Table{
				Options: []command.Option{nameOption("Name of the load balancer")},
			},
		}),
	)

	return append(cmds, command.NewAction(env, command.ActionSpec{
		Name:     "lbaas-loadbalancer-stats",
		Resource: "loadbalancer",
		Short:    "Retrieve stats for a given loadbalancer",
		Args:     []string{"LOADBALANCER"},
		Table: &command.Table{
			Options: []command.Option{
				{Flag: "fields", Short: "F", Kind: command.StringArray, Usage: "Specify the field(s) to be returned by server (repeatable)"},
			},
		},
		Run: loadBalancerStats,
	}))
}

func loadBalancerStats(in *command.Invocation) error {
	printer, err := in.Printer()
	if err != nil {
		return err
	}
	id, err := in.Resolve("loadbalancer", in.Args[0])
	if err != nil {
		return err
	}
	telemetry.SetAttributes(in.Ctx, telemetry.ResourceID(id))

	client, err := in.Client()
	if err != nil {
		return err
	}
	api, err := in.API("loadbalancer")
	if err != nil {
		return err
	}
	query := neutron.QueryFilters(in.Extra)
	for _, f := range in.Strings("fields") {
		query.Add("fields", f)
	}
	stats, err := client.Get(in.Ctx, api.ItemPath(id)+"/stats", "stats", query)
	if err != nil {
		return err
	}
	return printer.Print(&output.FieldTable{Object: stats})
}

func flavor() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "flavor",
			ListColumns: []string{"id", "name", "service_type", "enabled"},
			Pagination:  true,
			Sorting:     true,
			AllowNames:  true,
		},
		title: "Service Flavor",
		commands: func(env *command.Env) []*cobra.Command {
			return readOnly(env, "flavor", "flavor", "Neutron service flavors")
		},
	}
}
