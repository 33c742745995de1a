package resources

import (
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/marmos91/neutronctl/pkg/neutron/command"
	"github.com/spf13/cobra"
)

func qosQueue() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name:        "qos_queue",
			ListColumns: []string{"id", "name", "min", "max", "qos_marking", "dscp", "default"},
			AllowNames:  true,
		},
		title: "QoS Queue",
		commands: func(env *command.Env) []*cobra.Command {
			return crud(env, "queue", "qos_queue", "queues",
				command.NewCreate(env, command.MutateSpec{
					Name:     "queue-create",
					Resource: "qos_queue",
					Short:    "Create a queue",
					Table: &command.Table{
						Positionals: []command.Positional{{Name: "NAME", Field: "name"}},
						Options: []command.Option{
							{Flag: "min", Field: "min", Usage: "Minimum rate"},
							{Flag: "max", Field: "max", Usage: "Maximum rate"},
							{Flag: "qos-marking", Field: "qos_marking", Usage: "QOS marking as untrusted or trusted"},
							{Flag: "default", Kind: command.BoolString, Field: "default", Default: "false", Usage: "If true all created ports will be the size of this queue, if queue is not specified"},
							{Flag: "dscp", Field: "dscp", Usage: "Differentiated Services Code Point"},
						},
					},
				}),
			)
		},
	}
}
