// Package resources declares the Neutron resources neutronctl manages. Each
// file describes one resource: its descriptor and the commands built for it
// from the shapes in package command.
package resources

import (
	"strings"

	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/marmos91/neutronctl/pkg/neutron/command"
	"github.com/spf13/cobra"
)

// resource couples a descriptor with its command set. Resources that only
// serve as name-resolution targets may have no commands.
type resource struct {
	descriptor neutron.Descriptor
	title      string
	commands   func(env *command.Env) []*cobra.Command
}

func all() []resource {
	return []resource{
		network(),
		subnet(),
		port(),
		router(),
		addressScope(),
		floatingIP(),
		securityGroup(),
		securityGroupRule(),
		qosQueue(),
		firewall(),
		firewallPolicy(),
		lbPool(),
		lbMember(),
		lbaasPool(),
		lbaasHealthMonitor(),
		healthMonitor(),
		flavor(),
		loadBalancer(),
		ipsecPolicy(),
		vpnService(),
	}
}

// Register adds every resource descriptor to reg.
func Register(reg *neutron.Registry) {
	for _, r := range all() {
		d := r.descriptor
		reg.MustRegister(&d)
	}
}

// NewRegistry returns a registry holding every resource.
func NewRegistry() *neutron.Registry {
	reg := neutron.NewRegistry()
	Register(reg)
	return reg
}

// Commands builds the commands of every resource.
func Commands(env *command.Env) []*cobra.Command {
	var cmds []*cobra.Command
	for _, r := range all() {
		if r.commands != nil {
			cmds = append(cmds, r.commands(env)...)
		}
	}
	return cmds
}

// AddCommands adds every resource command to root, one help group per
// resource.
func AddCommands(root *cobra.Command, env *command.Env) {
	for _, r := range all() {
		if r.commands == nil {
			continue
		}
		group := &cobra.Group{ID: r.descriptor.Name, Title: r.title + " Commands:"}
		root.AddGroup(group)
		for _, cmd := range r.commands(env) {
			cmd.GroupID = group.ID
			root.AddCommand(cmd)
		}
	}
}

// crud returns the list and show commands of a resource followed by extra
// commands and delete.
func crud(env *command.Env, prefix, resource, plural string, extra ...*cobra.Command) []*cobra.Command {
	cmds := []*cobra.Command{
		listCmd(env, prefix, resource, plural),
		showCmd(env, prefix, resource),
	}
	cmds = append(cmds, extra...)
	return append(cmds, command.NewDelete(env, command.DeleteSpec{
		Name:     prefix + "-delete",
		Resource: resource,
		Short:    "Delete a given " + humanize(resource),
	}))
}

func listCmd(env *command.Env, prefix, resource, plural string) *cobra.Command {
	return command.NewList(env, command.ListSpec{
		Name:     prefix + "-list",
		Resource: resource,
		Short:    "List " + plural + " that belong to a given tenant",
	})
}

func showCmd(env *command.Env, prefix, resource string) *cobra.Command {
	return command.NewShow(env, command.ShowSpec{
		Name:     prefix + "-show",
		Resource: resource,
		Short:    "Show information of a given " + humanize(resource),
	})
}

// readOnly is list and show, for resources used mainly as lookup targets.
func readOnly(env *command.Env, prefix, resource, plural string) []*cobra.Command {
	return []*cobra.Command{
		listCmd(env, prefix, resource, plural),
		showCmd(env, prefix, resource),
	}
}

func humanize(resource string) string {
	return strings.ReplaceAll(resource, "_", " ")
}

// Flags shared by many resources.

func nameOption(usage string) command.Option {
	return command.Option{Flag: "name", Field: "name", Usage: usage}
}

func descriptionOption(usage string) command.Option {
	return command.Option{Flag: "description", Field: "description", Usage: usage}
}

func adminStateDown() command.Option {
	return command.Option{
		Flag: "admin-state-down", Kind: command.Bool, Field: "admin_state_up", Value: false,
		Usage: "Set admin state up to false",
	}
}

var adminStateUp = map[string]any{"admin_state_up": true}
