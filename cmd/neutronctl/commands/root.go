// Package commands implements the neutronctl command line.
package commands

import (
	"context"

	"github.com/marmos91/neutronctl/cmd/neutronctl/cmdutil"
	configcmd "github.com/marmos91/neutronctl/cmd/neutronctl/commands/config"
	ctxcmd "github.com/marmos91/neutronctl/cmd/neutronctl/commands/context"
	"github.com/marmos91/neutronctl/internal/logger"
	"github.com/marmos91/neutronctl/pkg/neutron/resources"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// sessionGroup holds the commands that are not about a Neutron resource.
const sessionGroup = "session"

// Execute builds the command tree, runs it and releases the runtime.
func Execute(ctx context.Context) error {
	rt := cmdutil.NewRuntime(Version)
	root := NewRootCmd(rt)

	err := root.ExecuteContext(ctx)
	if ferr := rt.Finish(context.WithoutCancel(ctx), err); ferr != nil {
		rt.Logger.Warn("failed to flush telemetry", logger.Err(ferr))
	}
	return err
}

// NewRootCmd returns the neutronctl root command bound to rt.
func NewRootCmd(rt *cmdutil.Runtime) *cobra.Command {
	root := &cobra.Command{
		Use:   "neutronctl",
		Short: "Command-line client for the OpenStack Networking API",
		Long: `neutronctl manages OpenStack Neutron resources: networks, subnets, ports,
routers, floating IPs, security groups and the LBaaS, VPNaaS, FWaaS and
QoS queue extensions.

Credentials come from 'neutronctl login', the configuration file, the
standard OS_* environment variables or the --os-* flags.

Arguments the command does not know can be passed after "--" and are
sent in the request body:
  neutronctl net-update private -- --tags list=true a b

Use "neutronctl [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmdutil.NeedsSetup(cmd) {
				return nil
			}
			return rt.Setup(cmd)
		},
	}

	cmdutil.AddGlobalFlags(root.PersistentFlags(), &rt.Flags)
	root.SetGlobalNormalizationFunc(cmdutil.NormalizeFlagName)

	root.AddGroup(&cobra.Group{ID: sessionGroup, Title: "Session Commands:"})
	for _, cmd := range []*cobra.Command{
		newVersionCmd(),
		newCompletionCmd(),
		newLoginCmd(rt),
		newLogoutCmd(rt),
		ctxcmd.NewCmd(rt),
		configcmd.NewCmd(rt),
	} {
		cmd.GroupID = sessionGroup
		root.AddCommand(cmd)
	}
	resources.AddCommands(root, rt.Env)

	// Hide the default completion command (we provide our own)
	root.CompletionOptions.DisableDefaultCmd = true
	return root
}
