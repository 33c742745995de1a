package commands

import (
	"fmt"

	"github.com/marmos91/neutronctl/cmd/neutronctl/cmdutil"
	"github.com/marmos91/neutronctl/internal/cli/credentials"
	"github.com/marmos91/neutronctl/internal/cli/prompt"
	"github.com/marmos91/neutronctl/pkg/apiclient"
	"github.com/spf13/cobra"
)

type loginOptions struct {
	authURL       string
	username      string
	projectName   string
	region        string
	passwordStdin bool
}

func newLoginCmd(rt *cmdutil.Runtime) *cobra.Command {
	var opts loginOptions

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with Keystone and store the token",
		Long: `Authenticate with Keystone v3 and store the token, its expiry and the
network endpoint in a named context.

Settings not given as flags come from the configuration file, the OS_*
environment variables or the current context. The password is prompted
for unless it is piped with --password-stdin or set in OS_PASSWORD.

Examples:
  # First login to a cloud
  neutronctl login --auth-url https://keystone.example.com:5000/v3 \
    --username demo --project-name demo

  # Password from a secret manager
  pass show openstack/demo | neutronctl login --password-stdin

  # Keep several clouds side by side
  neutronctl login --context staging --auth-url https://staging.example.com:5000/v3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, rt, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.authURL, "auth-url", "", "Keystone v3 URL (required on first login)")
	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "User name")
	cmd.Flags().StringVar(&opts.projectName, "project-name", "", "Project to scope the token to")
	cmd.Flags().StringVar(&opts.region, "region", "", "Region of the network endpoint")
	cmd.Flags().BoolVar(&opts.passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

func runLogin(cmd *cobra.Command, rt *cmdutil.Runtime, opts *loginOptions) error {
	out := cmd.OutOrStdout()
	cloud := rt.Config.Cloud

	for _, o := range []struct {
		value string
		field *string
	}{
		{opts.authURL, &cloud.AuthURL},
		{opts.username, &cloud.Username},
		{opts.projectName, &cloud.ProjectName},
		{opts.region, &cloud.Region},
	} {
		if o.value != "" {
			*o.field = o.value
		}
	}

	if cloud.AuthURL == "" {
		return fmt.Errorf("no auth URL specified and no saved context found\n\n" +
			"Specify the Keystone URL:\n" +
			"  neutronctl login --auth-url https://keystone.example.com:5000/v3")
	}

	var err error
	if cloud.Username == "" && cloud.UserID == "" && cloud.ApplicationCredentialID == "" {
		cloud.Username, err = prompt.InputRequired("Username")
		if err != nil {
			return cmdutil.HandleAbort(out, err)
		}
	}

	switch {
	case opts.passwordStdin:
		cloud.Password, err = prompt.ReadSecret(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	case cloud.Password == "" && cloud.ApplicationCredentialSecret == "":
		cloud.Password, err = prompt.Password("Password")
		if err != nil {
			return cmdutil.HandleAbort(out, err)
		}
	}

	who := cloud.Username
	if who == "" {
		who = cmdutil.EmptyOr(cloud.UserID, cloud.ApplicationCredentialID)
	}
	_, _ = fmt.Fprintf(out, "Logging in to %s as %s...\n", cloud.AuthURL, who)

	session, err := apiclient.Authenticate(cmd.Context(), cloud.AuthOptions(), apiclient.NewTransport(cloud.Insecure))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	store, err := rt.Store()
	if err != nil {
		return err
	}

	name := rt.Flags.Context
	if name == "" {
		name = store.GetCurrentContextName()
	}
	if name == "" {
		name = credentials.DefaultContext
	}

	endpoint := session.Endpoint
	if cloud.Endpoint != "" {
		endpoint = cloud.Endpoint
	}

	ctx := &credentials.Context{
		AuthURL:           cloud.AuthURL,
		Region:            cloud.Region,
		Interface:         cloud.Interface,
		Username:          cloud.Username,
		UserDomainName:    cloud.UserDomainName,
		ProjectName:       cloud.ProjectName,
		ProjectID:         cloud.ProjectID,
		ProjectDomainName: cloud.ProjectDomainName,
		Insecure:          cloud.Insecure,
		Endpoint:          endpoint,
		Token:             session.Token,
		ExpiresAt:         session.ExpiresAt,
	}
	if err := store.SetContext(name, ctx); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	if err := store.UseContext(name); err != nil {
		return fmt.Errorf("failed to set current context: %w", err)
	}

	rt.Logger.DebugContext(cmd.Context(), "stored token", "context", name, "expires_at", session.ExpiresAt)

	_, _ = fmt.Fprintf(out, "Logged in successfully as %s\n", who)
	_, _ = fmt.Fprintf(out, "Context: %s\n", name)
	_, _ = fmt.Fprintf(out, "Network endpoint: %s\n", endpoint)
	_, _ = fmt.Fprintf(out, "Credentials saved to: %s\n", store.ConfigPath())
	return nil
}
