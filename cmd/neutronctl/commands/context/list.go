package context

import (
	"time"

	"github.com/marmos91/neutronctl/cmd/neutronctl/cmdutil"
	"github.com/marmos91/neutronctl/internal/cli/credentials"
	"github.com/marmos91/neutronctl/internal/cli/timeutil"
	"github.com/spf13/cobra"
)

// ContextInfo represents context information for output.
type ContextInfo struct {
	Name     string `json:"name" yaml:"name"`
	Current  bool   `json:"current" yaml:"current"`
	AuthURL  string `json:"auth_url" yaml:"auth_url"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Project  string `json:"project,omitempty" yaml:"project,omitempty"`
	Region   string `json:"region,omitempty" yaml:"region,omitempty"`
	LoggedIn bool   `json:"logged_in" yaml:"logged_in"`

	ExpiresAt *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

func newContextInfo(name string, current bool, ctx *credentials.Context) ContextInfo {
	info := ContextInfo{
		Name:     name,
		Current:  current,
		AuthURL:  ctx.AuthURL,
		Username: ctx.Username,
		Project:  cmdutil.EmptyOr(ctx.ProjectName, ctx.ProjectID),
		Region:   ctx.Region,
		LoggedIn: ctx.HasValidToken(),
	}
	if ctx.Token != "" && !ctx.ExpiresAt.IsZero() {
		expires := ctx.ExpiresAt
		info.ExpiresAt = &expires
	}
	return info
}

// ContextList is a list of contexts for table rendering.
type ContextList []ContextInfo

// Headers implements TableRenderer.
func (cl ContextList) Headers() []string {
	return []string{"", "NAME", "AUTH URL", "USER", "PROJECT", "REGION", "LOGGED IN", "EXPIRES"}
}

// Rows implements TableRenderer.
func (cl ContextList) Rows() [][]string {
	now := time.Now()
	rows := make([][]string, 0, len(cl))
	for _, c := range cl {
		current := ""
		if c.Current {
			current = "*"
		}
		expires := "-"
		if c.ExpiresAt != nil {
			expires = timeutil.FormatExpiry(*c.ExpiresAt, now)
		}
		rows = append(rows, []string{
			current, c.Name, c.AuthURL,
			cmdutil.EmptyOr(c.Username, "-"),
			cmdutil.EmptyOr(c.Project, "-"),
			cmdutil.EmptyOr(c.Region, "-"),
			cmdutil.BoolToYesNo(c.LoggedIn),
			expires,
		})
	}
	return rows
}

func newListCmd(rt *cmdutil.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configured contexts",
		Long: `List all stored contexts.

The current context is marked with an asterisk (*).

Examples:
  # List contexts as table
  neutronctl context list

  # List as JSON
  neutronctl context list -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rt.Store()
			if err != nil {
				return err
			}
			printer, err := rt.Printer(cmd)
			if err != nil {
				return err
			}

			current := store.GetCurrentContextName()
			contexts := make(ContextList, 0)
			for _, name := range store.ListContexts() {
				ctx, err := store.GetContext(name)
				if err != nil {
					continue
				}
				contexts = append(contexts, newContextInfo(name, name == current, ctx))
			}

			return cmdutil.PrintOutput(printer, contexts, len(contexts) == 0,
				"No contexts configured. Use 'neutronctl login --auth-url <url>' to create one.")
		},
	}
}
