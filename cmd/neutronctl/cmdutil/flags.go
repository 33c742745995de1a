package cmdutil

import (
	"strings"
	"time"

	"github.com/marmos91/neutronctl/pkg/config"
	"github.com/spf13/pflag"
)

// GlobalFlags holds the global flag values.
type GlobalFlags struct {
	ConfigPath string
	Context    string
	Output     string
	Verbose    bool
	Debug      bool

	AuthURL           string
	Username          string
	UserID            string
	Password          string
	UserDomainName    string
	ProjectName       string
	ProjectID         string
	ProjectDomainName string
	Region            string
	Interface         string
	Token             string
	URL               string
	Insecure          bool
	Timeout           time.Duration
}

// AddGlobalFlags registers the global flags on fs, usually the root
// command's persistent flag set.
func AddGlobalFlags(fs *pflag.FlagSet, f *GlobalFlags) {
	fs.StringVar(&f.ConfigPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/neutronctl/config.yaml)")
	fs.StringVar(&f.Context, "context", "", "Credential context to use (default: current context)")
	fs.StringVarP(&f.Output, "format", "f", "", "Output format (table|json|yaml|csv|value)")
	fs.StringVarP(&f.Output, "output", "o", "", "Alias for --format")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "Enable debug logging")
	fs.BoolVar(&f.Debug, "debug", false, "Alias for --verbose")

	fs.StringVar(&f.AuthURL, "os-auth-url", "", "Keystone v3 URL (env: OS_AUTH_URL)")
	fs.StringVar(&f.Username, "os-username", "", "User name (env: OS_USERNAME)")
	fs.StringVar(&f.UserID, "os-user-id", "", "User ID (env: OS_USER_ID)")
	fs.StringVar(&f.Password, "os-password", "", "Password (env: OS_PASSWORD)")
	fs.StringVar(&f.UserDomainName, "os-user-domain-name", "", "Domain of the user (env: OS_USER_DOMAIN_NAME)")
	fs.StringVar(&f.ProjectName, "os-project-name", "", "Project to scope to (env: OS_PROJECT_NAME)")
	fs.StringVar(&f.ProjectName, "os-tenant-name", "", "Alias for --os-project-name")
	fs.StringVar(&f.ProjectID, "os-project-id", "", "Project ID to scope to (env: OS_PROJECT_ID)")
	fs.StringVar(&f.ProjectID, "os-tenant-id", "", "Alias for --os-project-id")
	fs.StringVar(&f.ProjectDomainName, "os-project-domain-name", "", "Domain of the project (env: OS_PROJECT_DOMAIN_NAME)")
	fs.StringVar(&f.Region, "os-region-name", "", "Region of the network endpoint (env: OS_REGION_NAME)")
	fs.StringVar(&f.Interface, "os-interface", "", "Endpoint interface: public, internal or admin (env: OS_INTERFACE)")
	fs.StringVar(&f.Interface, "endpoint-type", "", "Alias for --os-interface")
	fs.StringVar(&f.Token, "os-token", "", "Pre-issued token, requires --os-url (env: OS_TOKEN)")
	fs.StringVar(&f.URL, "os-url", "", "Network endpoint, bypasses the service catalog (env: OS_URL)")
	fs.BoolVar(&f.Insecure, "insecure", false, "Skip TLS certificate verification")
	fs.DurationVar(&f.Timeout, "http-timeout", 0, "Timeout for each HTTP request (default 60s)")

	for _, alias := range []string{"output", "debug", "os-tenant-name", "os-tenant-id", "endpoint-type"} {
		_ = fs.MarkHidden(alias)
	}
}

// NormalizeFlagName lets every flag be spelled with underscores, as in
// --os_auth_url or --admin_state_up.
func NormalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// apply overrides cloud settings with the flags that were given.
func (f *GlobalFlags) apply(c *config.CloudConfig) {
	for _, o := range []struct {
		value string
		field *string
	}{
		{f.AuthURL, &c.AuthURL},
		{f.Username, &c.Username},
		{f.UserID, &c.UserID},
		{f.Password, &c.Password},
		{f.UserDomainName, &c.UserDomainName},
		{f.ProjectName, &c.ProjectName},
		{f.ProjectID, &c.ProjectID},
		{f.ProjectDomainName, &c.ProjectDomainName},
		{f.Region, &c.Region},
		{f.Interface, &c.Interface},
		{f.Token, &c.Token},
		{f.URL, &c.Endpoint},
	} {
		if o.value != "" {
			*o.field = o.value
		}
	}
	// endpoint-type spellings such as internalURL
	c.Interface = strings.TrimSuffix(strings.ToLower(c.Interface), "url")

	if f.Insecure {
		c.Insecure = true
	}
	if f.Timeout > 0 {
		c.Timeout = f.Timeout
	}
}
