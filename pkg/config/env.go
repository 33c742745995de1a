package config

import "strings"

// osEnv maps OpenStack client environment variables to cloud fields. When
// several variables name the same field the first one set wins.
var osEnv = []struct {
	names []string
	field func(*CloudConfig) *string
}{
	{[]string{"OS_AUTH_URL"}, func(c *CloudConfig) *string { return &c.AuthURL }},
	{[]string{"OS_REGION_NAME"}, func(c *CloudConfig) *string { return &c.Region }},
	{[]string{"OS_INTERFACE", "OS_ENDPOINT_TYPE"}, func(c *CloudConfig) *string { return &c.Interface }},
	{[]string{"OS_USERNAME"}, func(c *CloudConfig) *string { return &c.Username }},
	{[]string{"OS_USER_ID"}, func(c *CloudConfig) *string { return &c.UserID }},
	{[]string{"OS_USER_DOMAIN_NAME", "OS_DOMAIN_NAME"}, func(c *CloudConfig) *string { return &c.UserDomainName }},
	{[]string{"OS_USER_DOMAIN_ID", "OS_DOMAIN_ID"}, func(c *CloudConfig) *string { return &c.UserDomainID }},
	{[]string{"OS_PASSWORD"}, func(c *CloudConfig) *string { return &c.Password }},
	{[]string{"OS_PROJECT_NAME", "OS_TENANT_NAME"}, func(c *CloudConfig) *string { return &c.ProjectName }},
	{[]string{"OS_PROJECT_ID", "OS_TENANT_ID"}, func(c *CloudConfig) *string { return &c.ProjectID }},
	{[]string{"OS_PROJECT_DOMAIN_NAME"}, func(c *CloudConfig) *string { return &c.ProjectDomainName }},
	{[]string{"OS_PROJECT_DOMAIN_ID"}, func(c *CloudConfig) *string { return &c.ProjectDomainID }},
	{[]string{"OS_APPLICATION_CREDENTIAL_ID"}, func(c *CloudConfig) *string { return &c.ApplicationCredentialID }},
	{[]string{"OS_APPLICATION_CREDENTIAL_NAME"}, func(c *CloudConfig) *string { return &c.ApplicationCredentialName }},
	{[]string{"OS_APPLICATION_CREDENTIAL_SECRET"}, func(c *CloudConfig) *string { return &c.ApplicationCredentialSecret }},
	{[]string{"OS_TOKEN", "OS_AUTH_TOKEN"}, func(c *CloudConfig) *string { return &c.Token }},
	{[]string{"OS_URL", "OS_NETWORK_ENDPOINT"}, func(c *CloudConfig) *string { return &c.Endpoint }},
}

// ApplyOSEnv fills cloud fields that are still empty from the standard
// OS_* variables. lookup is usually os.LookupEnv.
func ApplyOSEnv(cfg *Config, lookup func(string) (string, bool)) {
	for _, e := range osEnv {
		field := e.field(&cfg.Cloud)
		if *field != "" {
			continue
		}
		for _, name := range e.names {
			if v, ok := lookup(name); ok && v != "" {
				*field = v
				break
			}
		}
	}

	if !cfg.Cloud.Insecure {
		if v, ok := lookup("OS_INSECURE"); ok {
			cfg.Cloud.Insecure = strings.EqualFold(v, "true") || v == "1"
		}
	}
}
