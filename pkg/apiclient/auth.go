package apiclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack"
	"github.com/gophercloud/gophercloud/v2/openstack/identity/v3/tokens"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// AuthOptions describes a Keystone v3 authentication request and the
// network endpoint to pick from the service catalog.
type AuthOptions struct {
	AuthURL string

	Username       string
	UserID         string
	Password       string
	UserDomainName string
	UserDomainID   string

	ProjectName       string
	ProjectID         string
	ProjectDomainName string
	ProjectDomainID   string

	ApplicationCredentialID     string
	ApplicationCredentialName   string
	ApplicationCredentialSecret string

	Region    string
	Interface string // public, internal or admin
}

// Session is an authenticated connection to the network service.
type Session struct {
	Token     string
	ExpiresAt time.Time
	// Endpoint is the network service endpoint from the catalog, ending in "/".
	Endpoint string
	Network  *gophercloud.ServiceClient
}

// NewTransport returns the HTTP transport used for every API call,
// instrumented for tracing.
func NewTransport(insecure bool) http.RoundTripper {
	base := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		base.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via cloud.insecure
	}
	return otelhttp.NewTransport(base)
}

// Authenticate obtains a token from Keystone and locates the network
// endpoint in the returned catalog.
func Authenticate(ctx context.Context, opts AuthOptions, transport http.RoundTripper) (*Session, error) {
	if opts.AuthURL == "" {
		return nil, fmt.Errorf("auth URL is required (set cloud.auth_url, OS_AUTH_URL or --os-auth-url)")
	}

	provider, err := openstack.NewClient(opts.AuthURL)
	if err != nil {
		return nil, fmt.Errorf("invalid auth URL %q: %w", opts.AuthURL, err)
	}
	if transport != nil {
		provider.HTTPClient = http.Client{Transport: transport}
	}

	if err := openstack.Authenticate(ctx, provider, opts.gophercloud()); err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	network, err := openstack.NewNetworkV2(provider, gophercloud.EndpointOpts{
		Region:       opts.Region,
		Availability: availability(opts.Interface),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find network endpoint: %w", err)
	}

	session := &Session{
		Token:    provider.Token(),
		Endpoint: network.Endpoint,
		Network:  network,
	}
	if result, ok := provider.GetAuthResult().(tokens.CreateResult); ok {
		if tok, err := result.ExtractToken(); err == nil {
			session.ExpiresAt = tok.ExpiresAt
		}
	}
	return session, nil
}

// NewTokenSession builds a session from a previously issued token and
// network endpoint, without contacting Keystone.
func NewTokenSession(endpoint, token string, transport http.RoundTripper) *Session {
	endpoint = gophercloud.NormalizeURL(endpoint)

	provider := &gophercloud.ProviderClient{}
	if transport != nil {
		provider.HTTPClient = http.Client{Transport: transport}
	}
	provider.SetToken(token)

	return &Session{
		Token:    token,
		Endpoint: endpoint,
		Network: &gophercloud.ServiceClient{
			ProviderClient: provider,
			Endpoint:       endpoint,
			ResourceBase:   endpoint + "v2.0/",
			Type:           "network",
		},
	}
}

func (o AuthOptions) gophercloud() gophercloud.AuthOptions {
	ao := gophercloud.AuthOptions{
		IdentityEndpoint:            o.AuthURL,
		Username:                    o.Username,
		UserID:                      o.UserID,
		Password:                    o.Password,
		DomainName:                  o.UserDomainName,
		DomainID:                    o.UserDomainID,
		ApplicationCredentialID:     o.ApplicationCredentialID,
		ApplicationCredentialName:   o.ApplicationCredentialName,
		ApplicationCredentialSecret: o.ApplicationCredentialSecret,
	}
	if o.ApplicationCredentialID == "" && o.ApplicationCredentialName == "" &&
		(o.ProjectID != "" || o.ProjectName != "") {
		ao.Scope = &gophercloud.AuthScope{
			ProjectID:   o.ProjectID,
			ProjectName: o.ProjectName,
			DomainID:    o.ProjectDomainID,
			DomainName:  o.ProjectDomainName,
		}
	}
	return ao
}

func availability(iface string) gophercloud.Availability {
	switch strings.ToLower(strings.TrimSuffix(iface, "URL")) {
	case "internal":
		return gophercloud.AvailabilityInternal
	case "admin":
		return gophercloud.AvailabilityAdmin
	default:
		return gophercloud.AvailabilityPublic
	}
}
