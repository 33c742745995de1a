package cmdutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/marmos91/neutronctl/internal/cli/credentials"
	"github.com/marmos91/neutronctl/pkg/apiclient"
	"github.com/marmos91/neutronctl/pkg/neutron"
)

// Connect implements command.Env.Connect.
func (r *Runtime) Connect(ctx context.Context) (neutron.Client, error) {
	return r.GetNetworkClient(ctx)
}

// GetNetworkClient returns a client for the network service.
//
// A token given with --os-token is used as is. Otherwise a non-expired
// token from the credential context is reused, then a token from the
// configuration, and finally Keystone is asked for a new one with the
// password or application credential.
func (r *Runtime) GetNetworkClient(ctx context.Context) (*apiclient.Client, error) {
	if r.Config == nil {
		return nil, errors.New("configuration not loaded")
	}
	if r.Flags.Context != "" && r.context == nil {
		return nil, fmt.Errorf("context '%s' not found", r.Flags.Context)
	}

	session, err := r.session(ctx)
	if err != nil {
		return nil, err
	}
	if timeout := r.Config.Cloud.Timeout; timeout > 0 {
		session.Network.HTTPClient.Timeout = timeout
	}

	r.Logger.DebugContext(ctx, "using network endpoint", "endpoint", session.Endpoint)

	opts := []apiclient.Option{apiclient.WithLogger(r.Logger)}
	if r.Metrics != nil {
		opts = append(opts, apiclient.WithMetrics(r.Metrics))
	}
	return apiclient.New(session.Network, opts...), nil
}

func (r *Runtime) session(ctx context.Context) (*apiclient.Session, error) {
	cloud := r.Config.Cloud
	transport := apiclient.NewTransport(cloud.Insecure)

	switch {
	case r.Flags.Token != "":
		return apiclient.NewTokenSession(cloud.Endpoint, cloud.Token, transport), nil
	case r.context != nil && r.context.HasValidToken():
		endpoint := r.context.Endpoint
		if r.Flags.URL != "" {
			endpoint = r.Flags.URL
		}
		r.Logger.DebugContext(ctx, "reusing context token", "context", r.contextName)
		return apiclient.NewTokenSession(endpoint, r.context.Token, transport), nil
	case cloud.Token != "":
		return apiclient.NewTokenSession(cloud.Endpoint, cloud.Token, transport), nil
	}

	if cloud.Password == "" && cloud.ApplicationCredentialSecret == "" {
		if r.context != nil {
			return nil, fmt.Errorf("session for context '%s' expired: run 'neutronctl login' or set OS_PASSWORD", r.contextName)
		}
		return nil, fmt.Errorf("%w (or set OS_PASSWORD)", credentials.ErrNotLoggedIn)
	}

	session, err := apiclient.Authenticate(ctx, cloud.AuthOptions(), transport)
	if err != nil {
		return nil, err
	}
	if cloud.Endpoint != "" {
		return apiclient.NewTokenSession(cloud.Endpoint, session.Token, transport), nil
	}
	return session, nil
}
