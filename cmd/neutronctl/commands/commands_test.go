package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/marmos91/neutronctl/cmd/neutronctl/cmdutil"
	"github.com/marmos91/neutronctl/cmd/neutronctl/commands"
	"github.com/marmos91/neutronctl/internal/cli/credentials"
	"github.com/marmos91/neutronctl/internal/neutrontest"
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/marmos91/neutronctl/pkg/neutron/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const networkID = "6b2c3a1e-8d7f-4c2a-9e51-0f4d3b2a1c10"

// osVars are cleared so the developer's own cloud never leaks into a test.
var osVars = []string{
	"OS_AUTH_URL", "OS_REGION_NAME", "OS_INTERFACE", "OS_ENDPOINT_TYPE",
	"OS_USERNAME", "OS_USER_ID", "OS_USER_DOMAIN_NAME", "OS_DOMAIN_NAME", "OS_USER_DOMAIN_ID", "OS_DOMAIN_ID",
	"OS_PASSWORD", "OS_PROJECT_NAME", "OS_TENANT_NAME", "OS_PROJECT_ID", "OS_TENANT_ID",
	"OS_PROJECT_DOMAIN_NAME", "OS_PROJECT_DOMAIN_ID",
	"OS_APPLICATION_CREDENTIAL_ID", "OS_APPLICATION_CREDENTIAL_NAME", "OS_APPLICATION_CREDENTIAL_SECRET",
	"OS_TOKEN", "OS_AUTH_TOKEN", "OS_URL", "OS_NETWORK_ENDPOINT", "OS_INSECURE",
}

type cli struct {
	home   string
	server *neutrontest.Server
	stdin  io.Reader
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	for _, name := range osVars {
		t.Setenv(name, "")
	}
	return &cli{home: home, server: neutrontest.New(t, resources.NewRegistry())}
}

// run executes neutronctl with args on a fresh command tree.
func (c *cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rt := cmdutil.NewRuntime("test")
	root := commands.NewRootCmd(rt)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if c.stdin != nil {
		root.SetIn(c.stdin)
	}

	err := root.ExecuteContext(context.Background())
	require.NoError(t, rt.Finish(context.Background(), err))
	return out.String(), err
}

// token returns the flags that bypass Keystone.
func (c *cli) token() []string {
	return []string{"--os-token", "tok", "--os-url", c.server.URL}
}

func (c *cli) store(t *testing.T) *credentials.Store {
	t.Helper()
	store, err := credentials.NewStoreAt(filepath.Join(c.home, "neutronctl", "credentials.json"))
	require.NoError(t, err)
	return store
}

func (c *cli) writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(c.home, "neutronctl", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestVersion(t *testing.T) {
	c := newCLI(t)

	out, err := c.run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, commands.Version+"\n", out)

	out, err = c.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "neutronctl "+commands.Version)
	assert.Contains(t, out, "Go version:")
}

func TestCompletion(t *testing.T) {
	c := newCLI(t)

	out, err := c.run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "neutronctl")

	_, err = c.run(t, "completion", "tcsh")
	require.Error(t, err)
}

func TestTokenFlags(t *testing.T) {
	c := newCLI(t)
	c.server.Seed("networks", map[string]any{"id": networkID, "name": "private"})

	out, err := c.run(t, append(c.token(), "net-list", "-f", "json")...)
	require.NoError(t, err)

	var nets []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &nets))
	require.Len(t, nets, 1)
	assert.Equal(t, "private", nets[0]["name"])

	reqs := c.server.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "tok", reqs[0].Token)
	assert.Equal(t, "networks", reqs[0].Path)
}

func TestTokenFromEnvironment(t *testing.T) {
	c := newCLI(t)
	t.Setenv("OS_TOKEN", "env-token")
	t.Setenv("OS_URL", c.server.URL)

	_, err := c.run(t, "net-list")
	require.NoError(t, err)

	reqs := c.server.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "env-token", reqs[0].Token)
}

func TestUnderscoreFlags(t *testing.T) {
	c := newCLI(t)
	c.server.Seed("networks", map[string]any{"id": networkID, "name": "private"})

	out, err := c.run(t, "--os_token", "tok", "--os_url", c.server.URL, "net-update", networkID, "--admin_state_up", "False")
	require.NoError(t, err)
	assert.Equal(t, "Updated network: "+networkID+"\n", out)

	reqs := c.server.Requests()
	require.NotEmpty(t, reqs)
	last := reqs[len(reqs)-1]
	assert.Equal(t, "PUT", last.Method)
	assert.Equal(t, map[string]any{"network": map[string]any{"admin_state_up": false}}, last.Body)
}

func TestExitCodes(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(t, append(c.token(), "net-list", "--no-such-flag")...)
	require.Error(t, err)
	assert.Equal(t, neutron.ExitArgument, neutron.ExitCode(err))

	_, err = c.run(t, "no-such-command")
	require.Error(t, err)
	assert.Equal(t, neutron.ExitArgument, neutron.ExitCode(err))

	_, err = c.run(t, append(c.token(), "net-update", networkID)...)
	require.Error(t, err)
	assert.Equal(t, neutron.ExitFailure, neutron.ExitCode(err))

	_, err = c.run(t, append(c.token(), "net-show", "missing")...)
	require.Error(t, err)
	assert.True(t, neutron.IsNotFound(err))
	assert.Equal(t, neutron.ExitFailure, neutron.ExitCode(err))
}

func TestMissingCredentials(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(t, "net-list")
	require.Error(t, err)
	assert.ErrorIs(t, err, credentials.ErrNotLoggedIn)
	assert.Empty(t, c.server.Requests())

	_, err = c.run(t, "net-list", "--os-token", "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cloud.token requires cloud.endpoint")

	_, err = c.run(t, append(c.token(), "--context", "nope", "net-list")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context 'nope' not found")
}

func TestInvalidFormat(t *testing.T) {
	c := newCLI(t)
	c.server.Seed("networks", map[string]any{"id": networkID, "name": "private"})

	_, err := c.run(t, append(c.token(), "net-list", "-f", "xml")...)
	require.Error(t, err)
	assert.Equal(t, neutron.ExitArgument, neutron.ExitCode(err))
}

func TestConfigFileSettings(t *testing.T) {
	c := newCLI(t)
	c.server.Seed("networks",
		map[string]any{"name": "a"},
		map[string]any{"name": "b"},
		map[string]any{"name": "c"},
	)
	textfile := filepath.Join(c.home, "neutronctl.prom")
	c.writeConfig(t, "output:\n  format: json\n  page_size: 2\nmetrics:\n  textfile: "+textfile+"\n")

	out, err := c.run(t, append(c.token(), "net-list")...)
	require.NoError(t, err)

	var nets []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &nets))
	assert.Len(t, nets, 3)

	reqs := c.server.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "2", reqs[0].Query.Get("limit"))

	data, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "neutronctl_api_requests_total")
	assert.Contains(t, string(data), "neutronctl_list_page_items")
}

func TestLoginAndReuseToken(t *testing.T) {
	c := newCLI(t)
	ks := neutrontest.NewKeystone(t, c.server.URL)
	c.server.Seed("networks", map[string]any{"id": networkID, "name": "private"})

	c.stdin = strings.NewReader("secret\n")
	out, err := c.run(t, "login",
		"--auth-url", ks.AuthURL(),
		"--username", "demo",
		"--project-name", "demo",
		"--password-stdin")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in successfully as demo")
	assert.Contains(t, out, "Context: default")
	require.Len(t, ks.Requests(), 1)

	ctx, err := c.store(t).GetContext("default")
	require.NoError(t, err)
	assert.Equal(t, ks.AuthURL(), ctx.AuthURL)
	assert.Equal(t, ks.Token, ctx.Token)
	assert.Equal(t, c.server.URL+"/", ctx.Endpoint)
	assert.WithinDuration(t, ks.ExpiresAt, ctx.ExpiresAt, time.Second)
	assert.True(t, ctx.HasValidToken())

	_, err = c.run(t, "net-list")
	require.NoError(t, err)
	assert.Len(t, ks.Requests(), 1, "stored token is reused")
	reqs := c.server.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, ks.Token, reqs[0].Token)

	out, err = c.run(t, "logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out from context: default\n", out)

	_, err = c.run(t, "net-list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session for context 'default' expired")
}

func TestLoginWithPasswordFromEnvironment(t *testing.T) {
	c := newCLI(t)
	ks := neutrontest.NewKeystone(t, c.server.URL)
	t.Setenv("OS_AUTH_URL", ks.AuthURL())
	t.Setenv("OS_USERNAME", "demo")
	t.Setenv("OS_PROJECT_NAME", "demo")
	t.Setenv("OS_PASSWORD", "secret")

	out, err := c.run(t, "--context", "lab", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Context: lab")
	assert.Equal(t, "lab", c.store(t).GetCurrentContextName())

	auth := ks.Requests()[0]["auth"].(map[string]any)
	project := auth["scope"].(map[string]any)["project"].(map[string]any)
	assert.Equal(t, "demo", project["name"])
	assert.Equal(t, map[string]any{"name": "Default"}, project["domain"])
}

func TestPasswordAuthWithoutLogin(t *testing.T) {
	c := newCLI(t)
	ks := neutrontest.NewKeystone(t, c.server.URL)

	_, err := c.run(t, "net-list",
		"--os-auth-url", ks.AuthURL(),
		"--os-username", "demo",
		"--os-password", "secret",
		"--os-project-name", "demo")
	require.NoError(t, err)
	assert.Len(t, ks.Requests(), 1)
	assert.Equal(t, ks.Token, c.server.Requests()[0].Token)
	assert.Empty(t, c.store(t).ListContexts(), "nothing is stored without login")
}

func TestLoginRejected(t *testing.T) {
	c := newCLI(t)
	ks := neutrontest.NewKeystone(t, c.server.URL)

	c.stdin = strings.NewReader("wrong\n")
	_, err := c.run(t, "login", "--auth-url", ks.AuthURL(), "-u", "demo", "--password-stdin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login failed")
	assert.Equal(t, neutron.ExitFailure, neutron.ExitCode(err))
	assert.Empty(t, c.store(t).ListContexts())
}

func TestLoginRequiresAuthURL(t *testing.T) {
	c := newCLI(t)
	c.stdin = strings.NewReader("secret\n")

	_, err := c.run(t, "login", "-u", "demo", "--password-stdin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no auth URL specified")
}

func TestLoginWithoutTerminalNeedsPassword(t *testing.T) {
	c := newCLI(t)
	ks := neutrontest.NewKeystone(t, c.server.URL)

	_, err := c.run(t, "login", "--auth-url", ks.AuthURL(), "-u", "demo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--password-stdin")
	assert.Empty(t, ks.Requests())
}
