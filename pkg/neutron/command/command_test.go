package command_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/marmos91/neutronctl/internal/cli/output"
	"github.com/marmos91/neutronctl/internal/neutrontest"
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/marmos91/neutronctl/pkg/neutron/command"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	env      *command.Env
	server   *neutrontest.Server
	connects int
	format   output.Format
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	reg := neutron.NewRegistry()
	reg.MustRegister(&neutron.Descriptor{
		Name: "network", ListColumns: []string{"id", "name", "subnets"},
		Pagination: true, Sorting: true, AllowNames: true,
	})
	reg.MustRegister(&neutron.Descriptor{
		Name: "subnet", ListColumns: []string{"id", "name", "cidr"},
		Pagination: true, Sorting: true, AllowNames: true,
	})
	reg.MustRegister(&neutron.Descriptor{
		Name: "floatingip", ListColumns: []string{"id", "floating_ip_address"},
	})

	f := &fixture{format: output.FormatTable}
	f.server = neutrontest.New(t, reg)
	f.env = &command.Env{
		Registry: reg,
		Connect: func(context.Context) (neutron.Client, error) {
			f.connects++
			return f.server.Client(), nil
		},
		Format: func() (output.Format, error) { return f.format, nil },
	}
	return f
}

func (f *fixture) run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "neutronctl", SilenceErrors: true, SilenceUsage: true}
	root.AddCommand(cmd)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{cmd.Name()}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func networkCreate(env *command.Env) *cobra.Command {
	return command.NewCreate(env, command.MutateSpec{
		Name:     "net-create",
		Resource: "network",
		Table: &command.Table{
			Positionals: []command.Positional{{Name: "NAME", Field: "name"}},
			Defaults:    map[string]any{"admin_state_up": true},
			Options: []command.Option{
				{Flag: "admin-state-down", Kind: command.Bool, Field: "admin_state_up", Value: false},
				{Flag: "shared", Kind: command.Bool, Field: "shared"},
				{Flag: "provider-network-type", Field: "provider:network_type", Choices: []string{"flat", "vlan", "vxlan"}},
				{Flag: "port-security", Kind: command.BoolString, Field: "port_security_enabled"},
				{Flag: "qos-policy", Field: "qos_policy_id", Required: false},
			},
		},
	})
}

func networkUpdate(env *command.Env) *cobra.Command {
	return command.NewUpdate(env, command.MutateSpec{
		Name:     "net-update",
		Resource: "network",
		Table: &command.Table{
			Options: []command.Option{
				{Flag: "name", Field: "name"},
				{Flag: "admin-state-up", Kind: command.BoolString, Field: "admin_state_up"},
			},
		},
	})
}

func networkList(env *command.Env) *cobra.Command {
	return command.NewList(env, command.ListSpec{Name: "net-list", Resource: "network"})
}

func seedNetworks(s *neutrontest.Server, n int) []string {
	ids := make([]string, n)
	items := make([]map[string]any, n)
	for i := range items {
		ids[i] = fmt.Sprintf("00000000-0000-4000-8000-%012d", i)
		items[i] = map[string]any{"id": ids[i], "name": fmt.Sprintf("net-%04d", i)}
	}
	s.Seed("networks", items...)
	return ids
}

func TestListPagination(t *testing.T) {
	f := newFixture(t)
	ids := seedNetworks(f.server, 2400)
	f.format = output.FormatValue

	out, err := f.run(t, networkList(f.env), "-P", "1000", "-c", "id")
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
	require.Len(t, lines, 2400)
	assert.Equal(t, ids[0], string(lines[0]))
	assert.Equal(t, ids[2399], string(lines[2399]))

	reqs := f.server.Requests()
	require.Len(t, reqs, 3)
	markers := []string{"", ids[999], ids[1999]}
	for i, r := range reqs {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "networks", r.Path)
		assert.Equal(t, "1000", r.Query.Get("limit"))
		assert.Equal(t, markers[i], r.Query.Get("marker"))
	}
}

func TestListExactMultipleOfPageSize(t *testing.T) {
	f := newFixture(t)
	seedNetworks(f.server, 4)
	f.format = output.FormatValue

	out, err := f.run(t, networkList(f.env), "--page-size", "2", "-c", "name")
	require.NoError(t, err)
	assert.Equal(t, "net-0000\nnet-0001\nnet-0002\nnet-0003\n", out)

	// two full pages and a final empty one
	assert.Len(t, f.server.Requests(), 3)
}

func TestListWithoutPageSizeIsOneRequest(t *testing.T) {
	f := newFixture(t)
	seedNetworks(f.server, 5)

	_, err := f.run(t, networkList(f.env))
	require.NoError(t, err)

	reqs := f.server.Requests()
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].Query.Get("limit"))
}

func TestListStopsWhenServerIgnoresLimit(t *testing.T) {
	f := newFixture(t)
	f.format = output.FormatValue
	f.env.PageSize = 2
	f.server.Handle("GET", "networks", func(w http.ResponseWriter, r *http.Request) {
		neutrontest.WriteJSON(w, http.StatusOK, map[string]any{"networks": []any{
			map[string]any{"id": "a"}, map[string]any{"id": "b"}, map[string]any{"id": "c"},
		}})
	})

	out, err := f.run(t, networkList(f.env), "-c", "id")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", out)

	reqs := f.server.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "2", reqs[0].Query.Get("limit"))
}

func TestListConfiguredPageSizeNeedsPagination(t *testing.T) {
	f := newFixture(t)
	f.format = output.FormatValue
	f.env.PageSize = 2
	f.server.Seed("floatingips",
		map[string]any{"id": "a"}, map[string]any{"id": "b"}, map[string]any{"id": "c"})

	cmd := command.NewList(f.env, command.ListSpec{Name: "floatingip-list", Resource: "floatingip"})
	assert.Nil(t, cmd.Flags().Lookup("page-size"))
	assert.Nil(t, cmd.Flags().Lookup("sort-key"))

	out, err := f.run(t, cmd, "-c", "id")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", out)

	reqs := f.server.Requests()
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].Query.Get("limit"))
	assert.Empty(t, reqs[0].Query.Get("marker"))
}

func TestListConfiguredPageSize(t *testing.T) {
	f := newFixture(t)
	seedNetworks(f.server, 3)
	f.env.PageSize = 2

	_, err := f.run(t, networkList(f.env))
	require.NoError(t, err)

	reqs := f.server.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "2", reqs[0].Query.Get("limit"))
	assert.NotEmpty(t, reqs[1].Query.Get("marker"))
}

func TestListSortValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"CountMismatch", []string{"--sort-key", "name", "--sort-key", "id", "--sort-dir", "asc"}},
		{"MoreDirsThanKeys", []string{"--sort-dir", "asc"}},
		{"BadDirection", []string{"--sort-key", "name", "--sort-dir", "up"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.run(t, networkList(f.env), tt.args...)
			require.Error(t, err)
			assert.True(t, neutron.IsInvalidArgument(err), "got %v", err)
			assert.Equal(t, neutron.ExitArgument, neutron.ExitCode(err))
			assert.Empty(t, f.server.Requests())
			assert.Zero(t, f.connects)
		})
	}
}

func TestListSortAndFieldsForwarded(t *testing.T) {
	f := newFixture(t)
	seedNetworks(f.server, 1)

	_, err := f.run(t, networkList(f.env),
		"--sort-key", "name", "--sort-dir", "desc", "--sort-key", "id", "--sort-dir", "asc",
		"-F", "id", "-F", "name", "--tenant-id", "t1", "--", "--router:external", "type=bool", "true")
	require.NoError(t, err)

	q := f.server.Requests()[0].Query
	assert.Equal(t, []string{"name", "id"}, q["sort_key"])
	assert.Equal(t, []string{"desc", "asc"}, q["sort_dir"])
	assert.Equal(t, []string{"id", "name"}, q["fields"])
	assert.Equal(t, "t1", q.Get("tenant_id"))
	assert.Equal(t, "true", q.Get("router:external"))
}

func TestListPagedFieldsIncludeID(t *testing.T) {
	f := newFixture(t)
	seedNetworks(f.server, 3)
	f.format = output.FormatValue

	out, err := f.run(t, networkList(f.env), "-P", "2", "-F", "name")
	require.NoError(t, err)
	assert.Equal(t, "net-0000\nnet-0001\nnet-0002\n", out)

	reqs := f.server.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, []string{"name", "id"}, reqs[0].Query["fields"])
}

func TestListColumns(t *testing.T) {
	f := newFixture(t)
	f.server.Seed("networks", map[string]any{"id": "n1", "name": "private", "subnets": []any{"s1"}, "mtu": float64(1450)})
	f.format = output.FormatJSON

	t.Run("Default", func(t *testing.T) {
		out, err := f.run(t, networkList(f.env))
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"n1","name":"private","subnets":["s1"]}]`, out)
	})

	t.Run("ShowDetails", func(t *testing.T) {
		f.server.Reset()
		out, err := f.run(t, networkList(f.env), "-D")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"n1","name":"private","subnets":["s1"],"mtu":1450}]`, out)
		assert.Equal(t, "True", f.server.Requests()[0].Query.Get("verbose"))
	})

	t.Run("Column", func(t *testing.T) {
		out, err := f.run(t, networkList(f.env), "-c", "mtu")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"mtu":1450}]`, out)
	})
}

func TestListTableOutput(t *testing.T) {
	f := newFixture(t)
	f.server.Seed("networks", map[string]any{"id": "n1", "name": "private", "subnets": []any{}})

	out, err := f.run(t, networkList(f.env))
	require.NoError(t, err)
	assert.Contains(t, out, "id")
	assert.Contains(t, out, "subnets")
	assert.Contains(t, out, "private")
}

func TestListExtendAndColumns(t *testing.T) {
	f := newFixture(t)
	f.server.Seed("networks", map[string]any{"id": "n1", "name": "private"})
	f.format = output.FormatJSON

	cmd := command.NewList(f.env, command.ListSpec{
		Name:     "net-list",
		Resource: "network",
		Flags:    func(cmd *cobra.Command) { cmd.Flags().Bool("upper", false, "") },
		Extend: func(in *command.Invocation, items []map[string]any) error {
			for _, item := range items {
				item["label"] = "net:" + item["name"].(string)
			}
			return nil
		},
		Columns: func(in *command.Invocation, cols []string) []string {
			return []string{"id", "label"}
		},
	})

	out, err := f.run(t, cmd, "--upper")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"n1","label":"net:private"}]`, out)
}

func TestShowByName(t *testing.T) {
	f := newFixture(t)
	f.server.Seed("networks", map[string]any{"id": "n1", "name": "private", "status": "ACTIVE"})
	f.format = output.FormatJSON

	cmd := command.NewShow(f.env, command.ShowSpec{Name: "net-show", Resource: "network"})
	out, err := f.run(t, cmd, "private", "-F", "status")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ACTIVE"}`, out)

	reqs := f.server.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "private", reqs[0].Query.Get("name"))
	assert.Equal(t, "id", reqs[0].Query.Get("fields"))
	assert.Equal(t, "networks/n1", reqs[1].Path)
	assert.Equal(t, []string{"status"}, reqs[1].Query["fields"])
}

func TestShowByIDSkipsLookup(t *testing.T) {
	f := newFixture(t)
	id := "11111111-2222-4333-8444-555555555555"
	f.server.Seed("networks", map[string]any{"id": id, "name": "n"})

	cmd := command.NewShow(f.env, command.ShowSpec{Name: "net-show", Resource: "network"})
	out, err := f.run(t, cmd, id)
	require.NoError(t, err)
	assert.Contains(t, out, "Field")
	assert.Contains(t, out, id)

	reqs := f.server.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "networks/"+id, reqs[0].Path)
}

func TestShowAmbiguousName(t *testing.T) {
	f := newFixture(t)
	f.server.Seed("networks",
		map[string]any{"id": "id-a", "name": "foo"},
		map[string]any{"id": "id-b", "name": "foo"},
	)

	cmd := command.NewShow(f.env, command.ShowSpec{Name: "net-show", Resource: "network"})
	_, err := f.run(t, cmd, "foo")
	require.Error(t, err)
	assert.True(t, neutron.IsAmbiguous(err))
	assert.Contains(t, err.Error(), "id-a, id-b")
	assert.Equal(t, neutron.ExitFailure, neutron.ExitCode(err))
}

func TestShowIDOnlyResourceSendsIdentifierVerbatim(t *testing.T) {
	f := newFixture(t)
	f.server.Seed("floatingips", map[string]any{"id": "fip-1", "floating_ip_address": "172.24.4.3"})

	cmd := command.NewShow(f.env, command.ShowSpec{Name: "floatingip-show", Resource: "floatingip"})
	_, err := f.run(t, cmd, "fip-1")
	require.NoError(t, err)

	reqs := f.server.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "floatingips/fip-1", reqs[0].Path)
}

func TestShowNotFound(t *testing.T) {
	f := newFixture(t)

	cmd := command.NewShow(f.env, command.ShowSpec{Name: "net-show", Resource: "network"})
	_, err := f.run(t, cmd, "ghost")
	require.Error(t, err)
	assert.Equal(t, "Unable to find network with name 'ghost'", err.Error())
}

func TestCreateMandatoryOnly(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, networkCreate(f.env), "net1")
	require.NoError(t, err)
	assert.Contains(t, out, "Created a new network:")

	reqs := f.server.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "POST", reqs[0].Method)
	assert.Equal(t, map[string]any{
		"network": map[string]any{"name": "net1", "admin_state_up": true},
	}, reqs[0].Body)
}

func TestCreateOptions(t *testing.T) {
	f := newFixture(t)
	f.format = output.FormatJSON

	out, err := f.run(t, networkCreate(f.env), "net1",
		"--admin-state-down", "--shared", "--provider-network-type", "vlan",
		"--port-security", "False", "--tenant-id", "t1",
		"--", "--mtu", "type=int", "1400")
	require.NoError(t, err)

	body := f.server.Requests()[0].Body["network"].(map[string]any)
	assert.Equal(t, map[string]any{
		"name":                  "net1",
		"admin_state_up":        false,
		"shared":                true,
		"provider:network_type": "vlan",
		"port_security_enabled": false,
		"tenant_id":             "t1",
		"mtu":                   float64(1400),
	}, body)

	var created map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, "net1", created["name"])
	assert.NotEmpty(t, created["id"])
}

func TestCreateArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"BadChoice", []string{"net1", "--provider-network-type", "gre"}},
		{"BadBoolString", []string{"net1", "--port-security", "yes"}},
		{"MissingPositional", nil},
		{"TooManyPositionals", []string{"a", "b"}},
		{"BadExtraArgs", []string{"net1", "--", "orphan"}},
		{"UnknownFlag", []string{"net1", "--nope"}},
		{"RequestFormat", []string{"net1", "--request-format", "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.run(t, networkCreate(f.env), tt.args...)
			require.Error(t, err)
			assert.Equal(t, neutron.ExitArgument, neutron.ExitCode(err), "got %v", err)
			assert.Empty(t, f.server.Requests())
		})
	}
}

func TestCreateRequiredFlag(t *testing.T) {
	f := newFixture(t)
	cmd := command.NewCreate(f.env, command.MutateSpec{
		Name:     "subnet-create",
		Resource: "subnet",
		Table: &command.Table{
			Positionals: []command.Positional{
				{Name: "NETWORK", Field: "network_id", Resolve: "network"},
				{Name: "CIDR", Field: "cidr"},
			},
			Options: []command.Option{
				{Flag: "ip-version", Kind: command.Int, Field: "ip_version", Default: "4"},
				{Flag: "pool", Kind: command.KVArray, Field: "allocation_pools", Keys: []string{"start", "end"}},
				{Flag: "segment", Field: "segment_id", Required: true},
			},
		},
	})

	_, err := f.run(t, cmd, "net", "10.0.0.0/24")
	require.Error(t, err)
	assert.Equal(t, neutron.ExitArgument, neutron.ExitCode(err))
}

func TestCreateResolvesPositionalsAndDefaults(t *testing.T) {
	f := newFixture(t)
	f.server.Seed("networks", map[string]any{"id": "n1", "name": "private"})

	cmd := command.NewCreate(f.env, command.MutateSpec{
		Name:     "subnet-create",
		Resource: "subnet",
		Table: &command.Table{
			Positionals: []command.Positional{
				{Name: "NETWORK", Field: "network_id", Resolve: "network"},
				{Name: "CIDR", Field: "cidr"},
			},
			Options: []command.Option{
				{Flag: "ip-version", Kind: command.Int, Field: "ip_version", Default: "4"},
				{Flag: "pool", Kind: command.KVArray, Field: "allocation_pools", Keys: []string{"start", "end"}},
			},
		},
		Hook: command.BodyFunc(func(in *command.Invocation, body neutron.Fields) error {
			body.SetString("description", "from hook")
			return nil
		}),
	})

	_, err := f.run(t, cmd, "private", "10.0.0.0/24",
		"--pool", "start=10.0.0.2,end=10.0.0.9", "--pool", "start=10.0.0.20,end=10.0.0.29")
	require.NoError(t, err)

	reqs := f.server.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, map[string]any{"subnet": map[string]any{
		"network_id":  "n1",
		"cidr":        "10.0.0.0/24",
		"ip_version":  float64(4),
		"description": "from hook",
		"allocation_pools": []any{
			map[string]any{"start": "10.0.0.2", "end": "10.0.0.9"},
			map[string]any{"start": "10.0.0.20", "end": "10.0.0.29"},
		},
	}}, reqs[1].Body)

	t.Run("UnknownKey", func(t *testing.T) {
		f.server.Reset()
		_, err := f.run(t, cmd, "private", "10.0.0.0/24", "--pool", "first=10.0.0.2")
		require.Error(t, err)
		assert.True(t, neutron.IsInvalidArgument(err))
	})
}

func TestUpdateEmptyBody(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, networkUpdate(f.env), "private")
	require.Error(t, err)
	assert.True(t, neutron.IsCommandError(err))
	assert.Equal(t, "Must specify new values to update network", err.Error())
	assert.Equal(t, neutron.ExitFailure, neutron.ExitCode(err))
	assert.Zero(t, f.connects)
	assert.Empty(t, f.server.Requests())
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	f.server.Seed("networks", map[string]any{"id": "n1", "name": "private"})

	out, err := f.run(t, networkUpdate(f.env), "private", "--name", "internal", "--admin-state-up", "false",
		"--", "--tags", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "Updated network: private\n", out)

	reqs := f.server.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "PUT", reqs[1].Method)
	assert.Equal(t, "networks/n1", reqs[1].Path)
	assert.Equal(t, map[string]any{"network": map[string]any{
		"name": "internal", "admin_state_up": false, "tags": []any{"a", "b"},
	}}, reqs[1].Body)
}

func TestUpdateExtraArgsOnly(t *testing.T) {
	f := newFixture(t)
	f.server.Seed("networks", map[string]any{"id": "n1", "name": "private"})

	_, err := f.run(t, networkUpdate(f.env), "private", "--", "--description", "x")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"network": map[string]any{"description": "x"}}, f.server.Requests()[1].Body)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	f.server.Seed("networks", map[string]any{"id": "n1", "name": "private"})

	cmd := command.NewDelete(f.env, command.DeleteSpec{Name: "net-delete", Resource: "network"})
	out, err := f.run(t, cmd, "private")
	require.NoError(t, err)
	assert.Equal(t, "Deleted network: private\n", out)
	assert.Empty(t, f.server.Items("networks"))
}

func TestDeleteTransportErrorSurfaces(t *testing.T) {
	f := newFixture(t)

	cmd := command.NewDelete(f.env, command.DeleteSpec{Name: "floatingip-delete", Resource: "floatingip"})
	_, err := f.run(t, cmd, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floatingip missing could not be found")
	assert.Equal(t, neutron.ExitFailure, neutron.ExitCode(err))
}

func TestAction(t *testing.T) {
	f := newFixture(t)
	f.server.Seed("networks", map[string]any{"id": "n1", "name": "private"})

	var got []string
	cmd := command.NewAction(f.env, command.ActionSpec{
		Name:     "net-touch",
		Resource: "network",
		Args:     []string{"NETWORK", "[LABEL]"},
		Table:    &command.Table{Options: []command.Option{{Flag: "force", Kind: command.Bool}}},
		Run: func(in *command.Invocation) error {
			id, err := in.Resolve("network", in.Args[0])
			if err != nil {
				return err
			}
			got = append(got, id, fmt.Sprint(in.Changed("force")), fmt.Sprint(len(in.Args)))
			return nil
		},
	})

	_, err := f.run(t, cmd, "private", "--force")
	require.NoError(t, err)
	assert.Equal(t, []string{"n1", "true", "1"}, got)

	_, err = f.run(t, cmd)
	assert.True(t, neutron.IsInvalidArgument(err))
}
