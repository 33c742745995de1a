package resources

import (
	"net/url"
	"slices"
	"strconv"

	"github.com/marmos91/neutronctl/internal/logger"
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/marmos91/neutronctl/pkg/neutron/command"
	"github.com/spf13/cobra"
)

// ruleGroupColumns maps rule fields holding security group IDs to the
// columns that show the group names instead.
var ruleGroupColumns = map[string]string{
	"security_group_id": "security_group",
	"remote_group_id":   "remote_group",
}

func securityGroupRule() resource {
	return resource{
		descriptor: neutron.Descriptor{
			Name: "security_group_rule",
			ListColumns: []string{
				"id", "security_group_id", "direction", "protocol", "remote_ip_prefix", "remote_group_id",
			},
			Pagination: true,
			Sorting:    true,
		},
		title:    "Security Group Rule",
		commands: securityGroupRuleCommands,
	}
}

func securityGroupRuleCommands(env *command.Env) []*cobra.Command {
	list := command.NewList(env, command.ListSpec{
		Name:     "security-group-rule-list",
		Resource: "security_group_rule",
		Short:    "List security group rules that belong to a given tenant",
		Flags: func(cmd *cobra.Command) {
			cmd.Flags().Bool("no-nameconv", false, "Do not convert security group ID to its name")
		},
		Fields:  ruleFields,
		Extend:  nameSecurityGroups,
		Columns: ruleColumns,
	})

	return []*cobra.Command{
		list,
		showCmd(env, "security-group-rule", "security_group_rule"),
		command.NewCreate(env, command.MutateSpec{
			Name:     "security-group-rule-create",
			Resource: "security_group_rule",
			Short:    "Create a security group rule",
			Example:  "  neutronctl security-group-rule-create --protocol tcp --port-range-min 22 --port-range-max 22 default",
			Table: &command.Table{
				Positionals: []command.Positional{
					{Name: "SECURITY_GROUP", Field: "security_group_id", Resolve: "security_group"},
				},
				Options: []command.Option{
					{Flag: "direction", Field: "direction", Default: "ingress", Choices: []string{"ingress", "egress"}, Usage: "Direction of traffic"},
					{Flag: "ethertype", Field: "ethertype", Default: "IPv4", Usage: "IPv4/IPv6"},
					{Flag: "protocol", Field: "protocol", Usage: "Protocol of packet"},
					{Flag: "port-range-min", Field: "port_range_min", Usage: "Starting port range"},
					{Flag: "port-range-max", Field: "port_range_max", Usage: "Ending port range"},
					{Flag: "remote-ip-prefix", Field: "remote_ip_prefix", Usage: "CIDR to match on"},
					{Flag: "remote-group-id", Field: "remote_group_id", Resolve: "security_group", Usage: "Remote security group name or ID to apply rule"},
				},
			},
		}),
		command.NewDelete(env, command.DeleteSpec{
			Name:     "security-group-rule-delete",
			Resource: "security_group_rule",
			Short:    "Delete a given security group rule",
		}),
	}
}

func nameConversion(in *command.Invocation) bool {
	off, _ := in.Flags().GetBool("no-nameconv")
	return !off
}

// ruleFields asks the server for the ID fields behind name columns.
func ruleFields(in *command.Invocation, fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f
		for idKey, nameKey := range ruleGroupColumns {
			if f == nameKey {
				out[i] = idKey
			}
		}
	}
	return out
}

// ruleColumns shows name columns in place of ID columns, or the reverse
// when name conversion is off.
func ruleColumns(in *command.Invocation, columns []string) []string {
	convert := nameConversion(in)
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c
		for idKey, nameKey := range ruleGroupColumns {
			switch {
			case convert && c == idKey:
				out[i] = nameKey
			case !convert && c == nameKey:
				out[i] = idKey
			}
		}
	}
	return out
}

// nameSecurityGroups looks up the names of every security group the rules
// reference with one list call and stores them under the name columns.
// Groups without a name keep their ID.
func nameSecurityGroups(in *command.Invocation, rules []map[string]any) error {
	if !nameConversion(in) || len(rules) == 0 {
		return nil
	}

	var ids []string
	for _, rule := range rules {
		for idKey := range ruleGroupColumns {
			if id, ok := rule[idKey].(string); ok && id != "" && !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}

	names := make(map[string]string)
	if len(ids) > 0 {
		slices.Sort(ids)
		query := url.Values{"fields": {"id", "name"}, "id": ids}
		if in.Changed("page-size") {
			size, _ := in.Flags().GetInt("page-size")
			query.Set("limit", strconv.Itoa(size))
		}

		client, err := in.Client()
		if err != nil {
			return err
		}
		api, err := in.API("security_group")
		if err != nil {
			return err
		}
		groups, err := client.List(in.Ctx, api.CollectionPath(), api.PluralName(), query)
		if err != nil {
			return err
		}
		for _, g := range groups {
			id, _ := g["id"].(string)
			if name, _ := g["name"].(string); id != "" && name != "" {
				names[id] = name
			}
		}
		in.Logger().DebugContext(in.Ctx, "resolved security group names",
			logger.KeyCount, len(names))
	}

	for _, rule := range rules {
		for idKey, nameKey := range ruleGroupColumns {
			v, ok := rule[idKey]
			if !ok {
				continue
			}
			if id, ok := v.(string); ok && names[id] != "" {
				v = names[id]
			}
			rule[nameKey] = v
			delete(rule, idKey)
		}
	}
	return nil
}
