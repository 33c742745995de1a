package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/marmos91/neutronctl/pkg/config"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Generate JSON schema for configuration",
		Long: `Generate a JSON schema for the neutronctl configuration file.

The schema can be used for IDE autocompletion and validation of
config.yaml.

Examples:
  # Print schema to stdout
  neutronctl config schema

  # Save schema to file
  neutronctl config schema --file config.schema.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaJSON, err := Schema()
			if err != nil {
				return err
			}

			if file != "" {
				if err := os.WriteFile(file, schemaJSON, 0644); err != nil {
					return fmt.Errorf("failed to write schema file: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "JSON schema written to %s\n", file)
				return nil
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(schemaJSON))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Output file (default: stdout)")
	return cmd
}

// Schema returns the JSON schema of config.yaml. Property names follow the
// yaml tags, so secrets that are never written to the file are absent.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		FieldNameTag:              "yaml",
	}

	schema := reflector.Reflect(&config.Config{})
	schema.Version = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = "neutronctl Configuration"
	schema.Description = "Configuration schema for the neutronctl OpenStack networking client"

	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}
	return schemaJSON, nil
}
