package main

import (
	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/xzzpig/graph-gateway/internal/schema"
)

// schemaCmd prints the validated schema.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Validate and print the GraphQL schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := schema.Validate()
		if err != nil {
			return err
		}
		formatter.NewFormatter(cmd.OutOrStdout()).FormatSchema(s)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
