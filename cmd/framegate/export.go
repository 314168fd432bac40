package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/framegate/jsonschema"
	"github.com/reoring/framegate/yamlschema"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a YAML schema as a JSON Schema document",
	Long:  `Compiles the schema document and prints the JSON Schema describing one record of the table. Index levels, uniqueness and custom checks have no JSON Schema equivalent and are omitted.`,
	Run: func(cmd *cobra.Command, args []string) {
		schemaPath, _ := cmd.Flags().GetString("schema")
		schema, err := yamlschema.ParseFile(schemaPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "framegate: %v\n", err)
			os.Exit(2)
		}
		data, err := jsonschema.Export(schema).JSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "framegate: %v\n", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("schema", "schema.yaml", "Path to the YAML schema document")
	_ = exportCmd.MarkFlagRequired("schema")
}
