package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formhtml/pkg/formdef"
	"github.com/goliatone/go-formhtml/pkg/openapi"
)

func importCmd(root *rootOptions) *cobra.Command {
	var (
		outDir   string
		methods  []string
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "import <openapi-document>",
		Short: "Create form definitions from an OpenAPI document",
		Long: `Import turns every operation with an object request body into a form
definition. Definitions are printed as one YAML document, or written one
file per form into --out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importer := openapi.NewImporter(
				openapi.WithMethods(methods...),
				openapi.WithValidation(validate),
				openapi.WithLogger(root.logger()),
			)
			defs, err := importer.Import(cmd.Context(), openapi.SourceFromFile(args[0]))
			if err != nil {
				return err
			}

			if outDir == "" {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(map[string][]formdef.Definition{"forms": defs}); err != nil {
					return err
				}
				return enc.Close()
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", outDir, err)
			}
			for _, def := range defs {
				data, err := yaml.Marshal(def)
				if err != nil {
					return fmt.Errorf("encode %s: %w", def.ID, err)
				}
				path := filepath.Join(outDir, def.ID+".yaml")
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "directory to write one definition file per form")
	cmd.Flags().StringSliceVar(&methods, "methods", []string{"POST", "PUT", "PATCH"}, "HTTP methods whose operations become forms")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the document before importing")
	return cmd
}
