package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formhtml/pkg/formdef"
	"github.com/goliatone/go-formhtml/pkg/openapi"
)

func lintCmd(root *rootOptions) *cobra.Command {
	var (
		documents []string
		custom    []string
	)

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check form definitions and OpenAPI rendering hints",
		Long: `Lint validates every definition in the forms directory: known kinds,
composite member counts, duplicate names and option sources. Option list
references are checked when --profiles is set.

Each --openapi document is checked for malformed x-formhtml hints.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := root.load()
			if err != nil {
				return err
			}
			defer e.Close()

			defs := make([]formdef.Definition, 0, len(e.forms.IDs()))
			for _, id := range e.forms.IDs() {
				def, err := e.forms.Lookup(id)
				if err != nil {
					return err
				}
				defs = append(defs, def)
			}

			opts := []formdef.ValidateOption{formdef.WithCustomKinds(custom...)}
			if root.profilesDir != "" {
				names := make([]string, 0)
				for name := range e.profiles.OptionLists() {
					names = append(names, name)
				}
				opts = append(opts, formdef.WithKnownOptionLists(names...))
			}

			problems := 0
			result := formdef.Validate(defs, opts...)
			for _, issue := range result.Issues {
				fmt.Fprintln(cmd.OutOrStdout(), issue.String())
			}
			problems += len(result.Issues)

			for _, path := range documents {
				raw, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				violations, err := openapi.Lint(cmd.Context(), raw, path)
				if err != nil {
					return err
				}
				for _, v := range violations {
					fmt.Fprintln(cmd.OutOrStdout(), v.String())
				}
				problems += len(violations)
			}

			if problems > 0 {
				return fmt.Errorf("%d problem(s) found", problems)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d form(s) ok\n", len(defs))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&documents, "openapi", nil, "OpenAPI documents whose hints to check")
	cmd.Flags().StringSliceVar(&custom, "kind", nil, "additional kinds to accept")
	return cmd
}
