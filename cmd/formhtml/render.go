package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formhtml/pkg/formdef"
)

func renderCmd(root *rootOptions) *cobra.Command {
	var (
		page    bool
		output  string
		profile string
		values  map[string]string
	)

	cmd := &cobra.Command{
		Use:   "render <form-id>",
		Short: "Render a form definition to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := root.load()
			if err != nil {
				return err
			}
			defer e.Close()

			def, err := e.forms.Lookup(args[0])
			if err != nil {
				return err
			}
			if profile == "" {
				profile = def.Profile
			}
			builder, err := e.builder(profile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			form := builder.NewForm(ctx)
			renderOpts := []formdef.RenderOption{
				formdef.WithQuerier(e.querier()),
				formdef.WithValues(values),
			}
			var html string
			if page {
				html, err = formdef.RenderPage(ctx, form, def, renderOpts...)
			} else {
				html, err = formdef.Render(ctx, form, def, renderOpts...)
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
				return err
			}
			if err := os.WriteFile(output, []byte(html+"\n"), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&page, "page", false, "wrap the fields in the form element")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&profile, "profile", "", "profile to render with (defaults to the definition's)")
	cmd.Flags().StringToStringVar(&values, "set", nil, "prefill values, as Name=value")
	return cmd
}
