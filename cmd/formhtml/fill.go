package main

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formhtml/pkg/postname"
	"github.com/goliatone/go-formhtml/pkg/prompt"
)

func fillCmd(root *rootOptions) *cobra.Command {
	var (
		format  string
		confirm bool
	)

	cmd := &cobra.Command{
		Use:   "fill <form-id>",
		Short: "Fill a form definition interactively",
		Long: `Fill asks for every editable field and prints the answers the way the
rendered form would post them: as a form-encoded body (--format form) or
grouped by post-array prefix (--format json).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains([]string{"json", "form"}, format) {
				return fmt.Errorf("unknown format %q (want json or form)", format)
			}
			e, err := root.load()
			if err != nil {
				return err
			}
			defer e.Close()

			def, err := e.forms.Lookup(args[0])
			if err != nil {
				return err
			}
			prefix := postname.Default
			if def.Profile != "" {
				p, err := e.profiles.Lookup(def.Profile)
				if err != nil {
					return err
				}
				if p.PostArray != nil {
					prefix = *p.PostArray
				}
			}

			values, err := prompt.Fill(cmd.Context(), prompt.NewSurveyDriver(), def,
				prompt.WithOptionLists(e.profiles.OptionLists()),
				prompt.WithQuerier(e.querier()),
				prompt.WithPostArray(prefix),
				prompt.WithConfirm(confirm),
			)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "form" {
				_, err = fmt.Fprintln(out, values.Encode())
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(postname.Decode(values))
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format (json or form)")
	cmd.Flags().BoolVar(&confirm, "confirm", true, "ask for confirmation before printing")
	return cmd
}
