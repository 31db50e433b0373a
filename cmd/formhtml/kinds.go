package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formhtml/pkg/formdef"
	"github.com/goliatone/go-formhtml/pkg/fragment"
)

func kindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List field kinds and fragment templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Field kinds:")
			fmt.Fprintf(out, "  %s\n", strings.Join(formdef.Kinds(), ", "))

			fmt.Fprintln(out, "Fragment templates:")
			reg := fragment.DefaultRegistry()
			for _, kind := range reg.Kinds() {
				descriptor, _ := reg.Descriptor(kind)
				fmt.Fprintf(out, "  %-10s %s\n", kind, descriptor.Template)
			}
			return nil
		},
	}
}
