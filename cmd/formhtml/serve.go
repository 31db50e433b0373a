package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formhtml/pkg/fragment"
	"github.com/goliatone/go-formhtml/pkg/preview"
)

func serveCmd(root *rootOptions) *cobra.Command {
	var (
		addr       string
		userID     string
		privileged bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve form definitions for preview in a browser",
		Long: `Serve renders every definition at /forms/{id}. Posting a form echoes the
submitted values grouped by post-array prefix. Prometheus metrics are
exposed at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := root.load()
			if err != nil {
				return err
			}
			defer e.Close()

			srv, err := preview.New(e.forms,
				preview.WithProfiles(e.profiles),
				preview.WithQuerier(e.querier()),
				preview.WithLogger(e.logger),
				preview.WithActor(fragment.Actor{UserAccountID: userID, Privileged: privileged, CanAct: userID != ""}),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&userID, "user", "", "user account id verify and obsolete widgets act as")
	cmd.Flags().BoolVar(&privileged, "privileged", false, "treat the user as privileged")
	return cmd
}
