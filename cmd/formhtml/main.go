// Command formhtml renders, serves, fills and imports form definitions.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "formhtml",
		Short: "Build HTML form fragments from form definitions",
		Long: `formhtml renders declarative form definitions into HTML form fragments.

Definitions are JSON or YAML files in the forms directory. Profiles carry
builder settings (post-array prefix, unique ids, include attributes) and
named option lists.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.formsDir, "forms", "forms", "directory holding form definitions")
	flags.StringVar(&opts.profilesDir, "profiles", "", "directory holding profile documents")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database for query-backed options")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		renderCmd(opts),
		serveCmd(opts),
		fillCmd(opts),
		importCmd(opts),
		lintCmd(opts),
		kindsCmd(),
	)
	return root
}
