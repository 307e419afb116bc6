package main

import (
	"context"
	"fmt"
	"os"

	"github.com/5w1tchy/course-library-api/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile   string
	configDir string
}

func (o *rootOptions) load() (config.Config, error) {
	return config.Load(o.envFile, o.configDir)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "courselibrary",
		Short:         "Course library REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Running the binary without a subcommand serves the API.
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the environment")
	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", ".", "directory searched for config.yaml")

	root.AddCommand(newServeCmd(opts), newMigrateCmd(opts), newTokenCmd(opts))
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
