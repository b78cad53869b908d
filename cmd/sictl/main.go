// Package main implements sictl, the operator CLI for the socialintel
// dashboard server.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

// version information
var version = "dev"

// accessCodeEnv is read when --code is not given.
const accessCodeEnv = "SOCIALINTEL_ACCESS_CODE"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	serverURL string
	timeout   time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "sictl",
		Short: "CLI for the socialintel dashboard server",
		Long: `sictl talks to a running socialintel server: it checks health, logs in
with the shared access code and prints the dashboard views in the terminal.
It can also validate fixture files locally before they are deployed.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&opts.serverURL, "server", "http://localhost:8501", "socialintel server URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "HTTP request timeout")

	root.AddCommand(
		newHealthCmd(opts),
		newViewCmd(opts, viewTrends),
		newViewCmd(opts, viewAttraction),
		newViewCmd(opts, viewSkills),
		newValidateCmd(),
	)
	return root
}
