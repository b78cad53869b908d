package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fyrsmithlabs/socialintel/internal/content"
	"github.com/spf13/cobra"
)

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check socialintel server health",
		Long: `Check the health status of the socialintel server.

Examples:
  # Check health
  sictl health

  # Check health on a different server
  sictl health --server http://localhost:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(opts.serverURL, opts.timeout)
			if err != nil {
				return err
			}
			status, err := c.health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Server Status: %s\n", statusBadge(status))
			return nil
		},
	}
}

// view is one gated dashboard tab.
type view struct {
	name  string
	short string
	path  string
	print func(cmd *cobra.Command, c *client, path string) error
}

var (
	viewTrends = view{
		name:  "trends",
		short: "Show the trend monitor",
		path:  "/api/v1/trends",
		print: fetchAndRender(renderTrends),
	}
	viewAttraction = view{
		name:  "attraction",
		short: "Show attraction research insights",
		path:  "/api/v1/attraction",
		print: fetchAndRender(renderAttraction),
	}
	viewSkills = view{
		name:  "skills",
		short: "Show communication tips",
		path:  "/api/v1/skills",
		print: fetchAndRender(renderSkills),
	}
)

// fetchAndRender decodes the view at path into T and prints it.
func fetchAndRender[T any](render func(T) string) func(*cobra.Command, *client, string) error {
	return func(cmd *cobra.Command, c *client, path string) error {
		var v T
		if err := c.get(cmd.Context(), path, &v); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), render(v))
		return nil
	}
}

func newViewCmd(opts *rootOptions, v view) *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   v.name,
		Short: v.short,
		Long: fmt.Sprintf(`%s.

Logs in with the access code, fetches the view and logs out again.
The code comes from --code or the %s environment variable.

Examples:
  %s=... sictl %s
  sictl %s --code ... --server http://dashboard:8501`, v.short, accessCodeEnv, accessCodeEnv, v.name, v.name),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if code == "" {
				code = os.Getenv(accessCodeEnv)
			}
			if code == "" {
				return fmt.Errorf("access code required: use --code or set %s", accessCodeEnv)
			}

			c, err := newClient(opts.serverURL, opts.timeout)
			if err != nil {
				return err
			}
			if err := c.login(cmd.Context(), code); err != nil {
				return err
			}
			defer func() { _ = c.logout(cmd.Context()) }()

			return v.print(cmd, c, v.path)
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "access code (default $"+accessCodeEnv+")")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate fixture files locally",
		Long: `Load every fixture file from a content directory and report decode errors.

Examples:
  sictl validate --dir ./data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader := content.NewLoader(dir)
			out := cmd.OutOrStdout()

			var failed []error
			for _, d := range content.Datasets {
				path, err := loader.Resolve(d)
				if err == nil {
					_, err = loader.Load(cmd.Context(), d)
				}
				if err != nil {
					failed = append(failed, err)
					fmt.Fprintf(out, "%s %s: %v\n", errorStyle.Render("✗"), d, err)
					continue
				}
				fmt.Fprintf(out, "%s %s (%s)\n", okStyle.Render("✓"), d, path)
			}
			if len(failed) > 0 {
				return fmt.Errorf("%d of %d datasets invalid: %w", len(failed), len(content.Datasets), errors.Join(failed...))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "./data", "content directory")
	return cmd
}
