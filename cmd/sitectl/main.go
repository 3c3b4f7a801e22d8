// Command sitectl is the operator CLI for the site service: it inspects the
// content schema, runs queries against the content store, audits singleton
// documents, mints preview tokens and mirrors image assets.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hutchinsdata/site/internal/config"
	"github.com/hutchinsdata/site/internal/sanity"
	"github.com/hutchinsdata/site/pkg/logger"
)

type globals struct {
	logLevel string
	apiURL   string
	cfg      *config.Config
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "sitectl",
		Short:         "Operate the hutchins site content pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(g.logLevel)
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			g.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	root.PersistentFlags().StringVar(&g.apiURL, "api-url", "", "override the content store API base URL")

	root.AddCommand(
		newSchemaCmd(g),
		newValidateCmd(g),
		newQueryCmd(g),
		newFetchCmd(g),
		newAuditCmd(g),
		newMirrorCmd(g),
		newPreviewTokenCmd(g),
		newRevalidateCmd(g),
		newSubmissionsCmd(g),
	)
	return root
}

// client builds a content store client from configuration. Draft reads
// need the API token, so it is always passed through.
func (g *globals) client() (*sanity.Client, error) {
	c := g.cfg.Content
	return sanity.New(sanity.Config{
		ProjectID:  c.ProjectID,
		Dataset:    c.Dataset,
		APIVersion: c.APIVersion,
		Token:      c.Token,
		UseCDN:     c.UseCDN,
		BaseURL:    g.apiURL,
		Timeout:    c.Timeout,
	})
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
