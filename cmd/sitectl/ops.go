package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hutchinsdata/site/handlers"
	"github.com/hutchinsdata/site/internal/tokens"
)

func newPreviewTokenCmd(g *globals) *cobra.Command {
	var editor, secret string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "preview-token",
		Short: "Mint a signed token for draft preview",
		RunE: func(cmd *cobra.Command, args []string) error {
			pc := g.cfg.Preview
			if secret != "" {
				pc.Secret = secret
			}
			if ttl > 0 {
				pc.TTL = ttl
			}
			tok, err := tokens.GeneratePreviewToken(pc, editor)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&editor, "editor", "editor", "subject recorded in the token")
	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (defaults to PREVIEW_SECRET)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to PREVIEW_TTL_MINUTES)")
	return cmd
}

func newRevalidateCmd(g *globals) *cobra.Command {
	var target, secret string
	cmd := &cobra.Command{
		Use:   "revalidate",
		Short: "Call a running instance's revalidation webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if target == "" {
				target = g.cfg.Site.URL
			}
			if secret == "" {
				secret = g.cfg.Webhook.Secret
			}
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost,
				strings.TrimRight(target, "/")+"/api/revalidate", nil)
			if err != nil {
				return err
			}
			req.Header.Set(handlers.WebhookSecretHeader, secret)
			resp, err := (&http.Client{Timeout: 10 * time.Second}).Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", resp.StatusCode, strings.TrimSpace(string(body)))
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("revalidation returned status %d", resp.StatusCode)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "url", "", "base URL of the instance (defaults to SITE_URL)")
	cmd.Flags().StringVar(&secret, "secret", "", "webhook secret (defaults to SANITY_WEBHOOK_SECRET)")
	return cmd
}
