package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hutchinsdata/site/internal/content"
	"github.com/hutchinsdata/site/internal/gateway"
	"github.com/hutchinsdata/site/internal/mediaurl"
	"github.com/hutchinsdata/site/internal/sanity"
	"github.com/hutchinsdata/site/internal/schema"
	"github.com/hutchinsdata/site/internal/storage"
)

func printJSON(w io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

// parseParams turns k=v pairs into query parameters. Values are JSON when
// they parse as JSON and plain strings otherwise.
func parseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("param %q: want name=value", p)
		}
		var val any
		if err := json.Unmarshal([]byte(v), &val); err != nil {
			val = v
		}
		out[k] = val
	}
	return out, nil
}

// uncachedGateway reads straight from the content store with the configured
// retry policy.
func (g *globals) uncachedGateway() (*gateway.Gateway, error) {
	c, err := g.client()
	if err != nil {
		return nil, err
	}
	return gateway.New(c, nil, gateway.OptionsFromConfig(g.cfg.Content)), nil
}

// fetchPage loads the page bundles. Sections that do not decode are reported
// on errOut and left nil.
func (g *globals) fetchPage(ctx context.Context, errOut io.Writer, preview bool) (*content.PageData, error) {
	gw, err := g.uncachedGateway()
	if err != nil {
		return nil, err
	}
	raw, err := gw.Query(ctx, gateway.Request{Query: content.AllSectionsQuery, Tags: []string{gateway.DefaultTag}, Preview: preview})
	if err != nil {
		return nil, err
	}
	page, bad, err := content.DecodePage(raw)
	if err != nil {
		return nil, err
	}
	for _, se := range bad {
		fmt.Fprintf(errOut, "warning: %v\n", se)
	}
	return &page, nil
}

func newQueryCmd(g *globals) *cobra.Command {
	var run, preview bool
	var params []string
	cmd := &cobra.Command{
		Use:   "query [groq]",
		Short: "Print the page query, or run a query with --run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := content.AllSectionsQuery
			if len(args) == 1 {
				q = args[0]
			}
			if !run {
				fmt.Fprintln(cmd.OutOrStdout(), q)
				return nil
			}
			ps, err := parseParams(params)
			if err != nil {
				return err
			}
			gw, err := g.uncachedGateway()
			if err != nil {
				return err
			}
			raw, err := gw.Query(cmd.Context(), gateway.Request{Query: q, Params: ps, Preview: preview})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	}
	cmd.Flags().BoolVar(&run, "run", false, "execute the query against the content store")
	cmd.Flags().BoolVar(&preview, "preview", false, "include drafts")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter name=value (repeatable)")
	return cmd
}

func newFetchCmd(g *globals) *cobra.Command {
	var preview, assets bool
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the page content bundles",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := g.fetchPage(cmd.Context(), cmd.ErrOrStderr(), preview)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if assets {
				for _, id := range page.AssetIDs() {
					fmt.Fprintln(out, id)
				}
				return nil
			}
			raw, err := json.Marshal(page)
			if err != nil {
				return err
			}
			return printJSON(out, raw)
		},
	}
	cmd.Flags().BoolVar(&preview, "preview", false, "include drafts")
	cmd.Flags().BoolVar(&assets, "assets", false, "list referenced image asset ids only")
	return cmd
}

// AuditResult lists singleton types with no published document and those
// with more than one.
type AuditResult struct {
	Missing    []string
	Duplicated map[string]int
}

func auditCounts(singletons []string, counts map[string]int) AuditResult {
	res := AuditResult{Duplicated: map[string]int{}}
	for _, t := range singletons {
		switch n := counts[t]; {
		case n == 0:
			res.Missing = append(res.Missing, t)
		case n > 1:
			res.Duplicated[t] = n
		}
	}
	return res
}

func newAuditCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Check that every singleton type has exactly one published document",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			singletons := schema.Default().Singletons()
			raw, err := c.Query(cmd.Context(), content.SingletonCountQuery(singletons), nil,
				sanity.QueryOptions{Perspective: sanity.Published, NoCDN: true})
			if err != nil {
				return err
			}
			var counts map[string]int
			if err := json.Unmarshal(raw, &counts); err != nil {
				return fmt.Errorf("decode counts: %w", err)
			}
			res := auditCounts(singletons, counts)
			out := cmd.OutOrStdout()
			for _, t := range res.Missing {
				fmt.Fprintf(out, "missing    %s (section will render its fallback)\n", t)
			}
			dup := make([]string, 0, len(res.Duplicated))
			for t := range res.Duplicated {
				dup = append(dup, t)
			}
			slices.Sort(dup)
			for _, t := range dup {
				fmt.Fprintf(out, "duplicated %s: %d published documents\n", t, res.Duplicated[t])
			}
			if len(dup) > 0 {
				return fmt.Errorf("%d singleton type(s) have more than one document", len(dup))
			}
			fmt.Fprintf(out, "ok: %d singleton types checked\n", len(singletons))
			return nil
		},
	}
}

func newMirrorCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "mirror",
		Short: "Copy every image referenced by the page into the MinIO media bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			page, err := g.fetchPage(ctx, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			dst, err := storage.NewMediaStore(ctx, g.cfg.MinIO)
			if err != nil {
				return err
			}
			src := mediaurl.SanityCDN{ProjectID: g.cfg.Content.ProjectID, Dataset: g.cfg.Content.Dataset}
			rep := storage.Mirror(ctx, dst, src, &http.Client{Timeout: g.cfg.Content.Timeout}, page.AssetIDs())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "copied %d, skipped %d, failed %d\n", len(rep.Copied), len(rep.Skipped), len(rep.Failed))
			for id, err := range rep.Failed {
				fmt.Fprintf(out, "  %s: %v\n", id, err)
			}
			if len(rep.Failed) > 0 {
				return fmt.Errorf("%d asset(s) failed to mirror", len(rep.Failed))
			}
			return nil
		},
	}
}
