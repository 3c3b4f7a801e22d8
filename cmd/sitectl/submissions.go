package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hutchinsdata/site/internal/contact"
	"github.com/hutchinsdata/site/internal/contact/repository"
	"github.com/hutchinsdata/site/internal/contact/service"
	"github.com/hutchinsdata/site/internal/database"
	"github.com/hutchinsdata/site/internal/retry"
)

func newSubmissionsCmd(g *globals) *cobra.Command {
	var limit int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "submissions [id]",
		Short: "List recent contact submissions, or show one by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.cfg.MongoDB.URI == "" {
				return errors.New("MONGODB_URI is not set; submissions are only kept in MongoDB")
			}
			ctx := cmd.Context()
			client, db, err := database.Connect(ctx, g.cfg.MongoDB, retry.Policy{})
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			svc := service.New(repository.NewMongoRepo(ctx, db.Collection(repository.Collection)))
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return showSubmissions(ctx, cmd.OutOrStdout(), svc, id, limit, asJSON)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of submissions to list (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a summary")
	return cmd
}

func showSubmissions(ctx context.Context, w io.Writer, svc *service.Service, id string, limit int, asJSON bool) error {
	if id != "" {
		s, err := svc.Lookup(ctx, id)
		if err != nil {
			return fmt.Errorf("submission %s: %w", id, err)
		}
		if asJSON {
			return writeJSON(w, s)
		}
		fmt.Fprintf(w, "id:      %s\nfrom:    %s <%s>\nat:      %s\n\n%s\n", s.ID, s.Name, s.Email, s.CreatedAt.Format("2006-01-02 15:04 MST"), s.Message)
		return nil
	}

	subs, err := svc.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, subs)
	}
	if len(subs) == 0 {
		fmt.Fprintln(w, "no submissions")
		return nil
	}
	for _, s := range subs {
		fmt.Fprintf(w, "%s  %s  %s <%s>  %s\n", s.CreatedAt.Format("2006-01-02 15:04"), s.ID, s.Name, s.Email, firstLine(s))
	}
	return nil
}

// firstLine is the first line of the message, cut to fit a terminal row.
func firstLine(s *contact.Submission) string {
	line, _, _ := strings.Cut(s.Message, "\n")
	if r := []rune(line); len(r) > 48 {
		return string(r[:47]) + "…"
	}
	return line
}

func writeJSON(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return printJSON(w, raw)
}
