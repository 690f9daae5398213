package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/marks/internal/culler"
	"github.com/nikbrunner/marks/internal/logging"
)

func newCheckCmd(a *app) *cobra.Command {
	var deleteDead bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check every bookmark for dead links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			bookmarks, err := a.store.List(ctx, "")
			if err != nil {
				return err
			}
			if len(bookmarks) == 0 {
				fmt.Fprintln(out, "No bookmarks to check.")
				return nil
			}

			checker := culler.NewChecker(culler.CheckerParams{
				Concurrency:    a.cfg.Check.Concurrency,
				Timeout:        a.cfg.Check.Timeout,
				UserAgent:      a.cfg.Enrich.UserAgent,
				ExcludeDomains: a.cfg.Check.ExcludeDomains,
				Logger:         a.logger,
			})

			errOut := cmd.ErrOrStderr()
			results := checker.Check(ctx, bookmarks, func(completed, total int) {
				fmt.Fprintf(errOut, "\rChecking %d/%d", completed, total)
			})
			fmt.Fprintln(errOut)

			printResults(out, results)

			if !deleteDead {
				return nil
			}

			logger := logging.WithOp(a.logger, "cull")
			dead := culler.DeadResults(results)
			for _, r := range dead {
				if err := a.store.Delete(ctx, r.Bookmark.ID); err != nil {
					return err
				}
				logger.Info("deleted dead bookmark", "id", r.Bookmark.ID, "url", r.Bookmark.URL)
			}
			fmt.Fprintf(out, "Deleted %d dead bookmarks\n", len(dead))
			return nil
		},
	}

	cmd.Flags().BoolVar(&deleteDead, "delete-dead", false, "delete bookmarks whose links are dead")

	return cmd
}

func printResults(w io.Writer, results []culler.Result) {
	for _, r := range results {
		switch r.Status {
		case culler.Dead:
			fmt.Fprintf(w, "DEAD         %4d  %s (%d)\n", r.Bookmark.ID, r.Bookmark.URL, r.StatusCode)
		case culler.Unreachable:
			fmt.Fprintf(w, "UNREACHABLE  %4d  %s (%s)\n", r.Bookmark.ID, r.Bookmark.URL, r.Error)
		}
	}

	counts := culler.Summary(results)
	fmt.Fprintf(w, "Healthy: %d, Dead: %d, Unreachable: %d\n",
		counts[culler.Healthy], counts[culler.Dead], counts[culler.Unreachable])
}
