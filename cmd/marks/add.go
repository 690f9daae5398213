package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/marks/internal/logging"
	"github.com/nikbrunner/marks/internal/model"
	"github.com/nikbrunner/marks/internal/storage"
	"github.com/nikbrunner/marks/internal/tui"
)

func newAddCmd(a *app) *cobra.Command {
	var tags, title string

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Add a bookmark, fetching its title unless --title is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			url := args[0]
			logger := logging.WithOp(a.logger, "add")

			exists, err := a.store.Exists(ctx, url)
			if err != nil {
				return err
			}
			if exists {
				return errors.New(tui.DuplicateNotice)
			}

			if title == "" {
				title = a.enricher.FetchTitle(ctx, url)
			}

			id, err := a.store.Add(ctx, model.NewBookmarkParams{
				URL:   url,
				Title: title,
				Tags:  model.SplitTagInput(tags),
			})
			if errors.Is(err, storage.ErrDuplicateURL) {
				return errors.New(tui.DuplicateNotice)
			}
			if err != nil {
				return err
			}

			logger.Info("added bookmark", "id", id, "url", url)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d: %s\n", id, title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tags, "tags", "t", "", "comma-separated tags")
	cmd.Flags().StringVar(&title, "title", "", "title to store instead of the fetched one")

	return cmd
}
