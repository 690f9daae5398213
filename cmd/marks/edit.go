package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/marks/internal/logging"
	"github.com/nikbrunner/marks/internal/model"
	"github.com/nikbrunner/marks/internal/storage"
)

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.lookup(cmd, args[0])
			if err != nil {
				return err
			}
			if err := a.store.Delete(cmd.Context(), b.ID); err != nil {
				return err
			}
			logging.WithOp(a.logger, "delete").Info("deleted bookmark", "id", b.ID, "url", b.URL)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d: %s\n", b.ID, b.Title)
			return nil
		},
	}
}

func newTitleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "title <id> <title>",
		Short: "Change a bookmark's title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[1] == "" {
				return errors.New("title must not be empty")
			}
			b, err := a.lookup(cmd, args[0])
			if err != nil {
				return err
			}
			if err := a.store.UpdateTitle(cmd.Context(), b.ID, args[1]); err != nil {
				return err
			}
			logging.WithOp(a.logger, "edit_title").Info("updated title", "id", b.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d: %s\n", b.ID, args[1])
			return nil
		},
	}
}

func newTagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tags <id> <tags>",
		Short: "Replace a bookmark's comma-separated tags",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.lookup(cmd, args[0])
			if err != nil {
				return err
			}
			if err := a.store.UpdateTags(cmd.Context(), b.ID, args[1]); err != nil {
				return err
			}
			logging.WithOp(a.logger, "edit_tags").Info("updated tags", "id", b.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d: %s\n", b.ID, model.NormalizeTags(args[1]))
			return nil
		},
	}
}

// lookup parses an id argument and loads the bookmark it names.
func (a *app) lookup(cmd *cobra.Command, arg string) (model.Bookmark, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return model.Bookmark{}, fmt.Errorf("invalid id %q", arg)
	}
	b, err := a.store.Get(cmd.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Bookmark{}, fmt.Errorf("bookmark %d not found", id)
	}
	return b, err
}
