package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/marks/internal/model"
	"github.com/nikbrunner/marks/internal/picker"
	"github.com/nikbrunner/marks/internal/search"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search titles and open the chosen bookmark",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			bookmarks, err := a.store.List(cmd.Context(), "")
			if err != nil {
				return err
			}

			results := search.Bookmarks(bookmarks, query)
			if len(results) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No bookmarks found for '%s'\n", query)
				return nil
			}

			var selected model.Bookmark
			if len(results) == 1 {
				selected = results[0].Bookmark
			} else {
				p := tea.NewProgram(picker.New(results, query),
					tea.WithContext(cmd.Context()),
					tea.WithInput(cmd.InOrStdin()),
					tea.WithOutput(cmd.ErrOrStderr()))
				final, err := p.Run()
				if err != nil {
					return fmt.Errorf("running picker: %w", err)
				}
				var ok bool
				selected, ok = final.(picker.Picker).Selected()
				if !ok {
					return nil
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Opening: %s\n", selected.Title)
			return a.openURL(selected.URL)
		},
	}
}
