package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/marks/internal/exporter"
	"github.com/nikbrunner/marks/internal/importer"
	"github.com/nikbrunner/marks/internal/logging"
	"github.com/nikbrunner/marks/internal/storage"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import bookmarks from a browser's HTML export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening file: %w", err)
			}
			defer file.Close()

			bookmarks, err := importer.ParseHTMLBookmarks(file)
			if err != nil {
				return fmt.Errorf("parsing HTML: %w", err)
			}

			result, err := storage.ImportMerge(cmd.Context(), a.store, bookmarks)
			if err != nil {
				return fmt.Errorf("importing: %w", err)
			}

			logging.WithOp(a.logger, "import").Info("imported bookmarks",
				"file", args[0], "added", result.Added, "skipped", result.Skipped)

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bookmarks", result.Added)
			if result.Skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d duplicates skipped)", result.Skipped)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export bookmarks to a browser-readable HTML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				var err error
				if path, err = exporter.DefaultExportPath(); err != nil {
					return fmt.Errorf("default export path: %w", err)
				}
			}

			bookmarks, err := a.store.List(cmd.Context(), "")
			if err != nil {
				return err
			}

			if err := exporter.WriteFile(path, bookmarks); err != nil {
				return err
			}

			logging.WithOp(a.logger, "export").Info("exported bookmarks", "path", path, "count", len(bookmarks))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarks to %s\n", len(bookmarks), path)
			return nil
		},
	}
}
