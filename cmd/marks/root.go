package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/marks/internal/config"
	"github.com/nikbrunner/marks/internal/enrich"
	"github.com/nikbrunner/marks/internal/logging"
	"github.com/nikbrunner/marks/internal/storage"
	"github.com/nikbrunner/marks/internal/tagcolor"
	"github.com/nikbrunner/marks/internal/tui"
)

// app holds what every subcommand needs, built once the flags are parsed.
type app struct {
	configPath string
	dbPath     string
	logLevel   string

	cfg      *config.Config
	logger   *log.Logger
	store    *storage.SQLiteStorage
	enricher *enrich.Service

	openURL   func(string) error
	logCloser io.Closer
}

// setup loads the config, applies flag overrides and opens the store.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.Database.Path = a.dbPath
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger, a.logCloser = logging.New(cfg.Log.Logging())

	store, err := storage.NewSQLiteStorage(cfg.Database.Path, storage.WithLogger(a.logger))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	a.store = store

	a.enricher = enrich.NewService(enrich.ServiceParams{
		TitleTimeout:   cfg.Enrich.TitleTimeout,
		FaviconTimeout: cfg.Enrich.FaviconTimeout,
		UserAgent:      cfg.Enrich.UserAgent,
		Logger:         a.logger,
	})
	return nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("close store", "err", err)
		}
		a.store = nil
	}
	if a.logCloser != nil {
		a.logCloser.Close()
		a.logCloser = nil
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marks",
		Short: "A terminal bookmark manager",
		Long: `marks stores URLs with their page titles and your tags in a local
SQLite database. Run it without arguments for the interactive list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is ~/.config/marks/config.yaml)")
	cmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "bookmark database path")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newRmCmd(a),
		newTitleCmd(a),
		newTagsCmd(a),
		newSearchCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newCheckCmd(a),
	)

	return cmd
}

func (a *app) runTUI(cmd *cobra.Command) error {
	a.logger.Info("starting tui", "db", a.store.Path())

	colors := tagcolor.New()
	model := tui.NewApp(tui.AppParams{
		Context:  cmd.Context(),
		Store:    a.store,
		Enricher: a.enricher,
		Colors:   colors,
		Logger:   a.logger,
		OpenURL:  a.openURL,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running app: %w", err)
	}

	a.logger.Debug("tag colors", "assigned", colors.Assigned(), "palette_left", colors.Remaining())
	return nil
}
