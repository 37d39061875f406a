package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"todocard/internal/auth"
	"todocard/internal/config"
	"todocard/internal/google/tasks"
	"todocard/internal/logging"
	"todocard/internal/note"
	"todocard/internal/paths"
	"todocard/internal/store"
	"todocard/internal/store/filestore"
	"todocard/internal/store/gtasks"
	"todocard/internal/store/sqlite"
)

type App struct {
	Config     *config.Config
	ConfigPath string
	Repo       store.Repository
	Exporter   note.FileExporter
	Logger     *slog.Logger

	closers []io.Closer
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "todocard",
		Short:         "Task cards with an edit overlay and note export",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()
			return startTUI(commandContext(cmd), app)
		},
	}
	cmd.PersistentFlags().String("config", "", "Path to config.json (defaults to ~/.config/todocard/config.json)")
	cmd.PersistentFlags().String("credentials", "", "Path to OAuth credentials.json (defaults to ~/.config/todocard/credentials.json)")
	cmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")

	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newUpdateCmd())

	return cmd
}

func initApp(cmd *cobra.Command) (*App, error) {
	cfgPath, err := resolveConfigPath(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrCreate(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	app := &App{
		Config:     cfg,
		ConfigPath: cfgPath,
		Exporter:   note.FileExporter{Dir: exportDir(cfg)},
	}

	levelName, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	logPath, err := paths.LogPath()
	if err != nil {
		return nil, err
	}
	logger, logFile, err := logging.Open(logPath, level)
	if err != nil {
		return nil, err
	}
	app.Logger = logger
	app.closers = append(app.closers, logFile)

	applyTheme(cfg.Theme)

	repo, err := openRepository(commandContext(cmd), cmd, cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Repo = repo
	// The repository closes before the log file.
	app.closers = append([]io.Closer{repo}, app.closers...)
	logger.Debug("app initialized", "backend", cfg.Backend, "config", cfgPath)
	return app, nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func openRepository(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (store.Repository, error) {
	switch cfg.Backend {
	case store.BackendSQLite:
		path := cfg.DataPath
		if path == "" {
			var err error
			if path, err = paths.DatabasePath(); err != nil {
				return nil, err
			}
		}
		s, err := sqlite.Open(ctx, path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case store.BackendGoogle:
		client, err := newTasksClient(ctx, cmd)
		if err != nil {
			return nil, err
		}
		s, err := gtasks.New(client, cfg.GoogleListID, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		path := cfg.DataPath
		if path == "" {
			var err error
			if path, err = paths.TasksPath(); err != nil {
				return nil, err
			}
		}
		s, err := filestore.Open(path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func newTasksClient(ctx context.Context, cmd *cobra.Command) (*tasks.Client, error) {
	credPath, _ := cmd.Flags().GetString("credentials")
	if credPath == "" {
		var err error
		if credPath, err = paths.CredentialsPath(); err != nil {
			return nil, err
		}
	}
	tokenPath, err := paths.TokenPath()
	if err != nil {
		return nil, err
	}
	httpClient, err := auth.Client(ctx, credPath, tokenPath, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("auth failed: %w", err)
	}
	return tasks.New(ctx, httpClient)
}

func exportDir(cfg *config.Config) string {
	if cfg.ExportDir != "" {
		return cfg.ExportDir
	}
	return paths.ExportDir()
}

func applyTheme(theme string) {
	switch theme {
	case config.ThemeDark:
		lipgloss.SetHasDarkBackground(true)
	case config.ThemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
}
