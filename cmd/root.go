package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "task-tracker.com/task-tracker/internal/configs"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/internal/logging"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/services"
)

// app holds what the subcommands share once the root command has bootstrapped.
type app struct {
	overrides   config.Overrides
	logger      *log.Logger
	taskService *services.TaskService
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "task-tracker",
		Short:         "Track tasks from the command line",
		Long:          "Add, list, update, delete and mark tasks stored in a local file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.bootstrap(cmd)
		},
	}

	// Subcommands inherit this, so bad flags exit like bad arguments.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err)
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.overrides.Path, "file", "", "task storage location (env TASK_STORE_PATH)")
	flags.StringVar(&a.overrides.Driver, "driver", "", "storage driver: json or sqlite (env TASK_STORE_DRIVER)")
	flags.StringVar(&a.overrides.ConfigFile, "config", "", "TOML config file (env TASK_TRACKER_CONFIG)")
	flags.StringVar(&a.overrides.LogLevel, "log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")

	rootCmd.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newMarkCmd(a),
	)
	rootCmd.AddCommand(newMarkShortcutCmds(a)...)

	return rootCmd
}

func Execute() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func (a *app) bootstrap(cmd *cobra.Command) error {
	envErr := godotenv.Load()
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", envErr)
	}

	cfg, err := config.Load(a.overrides)
	if err != nil {
		return err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Prefix: "task-tracker",
	})
	if err != nil {
		return err
	}
	a.logger = logger

	if envErr != nil {
		logger.Debug(".env file not found, using environment variables")
	}

	store, err := newStore(cfg.Store)
	if err != nil {
		return err
	}
	logger.Debug("using task store", "driver", cfg.Store.Driver, "path", cfg.Store.Path)

	a.taskService = services.NewTaskService(store, services.SystemClock, logger)
	return nil
}

func newStore(cfg config.StoreConfig) (repository.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return repository.NewSQLiteStore(cfg.Path)
	case config.DriverJSON:
		return repository.NewJSONStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return wrapArgs(cobra.ExactArgs(n))
}

func minimumArgs(n int) cobra.PositionalArgs {
	return wrapArgs(cobra.MinimumNArgs(n))
}

func wrapArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidInput, err)
		}
		return nil
	}
}
