package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tiebasign/internal/adapters/tieba"
	"tiebasign/internal/config"
	"tiebasign/internal/service"
)

type options struct {
	bduss      string
	timeout    time.Duration
	sequential bool
	logLevel   string
	jsonLogs   bool
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd(os.Stderr).Execute()
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:           "tieba-sign",
		Short:         "Check in to every followed Tieba forum for each configured account",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			logger, err := newLogger(logOut, cfg.LogLevel, opts.jsonLogs)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			orchestrator := service.NewOrchestrator(cfg, tieba.Factory(tieba.DefaultEndpoints(), cfg.Timeout), logger)
			if _, err := orchestrator.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("cannot start check-in run")
				return err
			}
			return nil
		},
	}

	root.Flags().StringVar(&opts.bduss, "bduss", "", "account tokens separated by '&' (default $BDUSS)")
	root.Flags().DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (default $TIEBA_TIMEOUT or 15s)")
	root.Flags().BoolVar(&opts.sequential, "sequential", false, "check in to forums one at a time")
	root.Flags().StringVar(&opts.logLevel, "log-level", "", "log level (default $LOG_LEVEL or info)")
	root.Flags().BoolVar(&opts.jsonLogs, "json-logs", false, "emit JSON log lines")
	return root
}

// resolveConfig loads .env, reads the environment, then applies flags that
// were set explicitly.
func resolveConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	// A missing .env is fine; the variables may be set directly.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("bduss") {
		cfg.BDUSS = opts.bduss
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if flags.Changed("sequential") {
		cfg.Strategy = config.Concurrent
		if opts.sequential {
			cfg.Strategy = config.Sequential
		}
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if _, err := cfg.Accounts(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string, jsonLogs bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if !jsonLogs {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
