package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/riskibarqy/ladder-league/internal/app"
	"github.com/riskibarqy/ladder-league/internal/config"
	"github.com/riskibarqy/ladder-league/internal/domain/league"
	"github.com/riskibarqy/ladder-league/internal/platform/logging"
	"github.com/riskibarqy/ladder-league/internal/usecase"
	"github.com/spf13/cobra"
)

type options struct {
	saveDir    string
	store      string
	sqlitePath string
	logLevel   string
	load       string
}

// runtime is resolved once per invocation in PersistentPreRunE.
type runtime struct {
	cfg    config.Config
	logger *logging.Logger
	ids    league.IDGenerator
}

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type runtimeKey struct{}

type commandContextKey struct{}

// NewRootCommand builds the ladder command tree. ids may be nil to use random
// league identifiers.
func NewRootCommand(ids league.IDGenerator) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "ladder",
		Short: "Ladder league tracker",
		Long: `Ladder tracks a league of players ranked on a ladder.

Commands are read one per line from standard input:
  add player <name>
  record win <winner> <loser>
  print
  winner
  save <path>
  load <path>
  quit

The league is saved to <save-dir>/<league id>.json after every change.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := resolveRuntime(cmd, opts, ids)
			if err != nil {
				return err
			}

			info := commandContext{correlationID: uuid.New(), startedAt: time.Now()}
			ctx := context.WithValue(cmd.Context(), runtimeKey{}, rt)
			ctx = context.WithValue(ctx, commandContextKey{}, info)
			cmd.SetContext(ctx)

			rt.logger.Info("command start",
				"command", cmd.CommandPath(),
				"correlation_id", info.correlationID.String(),
			)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			rt, ok := cmd.Context().Value(runtimeKey{}).(*runtime)
			if !ok {
				return
			}
			info, _ := cmd.Context().Value(commandContextKey{}).(commandContext)
			rt.logger.Info("command end",
				"command", cmd.CommandPath(),
				"correlation_id", info.correlationID.String(),
				"duration_ms", time.Since(info.startedAt).Milliseconds(),
			)
			_ = rt.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSession(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.saveDir, "save-dir", "", "directory for autosaved leagues (env LADDER_SAVE_DIR)")
	flags.StringVar(&opts.store, "store", "", "snapshot store: file, memory or sqlite (env LADDER_STORE)")
	flags.StringVar(&opts.sqlitePath, "sqlite-path", "", "sqlite database path (env LADDER_SQLITE_PATH)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (env LOG_LEVEL)")
	root.Flags().StringVar(&opts.load, "load", "", "load a saved league before reading commands")

	root.AddCommand(newPrintCommand(), newWinnerCommand())

	return root
}

// Execute runs the command tree against ctx.
func Execute(ctx context.Context, root *cobra.Command) error {
	return root.ExecuteContext(ctx)
}

func resolveRuntime(cmd *cobra.Command, opts *options, ids league.IDGenerator) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("save-dir") {
		cfg.SaveDir = opts.saveDir
	}
	if flags.Changed("store") {
		store, err := config.ParseStore(opts.store)
		if err != nil {
			return nil, err
		}
		cfg.Store = store
	}
	if flags.Changed("sqlite-path") {
		cfg.SQLitePath = opts.sqlitePath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logging.ParseLevel(opts.logLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewJSONTo(cmd.ErrOrStderr(), cfg.LogLevel)
	logging.SetDefault(logger)

	return &runtime{cfg: cfg, logger: logger, ids: ids}, nil
}

func runtimeFrom(cmd *cobra.Command) (*runtime, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtime)
	if !ok {
		return nil, errors.New("command runtime is not initialised")
	}
	return rt, nil
}

func runSession(cmd *cobra.Command, opts *options) error {
	rt, err := runtimeFrom(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	container, err := app.NewContainer(ctx, rt.cfg, rt.ids, rt.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := container.Close(); err != nil {
			rt.logger.Warn("close container", "error", err)
		}
	}()

	if opts.load != "" {
		if err := container.Service.Load(ctx, opts.load); err != nil {
			return userError(err)
		}
	}

	return container.Session.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
}

// userError replaces a recoverable error with its user-facing text.
func userError(err error) error {
	if err == nil || !usecase.IsRecoverable(err) {
		return err
	}
	if hint := crerr.FlattenHints(err); hint != "" {
		return errors.New(hint)
	}
	return err
}

func writeLine(w io.Writer, text string) error {
	if _, err := fmt.Fprintln(w, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
