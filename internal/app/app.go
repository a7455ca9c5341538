package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/ladder-league/internal/config"
	"github.com/riskibarqy/ladder-league/internal/domain/league"
	"github.com/riskibarqy/ladder-league/internal/infrastructure/repository/file"
	"github.com/riskibarqy/ladder-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/ladder-league/internal/infrastructure/repository/sqlite"
	"github.com/riskibarqy/ladder-league/internal/interfaces/console"
	idgen "github.com/riskibarqy/ladder-league/internal/platform/id"
	"github.com/riskibarqy/ladder-league/internal/platform/logging"
	"github.com/riskibarqy/ladder-league/internal/usecase"
)

// Container holds the wired application for one process.
type Container struct {
	Repository league.Repository
	Service    *usecase.LeagueService
	Session    *console.Session
	Logger     *logging.Logger

	close func() error
}

func NewContainer(ctx context.Context, cfg config.Config, ids league.IDGenerator, logger *logging.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if ids == nil {
		ids = idgen.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	repo, closeRepo, err := NewRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	service, err := usecase.NewLeagueService(repo, ids, cfg.SaveDir, logger)
	if err != nil {
		_ = closeRepo()
		return nil, fmt.Errorf("build league service: %w", err)
	}

	logger.InfoContext(ctx, "league ready",
		"league_id", service.LeagueID(),
		"store", cfg.Store,
		"save_dir", cfg.SaveDir,
	)

	return &Container{
		Repository: repo,
		Service:    service,
		Session:    console.NewSession(service, logger),
		Logger:     logger,
		close:      closeRepo,
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.close == nil {
		return nil
	}
	return c.close()
}

// NewRepository builds the snapshot store selected by cfg.Store.
func NewRepository(ctx context.Context, cfg config.Config) (league.Repository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreFile:
		return file.NewLeagueRepository(), noop, nil
	case config.StoreMemory:
		return memory.NewLeagueRepository(), noop, nil
	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return sqlite.NewLeagueRepository(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store %q", cfg.Store)
	}
}
