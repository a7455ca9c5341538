package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/ladder-league/internal/domain/league"
	"github.com/riskibarqy/ladder-league/internal/domain/pyramid"
	"github.com/riskibarqy/ladder-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// LeagueService drives the current league for a single caller and autosaves
// it after every change.
type LeagueService struct {
	repo    league.Repository
	saveDir string
	logger  *logging.Logger
	current *league.League
}

func NewLeagueService(
	repo league.Repository,
	ids league.IDGenerator,
	saveDir string,
	logger *logging.Logger,
) (*LeagueService, error) {
	if repo == nil {
		return nil, fmt.Errorf("league repository is required")
	}
	if saveDir == "" {
		return nil, fmt.Errorf("save directory is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	current, err := league.New(ids)
	if err != nil {
		return nil, fmt.Errorf("create league: %w", err)
	}

	return &LeagueService{
		repo:    repo,
		saveDir: saveDir,
		logger:  logger,
		current: current,
	}, nil
}

func (s *LeagueService) LeagueID() string {
	return s.current.ID()
}

// AutosavePath is where the current league is written after each change.
func (s *LeagueService) AutosavePath() string {
	return league.PathFor(s.saveDir, s.current.ID())
}

func (s *LeagueService) Players(ctx context.Context) []string {
	_, span := startUsecaseSpan(ctx, "usecase.LeagueService.Players")
	defer span.End()

	return s.current.Players()
}

func (s *LeagueService) AddPlayer(ctx context.Context, name string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.AddPlayer")
	defer span.End()

	if err := s.current.AddPlayer(name); err != nil {
		return MarkKind(err, "add player")
	}
	s.logger.InfoContext(ctx, "player added",
		"league_id", s.current.ID(),
		"player", name,
		"rank", s.current.Len()-1,
	)

	return s.autosave(ctx)
}

func (s *LeagueService) RecordWin(ctx context.Context, winner, loser string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.RecordWin")
	defer span.End()
	span.SetAttributes(
		attribute.String("league.winner", winner),
		attribute.String("league.loser", loser),
	)

	if err := s.current.RecordWin(winner, loser); err != nil {
		return MarkKind(err, "record win")
	}
	s.logger.InfoContext(ctx, "win recorded",
		"league_id", s.current.ID(),
		"winner", winner,
		"loser", loser,
	)

	return s.autosave(ctx)
}

func (s *LeagueService) Winner(ctx context.Context) (string, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LeagueService.Winner")
	defer span.End()

	winner, err := s.current.Winner()
	if err != nil {
		return "", MarkKind(err, "get winner")
	}

	return winner, nil
}

// Render draws the current standings as a pyramid.
func (s *LeagueService) Render(ctx context.Context) string {
	_, span := startUsecaseSpan(ctx, "usecase.LeagueService.Render")
	defer span.End()

	return pyramid.Render(s.current.Players())
}

func (s *LeagueService) Save(ctx context.Context, path string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Save")
	defer span.End()

	if err := s.repo.Save(ctx, path, s.current); err != nil {
		s.logger.WarnContext(ctx, "save league failed", "path", path, "error", err)
		return MarkKind(err, "save league")
	}
	s.logger.InfoContext(ctx, "league saved", "league_id", s.current.ID(), "path", path)

	return nil
}

// Load replaces the current league with the snapshot stored at path. The
// loaded league takes its identifier from the file name.
func (s *LeagueService) Load(ctx context.Context, path string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Load")
	defer span.End()

	loaded, err := s.repo.Load(ctx, path)
	if err != nil {
		s.logger.WarnContext(ctx, "load league failed", "path", path, "error", err)
		return MarkKind(err, "load league")
	}

	fields := []any{
		"previous_league_id", s.current.ID(),
		"league_id", loaded.ID(),
		"players", loaded.Len(),
		"path", path,
	}
	if savedAt, ok := s.savedAt(ctx, path); ok {
		fields = append(fields, "saved_at", savedAt)
	}
	s.logger.InfoContext(ctx, "league loaded", fields...)
	s.current = loaded

	return nil
}

// savedAt asks the repository when path was last written, if it can tell.
func (s *LeagueService) savedAt(ctx context.Context, path string) (time.Time, bool) {
	reader, ok := s.repo.(league.SaveTimeReader)
	if !ok {
		return time.Time{}, false
	}

	at, found, err := reader.SavedAt(ctx, path)
	if err != nil {
		s.logger.DebugContext(ctx, "read save time failed", "path", path, "error", err)
		return time.Time{}, false
	}

	return at, found
}

func (s *LeagueService) autosave(ctx context.Context) error {
	path := s.AutosavePath()
	if err := s.repo.Save(ctx, path, s.current); err != nil {
		s.logger.WarnContext(ctx, "autosave failed", "league_id", s.current.ID(), "path", path, "error", err)
		return MarkKind(err, "autosave league")
	}
	s.logger.DebugContext(ctx, "league autosaved", "league_id", s.current.ID(), "path", path)

	return nil
}
