package usecase

import (
	"bytes"
	"context"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/ladder-league/internal/domain/league"
	"github.com/riskibarqy/ladder-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/ladder-league/internal/platform/id"
	"github.com/riskibarqy/ladder-league/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLeagueService_Validation(t *testing.T) {
	t.Parallel()

	repo := memory.NewLeagueRepository()

	_, err := NewLeagueService(nil, id.FixedGenerator{ID: "abcdef"}, "saved_games", nil)
	assert.Error(t, err)
	_, err = NewLeagueService(repo, id.FixedGenerator{ID: "abcdef"}, "", nil)
	assert.Error(t, err)
	_, err = NewLeagueService(repo, id.FixedGenerator{}, "saved_games", nil)
	assert.Error(t, err)

	service, err := NewLeagueService(repo, id.NewRandomGenerator(), "saved_games", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, service.LeagueID())
}

func TestLeagueService_PlaysAGame(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewLeagueRepository()
	service, err := NewLeagueService(repo, id.FixedGenerator{ID: "abcdef"}, "saved_games", nil)
	require.NoError(t, err)

	assert.Equal(t, "No players yet", service.Render(ctx))
	_, err = service.Winner(ctx)
	assert.True(t, crerr.Is(err, ErrInvalidInput), "got %v", err)

	require.NoError(t, service.AddPlayer(ctx, "Player1"))
	require.NoError(t, service.AddPlayer(ctx, "Player2"))
	assert.Equal(t, []string{"Player1", "Player2"}, service.Players(ctx))

	require.NoError(t, service.RecordWin(ctx, "Player2", "Player1"))
	assert.Equal(t, []string{"Player2", "Player1"}, service.Players(ctx))

	winner, err := service.Winner(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Player2", winner)

	autosaved, err := repo.Load(ctx, "saved_games/abcdef.json")
	require.NoError(t, err)
	assert.Equal(t, league.Snapshot{{"Player2"}, {"Player1"}}, autosaved.Snapshot())

	require.NoError(t, service.Save(ctx, "saved_games/test save name.json"))
	require.NoError(t, service.Load(ctx, "saved_games/test save name.json"))
	assert.Equal(t, "test save name", service.LeagueID())
	assert.Equal(t,
		"          -------------------\n"+
			"          |     Player2     |\n"+
			"          -------------------\n"+
			"------------------- -------------------\n"+
			"|     Player1     | |                 |\n"+
			"------------------- -------------------",
		service.Render(ctx),
	)
}

func TestLeagueService_ErrorKinds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, err := NewLeagueService(memory.NewLeagueRepository(), id.FixedGenerator{ID: "abcdef"}, "saved_games", nil)
	require.NoError(t, err)
	require.NoError(t, service.AddPlayer(ctx, "Player1"))

	tests := []struct {
		name string
		run  func() error
		kind error
	}{
		{name: "duplicate player", run: func() error { return service.AddPlayer(ctx, "Player1") }, kind: ErrInvalidInput},
		{name: "self match", run: func() error { return service.RecordWin(ctx, "Player1", "Player1") }, kind: ErrInvalidInput},
		{name: "unknown loser", run: func() error { return service.RecordWin(ctx, "Player1", "Ghost") }, kind: ErrNotFound},
		{name: "missing save", run: func() error { return service.Load(ctx, "nowhere.json") }, kind: ErrDependencyUnavailable},
		{name: "not a save file", run: func() error { return service.Load(ctx, "nowhere.txt") }, kind: ErrInvalidFormat},
	}

	for _, tc := range tests {
		err := tc.run()
		require.Error(t, err, tc.name)
		assert.True(t, crerr.Is(err, tc.kind), "%s: got %v", tc.name, err)
		assert.True(t, IsRecoverable(err), tc.name)
		assert.NotEmpty(t, crerr.FlattenHints(err), tc.name)
	}

	assert.False(t, IsRecoverable(crerr.New("boom")))
}

type stampedRepository struct {
	*memory.LeagueRepository
	at time.Time
}

func (r stampedRepository) SavedAt(context.Context, string) (time.Time, bool, error) {
	return r.at, true, nil
}

func TestLeagueService_LoadLogsSaveTime(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var logs bytes.Buffer
	logger := logging.NewJSONTo(&logs, logging.LevelInfo)
	repo := stampedRepository{
		LeagueRepository: memory.NewLeagueRepository(),
		at:               time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC),
	}

	service, err := NewLeagueService(repo, id.FixedGenerator{ID: "abcdef"}, "saved_games", logger)
	require.NoError(t, err)
	require.NoError(t, service.AddPlayer(ctx, "Player1"))
	require.NoError(t, service.Load(ctx, "saved_games/abcdef.json"))

	assert.Contains(t, logs.String(), `"msg":"league loaded"`)
	assert.Contains(t, logs.String(), `"saved_at":"2026-10-19T09:30:00Z"`)
}
