package memory

import (
	"context"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/ladder-league/internal/domain/league"
)

type entry struct {
	snapshot league.Snapshot
	savedAt  time.Time
}

// LeagueRepository keeps league snapshots in process memory, keyed by path.
type LeagueRepository struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

func NewLeagueRepository() *LeagueRepository {
	return &LeagueRepository{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

func (r *LeagueRepository) Save(_ context.Context, path string, l *league.League) error {
	if path == "" {
		return crerr.WithHint(
			crerr.Mark(crerr.New("snapshot path is required"), league.ErrStorageUnavailable),
			"Could not save file to an empty path",
		)
	}

	snapshot := l.Snapshot()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[path] = entry{snapshot: snapshot, savedAt: r.now()}

	return nil
}

func (r *LeagueRepository) Load(_ context.Context, path string) (*league.League, error) {
	leagueID, err := league.IDFromPath(path)
	if err != nil {
		return nil, crerr.WithHintf(err, "File is not a league save: %s", path)
	}

	r.mu.RLock()
	item, ok := r.items[path]
	r.mu.RUnlock()
	if !ok {
		return nil, crerr.WithHintf(
			crerr.Mark(crerr.Newf("snapshot %s not found", path), league.ErrStorageUnavailable),
			"Could not load file from %s", path,
		)
	}

	return league.FromSnapshot(item.snapshot, leagueID)
}

// SavedAt reports when the snapshot at path was last written.
func (r *LeagueRepository) SavedAt(_ context.Context, path string) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[path]
	return item.savedAt, ok, nil
}
