package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/ladder-league/internal/domain/league"
	"github.com/riskibarqy/ladder-league/internal/infrastructure/repository/codec"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// LeagueRepository keeps each league snapshot in its own JSON file.
type LeagueRepository struct{}

func NewLeagueRepository() *LeagueRepository {
	return &LeagueRepository{}
}

func (r *LeagueRepository) Save(_ context.Context, path string, l *league.League) error {
	raw, err := codec.Encode(l)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return saveUnavailable(crerr.Wrapf(err, "create snapshot directory for %s", path), path)
	}
	if err := os.WriteFile(path, raw, filePerm); err != nil {
		return saveUnavailable(crerr.Wrapf(err, "write snapshot %s", path), path)
	}

	return nil
}

func (r *LeagueRepository) Load(_ context.Context, path string) (*league.League, error) {
	leagueID, err := league.IDFromPath(path)
	if err != nil {
		return nil, crerr.WithHintf(err, "File is not a league save: %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.WithHintf(
			crerr.Mark(crerr.Wrapf(err, "read snapshot %s", path), league.ErrStorageUnavailable),
			"Could not load file from %s", path,
		)
	}

	out, err := codec.Decode(raw, leagueID)
	if err != nil {
		return nil, codec.WithLoadHint(err, path)
	}

	return out, nil
}

// SavedAt reports the modification time of the snapshot file at path.
func (r *LeagueRepository) SavedAt(_ context.Context, path string) (time.Time, bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, crerr.Wrapf(err, "stat snapshot %s", path)
	}

	return info.ModTime(), true, nil
}

func saveUnavailable(err error, path string) error {
	return crerr.WithHintf(crerr.Mark(err, league.ErrStorageUnavailable), "Could not save file to %s", path)
}
