package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/ladder-league/internal/domain/league"
	"github.com/riskibarqy/ladder-league/internal/infrastructure/repository/codec"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	_ "modernc.org/sqlite"
)

const upsertSnapshot = `
INSERT INTO league_snapshots (path, league_id, payload, saved_at)
VALUES (:path, :league_id, :payload, :saved_at)
ON CONFLICT (path) DO UPDATE SET
	league_id = excluded.league_id,
	payload   = excluded.payload,
	saved_at  = excluded.saved_at`

const selectSnapshot = `
SELECT path, league_id, payload, saved_at
FROM league_snapshots
WHERE path = ?`

// Open connects to the SQLite database at dsn and applies pending migrations.
// Queries are traced through the global OpenTelemetry provider.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := otelsqlx.ConnectContext(ctx, "sqlite", dsn, otelsql.WithDBSystem("sqlite"))
	if err != nil {
		return nil, fmt.Errorf("connect sqlite %s: %w", dsn, err)
	}
	// one connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)

	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// LeagueRepository stores league snapshots as rows keyed by their save path.
type LeagueRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db, now: time.Now}
}

func (r *LeagueRepository) Save(ctx context.Context, path string, l *league.League) error {
	raw, err := codec.Encode(l)
	if err != nil {
		return err
	}

	row := leagueSnapshotTableModel{
		Path:     path,
		LeagueID: l.ID(),
		Payload:  string(raw),
		SavedAt:  r.now().UTC().Format(time.RFC3339Nano),
	}
	if _, err := r.db.NamedExecContext(ctx, upsertSnapshot, row); err != nil {
		return crerr.WithHintf(
			crerr.Mark(crerr.Wrapf(err, "upsert snapshot %s", path), league.ErrStorageUnavailable),
			"Could not save file to %s", path,
		)
	}

	return nil
}

func (r *LeagueRepository) Load(ctx context.Context, path string) (*league.League, error) {
	leagueID, err := league.IDFromPath(path)
	if err != nil {
		return nil, crerr.WithHintf(err, "File is not a league save: %s", path)
	}

	var row leagueSnapshotTableModel
	if err := r.db.GetContext(ctx, &row, selectSnapshot, path); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = crerr.Newf("snapshot %s not found", path)
		}
		return nil, crerr.WithHintf(
			crerr.Mark(crerr.Wrapf(err, "select snapshot %s", path), league.ErrStorageUnavailable),
			"Could not load file from %s", path,
		)
	}

	out, err := codec.Decode([]byte(row.Payload), leagueID)
	if err != nil {
		return nil, codec.WithLoadHint(err, path)
	}

	return out, nil
}

// SavedAt reports when the snapshot at path was last written.
func (r *LeagueRepository) SavedAt(ctx context.Context, path string) (time.Time, bool, error) {
	var row leagueSnapshotTableModel
	if err := r.db.GetContext(ctx, &row, selectSnapshot, path); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("select snapshot %s: %w", path, err)
	}

	savedAt, err := time.Parse(time.RFC3339Nano, row.SavedAt)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse saved_at %q: %w", row.SavedAt, err)
	}

	return savedAt, true, nil
}
