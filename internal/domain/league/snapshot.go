package league

import (
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

const snapshotExt = ".json"

// Snapshot is the persisted form of a league: one entry per rank slot, each
// holding the occupants of that slot. Slots currently hold exactly one player.
type Snapshot [][]string

var snapshotValidator = validator.New()

// Snapshot returns the persisted form of the roster in rank order.
func (l *League) Snapshot() Snapshot {
	out := make(Snapshot, 0, len(l.roster))
	for _, name := range l.roster {
		out = append(out, []string{name})
	}

	return out
}

// FromSnapshot rebuilds a league from its persisted form. The identifier is
// supplied by the caller because it is not part of the payload.
func FromSnapshot(data Snapshot, leagueID string) (*League, error) {
	if leagueID == "" {
		return nil, crerr.Wrap(ErrInvalidSnapshot, "league id is required")
	}
	if err := snapshotValidator.Var([][]string(data), "dive,len=1,dive,required"); err != nil {
		return nil, crerr.Wrapf(ErrInvalidSnapshot, "slot shape: %v", err)
	}

	out := &League{id: leagueID, roster: make([]string, 0, len(data))}
	for i, slot := range data {
		if err := out.AddPlayer(slot[0]); err != nil {
			return nil, crerr.Wrapf(ErrInvalidSnapshot, "slot %d: %v", i, err)
		}
	}

	return out, nil
}

// IDFromPath derives a league identifier from a snapshot path by stripping the
// .json suffix from its base name.
func IDFromPath(path string) (string, error) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, snapshotExt) {
		return "", crerr.Wrapf(ErrInvalidSnapshot, "%q does not end in %s", path, snapshotExt)
	}

	leagueID := strings.TrimSuffix(base, snapshotExt)
	if leagueID == "" {
		return "", crerr.Wrapf(ErrInvalidSnapshot, "%q has an empty league id", path)
	}

	return leagueID, nil
}

// PathFor returns the snapshot path of leagueID inside dir.
func PathFor(dir, leagueID string) string {
	return filepath.Join(dir, leagueID+snapshotExt)
}
