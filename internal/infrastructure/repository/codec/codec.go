package codec

import (
	"errors"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/ladder-league/internal/domain/league"
)

// ErrMalformedJSON marks payloads that are not JSON at all. Well-formed JSON of
// the wrong shape carries only league.ErrInvalidSnapshot.
var ErrMalformedJSON = errors.New("malformed json")

// Encode renders the league snapshot as compact JSON, e.g. [["Player1"],["Player2"]].
func Encode(l *league.League) ([]byte, error) {
	raw, err := sonic.Marshal(l.Snapshot())
	if err != nil {
		return nil, crerr.Wrap(err, "marshal league snapshot")
	}

	return raw, nil
}

// Decode parses a JSON snapshot into a league carrying leagueID.
func Decode(raw []byte, leagueID string) (*league.League, error) {
	if !sonic.Valid(raw) {
		err := crerr.Mark(crerr.New("league snapshot is not valid json"), ErrMalformedJSON)
		return nil, crerr.Mark(err, league.ErrInvalidSnapshot)
	}

	var data league.Snapshot
	if err := sonic.Unmarshal(raw, &data); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "unmarshal league snapshot"), league.ErrInvalidSnapshot)
	}

	return league.FromSnapshot(data, leagueID)
}

// WithLoadHint attaches the user-facing text for a Decode failure of the save
// stored at path.
func WithLoadHint(err error, path string) error {
	if crerr.Is(err, ErrMalformedJSON) {
		return crerr.WithHintf(err, "File is not valid JSON: %s", path)
	}
	return crerr.WithHintf(err, "File is not a valid league save: %s", path)
}
