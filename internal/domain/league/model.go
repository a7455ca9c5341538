package league

import (
	"slices"

	crerr "github.com/cockroachdb/errors"
)

// IDGenerator creates league identifiers.
type IDGenerator interface {
	NewID() (string, error)
}

// League is a ladder of players ordered by rank; index 0 is the top of the ladder.
type League struct {
	id     string
	roster []string
}

// New creates an empty league with an identifier taken from gen.
func New(gen IDGenerator) (*League, error) {
	if gen == nil {
		return nil, crerr.New("league id generator is required")
	}

	leagueID, err := gen.NewID()
	if err != nil {
		return nil, crerr.Wrap(err, "generate league id")
	}
	if leagueID == "" {
		return nil, crerr.New("generated league id is empty")
	}

	return &League{id: leagueID, roster: make([]string, 0)}, nil
}

func (l *League) ID() string {
	return l.id
}

func (l *League) Len() int {
	return len(l.roster)
}

// Players returns the roster in rank order.
func (l *League) Players() []string {
	return slices.Clone(l.roster)
}

func (l *League) AddPlayer(name string) error {
	if name == "" {
		return crerr.WithHint(ErrEmptyPlayerName, "Player name is required")
	}
	if slices.Contains(l.roster, name) {
		return crerr.WithHintf(
			crerr.Wrapf(ErrDuplicatePlayer, "%q", name),
			"Player %s is already in the league", name,
		)
	}

	l.roster = append(l.roster, name)
	return nil
}

func (l *League) FindRank(name string) (int, error) {
	rank := slices.Index(l.roster, name)
	if rank < 0 {
		return -1, crerr.WithHintf(
			crerr.Wrapf(ErrPlayerNotFound, "%q", name),
			"Player %s is not in the league", name,
		)
	}

	return rank, nil
}

// Winner returns the player holding the top rank.
func (l *League) Winner() (string, error) {
	if len(l.roster) == 0 {
		return "", crerr.WithHint(ErrNoPlayers, "No players yet")
	}

	return l.roster[0], nil
}
