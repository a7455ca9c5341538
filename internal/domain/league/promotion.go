package league

import crerr "github.com/cockroachdb/errors"

// RecordWin applies a match result. A winner ranked below the loser takes the
// loser's slot and the loser drops into the winner's old slot; no other rank
// moves. A win by the higher ranked player leaves the ladder as it is.
func (l *League) RecordWin(winner, loser string) error {
	if winner == loser {
		return crerr.WithHint(
			crerr.Wrapf(ErrSamePlayer, "%q", winner),
			"A player cannot record a win against themselves",
		)
	}

	winnerRank, err := l.FindRank(winner)
	if err != nil {
		return err
	}
	loserRank, err := l.FindRank(loser)
	if err != nil {
		return err
	}

	if winnerRank > loserRank {
		l.roster[winnerRank], l.roster[loserRank] = l.roster[loserRank], l.roster[winnerRank]
	}

	return nil
}
