package league

import "errors"

var (
	ErrEmptyPlayerName    = errors.New("player name is required")
	ErrDuplicatePlayer    = errors.New("duplicate player in league")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrSamePlayer         = errors.New("winner and loser must differ")
	ErrNoPlayers          = errors.New("league has no players")
	ErrInvalidSnapshot    = errors.New("invalid league snapshot")
	ErrStorageUnavailable = errors.New("league storage unavailable")
)
