package usecase

import (
	"errors"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/ladder-league/internal/domain/league"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrInvalidFormat         = errors.New("invalid format")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// errorKinds maps domain sentinels onto the kinds callers branch on.
var errorKinds = []struct {
	domain error
	kind   error
}{
	{domain: league.ErrEmptyPlayerName, kind: ErrInvalidInput},
	{domain: league.ErrDuplicatePlayer, kind: ErrInvalidInput},
	{domain: league.ErrSamePlayer, kind: ErrInvalidInput},
	{domain: league.ErrNoPlayers, kind: ErrInvalidInput},
	{domain: league.ErrPlayerNotFound, kind: ErrNotFound},
	{domain: league.ErrInvalidSnapshot, kind: ErrInvalidFormat},
	{domain: league.ErrStorageUnavailable, kind: ErrDependencyUnavailable},
}

// MarkKind wraps err with msg and marks it with the kind of the first domain
// sentinel it carries. Errors with no known sentinel are only wrapped.
func MarkKind(err error, msg string) error {
	if err == nil {
		return nil
	}

	wrapped := crerr.Wrap(err, msg)
	for _, item := range errorKinds {
		if crerr.Is(err, item.domain) {
			return crerr.Mark(wrapped, item.kind)
		}
	}
	return wrapped
}

// IsRecoverable reports whether err is a caller-visible condition that an
// interactive session reports and survives.
func IsRecoverable(err error) bool {
	return crerr.IsAny(err, ErrInvalidInput, ErrNotFound, ErrInvalidFormat, ErrDependencyUnavailable)
}
