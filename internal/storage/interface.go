package storage

import (
	"context"
	"time"

	"github.com/statline-game/statline/internal/model"
)

// PlayerStore provides read-only access to player reference data and
// season statistics. Population of this data is handled out of band.
type PlayerStore interface {
	// GetPlayer looks a player up by id
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// GetPlayerByName resolves a case-insensitive exact name match.
	// When several players share a name the lowest id wins, so repeated
	// lookups of the same name always resolve to the same player.
	GetPlayerByName(ctx context.Context, name string) (*model.Player, error)

	// ListEligiblePlayers returns every player with at least one season
	// row in any stat table, ordered by id
	ListEligiblePlayers(ctx context.Context) ([]model.EligiblePlayer, error)

	// SeasonsFor returns the season rows for a player from the stat
	// table matching the given position, ordered by season.
	// Returns model.ErrUnknownPosition for an unrecognized position.
	SeasonsFor(ctx context.Context, id model.PlayerID, pos model.Position) ([]model.SeasonRecord, error)

	// AllSeasonsFor returns a player's season rows from all three stat
	// tables. A player normally populates only one, but the union keeps
	// era/team derivation correct if that ever changes.
	AllSeasonsFor(ctx context.Context, id model.PlayerID) ([]model.SeasonRecord, error)

	// SearchNames returns up to limit distinct names of eligible players
	// matching the query as a case-insensitive substring, ordered by name
	SearchNames(ctx context.Context, query string, limit int) ([]string, error)
}

// SessionStore persists game sessions
type SessionStore interface {
	// SaveSession persists a newly created session
	SaveSession(ctx context.Context, session *model.GameSession) error

	// ResolveSession returns the session for a token and refreshes its
	// LastAccessed to now in the same step, so a concurrent sweep can
	// never delete the session between lookup and refresh.
	// Returns model.ErrSessionNotFound for unknown or expired tokens.
	ResolveSession(ctx context.Context, id model.SessionID, now time.Time) (*model.GameSession, error)

	// DeleteExpiredSessions removes sessions with LastAccessed before
	// staleBefore AND CreatedAt before minCreatedBefore, returning the
	// number deleted. Concurrent sweeps race harmlessly.
	DeleteExpiredSessions(ctx context.Context, staleBefore, minCreatedBefore time.Time) (int64, error)
}

// Store combines both interfaces for backends that serve everything
type Store interface {
	PlayerStore
	SessionStore
}
