package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/statline-game/statline/internal/dependencies/clock"
	"github.com/statline-game/statline/internal/model"
	"github.com/statline-game/statline/internal/storage"
)

// Config holds session lifecycle settings
type Config struct {
	// StaleTTL is how long a session may go untouched before the sweep
	// may remove it
	StaleTTL time.Duration

	// MinAge protects young sessions: the sweep never removes a session
	// created more recently than this, even if its last access looks
	// stale (e.g. after a clock anomaly)
	MinAge time.Duration

	// SweepInterval rate-limits the sweep; calls inside the interval
	// return without touching the store
	SweepInterval time.Duration
}

// DefaultConfig returns default session lifecycle settings
func DefaultConfig() Config {
	return Config{
		StaleTTL:      72 * time.Hour,
		MinAge:        2 * time.Hour,
		SweepInterval: 5 * time.Minute,
	}
}

// Service manages game session lifecycle: creation, resolution with
// sliding expiry, and the rate-limited expiry sweep. The last-sweep
// timestamp lives on the instance, so independent services (and tests)
// never share sweep state.
type Service struct {
	store  storage.SessionStore
	clock  clock.Clock
	cfg    Config
	logger *slog.Logger

	mu        sync.Mutex
	lastSweep time.Time
}

// New creates a new session Service
func New(store storage.SessionStore, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.StaleTTL == 0 {
		cfg = DefaultConfig()
	}
	return &Service{
		store:  store,
		clock:  clk,
		cfg:    cfg,
		logger: logger,
	}
}

// Create issues a new session bound to the given target player. The
// token is an opaque UUID; the target never changes for the life of
// the session.
func (s *Service) Create(ctx context.Context, playerID model.PlayerID, mode model.GameMode) (*model.GameSession, error) {
	now := s.clock.Now()
	session := &model.GameSession{
		SessionID:    model.SessionID(uuid.NewString()),
		PlayerID:     playerID,
		GameMode:     mode,
		CreatedAt:    now,
		LastAccessed: now,
	}

	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("session created",
		slog.String("session_id", string(session.SessionID)),
		slog.String("mode", string(mode)),
	)

	return session, nil
}

// Resolve returns the target player for a session token, refreshing
// its last-access time. Unknown or expired tokens return
// model.ErrSessionNotFound, never a crash; the caller maps this to a
// "start a new game" response.
func (s *Service) Resolve(ctx context.Context, id model.SessionID) (model.PlayerID, error) {
	session, err := s.store.ResolveSession(ctx, id, s.clock.Now())
	if err != nil {
		return 0, err
	}
	return session.PlayerID, nil
}

// Sweep deletes expired sessions. It does real work at most once per
// SweepInterval; within the interval it returns immediately. Callers
// invoke it opportunistically on game start; it is advisory
// housekeeping and never fails the triggering request.
func (s *Service) Sweep(ctx context.Context) {
	now := s.clock.Now()

	s.mu.Lock()
	if !s.lastSweep.IsZero() && now.Sub(s.lastSweep) < s.cfg.SweepInterval {
		s.mu.Unlock()
		return
	}
	s.lastSweep = now
	s.mu.Unlock()

	staleBefore := now.Add(-s.cfg.StaleTTL)
	minCreatedBefore := now.Add(-s.cfg.MinAge)

	deleted, err := s.store.DeleteExpiredSessions(ctx, staleBefore, minCreatedBefore)
	if err != nil {
		s.logger.Warn("session sweep failed", slog.String("error", err.Error()))
		return
	}
	if deleted > 0 {
		s.logger.Info("session sweep completed", slog.Int64("deleted", deleted))
	}
}
