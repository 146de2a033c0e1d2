package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/statline-game/statline/internal/model"
	"github.com/statline-game/statline/internal/storage"
)

// Storage is a Redis-backed implementation of the session store.
// Expiry is TTL-driven: every save and resolve re-sets the value with
// a fresh TTL, and Redis drops stale sessions on its own, so the sweep
// has nothing to do here.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis session store
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis session store with an existing client
// (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.SessionStore = (*Storage)(nil)

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(session.SessionID), data, s.cfg.SessionTTL).Err()
}

func (s *Storage) ResolveSession(ctx context.Context, id model.SessionID, now time.Time) (*model.GameSession, error) {
	key := sessionKey(id)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}

	// Re-set to slide the TTL. If the key expired between the GET and
	// here, the SET recreates a session we just proved valid, which is
	// the same outcome as resolving a moment earlier.
	session.LastAccessed = now
	refreshed, err := json.Marshal(&session)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, key, refreshed, s.cfg.SessionTTL).Err(); err != nil {
		return nil, err
	}

	return &session, nil
}

func (s *Storage) DeleteExpiredSessions(ctx context.Context, staleBefore, minCreatedBefore time.Time) (int64, error) {
	// Redis evicts sessions via TTL; there is nothing to delete by hand
	return 0, nil
}
