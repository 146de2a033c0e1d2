package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/statline-game/statline/internal/model"
	"github.com/statline-game/statline/internal/storage"
)

// Storage is an in-memory implementation of the storage interfaces,
// used in tests and for local development without a database
type Storage struct {
	mu sync.RWMutex

	players   map[model.PlayerID]*model.Player
	passing   map[model.PlayerID][]model.PassingSeason
	receiving map[model.PlayerID][]model.ReceivingSeason
	rushing   map[model.PlayerID][]model.RushingSeason
	sessions  map[model.SessionID]*model.GameSession
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:   make(map[model.PlayerID]*model.Player),
		passing:   make(map[model.PlayerID][]model.PassingSeason),
		receiving: make(map[model.PlayerID][]model.ReceivingSeason),
		rushing:   make(map[model.PlayerID][]model.RushingSeason),
		sessions:  make(map[model.SessionID]*model.GameSession),
	}
}

// Ensure Storage implements the combined interface
var _ storage.Store = (*Storage)(nil)

// Seeding helpers (not part of the storage interfaces; the player data
// is read-only at runtime and loaded out of band)

// SavePlayer adds a player to the reference data
func (s *Storage) SavePlayer(p *model.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.ID] = p
}

// AddSeason adds a season row to the stat table matching its type
func (s *Storage) AddSeason(rec model.SeasonRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r := rec.(type) {
	case model.PassingSeason:
		s.passing[r.PlayerID] = append(s.passing[r.PlayerID], r)
	case model.ReceivingSeason:
		s.receiving[r.PlayerID] = append(s.receiving[r.PlayerID], r)
	case model.RushingSeason:
		s.rushing[r.PlayerID] = append(s.rushing[r.PlayerID], r)
	}
}

// Player operations

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Lowest id wins on duplicate names
	var match *model.Player
	for _, p := range s.players {
		if strings.EqualFold(p.Name, name) && (match == nil || p.ID < match.ID) {
			match = p
		}
	}
	if match == nil {
		return nil, model.ErrPlayerNotFound
	}
	return match, nil
}

func (s *Storage) ListEligiblePlayers(ctx context.Context) ([]model.EligiblePlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	eligible := make([]model.EligiblePlayer, 0, len(s.players))
	for id, p := range s.players {
		if s.hasSeasons(id) {
			eligible = append(eligible, model.EligiblePlayer{ID: id, Position: p.Position})
		}
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].ID < eligible[j].ID })
	return eligible, nil
}

func (s *Storage) hasSeasons(id model.PlayerID) bool {
	return len(s.passing[id]) > 0 || len(s.receiving[id]) > 0 || len(s.rushing[id]) > 0
}

func (s *Storage) SeasonsFor(ctx context.Context, id model.PlayerID, pos model.Position) ([]model.SeasonRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []model.SeasonRecord
	switch pos {
	case model.PositionQB:
		for _, r := range s.passing[id] {
			records = append(records, r)
		}
	case model.PositionWR:
		for _, r := range s.receiving[id] {
			records = append(records, r)
		}
	case model.PositionRB:
		for _, r := range s.rushing[id] {
			records = append(records, r)
		}
	default:
		return nil, model.ErrUnknownPosition
	}

	sortBySeason(records)
	return records, nil
}

func (s *Storage) AllSeasonsFor(ctx context.Context, id model.PlayerID) ([]model.SeasonRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []model.SeasonRecord
	for _, r := range s.passing[id] {
		records = append(records, r)
	}
	for _, r := range s.receiving[id] {
		records = append(records, r)
	}
	for _, r := range s.rushing[id] {
		records = append(records, r)
	}
	sortBySeason(records)
	return records, nil
}

func (s *Storage) SearchNames(ctx context.Context, query string, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	seen := make(map[string]bool)
	var names []string
	for id, p := range s.players {
		if !s.hasSeasons(id) || seen[p.Name] {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), q) {
			seen[p.Name] = true
			names = append(names, p.Name)
		}
	}
	sort.Strings(names)
	if len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

func sortBySeason(records []model.SeasonRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].SeasonYear() < records[j].SeasonYear()
	})
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.SessionID] = &copied
	return nil
}

func (s *Storage) ResolveSession(ctx context.Context, id model.SessionID, now time.Time) (*model.GameSession, error) {
	// Lookup and refresh happen under one lock hold, so a sweep can
	// never interleave between them
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	session.LastAccessed = now
	copied := *session
	return &copied, nil
}

func (s *Storage) DeleteExpiredSessions(ctx context.Context, staleBefore, minCreatedBefore time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, session := range s.sessions {
		if session.LastAccessed.Before(staleBefore) && session.CreatedAt.Before(minCreatedBefore) {
			delete(s.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}
