package stats

import (
	"context"

	"github.com/statline-game/statline/internal/model"
	"github.com/statline-game/statline/internal/storage"
)

// Service derives a player's era and team set from their season rows.
// Both derivations scan all three stat tables; a player populates only
// one today, but the union keeps the math right if that ever changes.
type Service struct {
	players storage.PlayerStore
}

// New creates a new stats Service
func New(players storage.PlayerStore) *Service {
	return &Service{players: players}
}

// EraOf returns the player's first-to-last season range, or nil when
// the player has no season rows anywhere
func (s *Service) EraOf(ctx context.Context, id model.PlayerID) (*model.Era, error) {
	records, err := s.players.AllSeasonsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	era := &model.Era{
		Start: records[0].SeasonYear(),
		End:   records[0].SeasonYear(),
	}
	for _, r := range records[1:] {
		year := r.SeasonYear()
		if year < era.Start {
			era.Start = year
		}
		if year > era.End {
			era.End = year
		}
	}
	return era, nil
}

// TeamsOf returns the distinct team codes across the player's season
// rows, excluding seasons with no recorded team
func (s *Service) TeamsOf(ctx context.Context, id model.PlayerID) (map[string]bool, error) {
	records, err := s.players.AllSeasonsFor(ctx, id)
	if err != nil {
		return nil, err
	}

	teams := make(map[string]bool)
	for _, r := range records {
		if team := r.TeamCode(); team != "" {
			teams[team] = true
		}
	}
	return teams, nil
}

// Overlap reports whether two team sets share at least one team
func Overlap(a, b map[string]bool) bool {
	for team := range a {
		if b[team] {
			return true
		}
	}
	return false
}
