package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/statline-game/statline/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func strPtr(v string) *string { return &v }

// Player tests

func (s *StorageSuite) TestGetPlayer() {
	s.storage.SavePlayer(&model.Player{ID: 1, Name: "Tom Brady", PfrID: "BradTo00", Position: model.PositionQB})

	player, err := s.storage.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("Tom Brady", player.Name)
	s.Equal(model.PositionQB, player.Position)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, 99)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerByNameIgnoresCase() {
	s.storage.SavePlayer(&model.Player{ID: 1, Name: "Tom Brady", PfrID: "BradTo00", Position: model.PositionQB})

	player, err := s.storage.GetPlayerByName(s.ctx, "TOM brady")
	s.Require().NoError(err)
	s.Equal(model.PlayerID(1), player.ID)
}

func (s *StorageSuite) TestGetPlayerByNameLowestIDWins() {
	s.storage.SavePlayer(&model.Player{ID: 7, Name: "Adrian Peterson", PfrID: "PeteAd01", Position: model.PositionRB})
	s.storage.SavePlayer(&model.Player{ID: 3, Name: "Adrian Peterson", PfrID: "PeteAd00", Position: model.PositionRB})

	player, err := s.storage.GetPlayerByName(s.ctx, "Adrian Peterson")
	s.Require().NoError(err)
	s.Equal(model.PlayerID(3), player.ID)
}

func (s *StorageSuite) TestGetPlayerByNameNotFound() {
	_, err := s.storage.GetPlayerByName(s.ctx, "Nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Eligibility tests

func (s *StorageSuite) TestListEligiblePlayersRequiresSeasons() {
	s.storage.SavePlayer(&model.Player{ID: 1, Name: "Has Stats", PfrID: "HasSt00", Position: model.PositionQB})
	s.storage.SavePlayer(&model.Player{ID: 2, Name: "No Stats", PfrID: "NoSt00", Position: model.PositionWR})
	s.storage.AddSeason(model.PassingSeason{PlayerID: 1, Season: 2001})

	eligible, err := s.storage.ListEligiblePlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(eligible, 1)
	s.Equal(model.PlayerID(1), eligible[0].ID)
}

func (s *StorageSuite) TestListEligiblePlayersOrderedByID() {
	s.storage.SavePlayer(&model.Player{ID: 3, Name: "Three", PfrID: "Thre00", Position: model.PositionRB})
	s.storage.SavePlayer(&model.Player{ID: 1, Name: "One", PfrID: "One00", Position: model.PositionQB})
	s.storage.SavePlayer(&model.Player{ID: 2, Name: "Two", PfrID: "Two00", Position: model.PositionWR})
	s.storage.AddSeason(model.RushingSeason{PlayerID: 3, Season: 2001})
	s.storage.AddSeason(model.PassingSeason{PlayerID: 1, Season: 2001})
	s.storage.AddSeason(model.ReceivingSeason{PlayerID: 2, Season: 2001})

	eligible, err := s.storage.ListEligiblePlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(eligible, 3)
	s.Equal(model.PlayerID(1), eligible[0].ID)
	s.Equal(model.PlayerID(2), eligible[1].ID)
	s.Equal(model.PlayerID(3), eligible[2].ID)
}

// Season tests

func (s *StorageSuite) TestSeasonsForOrderedByYear() {
	s.storage.AddSeason(model.PassingSeason{PlayerID: 1, Season: 2005})
	s.storage.AddSeason(model.PassingSeason{PlayerID: 1, Season: 2001})
	s.storage.AddSeason(model.PassingSeason{PlayerID: 1, Season: 2003})

	records, err := s.storage.SeasonsFor(s.ctx, 1, model.PositionQB)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal(2001, records[0].SeasonYear())
	s.Equal(2003, records[1].SeasonYear())
	s.Equal(2005, records[2].SeasonYear())
}

func (s *StorageSuite) TestSeasonsForReadsPositionTable() {
	s.storage.AddSeason(model.PassingSeason{PlayerID: 1, Season: 2001})
	s.storage.AddSeason(model.RushingSeason{PlayerID: 1, Season: 2002})

	records, err := s.storage.SeasonsFor(s.ctx, 1, model.PositionRB)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(model.PositionRB, records[0].RecordPosition())
}

func (s *StorageSuite) TestSeasonsForUnknownPosition() {
	_, err := s.storage.SeasonsFor(s.ctx, 1, model.Position("K"))
	s.ErrorIs(err, model.ErrUnknownPosition)
}

func (s *StorageSuite) TestAllSeasonsForUnionsTables() {
	s.storage.AddSeason(model.PassingSeason{PlayerID: 1, Season: 2003})
	s.storage.AddSeason(model.RushingSeason{PlayerID: 1, Season: 2001})
	s.storage.AddSeason(model.ReceivingSeason{PlayerID: 1, Season: 2002})

	records, err := s.storage.AllSeasonsFor(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal(2001, records[0].SeasonYear())
	s.Equal(2002, records[1].SeasonYear())
	s.Equal(2003, records[2].SeasonYear())
}

// SearchNames tests

func (s *StorageSuite) TestSearchNamesSubstringMatch() {
	s.storage.SavePlayer(&model.Player{ID: 1, Name: "Tom Brady", PfrID: "BradTo00", Position: model.PositionQB})
	s.storage.SavePlayer(&model.Player{ID: 2, Name: "Peyton Manning", PfrID: "MannPe00", Position: model.PositionQB})
	s.storage.AddSeason(model.PassingSeason{PlayerID: 1, Season: 2001, Team: strPtr("NWE")})
	s.storage.AddSeason(model.PassingSeason{PlayerID: 2, Season: 2001, Team: strPtr("IND")})

	names, err := s.storage.SearchNames(s.ctx, "man", 10)
	s.Require().NoError(err)
	s.Equal([]string{"Peyton Manning"}, names)
}

func (s *StorageSuite) TestSearchNamesExcludesIneligible() {
	s.storage.SavePlayer(&model.Player{ID: 1, Name: "Tom Brady", PfrID: "BradTo00", Position: model.PositionQB})

	names, err := s.storage.SearchNames(s.ctx, "brady", 10)
	s.Require().NoError(err)
	s.Empty(names)
}

func (s *StorageSuite) TestSearchNamesRespectsLimit() {
	for i := 1; i <= 5; i++ {
		id := model.PlayerID(i)
		s.storage.SavePlayer(&model.Player{ID: id, Name: "Smith " + string(rune('A'+i-1)), PfrID: "Smit00", Position: model.PositionQB})
		s.storage.AddSeason(model.PassingSeason{PlayerID: id, Season: 2001})
	}

	names, err := s.storage.SearchNames(s.ctx, "smith", 3)
	s.Require().NoError(err)
	s.Len(names, 3)
}

// Session tests

func (s *StorageSuite) TestSaveAndResolveSession() {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	session := &model.GameSession{
		SessionID:    "abc",
		PlayerID:     42,
		GameMode:     model.ModeDaily,
		CreatedAt:    now,
		LastAccessed: now,
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	later := now.Add(time.Hour)
	resolved, err := s.storage.ResolveSession(s.ctx, "abc", later)
	s.Require().NoError(err)
	s.Equal(model.PlayerID(42), resolved.PlayerID)
	s.Equal(later, resolved.LastAccessed)
	s.Equal(now, resolved.CreatedAt)
}

func (s *StorageSuite) TestResolveSessionNotFound() {
	_, err := s.storage.ResolveSession(s.ctx, "nope", time.Now())
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteExpiredSessionsDualCondition() {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	// Stale and old: deleted
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.GameSession{
		SessionID:    "stale-old",
		PlayerID:     1,
		CreatedAt:    now.Add(-100 * time.Hour),
		LastAccessed: now.Add(-80 * time.Hour),
	}))
	// Stale but young: kept
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.GameSession{
		SessionID:    "stale-young",
		PlayerID:     2,
		CreatedAt:    now.Add(-time.Hour),
		LastAccessed: now.Add(-80 * time.Hour),
	}))
	// Fresh: kept
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.GameSession{
		SessionID:    "fresh",
		PlayerID:     3,
		CreatedAt:    now.Add(-100 * time.Hour),
		LastAccessed: now.Add(-time.Hour),
	}))

	staleBefore := now.Add(-72 * time.Hour)
	minCreatedBefore := now.Add(-2 * time.Hour)

	deleted, err := s.storage.DeleteExpiredSessions(s.ctx, staleBefore, minCreatedBefore)
	s.Require().NoError(err)
	s.Equal(int64(1), deleted)

	_, err = s.storage.ResolveSession(s.ctx, "stale-old", now)
	s.ErrorIs(err, model.ErrSessionNotFound)
	_, err = s.storage.ResolveSession(s.ctx, "stale-young", now)
	s.NoError(err)
	_, err = s.storage.ResolveSession(s.ctx, "fresh", now)
	s.NoError(err)
}
