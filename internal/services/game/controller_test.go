package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/statline-game/statline/internal/dependencies/mocks"
	"github.com/statline-game/statline/internal/model"
	"github.com/statline-game/statline/internal/services/selector"
	"github.com/statline-game/statline/internal/services/session"
	"github.com/statline-game/statline/internal/services/stats"
	"github.com/statline-game/statline/internal/storage/memory"
	"github.com/statline-game/statline/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()

	logger := testutil.NopLogger()

	sel, err := selector.New(s.clock, s.random, logger)
	s.Require().NoError(err)

	sessions := session.New(s.storage, s.clock, session.DefaultConfig(), logger)
	statsService := stats.New(s.storage)

	s.controller = NewController(s.storage, sessions, sel, statsService, logger)
	s.ctx = context.Background()
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

// seedQB adds an eligible quarterback with one passing season per
// (year, team) pair
func (s *ControllerSuite) seedQB(id model.PlayerID, name, pfrID string, seasons map[int]string) {
	s.storage.SavePlayer(&model.Player{ID: id, Name: name, PfrID: pfrID, Position: model.PositionQB})
	for year, team := range seasons {
		s.storage.AddSeason(model.PassingSeason{
			PlayerID: id,
			Season:   year,
			Team:     strPtr(team),
			Yards:    intPtr(3000),
		})
	}
}

// startAgainst starts an unlimited game whose target is the player at
// the given index in the id-ordered eligible list
func (s *ControllerSuite) startAgainst(idx int) *StartedGame {
	s.random.QueueIntn(idx)
	started, err := s.controller.StartRandom(s.ctx)
	s.Require().NoError(err)
	return started
}

// Start tests

func (s *ControllerSuite) TestStartDailyBindsDeterministicPick() {
	s.seedQB(1, "Tom Brady", "BradTo00", map[int]string{2001: "NWE"})
	s.seedQB(2, "Peyton Manning", "MannPe00", map[int]string{2001: "IND"})

	first, err := s.controller.StartDaily(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.ModeDaily, first.Session.GameMode)

	// Same day, same pool: every started game targets the same player
	second, err := s.controller.StartDaily(s.ctx)
	s.Require().NoError(err)
	s.Equal(first.Session.PlayerID, second.Session.PlayerID)
	s.NotEqual(first.Session.SessionID, second.Session.SessionID)
}

func (s *ControllerSuite) TestStartRandomUsesRandomSource() {
	s.seedQB(1, "Tom Brady", "BradTo00", map[int]string{2001: "NWE"})
	s.seedQB(2, "Peyton Manning", "MannPe00", map[int]string{2001: "IND"})

	started := s.startAgainst(1)
	s.Equal(model.PlayerID(2), started.Session.PlayerID)
	s.Equal(model.ModeUnlimited, started.Session.GameMode)
}

func (s *ControllerSuite) TestStartReturnsSeasonsNotIdentity() {
	s.seedQB(1, "Tom Brady", "BradTo00", map[int]string{2001: "NWE", 2002: "NWE"})

	started := s.startAgainst(0)
	s.Equal(model.PositionQB, started.Position)
	s.Len(started.Seasons, 2)

	// Seasons come back ordered by year
	s.Equal(2001, started.Seasons[0].SeasonYear())
	s.Equal(2002, started.Seasons[1].SeasonYear())
}

func (s *ControllerSuite) TestStartEmptyPool() {
	_, err := s.controller.StartDaily(s.ctx)
	s.ErrorIs(err, model.ErrNoEligiblePlayers)

	_, err = s.controller.StartRandom(s.ctx)
	s.ErrorIs(err, model.ErrNoEligiblePlayers)
}

func (s *ControllerSuite) TestStartSkipsPlayersWithoutSeasons() {
	s.storage.SavePlayer(&model.Player{ID: 1, Name: "No Stats", PfrID: "NoSt00", Position: model.PositionQB})
	s.seedQB(2, "Tom Brady", "BradTo00", map[int]string{2001: "NWE"})

	// Index 0 of the eligible list is player 2; player 1 is not in it
	started := s.startAgainst(0)
	s.Equal(model.PlayerID(2), started.Session.PlayerID)
}

// EvaluateGuess tests

func (s *ControllerSuite) TestCorrectGuessHasNoFeedback() {
	s.seedQB(1, "Tom Brady", "BradTo00", map[int]string{2001: "NWE"})

	started := s.startAgainst(0)

	outcome, err := s.controller.EvaluateGuess(s.ctx, started.Session.SessionID, "Tom Brady")
	s.Require().NoError(err)
	s.True(outcome.Correct)
	s.Equal("BradTo00", outcome.GuessedPfrID)
	s.Nil(outcome.Feedback)
}

func (s *ControllerSuite) TestGuessMatchingIsCaseInsensitive() {
	s.seedQB(1, "Tom Brady", "BradTo00", map[int]string{2001: "NWE"})

	started := s.startAgainst(0)

	outcome, err := s.controller.EvaluateGuess(s.ctx, started.Session.SessionID, "tom BRADY")
	s.Require().NoError(err)
	s.True(outcome.Correct)
}

func (s *ControllerSuite) TestDuplicateNamesResolveToLowestID() {
	s.seedQB(5, "Adrian Peterson", "PeteAd01", map[int]string{2007: "MIN"})
	s.seedQB(3, "Adrian Peterson", "PeteAd00", map[int]string{2002: "CHI"})

	// Target is id 3 (index 0 in id order); the name resolves to id 3 too
	started := s.startAgainst(0)

	outcome, err := s.controller.EvaluateGuess(s.ctx, started.Session.SessionID, "Adrian Peterson")
	s.Require().NoError(err)
	s.True(outcome.Correct)
	s.Equal("PeteAd00", outcome.GuessedPfrID)
}

func (s *ControllerSuite) TestUnknownGuessName() {
	s.seedQB(1, "Tom Brady", "BradTo00", map[int]string{2001: "NWE"})

	started := s.startAgainst(0)

	_, err := s.controller.EvaluateGuess(s.ctx, started.Session.SessionID, "Nobody Atall")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	// The miss does not kill the session
	outcome, err := s.controller.EvaluateGuess(s.ctx, started.Session.SessionID, "Tom Brady")
	s.Require().NoError(err)
	s.True(outcome.Correct)
}

func (s *ControllerSuite) TestUnknownSession() {
	s.seedQB(1, "Tom Brady", "BradTo00", map[int]string{2001: "NWE"})

	_, err := s.controller.EvaluateGuess(s.ctx, "no-such-session", "Tom Brady")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ControllerSuite) TestWrongGuessEraSameWithinWindow() {
	s.seedQB(1, "Target QB", "TargQb00", map[int]string{2000: "NWE"})
	s.seedQB(2, "Guess QB", "GuesQb00", map[int]string{2002: "DAL"})

	started := s.startAgainst(0)

	outcome, err := s.controller.EvaluateGuess(s.ctx, started.Session.SessionID, "Guess QB")
	s.Require().NoError(err)
	s.False(outcome.Correct)
	s.Equal("GuesQb00", outcome.GuessedPfrID)
	s.Require().NotNil(outcome.Feedback)
	s.Equal(model.EraSame, outcome.Feedback.Era)
}

func (s *ControllerSuite) TestWrongGuessEraFarBeyondWindow() {
	s.seedQB(1, "Target QB", "TargQb00", map[int]string{2000: "NWE"})
	s.seedQB(2, "Guess QB", "GuesQb00", map[int]string{2003: "DAL"})

	started := s.startAgainst(0)

	outcome, err := s.controller.EvaluateGuess(s.ctx, started.Session.SessionID, "Guess QB")
	s.Require().NoError(err)
	s.Equal(model.EraFar, outcome.Feedback.Era)
}

func (s *ControllerSuite) TestEraComparesStartYearsOnly() {
	// Careers overlap heavily but start years are 3 apart
	s.seedQB(1, "Target QB", "TargQb00", map[int]string{2000: "NWE", 2015: "NWE"})
	s.seedQB(2, "Guess QB", "GuesQb00", map[int]string{2003: "DAL", 2015: "DAL"})

	started := s.startAgainst(0)

	outcome, err := s.controller.EvaluateGuess(s.ctx, started.Session.SessionID, "Guess QB")
	s.Require().NoError(err)
	s.Equal(model.EraFar, outcome.Feedback.Era)
}

func (s *ControllerSuite) TestEraFarWhenGuessHasNoSeasons() {
	s.seedQB(1, "Target QB", "TargQb00", map[int]string{2000: "NWE"})
	s.storage.SavePlayer(&model.Player{ID: 2, Name: "No Stats", PfrID: "NoSt00", Position: model.PositionQB})

	started := s.startAgainst(0)

	outcome, err := s.controller.EvaluateGuess(s.ctx, started.Session.SessionID, "No Stats")
	s.Require().NoError(err)
	s.Equal(model.EraFar, outcome.Feedback.Era)
	s.False(outcome.Feedback.TeamsOverlap)
}

func (s *ControllerSuite) TestWrongGuessTeamsOverlap() {
	s.seedQB(1, "Target QB", "TargQb00", map[int]string{2000: "NWE", 2005: "IND"})
	s.seedQB(2, "Guess QB", "GuesQb00", map[int]string{2001: "IND"})

	started := s.startAgainst(0)

	outcome, err := s.controller.EvaluateGuess(s.ctx, started.Session.SessionID, "Guess QB")
	s.Require().NoError(err)
	s.True(outcome.Feedback.TeamsOverlap)
}

func (s *ControllerSuite) TestWrongGuessNoTeamsOverlap() {
	s.seedQB(1, "Target QB", "TargQb00", map[int]string{2000: "NWE"})
	s.seedQB(2, "Guess QB", "GuesQb00", map[int]string{2001: "DAL"})

	started := s.startAgainst(0)

	outcome, err := s.controller.EvaluateGuess(s.ctx, started.Session.SessionID, "Guess QB")
	s.Require().NoError(err)
	s.False(outcome.Feedback.TeamsOverlap)
}

func (s *ControllerSuite) TestWrongGuessNeverCarriesTargetIdentity() {
	s.seedQB(1, "Target QB", "TargQb00", map[int]string{2000: "NWE"})
	s.seedQB(2, "Guess QB", "GuesQb00", map[int]string{2010: "DAL"})

	started := s.startAgainst(0)

	outcome, err := s.controller.EvaluateGuess(s.ctx, started.Session.SessionID, "Guess QB")
	s.Require().NoError(err)
	s.False(outcome.Correct)
	s.Equal("GuesQb00", outcome.GuessedPfrID)
	s.NotEqual("TargQb00", outcome.GuessedPfrID)
}

// Reveal tests

func (s *ControllerSuite) TestRevealReturnsTargetIdentity() {
	s.seedQB(1, "Tom Brady", "BradTo00", map[int]string{2001: "NWE"})

	started := s.startAgainst(0)

	identity, err := s.controller.Reveal(s.ctx, started.Session.SessionID)
	s.Require().NoError(err)
	s.Equal("Tom Brady", identity.Name)
	s.Equal("BradTo00", identity.PfrID)
	s.Equal(model.PositionQB, identity.Position)
}

func (s *ControllerSuite) TestRevealKeepsSessionAlive() {
	s.seedQB(1, "Tom Brady", "BradTo00", map[int]string{2001: "NWE"})

	started := s.startAgainst(0)

	_, err := s.controller.Reveal(s.ctx, started.Session.SessionID)
	s.Require().NoError(err)

	// Reveal is not a terminal operation; the session still resolves
	_, err = s.controller.Reveal(s.ctx, started.Session.SessionID)
	s.NoError(err)
}

func (s *ControllerSuite) TestRevealUnknownSession() {
	_, err := s.controller.Reveal(s.ctx, "no-such-session")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Autocomplete tests

func (s *ControllerSuite) TestAutocompleteMatchesSubstring() {
	s.seedQB(1, "Tom Brady", "BradTo00", map[int]string{2001: "NWE"})
	s.seedQB(2, "Marcia Brady", "BradMa00", map[int]string{2005: "DAL"})
	s.seedQB(3, "Peyton Manning", "MannPe00", map[int]string{2001: "IND"})

	names, err := s.controller.AutocompleteNames(s.ctx, "brady")
	s.Require().NoError(err)
	s.ElementsMatch([]string{"Tom Brady", "Marcia Brady"}, names)
}

func (s *ControllerSuite) TestAutocompleteOnlyEligiblePlayers() {
	s.seedQB(1, "Tom Brady", "BradTo00", map[int]string{2001: "NWE"})
	s.storage.SavePlayer(&model.Player{ID: 2, Name: "Tim Brady", PfrID: "BradTi00", Position: model.PositionQB})

	names, err := s.controller.AutocompleteNames(s.ctx, "brady")
	s.Require().NoError(err)
	s.Equal([]string{"Tom Brady"}, names)
}

func (s *ControllerSuite) TestAutocompleteCapsAtTenSuggestions() {
	for i := 1; i <= 15; i++ {
		s.seedQB(model.PlayerID(i), "Smith "+string(rune('A'+i-1)), "Smit00", map[int]string{2000 + i: "DAL"})
	}

	names, err := s.controller.AutocompleteNames(s.ctx, "smith")
	s.Require().NoError(err)
	s.Len(names, 10)
}

func (s *ControllerSuite) TestAutocompleteEmptyQuery() {
	s.seedQB(1, "Tom Brady", "BradTo00", map[int]string{2001: "NWE"})

	names, err := s.controller.AutocompleteNames(s.ctx, "")
	s.Require().NoError(err)
	s.NotNil(names)
	s.Empty(names)
}

func (s *ControllerSuite) TestAutocompleteOversizedQuery() {
	s.seedQB(1, "Tom Brady", "BradTo00", map[int]string{2001: "NWE"})

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}

	names, err := s.controller.AutocompleteNames(s.ctx, string(long))
	s.Require().NoError(err)
	s.Empty(names)
}

func (s *ControllerSuite) TestAutocompleteNoMatches() {
	s.seedQB(1, "Tom Brady", "BradTo00", map[int]string{2001: "NWE"})

	names, err := s.controller.AutocompleteNames(s.ctx, "zzz")
	s.Require().NoError(err)
	s.NotNil(names)
	s.Empty(names)
}
