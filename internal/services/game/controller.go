package game

import (
	"context"
	"log/slog"

	"github.com/statline-game/statline/internal/model"
	"github.com/statline-game/statline/internal/services/selector"
	"github.com/statline-game/statline/internal/services/session"
	"github.com/statline-game/statline/internal/services/stats"
	"github.com/statline-game/statline/internal/storage"
)

// Era feedback is "same" when the start years are within this many
// years of each other, inclusive. End years are not compared.
const eraStartWindow = 2

// Autocomplete limits
const (
	maxQueryLength = 100
	maxSuggestions = 10
)

// StartedGame is what a client gets back when a game begins: a session
// token plus the anonymized stat line to guess from. The target's
// identity stays server-side.
type StartedGame struct {
	Session  *model.GameSession
	Position model.Position
	Seasons  []model.SeasonRecord
}

// Controller runs the guessing game: it starts sessions against a
// selected target and evaluates guesses without leaking the answer
type Controller struct {
	players  storage.PlayerStore
	sessions *session.Service
	selector *selector.Service
	stats    *stats.Service
	logger   *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	players storage.PlayerStore,
	sessions *session.Service,
	sel *selector.Service,
	statsService *stats.Service,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		players:  players,
		sessions: sessions,
		selector: sel,
		stats:    statsService,
		logger:   logger,
	}
}

// StartDaily begins a game against today's deterministic pick
func (c *Controller) StartDaily(ctx context.Context) (*StartedGame, error) {
	return c.start(ctx, model.ModeDaily)
}

// StartRandom begins a game against a uniformly random pick
func (c *Controller) StartRandom(ctx context.Context) (*StartedGame, error) {
	return c.start(ctx, model.ModeUnlimited)
}

func (c *Controller) start(ctx context.Context, mode model.GameMode) (*StartedGame, error) {
	// Opportunistic housekeeping; rate-limited and never fatal
	c.sessions.Sweep(ctx)

	eligible, err := c.players.ListEligiblePlayers(ctx)
	if err != nil {
		return nil, err
	}

	var target model.EligiblePlayer
	if mode == model.ModeDaily {
		target, err = c.selector.PickDaily(eligible)
	} else {
		target, err = c.selector.PickRandom(eligible)
	}
	if err != nil {
		return nil, err
	}

	sess, err := c.sessions.Create(ctx, target.ID, mode)
	if err != nil {
		return nil, err
	}

	seasons, err := c.players.SeasonsFor(ctx, target.ID, target.Position)
	if err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("session_id", string(sess.SessionID)),
		slog.String("mode", string(mode)),
		slog.String("position", string(target.Position)),
	)

	return &StartedGame{
		Session:  sess,
		Position: target.Position,
		Seasons:  seasons,
	}, nil
}

// EvaluateGuess resolves a free-text guess against a session's target.
// A correct guess short-circuits with no feedback computed; an
// incorrect one returns era and team-overlap signals derived from both
// players, but nothing that identifies the target.
func (c *Controller) EvaluateGuess(ctx context.Context, sessionID model.SessionID, guessName string) (*model.GuessOutcome, error) {
	targetID, err := c.sessions.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	guessed, err := c.players.GetPlayerByName(ctx, guessName)
	if err != nil {
		// A miss leaves the session untouched; the player keeps guessing
		return nil, err
	}

	if guessed.ID == targetID {
		return &model.GuessOutcome{
			Correct:      true,
			GuessedPfrID: guessed.PfrID,
		}, nil
	}

	feedback, err := c.feedbackFor(ctx, guessed.ID, targetID)
	if err != nil {
		return nil, err
	}

	return &model.GuessOutcome{
		Correct:      false,
		GuessedPfrID: guessed.PfrID,
		Feedback:     feedback,
	}, nil
}

func (c *Controller) feedbackFor(ctx context.Context, guessedID, targetID model.PlayerID) (*model.GuessFeedback, error) {
	guessEra, err := c.stats.EraOf(ctx, guessedID)
	if err != nil {
		return nil, err
	}
	targetEra, err := c.stats.EraOf(ctx, targetID)
	if err != nil {
		return nil, err
	}

	// Without era data on either side we cannot claim closeness
	era := model.EraFar
	if guessEra != nil && targetEra != nil && absInt(guessEra.Start-targetEra.Start) <= eraStartWindow {
		era = model.EraSame
	}

	guessTeams, err := c.stats.TeamsOf(ctx, guessedID)
	if err != nil {
		return nil, err
	}
	targetTeams, err := c.stats.TeamsOf(ctx, targetID)
	if err != nil {
		return nil, err
	}

	return &model.GuessFeedback{
		Era:          era,
		TeamsOverlap: stats.Overlap(guessTeams, targetTeams),
	}, nil
}

// Reveal returns the target's full identity for a player who gives up.
// The session stays alive (normal access-time refresh only), so the
// client can still render the answer on later requests until expiry.
func (c *Controller) Reveal(ctx context.Context, sessionID model.SessionID) (*model.PlayerIdentity, error) {
	targetID, err := c.sessions.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	target, err := c.players.GetPlayer(ctx, targetID)
	if err != nil {
		return nil, err
	}

	return &model.PlayerIdentity{
		Name:     target.Name,
		PfrID:    target.PfrID,
		Position: target.Position,
	}, nil
}

// AutocompleteNames suggests up to ten eligible player names for a
// partial query. Empty and oversized queries return no suggestions
// rather than an error.
func (c *Controller) AutocompleteNames(ctx context.Context, query string) ([]string, error) {
	if query == "" || len(query) > maxQueryLength {
		return []string{}, nil
	}
	names, err := c.players.SearchNames(ctx, query, maxSuggestions)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
