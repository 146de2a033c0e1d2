package response

import (
	"github.com/statline-game/statline/internal/model"
	"github.com/statline-game/statline/internal/services/game"
)

// Season rows keep a fixed key set per position; unrecorded stats are
// explicit JSON nulls (pointer fields, no omitempty), never NaN and
// never a dropped key.

// PassingSeasonRow is one QB season in API responses
type PassingSeasonRow struct {
	Season        int      `json:"season"`
	Team          *string  `json:"team"`
	Games         *int     `json:"games"`
	GamesStarted  *int     `json:"games_started"`
	Completions   *int     `json:"completions"`
	Attempts      *int     `json:"attempts"`
	Yards         *int     `json:"yards"`
	Touchdowns    *int     `json:"touchdowns"`
	Interceptions *int     `json:"interceptions"`
	PasserRating  *float64 `json:"passer_rating"`
	Awards        *string  `json:"awards"`
}

// ReceivingSeasonRow is one WR season in API responses
type ReceivingSeasonRow struct {
	Season            int      `json:"season"`
	Team              *string  `json:"team"`
	Games             *int     `json:"games"`
	Targets           *int     `json:"targets"`
	Receptions        *int     `json:"receptions"`
	Yards             *int     `json:"yards"`
	YardsPerReception *float64 `json:"yards_per_reception"`
	Touchdowns        *int     `json:"touchdowns"`
	Awards            *string  `json:"awards"`
}

// RushingSeasonRow is one RB season in API responses
type RushingSeasonRow struct {
	Season          int      `json:"season"`
	Team            *string  `json:"team"`
	Games           *int     `json:"games"`
	Attempts        *int     `json:"attempts"`
	Yards           *int     `json:"yards"`
	YardsPerAttempt *float64 `json:"yards_per_attempt"`
	Touchdowns      *int     `json:"touchdowns"`
	Receptions      *int     `json:"receptions"`
	ReceivingYards  *int     `json:"receiving_yards"`
	Awards          *string  `json:"awards"`
}

// SeasonRowsFromRecords converts season records into the response rows
// for their position. Records from SeasonsFor are homogeneous, so the
// result is a single-shape slice.
func SeasonRowsFromRecords(records []model.SeasonRecord) any {
	if len(records) == 0 {
		return []struct{}{}
	}

	switch records[0].(type) {
	case model.PassingSeason:
		rows := make([]PassingSeasonRow, 0, len(records))
		for _, rec := range records {
			r := rec.(model.PassingSeason)
			rows = append(rows, PassingSeasonRow{
				Season:        r.Season,
				Team:          r.Team,
				Games:         r.Games,
				GamesStarted:  r.GamesStarted,
				Completions:   r.Completions,
				Attempts:      r.Attempts,
				Yards:         r.Yards,
				Touchdowns:    r.Touchdowns,
				Interceptions: r.Interceptions,
				PasserRating:  r.PasserRating,
				Awards:        r.Awards,
			})
		}
		return rows
	case model.ReceivingSeason:
		rows := make([]ReceivingSeasonRow, 0, len(records))
		for _, rec := range records {
			r := rec.(model.ReceivingSeason)
			rows = append(rows, ReceivingSeasonRow{
				Season:            r.Season,
				Team:              r.Team,
				Games:             r.Games,
				Targets:           r.Targets,
				Receptions:        r.Receptions,
				Yards:             r.Yards,
				YardsPerReception: r.YardsPerReception,
				Touchdowns:        r.Touchdowns,
				Awards:            r.Awards,
			})
		}
		return rows
	case model.RushingSeason:
		rows := make([]RushingSeasonRow, 0, len(records))
		for _, rec := range records {
			r := rec.(model.RushingSeason)
			rows = append(rows, RushingSeasonRow{
				Season:          r.Season,
				Team:            r.Team,
				Games:           r.Games,
				Attempts:        r.Attempts,
				Yards:           r.Yards,
				YardsPerAttempt: r.YardsPerAttempt,
				Touchdowns:      r.Touchdowns,
				Receptions:      r.Receptions,
				ReceivingYards:  r.ReceivingYards,
				Awards:          r.Awards,
			})
		}
		return rows
	default:
		return []struct{}{}
	}
}

// StartGameResponse is the response for starting a daily or random game
type StartGameResponse struct {
	SessionID string `json:"session_id"`
	GameMode  string `json:"game_mode"`
	Position  string `json:"position"`
	Seasons   any    `json:"seasons"`
}

// StartGameFromModel converts a started game into its response
func StartGameFromModel(g *game.StartedGame) StartGameResponse {
	return StartGameResponse{
		SessionID: string(g.Session.SessionID),
		GameMode:  string(g.Session.GameMode),
		Position:  string(g.Position),
		Seasons:   SeasonRowsFromRecords(g.Seasons),
	}
}

// GuessFeedback carries the two comparison signals for a wrong guess
type GuessFeedback struct {
	Era          string `json:"era"`
	TeamsOverlap bool   `json:"teams_overlap"`
}

// GuessResponse is the response for a submitted guess. PfrID always
// identifies the guessed player; on an incorrect guess nothing in this
// object refers to the target.
type GuessResponse struct {
	Correct  bool           `json:"correct"`
	PfrID    string         `json:"pfr_id"`
	Feedback *GuessFeedback `json:"feedback,omitempty"`
}

// GuessFromModel converts a guess outcome into its response
func GuessFromModel(o *model.GuessOutcome) GuessResponse {
	resp := GuessResponse{
		Correct: o.Correct,
		PfrID:   o.GuessedPfrID,
	}
	if o.Feedback != nil {
		resp.Feedback = &GuessFeedback{
			Era:          string(o.Feedback.Era),
			TeamsOverlap: o.Feedback.TeamsOverlap,
		}
	}
	return resp
}

// RevealResponse is the response for revealing the answer
type RevealResponse struct {
	Name     string `json:"name"`
	PfrID    string `json:"pfr_id"`
	Position string `json:"position"`
}

// RevealFromModel converts a revealed identity into its response
func RevealFromModel(identity *model.PlayerIdentity) RevealResponse {
	return RevealResponse{
		Name:     identity.Name,
		PfrID:    identity.PfrID,
		Position: string(identity.Position),
	}
}

// AutocompleteResponse is the response for name autocomplete
type AutocompleteResponse struct {
	Players []string `json:"players"`
}
