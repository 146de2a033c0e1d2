package model

// SeasonRecord is the tagged variant over the three position-specific
// season tables. Stat fields are pointers: a nil field is a season with
// no recorded value and serializes as an explicit null.
type SeasonRecord interface {
	// RecordPosition reports which stat table the record belongs to
	RecordPosition() Position

	// SeasonYear is the season the record covers
	SeasonYear() int

	// TeamCode is the team for that season, or "" when unrecorded
	TeamCode() string
}

// PassingSeason is one row of passing_seasons (QB stats)
type PassingSeason struct {
	PlayerID      PlayerID `gorm:"column:player_id;index"`
	Season        int      `gorm:"not null"`
	Team          *string
	Games         *int
	GamesStarted  *int
	Completions   *int
	Attempts      *int
	Yards         *int
	Touchdowns    *int
	Interceptions *int
	PasserRating  *float64
	Awards        *string
}

// ReceivingSeason is one row of receiving_seasons (WR stats)
type ReceivingSeason struct {
	PlayerID          PlayerID `gorm:"column:player_id;index"`
	Season            int      `gorm:"not null"`
	Team              *string
	Games             *int
	Targets           *int
	Receptions        *int
	Yards             *int
	YardsPerReception *float64
	Touchdowns        *int
	Awards            *string
}

// RushingSeason is one row of rushing_seasons (RB stats)
type RushingSeason struct {
	PlayerID        PlayerID `gorm:"column:player_id;index"`
	Season          int      `gorm:"not null"`
	Team            *string
	Games           *int
	Attempts        *int
	Yards           *int
	YardsPerAttempt *float64
	Touchdowns      *int
	Receptions      *int
	ReceivingYards  *int
	Awards          *string
}

func (s PassingSeason) RecordPosition() Position   { return PositionQB }
func (s ReceivingSeason) RecordPosition() Position { return PositionWR }
func (s RushingSeason) RecordPosition() Position   { return PositionRB }

func (s PassingSeason) SeasonYear() int   { return s.Season }
func (s ReceivingSeason) SeasonYear() int { return s.Season }
func (s RushingSeason) SeasonYear() int   { return s.Season }

func (s PassingSeason) TeamCode() string   { return deref(s.Team) }
func (s ReceivingSeason) TeamCode() string { return deref(s.Team) }
func (s RushingSeason) TeamCode() string   { return deref(s.Team) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Era is a player's first-to-last active season range, derived from
// season rows and never stored. A player with no rows has no era.
type Era struct {
	Start int
	End   int
}

// EraCloseness is the categorical era feedback on an incorrect guess
type EraCloseness string

const (
	EraSame EraCloseness = "same"
	EraFar  EraCloseness = "far"
)

// GuessFeedback is the comparative feedback returned for an incorrect
// guess. It carries no information about the target beyond these two
// signals.
type GuessFeedback struct {
	Era          EraCloseness
	TeamsOverlap bool
}

// GuessOutcome is the result of evaluating one guess. GuessedPfrID
// always refers to the guessed player, never the target. Feedback is
// nil when the guess is correct.
type GuessOutcome struct {
	Correct      bool
	GuessedPfrID string
	Feedback     *GuessFeedback
}
