package model

// PlayerID uniquely identifies a player in the reference data
type PlayerID int64

// Position is the position a player's stats are tracked under
type Position string

const (
	PositionQB Position = "QB"
	PositionWR Position = "WR"
	PositionRB Position = "RB"
)

// Player is immutable reference data about one player.
// PfrID is the stable external reference code the client uses to
// fetch a photo/profile; it is safe to show for guessed players.
type Player struct {
	ID       PlayerID `gorm:"primaryKey"`
	Name     string   `gorm:"not null"`
	PfrID    string   `gorm:"column:pfr_id"`
	Position Position `gorm:"not null"`
}

// EligiblePlayer is one entry of the selection pool: a player with at
// least one recorded season. The pool is ordered by id so index-based
// selection is reproducible.
type EligiblePlayer struct {
	ID       PlayerID
	Position Position
}

// PlayerIdentity is the full identity revealed when a game ends
type PlayerIdentity struct {
	Name     string
	PfrID    string
	Position Position
}
