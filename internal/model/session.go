package model

import "time"

// SessionID is the opaque token handed to the client on game start
type SessionID string

// GameMode distinguishes the daily puzzle from free-play games
type GameMode string

const (
	ModeDaily     GameMode = "daily"
	ModeUnlimited GameMode = "unlimited"
)

// GameSession binds a session token to its target player. The target
// is chosen once at creation and never changes; LastAccessed slides
// forward on every resolve so active games outlive the sweep.
type GameSession struct {
	SessionID    SessionID `gorm:"column:session_id;primaryKey"`
	PlayerID     PlayerID  `gorm:"column:player_id;not null"`
	GameMode     GameMode  `gorm:"column:game_mode;not null;default:unlimited"`
	CreatedAt    time.Time
	LastAccessed time.Time `gorm:"column:last_accessed"`
}
