package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound    = errors.New("player not found")
	ErrUnknownPosition   = errors.New("unrecognized player position")
	ErrNoEligiblePlayers = errors.New("no eligible players available")

	// Session errors
	ErrSessionNotFound = errors.New("session not found or expired")
)
