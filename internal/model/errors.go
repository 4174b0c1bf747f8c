package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Room registry errors
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomExists      = errors.New("room already exists")
	ErrRoomFull        = errors.New("room is full")
	ErrInvalidInput    = errors.New("missing or invalid input")
	ErrInvalidCapacity = errors.New("room capacity must be 8")
	ErrAlreadyInRoom   = errors.New("player is already in room")
	ErrNotInRoom       = errors.New("player is not in room")
	ErrNotHost         = errors.New("player is not the host")

	// Game errors
	ErrInsufficientPlayers = errors.New("room is not full")

	ErrGameInProgress  = errors.New("game is in progress")
	ErrGameFinished    = errors.New("game is finished")
	ErrGameNotStarted  = errors.New("game has not started")
	ErrNotYourTurn     = errors.New("not this player's turn")
	ErrInvalidRequest  = errors.New("invalid card request")
	ErrTeamsUnbalanced = errors.New("teams are not evenly assigned")
	ErrCannotClaimTurn = errors.New("player cannot claim the turn")
)
