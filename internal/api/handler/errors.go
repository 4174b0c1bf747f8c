package handler

import (
	"net/http"

	"github.com/litfish/litgame-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest      = apierr.CodeInvalidRequest
	CodeInvalidCardRequest  = apierr.CodeInvalidCardRequest
	CodeInvalidCapacity     = apierr.CodeInvalidCapacity
	CodeUnauthorized        = apierr.CodeUnauthorized
	CodeNotHost             = apierr.CodeNotHost
	CodeNotYourTurn         = apierr.CodeNotYourTurn
	CodePlayerNotFound      = apierr.CodePlayerNotFound
	CodeRoomNotFound        = apierr.CodeRoomNotFound
	CodeRoomExists          = apierr.CodeRoomExists
	CodeRoomFull            = apierr.CodeRoomFull
	CodeAlreadyInRoom       = apierr.CodeAlreadyInRoom
	CodeNotInRoom           = apierr.CodeNotInRoom
	CodeGameInProgress      = apierr.CodeGameInProgress
	CodeGameFinished        = apierr.CodeGameFinished
	CodeGameNotStarted      = apierr.CodeGameNotStarted
	CodeInsufficientPlayers = apierr.CodeInsufficientPlayers
	CodeTeamsUnbalanced     = apierr.CodeTeamsUnbalanced
	CodeCannotClaimTurn     = apierr.CodeCannotClaimTurn
	CodeUsernameExists      = apierr.CodeUsernameExists
	CodeInvalidCredentials  = apierr.CodeInvalidCredentials
	CodeInternalError       = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
