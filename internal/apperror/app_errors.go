package apperror

import "errors"

var (
	ErrGameFinished            = errors.New("game is already finished")
	ErrGameIsNotStarted        = errors.New("game is not started")
	ErrGameNotFound            = errors.New("game not found")
	ErrGameAlreadyExists       = errors.New("game already exists")
	ErrPlayerAlreadyRegistered = errors.New("player is already registered")
	ErrNotYourMarker           = errors.New("it's not your marker")
	ErrInvalidArea             = errors.New("invalid area")
	ErrNoAvailableMoves        = errors.New("no available moves")

	ErrMalformedMessage = errors.New("malformed message")
	ErrMessageTooLarge  = errors.New("message too large")
	ErrUnknownMessage   = errors.New("unknown message")
	ErrBadRequest       = errors.New("bad request")
)
