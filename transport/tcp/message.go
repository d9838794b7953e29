package tcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/apperror"
)

// readRequest - decodes exactly one JSON value from at most maxSize bytes.
func readRequest(reader io.Reader, maxSize int) (*Request, error) {
	limited := &io.LimitedReader{R: reader, N: int64(maxSize)}

	var req Request
	if err := json.NewDecoder(limited).Decode(&req); err != nil {
		// only a value cut off by the limit is too large, garbage is malformed at any length
		truncated := errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
		if truncated && limited.N <= 0 {
			return nil, apperror.ErrMessageTooLarge
		}

		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedMessage, err)
	}

	return &req, nil
}

func sendMessage(writer io.Writer, message, gameID string, payload any) error {
	resp := Response{
		Message: message,
		GameID:  gameID,
	}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}

		resp.Payload = data
	}

	return writeResponse(writer, &resp)
}

func sendError(writer io.Writer, gameID string, cause error) error {
	return writeResponse(writer, &Response{
		Message: MessageError,
		GameID:  gameID,
		Reason:  errorReason(cause),
		Error:   cause.Error(),
	})
}

func writeResponse(writer io.Writer, resp *Response) error {
	if err := json.NewEncoder(writer).Encode(resp); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	return nil
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return ReasonUnknownGame
	case errors.Is(err, apperror.ErrGameIsNotStarted):
		return ReasonGameNotStarted
	case errors.Is(err, apperror.ErrGameFinished):
		return ReasonGameFinished
	case errors.Is(err, apperror.ErrPlayerAlreadyRegistered):
		return ReasonAlreadyRegistered
	case errors.Is(err, apperror.ErrNotYourMarker):
		return ReasonInvalidMarker
	case errors.Is(err, apperror.ErrBadRequest):
		return ReasonBadRequest
	case errors.Is(err, apperror.ErrUnknownMessage):
		return ReasonUnknownMessage
	default:
		return ReasonInternalError
	}
}
