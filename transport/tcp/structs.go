package tcp

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/entity"
)

const (
	MessageStart = "start"
	MessageName  = "name"
	MessageTurn  = "turn"

	MessageGiveName  = "ok_give_name"
	MessageStartGame = "ok_start_game"
	MessageYourTurn  = "your_turn"
	MessageGameOver  = "gameover"
	MessageError     = "error"
)

const (
	ReasonUnknownGame       = "unknown_game"
	ReasonGameNotStarted    = "game_not_started"
	ReasonGameFinished      = "game_finished"
	ReasonAlreadyRegistered = "already_registered"
	ReasonInvalidMarker     = "invalid_marker"
	ReasonBadRequest        = "bad_request"
	ReasonUnknownMessage    = "unknown_message"
	ReasonInternalError     = "internal_error"
)

const gameOverStatus = "gameover"

// Request - the single message a client sends per connection.
type Request struct {
	Message string        `json:"message"`
	GameID  string        `json:"game_id,omitempty"`
	Name    string        `json:"name,omitempty"`
	Area    *int          `json:"area,omitempty"`
	Marker  entity.Marker `json:"marker,omitempty"`
}

// Response - the single reply the server sends before closing the connection.
type Response struct {
	Message string          `json:"message"`
	GameID  string          `json:"game_id,omitempty"`
	Payload json.RawMessage `json:"response,omitempty"`
	Reason  string          `json:"reason,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type StartPayload struct {
	Text   string        `json:"text"`
	Marker entity.Marker `json:"marker"`
	Board  entity.Board  `json:"board"`
	Status bool          `json:"status"`
}

type TurnPayload struct {
	Status TurnStatus   `json:"status"`
	Board  entity.Board `json:"board"`
	Reason string       `json:"reason,omitempty"`
}

// TurnStatus - true or false while the game goes on, the string "gameover" once it ends.
type TurnStatus struct {
	Accepted bool
	GameOver bool
}

func (that TurnStatus) MarshalJSON() ([]byte, error) {
	if that.GameOver {
		return json.Marshal(gameOverStatus)
	}

	return json.Marshal(that.Accepted)
}

func (that *TurnStatus) UnmarshalJSON(data []byte) error {
	var accepted bool
	if err := json.Unmarshal(data, &accepted); err == nil {
		*that = TurnStatus{Accepted: accepted}
		return nil
	}

	var status string
	if err := json.Unmarshal(data, &status); err != nil {
		return fmt.Errorf("failed to unmarshal turn status: %w", err)
	}

	if status != gameOverStatus {
		return fmt.Errorf("unknown turn status: %q", status)
	}

	*that = TurnStatus{GameOver: true}

	return nil
}
