package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/apperror"
)

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"

	ReasonWin  = "win"
	ReasonLose = "lose"
	ReasonDraw = "draw"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type Game struct {
	ID         string    `json:"id"`
	Board      Board     `json:"board"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	Markers    [2]Marker `json:"markers"`
	Players    []*Player `json:"players,omitempty"`
	FirstMover string    `json:"first_mover,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewGame - creates a game that waits for the human to give a name.
func NewGame(id string, humanMark, computerMark Marker, now time.Time) *Game {
	return &Game{
		ID:        id,
		Status:    StatusWaiting,
		Markers:   [2]Marker{humanMark, computerMark},
		UpdatedAt: now,
	}
}

func (that *Game) Human() *Player {
	for _, player := range that.Players {
		if !player.IsBot() {
			return player
		}
	}
	return nil
}

func (that *Game) Computer() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}
	return nil
}

func (that *Game) Finish(reason string) {
	that.Status = StatusFinished
	that.Reason = reason
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// Clone - deep copy, so stored games are never shared between callers.
func (that *Game) Clone() *Game {
	clone := *that
	if that.Players != nil {
		clone.Players = make([]*Player, len(that.Players))
		for i, player := range that.Players {
			p := *player
			clone.Players[i] = &p
		}
	}
	return &clone
}
