package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/entity"
)

const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeGameOver = "gameover"
)

type StartResult struct {
	Text   string
	Marker entity.Marker
	Board  entity.Board
	Status bool
}

type TurnResult struct {
	Outcome string
	Reason  string
	Board   entity.Board
}

func (that *TurnResult) IsGameOver() bool {
	return that.Outcome == OutcomeGameOver
}

func (that *TurnResult) IsRejected() bool {
	return that.Outcome == OutcomeRejected
}

type bot interface {
	MakeTurn(board *entity.Board, mark entity.Marker) (int, error)
}

type random interface {
	Intn(n int) int
}

type GameController struct {
	bot bot
	rng random
}

func NewGameController(bot bot, rng random) *GameController {
	return &GameController{
		bot: bot,
		rng: rng,
	}
}

// RegisterPlayer - seats the human and the computer, draws the first mover and lets the computer open if drawn.
func (that *GameController) RegisterPlayer(game *entity.Game, name string) (*StartResult, error) {
	if !game.IsWaiting() {
		return nil, apperror.ErrPlayerAlreadyRegistered
	}

	human := entity.NewHumanPlayer(name, game.Markers[0])
	computer := entity.NewComputerPlayer(game.Markers[1])
	game.Players = []*entity.Player{human, computer}

	first := game.Players[that.rng.Intn(len(game.Players))]
	game.FirstMover = first.Name
	game.Status = entity.StatusOngoing

	if err := that.decideMove(game, first); err != nil {
		return nil, fmt.Errorf("failed to make first move: %w", err)
	}

	return &StartResult{
		Text:   fmt.Sprintf("%s vs %s - %s starts", human.Name, computer.Name, first.Name),
		Marker: human.Mark,
		Board:  game.Board,
		Status: true,
	}, nil
}

// Turn - applies the human's move to the 1-based area and answers with the computer's reply.
func (that *GameController) Turn(game *entity.Game, area int, marker entity.Marker) (*TurnResult, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	human, computer := game.Human(), game.Computer()
	if human == nil || computer == nil {
		return nil, apperror.ErrGameIsNotStarted
	}

	if marker != human.Mark {
		return nil, fmt.Errorf("%w: %q", apperror.ErrNotYourMarker, marker)
	}

	cell := area - 1
	if !game.Board.IsFree(cell) {
		return &TurnResult{Outcome: OutcomeRejected, Board: game.Board}, nil
	}

	if err := game.Board.PutMarker(cell, marker); err != nil {
		return nil, fmt.Errorf("failed to put marker: %w", err)
	}

	// the human's result is settled before the computer is allowed to move
	switch {
	case game.Board.IsWinner(human.Mark):
		return that.finish(game, entity.ReasonWin), nil
	case game.Board.IsDraw():
		return that.finish(game, entity.ReasonDraw), nil
	}

	if err := that.decideMove(game, computer); err != nil {
		return nil, fmt.Errorf("failed to make computer move: %w", err)
	}

	switch {
	case game.Board.IsWinner(computer.Mark):
		return that.finish(game, entity.ReasonLose), nil
	case game.Board.IsDraw():
		return that.finish(game, entity.ReasonDraw), nil
	}

	return &TurnResult{Outcome: OutcomeAccepted, Board: game.Board}, nil
}

// decideMove - human moves arrive over the wire, so only the computer plays here.
func (that *GameController) decideMove(game *entity.Game, player *entity.Player) error {
	if !player.IsBot() {
		return nil
	}

	if _, err := that.bot.MakeTurn(&game.Board, player.Mark); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

func (that *GameController) finish(game *entity.Game, reason string) *TurnResult {
	game.Finish(reason)

	return &TurnResult{
		Outcome: OutcomeGameOver,
		Reason:  reason,
		Board:   game.Board,
	}
}
