package tcp

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/apperror"
)

func (that *Server) handleStart(ctx context.Context, _ *Request, writer io.Writer) error {
	game, err := that.manager.StartGame(ctx)
	if err != nil {
		return err
	}

	return sendMessage(writer, MessageGiveName, game.ID, nil)
}

func (that *Server) handleName(ctx context.Context, req *Request, writer io.Writer) error {
	name := strings.TrimSpace(req.Name)

	if req.GameID == "" || name == "" {
		return fmt.Errorf("%w: game_id and name are required", apperror.ErrBadRequest)
	}

	result, err := that.manager.RegisterPlayer(ctx, req.GameID, name)
	if err != nil {
		return err
	}

	return sendMessage(writer, MessageStartGame, req.GameID, StartPayload{
		Text:   result.Text,
		Marker: result.Marker,
		Board:  result.Board,
		Status: result.Status,
	})
}

func (that *Server) handleTurn(ctx context.Context, req *Request, writer io.Writer) error {
	if req.GameID == "" || req.Area == nil {
		return fmt.Errorf("%w: game_id and area are required", apperror.ErrBadRequest)
	}

	result, err := that.manager.MakeTurn(ctx, req.GameID, *req.Area, req.Marker)
	if err != nil {
		return err
	}

	if result.IsGameOver() {
		return sendMessage(writer, MessageGameOver, req.GameID, TurnPayload{
			Status: TurnStatus{GameOver: true},
			Board:  result.Board,
			Reason: result.Reason,
		})
	}

	return sendMessage(writer, MessageYourTurn, req.GameID, TurnPayload{
		Status: TurnStatus{Accepted: !result.IsRejected()},
		Board:  result.Board,
	})
}
