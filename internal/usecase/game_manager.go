package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/entity"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/tictactoe"
)

const maxGameIDAttempts = 5

var ErrGameIDExhausted = errors.New("could not generate unique game id")

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}

type gameController interface {
	RegisterPlayer(game *entity.Game, name string) (*tictactoe.StartResult, error)
	Turn(game *entity.Game, area int, marker entity.Marker) (*tictactoe.TurnResult, error)
}

// GameManager - session registry. Calls for one game id run one at a time, different ids never wait for each other.
type GameManager struct {
	logger *slog.Logger

	gameRepo   gameRepo
	controller gameController
	rng        pkg.Random
	locks      *keyLocker

	now func() time.Time
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, controller gameController, rng pkg.Random) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		controller: controller,
		rng:        rng,
		locks:      newKeyLocker(),

		now: time.Now,
	}
}

// StartGame - creates a game waiting for the player's name, retrying on id collisions.
func (that *GameManager) StartGame(ctx context.Context) (*entity.Game, error) {
	log := that.logger.With("method", "StartGame")

	for attempt := 0; attempt < maxGameIDAttempts; attempt++ {
		humanMark, computerMark := entity.DrawMarkers(that.rng)
		game := entity.NewGame(pkg.GenerateGameID(that.rng), humanMark, computerMark, that.now())

		err := that.gameRepo.Create(ctx, game)
		if errors.Is(err, apperror.ErrGameAlreadyExists) {
			log.Warn("game id collision", "gameID", game.ID)
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}

		log.Info("game created", "gameID", game.ID)

		return game, nil
	}

	return nil, ErrGameIDExhausted
}

func (that *GameManager) RegisterPlayer(ctx context.Context, gameID, name string) (*tictactoe.StartResult, error) {
	log := that.logger.With("method", "RegisterPlayer", "gameID", gameID)

	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	result, err := that.controller.RegisterPlayer(game, name)
	if err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	log.Info("player registered", "player", name, "firstMover", game.FirstMover)

	return result, nil
}

func (that *GameManager) MakeTurn(ctx context.Context, gameID string, area int, marker entity.Marker) (*tictactoe.TurnResult, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	result, err := that.controller.Turn(game, area, marker)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	// a rejected move leaves the game as it was
	if result.IsRejected() {
		log.Debug("turn rejected", "area", area)
		return result, nil
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if result.IsGameOver() {
		log.Info("game finished", "reason", result.Reason)
	}

	return result, nil
}

// ReapExpired - drops games nobody touched for ttl. Zero ttl keeps games for the process lifetime.
func (that *GameManager) ReapExpired(ctx context.Context, ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, nil
	}

	deleted, err := that.gameRepo.DeleteExpired(ctx, that.now().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired games: %w", err)
	}

	return deleted, nil
}

// RunReaper - calls ReapExpired every interval until ctx is done.
func (that *GameManager) RunReaper(ctx context.Context, interval, ttl time.Duration) {
	log := that.logger.With("method", "RunReaper")

	if interval <= 0 || ttl <= 0 {
		log.Info("session expiry disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("reaper stopped")
			return
		case <-ticker.C:
			deleted, err := that.ReapExpired(ctx, ttl)
			if err != nil {
				log.Error("failed to reap games", "error", err)
				continue
			}

			if deleted > 0 {
				log.Info("expired games removed", "count", deleted)
			}
		}
	}
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	game.UpdatedAt = that.now()

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
