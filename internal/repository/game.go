package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/entity"
)

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}

type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameRepository - keeps games in Redis. Keys expire after ttl without updates, zero ttl keeps them forever.
func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbGame) Create(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	created, err := that.client.SetNX(ctx, gameKey(game.ID), gameJSON, that.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	if !created {
		return fmt.Errorf("%w: %s", apperror.ErrGameAlreadyExists, game.ID)
	}

	return nil
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, gameKey(game.ID), gameJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

// DeleteExpired - Redis drops idle games through key TTL, nothing to sweep.
func (that *dbGame) DeleteExpired(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

func gameKey(id string) string {
	return "game:" + id
}
