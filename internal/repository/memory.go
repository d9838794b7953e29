package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/entity"
)

type memoryGame struct {
	mu    sync.RWMutex
	games map[string]*entity.Game
}

// NewMemoryGameRepository - keeps games in process memory. Stored games are copies, callers never share them.
func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]*entity.Game),
	}
}

func (that *memoryGame) Create(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[game.ID]; ok {
		return fmt.Errorf("%w: %s", apperror.ErrGameAlreadyExists, game.ID)
	}

	that.games[game.ID] = game.Clone()

	return nil
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = game.Clone()

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return game.Clone(), nil
}

// DeleteExpired - removes games that were not updated since before.
func (that *memoryGame) DeleteExpired(_ context.Context, before time.Time) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	deleted := 0
	for id, game := range that.games {
		if game.UpdatedAt.Before(before) {
			delete(that.games, id)
			deleted++
		}
	}

	return deleted, nil
}
