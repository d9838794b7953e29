package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/config"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/repository"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/service"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-tcp/transport/rest"
	"github.com/rocketscienceinc/tictactoe-tcp/transport/tcp"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, closeRepo, err := newGameRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeRepo(); err != nil {
			log.Error("could not close game storage", "error", err)
		}
	}()

	rng := pkg.NewRandom(conf.RandomSeed)
	gameController := tictactoe.NewGameController(service.NewBotService(rng), rng)
	gameManager := usecase.NewGameManager(logger, gameRepo, gameController, rng)

	var wg sync.WaitGroup
	defer wg.Wait()

	// redis expires keys on its own
	if conf.Storage == config.StorageMemory {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gameManager.RunReaper(ctx, conf.Session.ReapInterval, conf.Session.TTL)
		}()
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("Starting HTTP server", "addr", conf.GetHTTPAddr())
		if httpErr := rest.New(logger).Start(ctx, conf.GetHTTPAddr()); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run TCP server
	tcpErrCh := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("Starting TCP server", "addr", conf.GetTCPAddr())
		tcpServer := tcp.New(logger, gameManager, tcp.Options{
			MaxMessageSize: conf.MaxMessageSize,
			ReadTimeout:    conf.ReadTimeout,
		})
		if tcpErr := tcpServer.Start(ctx, conf.GetTCPAddr()); tcpErr != nil {
			log.Error("TCP server error", "error", tcpErr)
			tcpErrCh <- tcpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		cancel()
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-tcpErrCh:
		cancel()
		return fmt.Errorf("TCP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func() error, error) {
	if conf.Storage == config.StorageMemory {
		return repository.NewMemoryGameRepository(), func() error { return nil }, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewGameRepository(redisStorage, conf.Session.TTL), redisStorage.Close, nil
}
