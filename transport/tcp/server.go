package tcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/entity"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/tictactoe"
)

const (
	defaultMaxMessageSize = 1024
	defaultReadTimeout    = 10 * time.Second

	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

type gameManager interface {
	StartGame(ctx context.Context) (*entity.Game, error)
	RegisterPlayer(ctx context.Context, gameID, name string) (*tictactoe.StartResult, error)
	MakeTurn(ctx context.Context, gameID string, area int, marker entity.Marker) (*tictactoe.TurnResult, error)
}

type Options struct {
	MaxMessageSize int
	ReadTimeout    time.Duration
}

type Server struct {
	logger  *slog.Logger
	manager gameManager
	options Options

	handlers map[string]func(ctx context.Context, req *Request, writer io.Writer) error
}

func New(logger *slog.Logger, manager gameManager, options Options) *Server {
	if options.MaxMessageSize <= 0 {
		options.MaxMessageSize = defaultMaxMessageSize
	}

	if options.ReadTimeout <= 0 {
		options.ReadTimeout = defaultReadTimeout
	}

	server := &Server{
		logger:  logger.With("component", "tcp_server"),
		manager: manager,
		options: options,

		handlers: make(map[string]func(context.Context, *Request, io.Writer) error),
	}

	server.handlers[MessageStart] = server.handleStart
	server.handlers[MessageName] = server.handleName
	server.handlers[MessageTurn] = server.handleTurn

	return server
}

// Start - listens on addr and serves until ctx is done.
func (that *Server) Start(ctx context.Context, addr string) error {
	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	return that.Serve(ctx, listener)
}

// Serve - accepts connections until ctx is done, then waits for in-flight ones.
func (that *Server) Serve(ctx context.Context, listener net.Listener) error {
	log := that.logger.With("method", "Serve", "addr", listener.Addr().String())

	var wg sync.WaitGroup
	defer wg.Wait()

	stop := context.AfterFunc(ctx, func() {
		listener.Close()
	})
	defer stop()

	log.Info("TCP server started")

	var acceptDelay time.Duration

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				log.Info("TCP server stopped")
				return nil
			}

			// back off on repeated failures such as EMFILE
			acceptDelay = nextAcceptDelay(acceptDelay)
			log.Error("failed to accept connection", "error", err, "retryIn", acceptDelay)

			select {
			case <-ctx.Done():
			case <-time.After(acceptDelay):
			}

			continue
		}

		acceptDelay = 0

		wg.Add(1)
		go func() {
			defer wg.Done()
			that.handleConnection(ctx, conn)
		}()
	}
}

func nextAcceptDelay(delay time.Duration) time.Duration {
	if delay == 0 {
		return minAcceptDelay
	}

	return min(2*delay, maxAcceptDelay)
}

// handleConnection - one request, one reply, then the connection is closed.
func (that *Server) handleConnection(ctx context.Context, conn net.Conn) {
	log := that.logger.With("method", "handleConnection", "connID", pkg.GenerateConnID(), "remote", conn.RemoteAddr().String())

	defer conn.Close()

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while handling connection", "panic", r)
		}
	}()

	if err := conn.SetDeadline(time.Now().Add(that.options.ReadTimeout)); err != nil {
		log.Error("failed to set deadline", "error", err)
		return
	}

	req, err := readRequest(conn, that.options.MaxMessageSize)
	if err != nil {
		log.Warn("dropping connection", "error", err)
		return
	}

	log = log.With("message", req.Message, "gameID", req.GameID)

	handler, ok := that.handlers[req.Message]
	if !ok {
		err = fmt.Errorf("%w: %q", apperror.ErrUnknownMessage, req.Message)
	} else {
		err = handler(ctx, req, conn)
	}

	if err == nil {
		log.Debug("request handled")
		return
	}

	if reason := errorReason(err); reason == ReasonInternalError {
		log.Error("failed to handle request", "error", err)
	} else {
		log.Info("request refused", "reason", reason, "error", err)
	}

	if err = sendError(conn, req.GameID, err); err != nil {
		log.Error("failed to send error", "error", err)
	}
}
