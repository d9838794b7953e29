package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/entity"
	"github.com/rocketscienceinc/tictactoe-tcp/transport/tcp"
)

const (
	defaultHost = "127.0.0.1"
	defaultPort = "13373"

	exchangeTimeout = 10 * time.Second
)

var (
	ErrInputClosed       = errors.New("input closed")
	ErrServer            = errors.New("server refused request")
	ErrUnexpectedMessage = errors.New("unexpected message")
)

type Client struct {
	input  *bufio.Scanner
	output io.Writer

	dialer net.Dialer
}

func New(input io.Reader, output io.Writer) *Client {
	return &Client{
		input:  bufio.NewScanner(input),
		output: output,
	}
}

// Run - plays one game: asks for the server and a name, then relays moves until the game is over.
func (that *Client) Run(ctx context.Context) error {
	that.println("Welcome to Tic Tac Toe game.")

	host, err := that.ask("Server IP: ")
	if err != nil {
		return err
	}

	port, err := that.ask("Port: ")
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(orDefault(host, defaultHost), orDefault(port, defaultPort))

	that.println("Calling server")

	resp, err := that.exchange(ctx, addr, tcp.Request{Message: tcp.MessageStart})
	if err != nil {
		return err
	}

	gameID := resp.GameID

	name, err := that.ask("Type your name: ")
	if err != nil {
		return err
	}

	resp, err = that.exchange(ctx, addr, tcp.Request{Message: tcp.MessageName, GameID: gameID, Name: name})
	if err != nil {
		return err
	}

	var start tcp.StartPayload
	if err = decodePayload(resp, tcp.MessageStartGame, &start); err != nil {
		return err
	}

	that.println(start.Text)

	return that.play(ctx, addr, gameID, start)
}

func (that *Client) play(ctx context.Context, addr, gameID string, start tcp.StartPayload) error {
	turn := tcp.TurnPayload{Status: tcp.TurnStatus{Accepted: true}, Board: start.Board}

	for {
		prompt := "Wrong choice!, Try again (1-9): "
		if turn.Status.Accepted {
			that.println(RenderBoard(turn.Board))
			prompt = fmt.Sprintf("Now your move. Type empty area where you want to place %s (1-9): ", start.Marker)
		}

		area, err := that.askArea(prompt)
		if err != nil {
			return err
		}

		resp, err := that.exchange(ctx, addr, tcp.Request{
			Message: tcp.MessageTurn,
			GameID:  gameID,
			Area:    &area,
			Marker:  start.Marker,
		})
		if err != nil {
			return err
		}

		if resp.Message == tcp.MessageGameOver {
			if err = decodePayload(resp, tcp.MessageGameOver, &turn); err != nil {
				return err
			}

			that.gameOver(turn)

			return nil
		}

		if err = decodePayload(resp, tcp.MessageYourTurn, &turn); err != nil {
			return err
		}
	}
}

func (that *Client) gameOver(turn tcp.TurnPayload) {
	that.println(RenderBoard(turn.Board))

	switch turn.Reason {
	case entity.ReasonWin:
		that.println("You WIN!")
	case entity.ReasonLose:
		that.println("You LOSE!")
	case entity.ReasonDraw:
		that.println("DRAW!")
	}

	that.println("Game over.")
}

// askArea - repeats the prompt until a number is typed; range checks are the server's job.
func (that *Client) askArea(prompt string) (int, error) {
	for {
		text, err := that.ask(prompt)
		if err != nil {
			return 0, err
		}

		area, err := strconv.Atoi(text)
		if err == nil {
			return area, nil
		}

		prompt = "Wrong choice!, Try again (1-9): "
	}
}

func (that *Client) ask(prompt string) (string, error) {
	fmt.Fprint(that.output, prompt)

	if !that.input.Scan() {
		if err := that.input.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		return "", ErrInputClosed
	}

	return strings.TrimSpace(that.input.Text()), nil
}

func (that *Client) println(text string) {
	fmt.Fprintln(that.output, text)
}

// exchange - one connection per request, as the server expects.
func (that *Client) exchange(ctx context.Context, addr string, req tcp.Request) (*tcp.Response, error) {
	conn, err := that.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()

	if err = conn.SetDeadline(time.Now().Add(exchangeTimeout)); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	if err = json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", req.Message, err)
	}

	var resp tcp.Response
	if err = json.NewDecoder(conn).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to read reply to %s: %w", req.Message, err)
	}

	if resp.Message == tcp.MessageError {
		that.println("Server error: " + resp.Error)
		return nil, fmt.Errorf("%w: %s", ErrServer, resp.Reason)
	}

	return &resp, nil
}

func decodePayload(resp *tcp.Response, expected string, payload any) error {
	if resp.Message != expected {
		return fmt.Errorf("%w: got %q, want %q", ErrUnexpectedMessage, resp.Message, expected)
	}

	if err := json.Unmarshal(resp.Payload, payload); err != nil {
		return fmt.Errorf("failed to decode %s: %w", resp.Message, err)
	}

	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
