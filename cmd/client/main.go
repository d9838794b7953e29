package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/client"
)

// main - is the entry point of the terminal client.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := client.New(os.Stdin, os.Stdout).Run(ctx)
	if err != nil && !errors.Is(err, client.ErrInputClosed) {
		stop()
		fmt.Fprintf(os.Stderr, "client: %v\n", err)
		os.Exit(1)
	}
}
