package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/adboard/internal/board"
	"github.com/dmitrijs2005/adboard/internal/config"
	"github.com/dmitrijs2005/adboard/internal/logging"
	"github.com/dmitrijs2005/adboard/internal/ui"
)

type App struct {
	config *config.Config
	board  *board.Board
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	b, err := board.New(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("board init error: %w", err)
	}

	return newApp(c, b, logger, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, b *board.Board, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		board:  b,
		logger: logger,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run starts the REPL and closes the store when it returns.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.board.Close(); err != nil {
			a.logger.Error(ctx, "store close failed", "error", err.Error())
		}
	}()

	printlnFn("Welcome to adboard CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// sync picks up changes another process made to the shared store.
func (a *App) sync(ctx context.Context) {
	a.board.Controller.Sync(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.board.Users.Current() != nil
}

func (a *App) getStatus() string {
	if u := a.board.Users.Current(); u != nil {
		return fmt.Sprintf(" (%s)", u.FullName)
	}
	return ""
}

func (a *App) notify(n ui.Notice) {
	if n.Title == "" {
		return
	}
	fmt.Fprintf(a.out, "[%s] %s %s\n", n.Icon, n.Title, n.Text)
}
