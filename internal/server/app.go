// Package server initializes and runs the board web server: it opens the
// configured store, builds the services and serves HTTP until a shutdown
// signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/adboard/internal/board"
	"github.com/dmitrijs2005/adboard/internal/config"
	"github.com/dmitrijs2005/adboard/internal/logging"
	"github.com/dmitrijs2005/adboard/internal/server/web"
)

type App struct {
	config *config.Config
	logger logging.Logger
	board  *board.Board
	server *web.HTTPServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	b, err := board.New(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("board init error: %w", err)
	}

	return newApp(c, logger, b), nil
}

func newApp(c *config.Config, logger logging.Logger, b *board.Board) *App {
	h := web.NewHandler(b.Controller, b.Catalog, b.Users, logger, c.MaxImageSize)
	srv := web.NewHTTPServer(c.HTTPAddr, web.NewEngine(h), logger)
	return &App{config: c, logger: logger, board: b, server: srv}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is canceled or a shutdown signal arrives, then closes
// the store.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.board.Close(); err != nil {
		app.logger.Error(ctx, "store close failed", "error", err.Error())
	}
	app.logger.Info(ctx, "App stopped")
}
