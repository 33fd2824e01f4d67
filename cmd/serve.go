package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tunetype/internal/repositories"
	"github.com/desertthunder/tunetype/internal/server"
	"github.com/desertthunder/tunetype/internal/shared"
	"github.com/desertthunder/tunetype/internal/web"
)

// resultRouter mounts the health check and the result page.
func resultRouter(store web.PayloadTaker, logger *log.Logger) (http.Handler, error) {
	results, err := web.NewResultHandler(store, shared.WithLogger(logger, "component", "web"))
	if err != nil {
		return nil, err
	}

	router := server.NewBasicRouter()
	router.Use(server.Recover(logger), server.RequestLogger(logger))
	router.HandleFunc(http.MethodGet, "/health", server.Health)
	router.Handler(results)
	return router, nil
}

// Serve hosts the result page until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.ServerAddr()
	}

	db, err := r.database()
	if err != nil {
		return err
	}

	logger := shared.WithLogger(r.logger, "component", "server")
	handler, err := resultRouter(repositories.NewPayloadRepository(db), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(addr, handler, logger).Run(ctx)
}
