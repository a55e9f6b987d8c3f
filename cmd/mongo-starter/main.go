package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/mongo-starter/internal/config"
	"github.com/deppfellow/mongo-starter/internal/database"
	"github.com/deppfellow/mongo-starter/internal/handler"
	"github.com/deppfellow/mongo-starter/internal/logger"
	"github.com/deppfellow/mongo-starter/internal/repository"
	"github.com/deppfellow/mongo-starter/internal/router"
	"github.com/deppfellow/mongo-starter/internal/server"
	"github.com/deppfellow/mongo-starter/internal/service"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	// Index setup connects early; a store that is down is retried lazily by
	// the first request instead of failing startup.
	indexCtx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	if err := database.EnsureIndexes(indexCtx, &log, srv.DB); err != nil {
		log.Error().Err(err).Msg("failed to ensure indexes")
	}
	cancel()

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers, services)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
