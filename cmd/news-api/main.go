package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/news-api/internal/config"
	"github.com/deppfellow/news-api/internal/database"
	"github.com/deppfellow/news-api/internal/handler"
	"github.com/deppfellow/news-api/internal/logger"
	"github.com/deppfellow/news-api/internal/repository"
	"github.com/deppfellow/news-api/internal/router"
	"github.com/deppfellow/news-api/internal/server"
	"github.com/deppfellow/news-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const DefaultContextTimeout = 30

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:          "news-api",
		Short:        "News articles, topics, comments and users over HTTP",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	root.AddCommand(serve, newMigrateCmd(), newSeedCmd())
	return root
}

// bootstrap loads the config and builds the root logger shared by every command.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, zerolog.Logger{}, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, log, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, loggerService, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			// Local databases are managed by hand with `seed`.
			if cfg.Primary.Env != "local" {
				if err := database.Migrate(cmd.Context(), &log, cfg.Database.DSN()); err != nil {
					log.Error().Err(err).Msg("failed to migrate database")
					return err
				}
			}

			srv, err := server.New(cfg, &log, loggerService)
			if err != nil {
				log.Error().Err(err).Msg("failed to initialize server")
				return err
			}

			repos := repository.NewRepositories(srv)

			services, err := service.NewService(srv, repos)
			if err != nil {
				log.Error().Err(err).Msg("could not create services")
				return err
			}

			handlers := handler.NewHandlers(srv, services)
			r := router.NewRouter(srv, handlers)

			srv.SetupHTTPServer(r)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			serveErr := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()

			select {
			case err := <-serveErr:
				if err != nil {
					log.Error().Err(err).Msg("failed to start server")
					_ = srv.Shutdown(context.Background())
					return err
				}
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server forced to shutdown")
				return err
			}

			log.Info().Msg("server exited properly")
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, loggerService, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			if err := database.Migrate(cmd.Context(), &log, cfg.Database.DSN()); err != nil {
				log.Error().Err(err).Msg("failed to migrate database")
				return err
			}
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Reset the schema and load the bundled dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, loggerService, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			fixtures, err := database.LoadFixtures()
			if err != nil {
				log.Error().Err(err).Msg("failed to load fixtures")
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), DefaultContextTimeout*time.Second)
			defer cancel()

			if err := database.Reset(ctx, &log, cfg.Database.DSN()); err != nil {
				log.Error().Err(err).Msg("failed to reset database schema")
				return err
			}

			db, err := database.New(cfg, &log, loggerService, nil)
			if err != nil {
				log.Error().Err(err).Msg("failed to connect to database")
				return err
			}
			defer db.Close()

			if err := database.Seed(ctx, db.Pool, fixtures, &log); err != nil {
				log.Error().Err(err).Msg("failed to seed database")
				return err
			}

			return nil
		},
	}
}
