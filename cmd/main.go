// @title                       Package Features API
// @version                     1.0
// @description                 Users, authentication and package features with soft delete.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "package_features/docs"
	"package_features/internal/config"
	"package_features/internal/handlers"
	"package_features/internal/logger"
	"package_features/internal/repository"
	"package_features/internal/repository/db"
	"package_features/internal/server"
	"package_features/internal/service"
)

const configDir = "configs"

func main() {
	cfg, err := config.Load(configDir)
	if err != nil {
		logger.Get(logger.InfoLevel, logger.FormatConsole).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	gdb, err := db.Open(cfg.DB)
	if err != nil {
		log.Fatalw("failed to open database", "driver", cfg.DB.Driver, "err", err)
	}
	defer func() {
		if cerr := db.Close(gdb); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(gdb)
	services := service.NewService(repos, cfg.Auth)
	apiHandler := handlers.NewHandler(services, log).WithAllowedOrigins(cfg.CORS.AllowedOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Port, apiHandler.InitRoutes(), cfg.ShutdownTimeout)
	log.Infow("http_server_starting", "addr", srv.Addr(), "db_driver", cfg.DB.Driver)
	if err := srv.Run(ctx); err != nil {
		log.Errorw("http_server_stopped", "err", err)
		return
	}
	log.Infow("http_server_stopped")
}
