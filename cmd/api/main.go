package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/taskforge/task-system/internal/api"
	"github.com/taskforge/task-system/internal/infrastructure/config"
	mongodb "github.com/taskforge/task-system/internal/infrastructure/db/mongo"
	redisdb "github.com/taskforge/task-system/internal/infrastructure/db/redis"
	httpserver "github.com/taskforge/task-system/internal/infrastructure/http"
	"github.com/taskforge/task-system/pkg/logger"
)

// @title           Task System API
// @version         1.0
// @description     Project and task management API with stateless JWT authentication, a three-tier role hierarchy, and per-task ownership checks.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure mongodb indexes")
	}

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	e := api.NewRouter(ctx, db, rdb, cfg, log)

	if err := httpserver.Start(ctx, e, cfg.Port, log); err != nil {
		log.Fatal().Err(err).Msg("http server error")
	}
}
