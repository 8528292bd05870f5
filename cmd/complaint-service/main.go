package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"complaint-service/internal/auth"
	"complaint-service/internal/config"
	"complaint-service/internal/db"
	httphandler "complaint-service/internal/http"
	"complaint-service/internal/http/middleware"
	"complaint-service/internal/logger"
	"complaint-service/internal/metrics"
	"complaint-service/internal/repository"
	"complaint-service/internal/service"
	"complaint-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)

	kv, health, closeKV, err := openKV(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open complaint store")
	}
	defer closeKV()

	recorder := metrics.NewRecorder()
	recordStore := store.NewRecordStore(kv, cfg.Store.Key, log)
	complaintRepo := repository.NewComplaintRepository(recordStore, repository.WithIDPrefix(cfg.Store.IDPrefix))

	complaintService := service.NewComplaintService(complaintRepo, recorder)
	workflowService := service.NewWorkflowService(complaintRepo, recorder)
	appealService := service.NewAppealService(complaintRepo, recorder)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(complaintService, workflowService, appealService, log)
	router := httphandler.NewRouter(httphandler.RouterDeps{
		Handler:        handler,
		AuthMiddleware: middleware.Auth(tokenParser),
		Metrics:        recorder,
		Health:         health,
		Log:            log,
		Environment:    cfg.Environment,
	})

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().
		Str("addr", addr).
		Str("store_driver", cfg.Store.Driver).
		Str("store_key", recordStore.Key()).
		Msg("starting complaint service")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func openKV(cfg *config.Config, log zerolog.Logger) (store.KV, httphandler.HealthCheck, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		database, err := db.NewPostgres(cfg.DB, cfg.Environment, log)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := database.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return store.NewGormKV(database), db.PostgresHealthCheck(database), closeFn, nil
	case config.StoreDriverRedis:
		client, err := db.NewRedis(cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.NewRedisKV(client), db.RedisHealthCheck(client), func() { _ = client.Close() }, nil
	case config.StoreDriverMongo:
		client, collection, err := db.NewMongo(cfg.Mongo)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return store.NewMongoKV(collection), db.MongoHealthCheck(client), closeFn, nil
	default:
		log.Warn().Msg("memory store selected; complaints are lost on restart")
		return store.NewMemoryKV(), nil, func() {}, nil
	}
}
