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

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/api"
	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/config"
	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/store/redis"
	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/store/sqlite"
	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/worklog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

// env is what both commands need before doing any work.
type env struct {
	cfg   config.Config
	log   *logrus.Logger
	store *sqlite.Store
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagPort != 0 {
		cfg.Port = flagPort
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		config.LogError(logger, "main", "setup", "failed to initialize database", map[string]string{"dbPath": cfg.DBPath}, err)
		return nil, err
	}

	return &env{cfg: cfg, log: logger, store: store}, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.store.Close()

	settings := config.NewSettingsFile(e.cfg.SettingsPath, e.log)

	svc := worklog.NewService(e.store, e.store, settings)
	svc.Audit = e.store
	svc.Log = e.log

	var rdb *goredis.Client
	if e.cfg.RedisAddress != "" {
		rdb, err = redis.Connect(cmd.Context(), e.cfg.RedisAddress)
		if err != nil {
			config.LogError(e.log, "main", "runServe", "failed to connect to redis", map[string]string{"address": e.cfg.RedisAddress}, err)
			return err
		}
		defer rdb.Close()
		svc.Locker = redis.NewLocker(rdb, e.log)
		e.log.WithField("address", e.cfg.RedisAddress).Info("using redis day locks")
	} else {
		e.log.Info("using in-process day locks")
	}

	scheduler := api.NewCapacityAuditScheduler(e.store, e.store, e.log)
	scheduler.CheckInterval = e.cfg.AuditInterval
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(svc, e.store, settings, e.log)
	handler.Scheduler = scheduler

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", e.cfg.Port),
		Handler:      api.NewRouter(handler, e.cfg.CORSOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		e.log.WithFields(logrus.Fields{
			"port":     e.cfg.Port,
			"dbPath":   e.cfg.DBPath,
			"settings": e.cfg.SettingsPath,
		}).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		config.LogError(e.log, "main", "runServe", "server failed", nil, err)
		return err
	}

	e.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		config.LogError(e.log, "main", "runServe", "server forced to shutdown", nil, err)
		return err
	}

	e.log.Info("server stopped")
	return nil
}
