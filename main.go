package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/spencer-p/tideline/pkg/coops"
	"github.com/spencer-p/tideline/pkg/data"
	"github.com/spencer-p/tideline/pkg/handlers"
	"github.com/spencer-p/tideline/pkg/metrics"
	"github.com/spencer-p/tideline/pkg/station"
)

type Config struct {
	Port    string `default:"8080"`
	Prefix  string `default:"/"`
	Station string `default:"9413745"` // Santa Cruz, CA

	SessionKey    string `envconfig:"SESSION_KEY"`
	EncryptionKey string `envconfig:"ENCRYPTION_KEY"`

	// WarmSchedule is a cron expression for prefetching the day's data.
	WarmSchedule string `envconfig:"WARM_SCHEDULE" default:"17 3 * * *"`
}

func main() {
	// A .env file supplies the environment in development.
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var env Config
	if err := envconfig.Process("", &env); err != nil {
		logger.Fatal("Failed to read config", zap.Error(err))
	}

	client := coops.New(coops.WithLogger(logger))
	st := station.New(client, env.Station, station.WithLogger(logger))

	var db *gorm.DB
	if os.Getenv("PGHOST") != "" {
		db, err = data.PostgresFromEnv()
		if err != nil {
			logger.Fatal("Failed to connect to postgres", zap.Error(err))
		}
	}

	h := handlers.New(handlers.Deps{
		Station: st,
		NewStation: func(id string) *station.Station {
			return station.New(client, id, station.WithLogger(logger))
		},
		DB:            db,
		Logger:        logger,
		SessionKey:    env.SessionKey,
		EncryptionKey: env.EncryptionKey,
	})

	r := mux.NewRouter().StrictSlash(true)
	r.Use(metrics.LatencyHandler)
	r.Handle("/metrics", promhttp.Handler())
	s := r.PathPrefix(env.Prefix).Subrouter()
	h.Register(s)

	c := cron.New()
	if _, err := c.AddFunc(env.WarmSchedule, h.WarmCache); err != nil {
		logger.Fatal("Failed to schedule cache warming",
			zap.String("schedule", env.WarmSchedule),
			zap.Error(err))
	}
	c.Start()
	defer c.Stop()
	go h.WarmCache()

	srv := &http.Server{
		Handler:      r,
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	go func() {
		logger.Info("Listening and serving",
			zap.String("addr", srv.Addr),
			zap.String("prefix", env.Prefix))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
	}
}
