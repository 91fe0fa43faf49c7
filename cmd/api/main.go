package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/studio-scheduler/internal/audit"
	"github.com/BruksfildServices01/studio-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/studio-scheduler/internal/db"
	"github.com/BruksfildServices01/studio-scheduler/internal/events"
	"github.com/BruksfildServices01/studio-scheduler/internal/lock"
	"github.com/BruksfildServices01/studio-scheduler/internal/logging"
	"github.com/BruksfildServices01/studio-scheduler/internal/metrics"
	"github.com/BruksfildServices01/studio-scheduler/internal/middleware"
	"github.com/BruksfildServices01/studio-scheduler/internal/reasons"
	"github.com/BruksfildServices01/studio-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger.Logger)

	db := dbpkg.NewDB(cfg)

	catalog, err := reasons.Load(cfg.ReasonsFile)
	if err != nil {
		logger.Error("failed to load reason catalog", "file", cfg.ReasonsFile, "err", err)
		os.Exit(1)
	}

	// ------ metrics ------
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	transitionMetrics := metrics.NewTransitionMetrics(reg)

	// ------ calendar lock ------
	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Error("failed to connect redis", "addr", cfg.RedisAddr, "err", err)
			os.Exit(1)
		}
		locker = lock.NewRedisLocker(rdb, cfg.LockTTL, logger.Logger)
		logger.Info("using redis calendar lock", "addr", cfg.RedisAddr)
	}

	// ------ events ------
	auditLogger := audit.New(db)
	sinks := []events.Sink{auditLogger, events.LogSink{Logger: logger.Logger}}
	if len(cfg.KafkaBrokers) > 0 {
		writer := events.NewKafkaWriter(cfg.KafkaBrokers)
		defer writer.Close()
		sinks = append(sinks, events.NewKafkaSink(writer, cfg.KafkaTopic))
		logger.Info("publishing events to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	dispatcher := events.NewDispatcher(logger.Logger, transitionMetrics, sinks...)

	// ------ http ------
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	routes.RegisterRoutes(r, db, cfg, routes.Deps{
		Logger:  logger.Logger,
		Locker:  locker,
		Events:  dispatcher,
		Metrics: transitionMetrics,
		Reasons: catalog,
		Audit:   auditLogger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "err", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "err", err)
	}

	// Requests are done; flush what they published.
	dispatcher.Close()
}
