package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/punitarani/flights-tracker-sub001/internal/cache"
	"github.com/punitarani/flights-tracker-sub001/internal/config"
	"github.com/punitarani/flights-tracker-sub001/internal/handler"
	"github.com/punitarani/flights-tracker-sub001/internal/protocol"
	"github.com/punitarani/flights-tracker-sub001/internal/registry"
	"github.com/punitarani/flights-tracker-sub001/internal/search"
	"github.com/punitarani/flights-tracker-sub001/internal/transport"
	"github.com/punitarani/flights-tracker-sub001/pkg/logger"
	"github.com/punitarani/flights-tracker-sub001/pkg/metrics"
)

func main() {
	cfg := config.Load()
	log := logger.New()

	reg := registry.New()
	if cfg.RegistryExtraPath != "" {
		if err := reg.LoadExtra(cfg.RegistryExtraPath); err != nil {
			log.Warn("could not load extra registry codes",
				"path", cfg.RegistryExtraPath, "error", err)
		} else {
			log.Info("registry extended",
				"airports", reg.AirportCount(), "airlines", reg.AirlineCount())
		}
	}

	m := metrics.New("flights")

	tr := transport.NewClient(transport.Config{
		RequestsPerSecond: cfg.UpstreamRPS,
		Burst:             cfg.UpstreamBurst,
		MaxInFlight:       cfg.MaxInFlight,
		MaxAttempts:       cfg.MaxAttempts,
		BackoffBase:       cfg.BackoffBase,
		Timeout:           cfg.RequestTimeout,
		UserAgent:         cfg.UserAgent,
	}, log, m)

	codec := protocol.NewCodec(reg, log, m)

	searcher := search.NewClient(tr, codec, search.Config{
		ChunkParallelism: cfg.ChunkParallelism,
		DefaultTopN:      cfg.DefaultTopN,
	}, log, m)

	var resultCache cache.Cache = cache.NewNoOpCache()
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			log.Warn("redis unavailable, caching disabled", "error", err)
		} else {
			resultCache = redisCache
			log.Info("redis cache connected", "host", cfg.RedisHost, "ttl", cfg.RedisTTL)
		}
	}
	defer resultCache.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	searchHandler := handler.NewSearchHandler(searcher, resultCache, log)
	searchHandler.RegisterRoutes(e.Group("/api/v1"))

	go func() {
		log.Info("server starting", "port", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
}
