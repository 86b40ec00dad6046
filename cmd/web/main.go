package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barberia-web/internal/config"
	"github.com/BruksfildServices01/barberia-web/internal/infra/remote"
	"github.com/BruksfildServices01/barberia-web/internal/metrics"
	"github.com/BruksfildServices01/barberia-web/internal/middleware"
	"github.com/BruksfildServices01/barberia-web/internal/routes"
)

func main() {

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := config.Load()

	metrics.Register()

	// 401 da API remota é a política global de logout: o front recebe
	// session_expired e volta para o login.
	onUnauthorized := func() {
		metrics.IncSessionExpired()
		log.Warn().Msg("booking api returned 401, session dropped")
	}

	base := remote.NewClient(cfg.APIBaseURL, onUnauthorized)

	if cfg.RedisAddr != "" && cfg.CacheTTLSeconds > 0 {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		base.UseRedisCache(rdb, time.Duration(cfg.CacheTTLSeconds)*time.Second)
		log.Info().Str("addr", cfg.RedisAddr).Int("ttl_s", cfg.CacheTTLSeconds).
			Msg("response cache enabled")
	} else {
		log.Info().Msg("response cache disabled")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(metrics.Middleware())

	routes.RegisterRoutes(r, base, cfg, log)

	log.Info().Str("addr", cfg.Addr()).Str("api", cfg.APIBaseURL).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
