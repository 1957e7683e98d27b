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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/DominikBanach/Bono/internal/audit/service"
	"github.com/DominikBanach/Bono/internal/config"
	"github.com/DominikBanach/Bono/internal/db/migrations"
	"github.com/DominikBanach/Bono/internal/definitions"
	"github.com/DominikBanach/Bono/internal/eventlog"
	"github.com/DominikBanach/Bono/internal/logger"
	rl "github.com/DominikBanach/Bono/internal/platform/ratelimit"
	"github.com/DominikBanach/Bono/internal/version"
)

// redisPinger adapts *redis.Client to pinger.
type redisPinger struct{ rc *redis.Client }

func (r redisPinger) Ping(ctx context.Context) error { return r.rc.Ping(ctx).Err() }

func main() {
	_ = godotenv.Load()

	if handleCLICommand(os.Args[1:]) {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		osExit(exitConfig)
		return
	}

	log := logger.New(cfg.AppEnv)
	log.Info().Str("version", version.String()).Stringer("config", cfg).Msg("starting api server")

	if cfg.MigrateOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := migrations.Up(ctx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("schema migration failed")
		}
	}

	// Init Postgres
	pgCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid DATABASE_URL")
	}
	pgPool, err := pgxpool.NewWithConfig(context.Background(), pgCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to create pg pool")
	}
	defer pgPool.Close()

	// Rate limit store: Redis when configured, else process-local
	var cache pinger
	store := rl.NewMemoryStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		defer redisClient.Close()
		store = rl.NewRedisStore(redisClient)
		cache = redisPinger{rc: redisClient}
	}

	e := newEcho(cfg, log, pgPool, cache)

	// Register domain routes via factories
	pub := service.NewLogger()
	defs := definitions.Register(e, pgPool, cfg, store, pub)
	eventlog.Register(e, pgPool, cfg, defs, store, pub)

	// Start server
	go func() {
		if err := e.Start(cfg.AppAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("addr", cfg.AppAddr).Msg("api server listening")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
}
