package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tubewarden/tubewarden/internal/api"
	"github.com/tubewarden/tubewarden/internal/auth"
	"github.com/tubewarden/tubewarden/internal/config"
	"github.com/tubewarden/tubewarden/internal/database"
	"github.com/tubewarden/tubewarden/internal/llm"
	"github.com/tubewarden/tubewarden/internal/logger"
	"github.com/tubewarden/tubewarden/internal/platform/youtube"
	"github.com/tubewarden/tubewarden/internal/sentiment"
	"github.com/tubewarden/tubewarden/internal/spam"
	"github.com/tubewarden/tubewarden/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		logger.Must(logger.Config{}).Fatal("failed to load configuration", logger.Error(err))
	}

	log := logger.Must(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	defer log.Sync()

	log.Info("starting tubewarden",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
		logger.Bool("debug", cfg.Service.Debug),
	)

	// Session store
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})
	defer rdb.Close()

	sessions := auth.NewStore(rdb, cfg.Redis.SessionTTL, log)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := sessions.Ping(pingCtx); err != nil {
		cancel()
		log.Fatal("redis unreachable", logger.Error(err))
	}
	cancel()
	log.Info("session store connected", logger.String("addr", cfg.Redis.Addr))

	// Optional moderation history
	var history *database.HistoryRepository
	if cfg.Database.Enabled {
		db, dbErr := database.NewPostgresConnection(cfg.Database)
		if dbErr != nil {
			log.Fatal("failed to connect to database", logger.Error(dbErr))
		}
		defer db.Close()

		repo, repoErr := database.NewHistoryRepository(db)
		if repoErr != nil {
			log.Fatal("failed to initialize history repository", logger.Error(repoErr))
		}
		history = repo
		log.Info("moderation history enabled", logger.String("host", cfg.Database.Host))
	}

	// Telemetry, model client, classification pipeline
	tp := telemetry.NewProvider()
	model := llm.NewClient(cfg.Anthropic)
	classifier := spam.NewClassifier(model, log, tp)
	scorer := sentiment.NewScorer(model, log, tp)

	// Per-session platform access
	factory := youtube.NewFactory(cfg.Google, sessions, log)
	oauthConf := youtube.OAuthConfig(cfg.Google)

	handler := api.NewHandler(
		factory,
		classifier,
		scorer,
		model,
		history,
		sessions,
		cfg.Service,
		log,
		tp,
	)
	authHandler := api.NewAuthHandler(
		oauthConf,
		sessions,
		int(cfg.Redis.SessionTTL.Seconds()),
		!cfg.Service.Debug,
		log,
	)

	server := api.NewServer(handler, authHandler, cfg.Service.Port, cfg.Service.Debug, log)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal("server error", logger.Error(err))
	case sig := <-shutdown:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatal("graceful shutdown failed", logger.Error(err))
		}

		log.Info("server stopped gracefully")
	}
}
