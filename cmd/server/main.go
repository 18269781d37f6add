package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/wordduel-go/internal/api"
	"github.com/mcoot/wordduel-go/internal/factory"
	"github.com/mcoot/wordduel-go/internal/server"
	"github.com/mcoot/wordduel-go/internal/services/dictionary"
	redisstorage "github.com/mcoot/wordduel-go/internal/storage/redis"
	"github.com/mcoot/wordduel-go/internal/ws"
)

func main() {
	// A missing .env file is fine; the environment wins either way
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	dictCfg := dictionary.DefaultConfig()
	dictCfg.ValidityTimeout = envDuration(logger, "DICTIONARY_VALIDITY_TIMEOUT", dictCfg.ValidityTimeout)
	dictCfg.DefinitionTimeout = envDuration(logger, "DICTIONARY_DEFINITION_TIMEOUT", dictCfg.DefinitionTimeout)

	cfg := factory.Config{
		Logger:           logger,
		CacheType:        os.Getenv("CACHE_TYPE"),
		DictionarySource: envOrDefault("DICTIONARY_SOURCE", factory.DictionarySourceAPI),
		DictionaryPath:   os.Getenv("DICTIONARY_PATH"),
		DictionaryAPIURL: os.Getenv("DICTIONARY_API_URL"),
		Dictionary:       dictCfg,
		Defaults: ws.Defaults{
			TimeLimit:     envDuration(logger, "DEFAULT_TIME_LIMIT", 0),
			ChallengeMode: envBool(logger, "CHALLENGE_MODE", true),
		},
	}

	// Configure Redis if the dictionary cache lives there
	if cfg.CacheType == factory.CacheTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when CACHE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	srv := api.NewServer(server.NewHandler(app, logger), serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("server started",
		slog.String("addr", srv.Addr()),
		slog.String("dictionary_source", cfg.DictionarySource),
		slog.Bool("challenge_mode", cfg.Defaults.ChallengeMode),
		slog.Duration("default_time_limit", cfg.Defaults.TimeLimit))

	// Wait for shutdown or error
	exitCode := 0
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			exitCode = 1
		}
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			exitCode = 1
		}
	}

	if err := app.Close(); err != nil {
		logger.Error("failed to close application", slog.String("error", err.Error()))
		exitCode = 1
	}

	logger.Info("server stopped")
	os.Exit(exitCode)
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// envDuration reads a Go duration ("3m") or a plain number of milliseconds
func envDuration(logger *slog.Logger, key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if ms, err := strconv.ParseInt(val, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		logger.Warn("ignoring invalid duration", slog.String("key", key), slog.String("value", val))
		return defaultVal
	}
	return d
}

func envBool(logger *slog.Logger, key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		logger.Warn("ignoring invalid boolean", slog.String("key", key), slog.String("value", val))
		return defaultVal
	}
	return b
}
