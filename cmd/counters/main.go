package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"counter-state/state/counters"
	"counter-state/state/counters/application"
	"counter-state/state/counters/domain"
	"counter-state/state/counters/infra"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dotenv := os.Getenv("COUNTERS_DOTENV")
	if dotenv == "" {
		dotenv = ".env"
	}
	if err := loadDotEnv(dotenv); err != nil {
		return err
	}
	cfg, args, err := readConfig(os.Args[1:], nil)
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprint(os.Stderr, helpText)
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := newLogger(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	durable, session, closeStorage, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	sortMode := application.SortAlways
	if cfg.SortMode == "enabled" {
		sortMode = application.SortWhenEnabled
	}

	tracker := counters.Open(ctx, counters.Options{
		Durable:         durable,
		Session:         session,
		PersistInterval: cfg.PersistInterval,
		SortMode:        sortMode,
		Language:        language.Make(cfg.Language),
		Logger:          logger,
	})
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		tracker.Close(flushCtx)
	}()

	logger.Info("counters ready",
		"durable", describeDurable(cfg), "persistInterval", cfg.PersistInterval, "sortMode", cfg.SortMode)

	// com argumentos: executa um comando e sai
	if len(args) > 0 {
		return execLine(tracker, strings.Join(args, " "), os.Stdout)
	}

	done := make(chan error, 1)
	go func() { done <- repl(ctx, tracker, os.Stdin, os.Stdout, os.Stderr) }()
	select {
	case <-ctx.Done():
		return nil
	case err := <-done:
		return err
	}
}

func openStorage(ctx context.Context, cfg config, logger *slog.Logger) (durable, session domain.KVStore, closeFn func(), err error) {
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			_ = rdb.Close()
			return nil, nil, nil, fmt.Errorf("redis ping: %w", err)
		}

		sessionID := cfg.SessionID
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		logger.Debug("redis storage", "addr", cfg.RedisAddr, "session", sessionID)

		durable = infra.NewRedisKV(rdb, infra.WithPrefix(cfg.RedisPrefix))
		session = infra.NewRedisKV(rdb,
			infra.WithPrefix(cfg.RedisPrefix+":session:"+sessionID),
			infra.WithTTL(cfg.SessionTTL),
		)
		return durable, session, func() { _ = rdb.Close() }, nil
	}

	db, err := infra.OpenSQLiteKV(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("durable storage: %w", err)
	}
	return db, infra.NewMemoryKV(), func() { _ = db.Close() }, nil
}

func describeDurable(cfg config) string {
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		return "redis://" + cfg.RedisAddr
	}
	return "sqlite:" + cfg.DBPath
}

func newLogger(cfg config) *slog.Logger {
	lvl, _ := parseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
