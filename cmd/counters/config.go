package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
)

type config struct {
	DBPath string `env:"COUNTERS_DB" envDefault:"counters.db"`

	RedisAddr     string `env:"COUNTERS_REDIS_ADDR"`
	RedisPassword string `env:"COUNTERS_REDIS_PASSWORD"`
	RedisDB       int    `env:"COUNTERS_REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"COUNTERS_REDIS_PREFIX" envDefault:"counters"`

	// SessionID só tem efeito com Redis: prefs ficam em <prefix>:session:<id>
	// e expiram depois de SessionTTL sem escrita. Sem Redis, a sessão é o
	// próprio processo (memória).
	SessionID  string        `env:"COUNTERS_SESSION_ID"`
	SessionTTL time.Duration `env:"COUNTERS_SESSION_TTL" envDefault:"30m"`

	PersistInterval time.Duration `env:"COUNTERS_PERSIST_INTERVAL" envDefault:"250ms"`
	SortMode        string        `env:"COUNTERS_SORT_MODE" envDefault:"always"`
	Language        string        `env:"COUNTERS_LANG" envDefault:"und"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// loadDotEnv carrega um .env opcional antes de ler as variáveis.
func loadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// readConfig lê env (.env incluso) e aplica flags por cima; environ nil usa
// o ambiente do processo. Devolve os argumentos posicionais que sobraram (o
// comando a executar).
func readConfig(args []string, environ map[string]string) (config, []string, error) {
	cfg := config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return config{}, nil, fmt.Errorf("parse env: %w", err)
	}

	flags := pflag.NewFlagSet("counters", pflag.ContinueOnError)
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite file for durable storage")
	flags.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address (replaces sqlite when set)")
	flags.StringVar(&cfg.SessionID, "session", cfg.SessionID, "session id for prefs kept in redis")
	flags.DurationVar(&cfg.PersistInterval, "persist-interval", cfg.PersistInterval, "throttle window for writes")
	flags.StringVar(&cfg.SortMode, "sort-mode", cfg.SortMode, "always | enabled")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug | info | warn | error")
	if err := flags.Parse(args); err != nil {
		return config{}, nil, err
	}

	cfg.SortMode = strings.ToLower(strings.TrimSpace(cfg.SortMode))
	if cfg.SortMode != "always" && cfg.SortMode != "enabled" {
		return config{}, nil, errors.New("COUNTERS_SORT_MODE must be always or enabled")
	}
	if strings.TrimSpace(cfg.RedisAddr) == "" && strings.TrimSpace(cfg.DBPath) == "" {
		return config{}, nil, errors.New("COUNTERS_DB is required when COUNTERS_REDIS_ADDR is empty")
	}
	if cfg.SessionTTL < 0 {
		return config{}, nil, errors.New("COUNTERS_SESSION_TTL must be >= 0")
	}
	if _, err := language.Parse(cfg.Language); err != nil {
		return config{}, nil, fmt.Errorf("invalid COUNTERS_LANG %q: %w", cfg.Language, err)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return config{}, nil, err
	}
	return cfg, flags.Args(), nil
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return lvl, nil
}
