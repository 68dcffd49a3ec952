package counters

import (
	"context"
	"io"
	"log/slog"
	"time"

	"counter-state/state/counters/application"
	"counter-state/state/counters/domain"
	"counter-state/state/counters/infra"

	"golang.org/x/text/language"
)

type Options struct {
	// Durable guarda counters:v1. Nil = sem ambiente de storage (fallback sempre).
	Durable domain.KVStore
	// Session guarda prefs:v1.
	Session domain.KVStore

	// PersistInterval é a janela do throttle; 0 usa application.PersistInterval,
	// negativo grava a cada mudança.
	PersistInterval time.Duration
	SortMode        application.SortMode
	Language        language.Tag
	IDFunc          application.IDFunc
	Clock           func() time.Time
	Logger          *slog.Logger
}

// Tracker junta o Store e o Persister já ligados.
type Tracker struct {
	Store     *application.Store
	persister application.Persister
	stop      func()
}

// Open monta as camadas, hidrata o Store e liga a gravação com throttle.
func Open(ctx context.Context, opts Options) *Tracker {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.PersistInterval == 0 {
		opts.PersistInterval = application.PersistInterval
	}

	store := application.NewStore(
		application.WithSortMode(opts.SortMode),
		application.WithLanguage(opts.Language),
		application.WithIDFunc(opts.IDFunc),
	)

	p := application.Persister{
		Store:   store,
		Durable: jsonStore(opts.Durable, "durable", logger),
		Session: jsonStore(opts.Session, "session", logger),
		Gate:    infra.NewThrottle(opts.PersistInterval, infra.WithThrottleClock(opts.Clock)),
		Logger:  logger,
	}

	return &Tracker{
		Store:     store,
		persister: p,
		stop:      p.Start(ctx),
	}
}

// Close para a gravação automática e grava o estado atual uma última vez.
func (t *Tracker) Close(ctx context.Context) {
	if t == nil {
		return
	}
	t.stop()
	t.persister.Flush(ctx)
}

func jsonStore(kv domain.KVStore, name string, logger *slog.Logger) domain.JSONStore {
	if kv == nil {
		return nil
	}
	return infra.NewJSONStore(kv, infra.WithStoreName(name), infra.WithLogger(logger))
}
