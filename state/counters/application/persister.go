package application

import (
	"context"
	"io"
	"log/slog"
	"time"

	"counter-state/state/counters/domain"
)

// PersistInterval é o intervalo de throttle das gravações nesta aplicação.
const PersistInterval = 250 * time.Millisecond

// Persister liga o Store aos dois storages: contadores no durável
// (domain.CountersKey) e prefs no de sessão (domain.PrefsKey).
//
// Gate decide se uma mudança grava agora; com throttle de borda de subida,
// mudanças dentro da janela são descartadas (não há gravação no fim da
// janela). Use Flush antes de encerrar para gravar o último estado.
// Gate nil grava a cada mudança.
type Persister struct {
	Store   *Store
	Durable domain.JSONStore
	Session domain.JSONStore
	Gate    domain.Limiter
	Logger  *slog.Logger
}

// Start hidrata o Store com o que estiver persistido e passa a gravar a cada
// mudança. O ctx é usado nas gravações feitas pelo assinante. Retorna a
// função que para a gravação.
func (p Persister) Start(ctx context.Context) (stop func()) {
	if p.Store == nil {
		return func() {}
	}
	log := p.logger()

	counters := domain.GetJSON(ctx, p.Durable, domain.CountersKey, []domain.Counter{})
	prefs := domain.GetJSON(ctx, p.Session, domain.PrefsKey, domain.DefaultPrefs().Patch())
	p.Store.Hydrate(domain.HydratePayload{Counters: &counters, Prefs: &prefs})

	log.Debug("state hydrated", "counters", len(p.Store.Snapshot().Counters))

	return p.Store.Subscribe(func(m domain.Mutation, _ domain.RootState) {
		if p.Gate != nil && !p.Gate.Allow() {
			log.Debug("persist throttled", "mutation", m.Type)
			return
		}
		// estado atual no momento da gravação, não o da mutação
		p.write(ctx, p.Store.Snapshot())
	})
}

// Flush grava o estado atual sem passar pelo Gate.
func (p Persister) Flush(ctx context.Context) {
	if p.Store == nil {
		return
	}
	p.write(ctx, p.Store.Snapshot())
}

func (p Persister) write(ctx context.Context, st domain.RootState) {
	if p.Durable != nil {
		p.Durable.SetJSON(ctx, domain.CountersKey, st.Counters)
	}
	if p.Session != nil {
		p.Session.SetJSON(ctx, domain.PrefsKey, st.Prefs)
	}
}

func (p Persister) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
