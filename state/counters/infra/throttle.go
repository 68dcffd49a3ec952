package infra

import (
	"time"

	"golang.org/x/time/rate"
)

// DefaultThrottleInterval é o intervalo usado quando nenhum é informado.
const DefaultThrottleInterval = 200 * time.Millisecond

// Throttle é um limitador de borda de subida: a primeira chamada passa, e
// qualquer chamada antes de interval desde a última que passou é descartada
// (não entra em fila nem é adiada).
//
// Implementado com x/time/rate: bucket de 1 token reposto a cada interval.
// Chamadas negadas não consomem token, então a janela conta a partir da
// última chamada executada.
type Throttle struct {
	lim      *rate.Limiter
	interval time.Duration
	now      func() time.Time
}

type ThrottleOption func(*Throttle)

// WithThrottleClock troca o relógio (testes usam um relógio manual).
func WithThrottleClock(now func() time.Time) ThrottleOption {
	return func(t *Throttle) {
		if now != nil {
			t.now = now
		}
	}
}

// NewThrottle cria um Throttle. interval < 0 nunca limita; interval 0 usa
// DefaultThrottleInterval.
func NewThrottle(interval time.Duration, opts ...ThrottleOption) *Throttle {
	if interval == 0 {
		interval = DefaultThrottleInterval
	}
	t := &Throttle{interval: interval, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}

	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	t.lim = rate.NewLimiter(limit, 1)
	return t
}

func (t *Throttle) Interval() time.Duration { return t.interval }

// Allow implementa domain.Limiter.
func (t *Throttle) Allow() bool {
	return t.lim.AllowN(t.now(), 1)
}

// Throttled embrulha fn: cada chamada roda fn com os próprios argumentos se
// t permitir, ou é descartada.
func Throttled[A any](t *Throttle, fn func(A)) func(A) {
	return func(a A) {
		if t.Allow() {
			fn(a)
		}
	}
}
