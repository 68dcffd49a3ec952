package domain

import "context"

// Chaves persistidas (uma versão de formato só).
const (
	CountersKey = "counters:v1"
	PrefsKey    = "prefs:v1"
)

// KVStore é um backend chave/valor de texto (durável ou de sessão).
//
// Get retorna ok=false quando a chave não existe. Erros de Get/Set são
// tratados como best-effort pela camada que usa o backend (ver infra.JSONStore).
type KVStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Limiter decide se uma ação pode rodar agora.
//
// Observação: a implementação de infra usa golang.org/x/time/rate com
// burst 1, ou seja, um throttle de borda de subida que descarta chamadas.
type Limiter interface {
	Allow() bool
}

// JSONStore é o adaptador seguro sobre um KVStore: nunca propaga falhas.
//
// LoadJSON decodifica o valor da chave em out e retorna false quando o
// chamador deve usar o fallback (backend ausente ou com erro, chave ausente,
// JSON inválido ou null). SetJSON serializa e grava, engolindo erros.
type JSONStore interface {
	LoadJSON(ctx context.Context, key string, out any) bool
	SetJSON(ctx context.Context, key string, v any)
}

// GetJSON lê key de s, devolvendo fallback em qualquer falha.
func GetJSON[T any](ctx context.Context, s JSONStore, key string, fallback T) T {
	if s == nil {
		return fallback
	}
	var v T
	if !s.LoadJSON(ctx, key, &v) {
		return fallback
	}
	return v
}
