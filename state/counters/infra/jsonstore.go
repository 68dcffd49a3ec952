package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"counter-state/state/counters/domain"
)

// JSONStore implementa domain.JSONStore sobre um KVStore.
//
// Nenhuma falha sobe para o chamador: backend nil (sem ambiente de storage),
// erro ou panic do backend, JSON corrompido e quota estourada viram fallback
// na leitura e no-op na escrita. As falhas só aparecem no log.
type JSONStore struct {
	kv     domain.KVStore
	name   string
	logger *slog.Logger
}

type JSONStoreOption func(*JSONStore)

// WithStoreName nomeia o storage nos logs (ex.: "durable", "session").
func WithStoreName(name string) JSONStoreOption {
	return func(s *JSONStore) { s.name = name }
}

func WithLogger(l *slog.Logger) JSONStoreOption {
	return func(s *JSONStore) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewJSONStore(kv domain.KVStore, opts ...JSONStoreOption) *JSONStore {
	s := &JSONStore{
		kv:     kv,
		name:   "kv",
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available informa se existe um backend por trás do adaptador.
func (s *JSONStore) Available() bool {
	return s != nil && s.kv != nil
}

func (s *JSONStore) LoadJSON(ctx context.Context, key string, out any) (ok bool) {
	if !s.Available() {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("storage read panicked", "store", s.name, "key", key, "panic", fmt.Sprint(r))
			ok = false
		}
	}()

	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("storage read failed", "store", s.name, "key", key, "err", err)
		return false
	}
	if !found {
		return false
	}
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Debug("storage value is not valid json", "store", s.name, "key", key, "err", err)
		return false
	}
	return true
}

func (s *JSONStore) SetJSON(ctx context.Context, key string, v any) {
	if !s.Available() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("storage write panicked", "store", s.name, "key", key, "panic", fmt.Sprint(r))
		}
	}()

	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("storage value not serializable", "store", s.name, "key", key, "err", err)
		return
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		s.logger.Warn("storage write failed", "store", s.name, "key", key, "err", err)
	}
}
