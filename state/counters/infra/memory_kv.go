package infra

import (
	"context"
	"errors"
	"sync"
)

// ErrQuotaExceeded é devolvido quando uma escrita passaria da quota.
var ErrQuotaExceeded = errors.New("storage: quota exceeded")

// MemoryKV é um KVStore em memória, com escopo de processo. Serve como
// storage de sessão do CLI e como backend em testes.
//
// Com quota > 0, Set falha com ErrQuotaExceeded quando a soma dos tamanhos
// (chave + valor) passaria do limite.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
	used   int
	quota  int
}

type MemoryKVOption func(*MemoryKV)

// WithQuota limita o total de bytes guardados. 0 desliga o limite.
func WithQuota(bytes int) MemoryKVOption {
	return func(s *MemoryKV) { s.quota = bytes }
}

func NewMemoryKV(opts ...MemoryKVOption) *MemoryKV {
	s := &MemoryKV{values: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used
	if old, ok := s.values[key]; ok {
		used -= len(key) + len(old)
	}
	used += len(key) + len(value)
	if s.quota > 0 && used > s.quota {
		return ErrQuotaExceeded
	}

	s.values[key] = value
	s.used = used
	return nil
}
