// Package infra contém implementações concretas para os contratos do pacote domain.
//
// Exemplos:
//   - JSONStore: adaptador JSON seguro sobre qualquer domain.KVStore
//   - MemoryKV: storage de sessão em memória (com quota opcional)
//   - RedisKV / SQLiteKV: backends duráveis (ou de sessão, com TTL no Redis)
//   - Throttle: limitador de borda de subida usando golang.org/x/time/rate
package infra
