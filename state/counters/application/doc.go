// Package application contém os casos de uso do domínio de contadores:
// o Store (comandos, consultas derivadas e assinantes) e o Persister
// (hidratação na partida e gravação com throttle a cada mudança).
//
// Ele depende do pacote domain e recebe as implementações concretas
// (KVStore, Limiter) por injeção; não conhece Redis, SQLite nem relógio.
package application
