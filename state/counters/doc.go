// Package counters monta o núcleo de estado do rastreador de contadores.
//
// Visão geral (camadas):
//
//   - domain: tipos (Counter, Prefs, RootState), limites e contratos (KVStore, JSONStore, Limiter)
//   - application: Store (comandos + consultas derivadas + assinantes) e Persister
//   - infra: storages concretos (memória, Redis, SQLite), adaptador JSON seguro e throttle
//   - counters (este pacote): wiring das camadas e formatação de saída para o CLI
//
// Fluxo:
//
//  1. Open lê counters:v1 do storage durável e prefs:v1 do de sessão e hidrata o Store
//  2. a camada de apresentação dispara comandos pelo nome (Store.Dispatch) ou pelos métodos
//  3. cada comando notifica os assinantes; o Persister grava com throttle de 250ms
//  4. Close grava o último estado (o throttle descarta chamadas, não adia)
//
// Comandos inválidos são no-op silenciosos, de propósito.
package counters
