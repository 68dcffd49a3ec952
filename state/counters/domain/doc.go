// Package domain define os tipos e contratos do domínio de contadores.
//
// Este pacote não depende de storage, relógio nem de implementações concretas.
// Ele descreve o estado canônico (RootState), os limites do domínio e as
// interfaces que as camadas application e infra implementam ou consomem.
package domain
