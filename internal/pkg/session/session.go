package session

import (
	"context"
	"errors"
	"time"

	"estoquefront/internal/domain"
)

// Store define o contrato de persistência do par de tokens por sessão de
// navegador. É a única fonte de verdade do estado de autenticação.
type Store interface {
	Set(ctx context.Context, id string, pair domain.TokenPair) error
	Get(ctx context.Context, id string) (domain.TokenPair, error)
	Clear(ctx context.Context, id string) error
}

// ErrSessionMiss é retornado quando não há sessão armazenada para o id.
var ErrSessionMiss = errors.New("sessão não encontrada")

// Counter é o contrato de contagem por janela usado pelo rate limiter.
// Implementado pelos mesmos stores de sessão para não exigir um segundo
// cliente de infraestrutura.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}
