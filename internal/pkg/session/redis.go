package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"estoquefront/internal/domain"
)

// RedisStore é a implementação concreta da interface Store, usando Redis.
// A sessão sobrevive a reinícios do servidor e a recargas de página; o TTL
// limita a vida da sessão no lado do armazenamento.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore cria e retorna um novo store de sessões em Redis.
func NewRedisStore(addr string, ttl time.Duration) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// Teste de conexão: PING para garantir que o Redis está disponível.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = rdb.Ping(ctx).Err()

	return &RedisStore{rdb: rdb, ttl: ttl}
}

const sessionKeyPrefix = "sessao:"

// Set grava o par de tokens da sessão, sobrescrevendo qualquer par anterior.
func (s *RedisStore) Set(ctx context.Context, id string, pair domain.TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKeyPrefix+id, data, s.ttl).Err()
}

// Get recupera o par de tokens da sessão.
func (s *RedisStore) Get(ctx context.Context, id string) (domain.TokenPair, error) {
	val, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Result()
	if err == redis.Nil {
		return domain.TokenPair{}, ErrSessionMiss
	}
	if err != nil {
		return domain.TokenPair{}, err
	}

	var pair domain.TokenPair
	if err := json.Unmarshal([]byte(val), &pair); err != nil {
		return domain.TokenPair{}, err
	}
	return pair, nil
}

// Clear remove os tokens da sessão (logout ou 401 forçado).
func (s *RedisStore) Clear(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

// Incr incrementa um contador com janela fixa (rate limiting do login).
// A expiração é definida apenas quando o contador nasce.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		s.rdb.Expire(ctx, key, window)
	}
	return count, nil
}
