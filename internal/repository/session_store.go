package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionOpTimeout = 500 * time.Millisecond

// SessionStore guarda sesiones efímeras token -> id de credencial con TTL
// fijo al crearlas; una lectura nunca extiende la expiración.
type SessionStore interface {
	Create(ctx context.Context, value string, ttl time.Duration) (string, error)
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

// RedisSessionStore implementa SessionStore sobre Redis.
type RedisSessionStore struct {
	client *redis.Client
	prefix string
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		prefix: "auth:session:",
	}
}

func (s *RedisSessionStore) Create(ctx context.Context, value string, ttl time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, sessionOpTimeout)
	defer cancel()

	token := uuid.NewString()
	if err := s.client.Set(ctx, s.prefix+token, value, ttl).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, token string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, sessionOpTimeout)
	defer cancel()

	value, err := s.client.Get(ctx, s.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("get session: %w", ErrNotFound)
		}
		return "", fmt.Errorf("get session: %w", err)
	}
	return value, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, sessionOpTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.prefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

type memorySession struct {
	value     string
	expiresAt time.Time
}

// MemorySessionStore es la variante en memoria, para desarrollo y tests.
type MemorySessionStore struct {
	mu    sync.Mutex
	items map[string]memorySession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{items: make(map[string]memorySession)}
}

func (s *MemorySessionStore) Create(_ context.Context, value string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.NewString()
	s.items[token] = memorySession{
		value:     value,
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return token, nil
}

func (s *MemorySessionStore) Get(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[token]
	if !ok {
		return "", fmt.Errorf("get session: %w", ErrNotFound)
	}
	if time.Now().UTC().After(item.expiresAt) {
		delete(s.items, token)
		return "", fmt.Errorf("get session: %w", ErrNotFound)
	}
	return item.value, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, token)
	return nil
}
