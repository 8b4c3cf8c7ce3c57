package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSessionStore(client), mr
}

func TestRedisSessionStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}

	value, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if value != "user-1" {
		t.Fatalf("expected user-1, got %s", value)
	}
}

func TestRedisSessionStoreTokensAreUnique(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	t1, err := store.Create(ctx, "user-1", time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	t2, err := store.Create(ctx, "user-1", time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if t1 == t2 {
		t.Fatalf("expected distinct tokens per session")
	}
}

func TestRedisSessionStoreExpiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// El TTL es fijo: una lectura no lo renueva.
	if _, err := store.Get(ctx, token); err != nil {
		t.Fatalf("expected session before expiry, got %v", err)
	}
	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, token)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestRedisSessionStoreDelete(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := store.Get(ctx, token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Borrar dos veces no falla a nivel de store.
	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("expected idempotent delete, got %v", err)
	}
}

func TestMemorySessionStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	value, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if value != "user-1" {
		t.Fatalf("expected user-1, got %s", value)
	}

	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := store.Get(ctx, token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", 10*time.Millisecond)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	_, err = store.Get(ctx, token)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestMemorySessionStoreUnknownToken(t *testing.T) {
	store := NewMemorySessionStore()

	_, err := store.Get(context.Background(), "no-such-token")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
