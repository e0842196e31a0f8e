package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*RevocationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRevocationStore(client), mr
}

func TestRevocationStore_RevokeAndCheck(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if revoked {
		t.Fatalf("fresh token reported as revoked")
	}

	if err := store.Revoke(ctx, "jti-1", time.Hour); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	revoked, err = store.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if !revoked {
		t.Fatalf("expected jti-1 to be revoked")
	}

	if other, _ := store.IsRevoked(ctx, "jti-2"); other {
		t.Fatalf("revocation leaked to another token id")
	}
}

func TestRevocationStore_EntryExpiresWithToken(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Revoke(ctx, "jti-ttl", 30*time.Minute); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if ttl := mr.TTL(revokedPrefix + "jti-ttl"); ttl != 30*time.Minute {
		t.Fatalf("expected ttl 30m, got %v", ttl)
	}

	mr.FastForward(31 * time.Minute)

	revoked, err := store.IsRevoked(ctx, "jti-ttl")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if revoked {
		t.Fatalf("expected entry to expire with the token")
	}
}

func TestRevocationStore_NonPositiveTTLIsNoop(t *testing.T) {
	store, mr := newTestStore(t)

	if err := store.Revoke(context.Background(), "jti-old", 0); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if mr.Exists(revokedPrefix + "jti-old") {
		t.Fatalf("expected no key for an already expired token")
	}
}

func TestRevocationStore_ConnectionError(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	if _, err := store.IsRevoked(context.Background(), "jti"); err == nil {
		t.Fatalf("expected error when redis is unreachable")
	}
}
