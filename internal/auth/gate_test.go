package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mahmoud-eltahawy/cryptos-site/internal/auth"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/session"
)

func newGateTest(t *testing.T) (*auth.Gate, *session.Manager, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := session.NewManager(session.NewRedisStore(rdb, time.Hour))
	return auth.NewGate(sessions), sessions, mr, func() {
		rdb.Close()
		mr.Close()
	}
}

func TestAnonymousIsUnauthorizedEverywhere(t *testing.T) {
	gate, _, _, done := newGateTest(t)
	defer done()
	ctx := context.Background()

	if _, err := gate.RequireAuthenticated(ctx, "sid-1"); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := gate.RequireAdmin(ctx, "sid-1"); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUserLevelIsForbiddenNotUnauthorized(t *testing.T) {
	gate, sessions, _, done := newGateTest(t)
	defer done()
	ctx := context.Background()

	principalID := uuid.New()
	if err := sessions.Establish(ctx, "sid-1", principalID, auth.LevelUser); err != nil {
		t.Fatalf("establish: %v", err)
	}

	id, err := gate.RequireAuthenticated(ctx, "sid-1")
	if err != nil {
		t.Fatalf("authenticated user rejected: %v", err)
	}
	if id != principalID {
		t.Fatalf("expected %s, got %s", principalID, id)
	}

	// Logged in but not an admin: the caller must be able to tell this
	// apart from "not logged in".
	if _, err := gate.RequireAdmin(ctx, "sid-1"); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAdminLevelPassesBothGates(t *testing.T) {
	gate, sessions, _, done := newGateTest(t)
	defer done()
	ctx := context.Background()

	principalID := uuid.New()
	if err := sessions.Establish(ctx, "sid-1", principalID, auth.LevelAdmin); err != nil {
		t.Fatalf("establish: %v", err)
	}

	if _, err := gate.RequireAuthenticated(ctx, "sid-1"); err != nil {
		t.Fatalf("require authenticated: %v", err)
	}

	id, err := gate.RequireAdmin(ctx, "sid-1")
	if err != nil {
		t.Fatalf("require admin: %v", err)
	}
	if id != principalID {
		t.Fatalf("expected %s, got %s", principalID, id)
	}
}

func TestClearedSessionIsUnauthorizedAgain(t *testing.T) {
	gate, sessions, _, done := newGateTest(t)
	defer done()
	ctx := context.Background()

	if err := sessions.Establish(ctx, "sid-1", uuid.New(), auth.LevelAdmin); err != nil {
		t.Fatalf("establish: %v", err)
	}
	if err := sessions.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if _, err := gate.RequireAdmin(ctx, "sid-1"); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after clear, got %v", err)
	}
}

func TestStoreFailureIsNeitherUnauthorizedNorForbidden(t *testing.T) {
	gate, sessions, mr, done := newGateTest(t)
	defer done()
	ctx := context.Background()

	if err := sessions.Establish(ctx, "sid-1", uuid.New(), auth.LevelAdmin); err != nil {
		t.Fatalf("establish: %v", err)
	}

	mr.SetError("store down")

	_, err := gate.RequireAuthenticated(ctx, "sid-1")
	if err == nil {
		t.Fatal("expected error on store outage")
	}
	if errors.Is(err, auth.ErrUnauthorized) || errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("store outage must not map to an auth decision, got %v", err)
	}
}
