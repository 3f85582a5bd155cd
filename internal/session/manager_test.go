package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mahmoud-eltahawy/cryptos-site/internal/auth"
)

func newManagerTest(t *testing.T) (*Manager, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(rdb, time.Hour)
	return NewManager(store), mr, func() {
		rdb.Close()
		mr.Close()
	}
}

func TestAnonymousSessionResolvesToNothing(t *testing.T) {
	m, _, done := newManagerTest(t)
	defer done()
	ctx := context.Background()

	if _, ok, err := m.ResolvePrincipal(ctx, "no-such-session"); err != nil || ok {
		t.Fatalf("expected anonymous, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := m.ResolveRole(ctx, "no-such-session"); err != nil || ok {
		t.Fatalf("expected no role, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := m.ResolvePrincipal(ctx, ""); err != nil || ok {
		t.Fatalf("empty session id must be anonymous, got ok=%v err=%v", ok, err)
	}
}

func TestEstablishThenResolveRoundTrip(t *testing.T) {
	m, _, done := newManagerTest(t)
	defer done()
	ctx := context.Background()

	principalID := uuid.New()
	if err := m.Establish(ctx, "sid-1", principalID, auth.LevelAdmin); err != nil {
		t.Fatalf("establish: %v", err)
	}

	// Read-after-write in the same request cycle must see the values.
	id, ok, err := m.ResolvePrincipal(ctx, "sid-1")
	if err != nil || !ok {
		t.Fatalf("resolve principal: ok=%v err=%v", ok, err)
	}
	if id != principalID {
		t.Fatalf("expected %s, got %s", principalID, id)
	}

	level, ok, err := m.ResolveRole(ctx, "sid-1")
	if err != nil || !ok {
		t.Fatalf("resolve role: ok=%v err=%v", ok, err)
	}
	if level != auth.LevelAdmin {
		t.Fatalf("expected Admin, got %s", level)
	}
}

func TestEstablishWritesBothFieldsAtomically(t *testing.T) {
	m, mr, done := newManagerTest(t)
	defer done()
	ctx := context.Background()

	if err := m.Establish(ctx, "sid-1", uuid.New(), auth.LevelUser); err != nil {
		t.Fatalf("establish: %v", err)
	}

	if mr.HGet("session:sid-1", FieldUserID) == "" {
		t.Fatal("user_id missing from session record")
	}
	if mr.HGet("session:sid-1", FieldUserLevel) == "" {
		t.Fatal("user_level missing from session record")
	}
}

func TestEstablishRejectsMissingInputs(t *testing.T) {
	m, _, done := newManagerTest(t)
	defer done()
	ctx := context.Background()

	if err := m.Establish(ctx, "", uuid.New(), auth.LevelUser); err == nil {
		t.Fatal("expected error for empty session id")
	}
	if err := m.Establish(ctx, "sid-1", uuid.Nil, auth.LevelUser); err == nil {
		t.Fatal("expected error for nil principal id")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	m, _, done := newManagerTest(t)
	defer done()
	ctx := context.Background()

	if err := m.Establish(ctx, "sid-1", uuid.New(), auth.LevelUser); err != nil {
		t.Fatalf("establish: %v", err)
	}

	if err := m.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("first clear: %v", err)
	}
	if _, ok, err := m.ResolvePrincipal(ctx, "sid-1"); err != nil || ok {
		t.Fatalf("expected anonymous after clear, got ok=%v err=%v", ok, err)
	}

	// Clearing an already-anonymous session succeeds silently.
	if err := m.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if err := m.Clear(ctx, ""); err != nil {
		t.Fatalf("clear with empty id: %v", err)
	}
}

func TestExpiredSessionReadsAsAnonymous(t *testing.T) {
	m, mr, done := newManagerTest(t)
	defer done()
	ctx := context.Background()

	if err := m.Establish(ctx, "sid-1", uuid.New(), auth.LevelAdmin); err != nil {
		t.Fatalf("establish: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, ok, err := m.ResolvePrincipal(ctx, "sid-1"); err != nil || ok {
		t.Fatalf("expected expired session to be anonymous, got ok=%v err=%v", ok, err)
	}
}

func TestActivityRefreshesTTL(t *testing.T) {
	m, mr, done := newManagerTest(t)
	defer done()
	ctx := context.Background()

	if err := m.Establish(ctx, "sid-1", uuid.New(), auth.LevelUser); err != nil {
		t.Fatalf("establish: %v", err)
	}

	// Keep touching the session just inside the TTL; it must survive
	// well past the original window.
	for i := 0; i < 3; i++ {
		mr.FastForward(45 * time.Minute)
		if _, ok, err := m.ResolvePrincipal(ctx, "sid-1"); err != nil || !ok {
			t.Fatalf("session expired despite activity at step %d: ok=%v err=%v", i, ok, err)
		}
	}
}

func TestMalformedPrincipalReadsAsAnonymous(t *testing.T) {
	m, mr, done := newManagerTest(t)
	defer done()
	ctx := context.Background()

	mr.HSet("session:sid-1", FieldUserID, "not-a-uuid")
	mr.HSet("session:sid-1", FieldUserLevel, "SuperUser")

	if _, ok, err := m.ResolvePrincipal(ctx, "sid-1"); err != nil || ok {
		t.Fatalf("malformed principal must resolve anonymous, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := m.ResolveRole(ctx, "sid-1"); err != nil || ok {
		t.Fatalf("unknown role must resolve to nothing, got ok=%v err=%v", ok, err)
	}
}

func TestStoreOutageIsAnErrorNotAnonymous(t *testing.T) {
	m, mr, done := newManagerTest(t)
	defer done()
	ctx := context.Background()

	if err := m.Establish(ctx, "sid-1", uuid.New(), auth.LevelUser); err != nil {
		t.Fatalf("establish: %v", err)
	}

	mr.SetError("store down")

	if _, _, err := m.ResolvePrincipal(ctx, "sid-1"); err == nil {
		t.Fatal("expected store error to propagate, not read as anonymous")
	}
	if err := m.Establish(ctx, "sid-2", uuid.New(), auth.LevelUser); err == nil {
		t.Fatal("expected establish to surface store error")
	}
}
