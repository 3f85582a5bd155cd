package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mahmoud-eltahawy/cryptos-site/internal/auth"
)

// Manager owns the authentication state attached to a session.
// A session is either anonymous or carries a principal id plus the role
// captured at login time. The role snapshot is not re-read from the
// identity store afterwards; a role change takes effect on next login.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// ResolvePrincipal reads the principal attached to the session.
// Missing, expired, and malformed records all resolve to anonymous;
// only a store I/O failure is an error.
func (m *Manager) ResolvePrincipal(ctx context.Context, sessionID string) (uuid.UUID, bool, error) {
	if sessionID == "" {
		return uuid.Nil, false, nil
	}

	val, ok, err := m.store.Get(ctx, sessionID, FieldUserID)
	if err != nil {
		return uuid.Nil, false, err
	}
	if !ok {
		return uuid.Nil, false, nil
	}

	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

// ResolveRole reads the role snapshot cached at login time.
func (m *Manager) ResolveRole(ctx context.Context, sessionID string) (auth.Level, bool, error) {
	if sessionID == "" {
		return "", false, nil
	}

	val, ok, err := m.store.Get(ctx, sessionID, FieldUserLevel)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	level, ok := auth.ParseLevel(val)
	if !ok {
		return "", false, nil
	}
	return level, true, nil
}

// Establish marks the session authenticated. Caller must have verified
// credentials first. Principal id and role snapshot are written in a
// single store round-trip, both-or-neither.
func (m *Manager) Establish(ctx context.Context, sessionID string, principalID uuid.UUID, level auth.Level) error {
	if sessionID == "" {
		return fmt.Errorf("session: missing session id")
	}
	if principalID == uuid.Nil {
		return fmt.Errorf("session: missing principal id")
	}

	return m.store.Set(ctx, sessionID, map[string]string{
		FieldUserID:    principalID.String(),
		FieldUserLevel: level.String(),
	})
}

// Clear returns the session to anonymous. Idempotent: clearing an
// already-anonymous session succeeds. The flush completes before Clear
// returns, so a same-request read observes anonymous.
func (m *Manager) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := m.store.Remove(ctx, sessionID, FieldUserID, FieldUserLevel); err != nil {
		return err
	}
	return m.store.Flush(ctx, sessionID)
}
