package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Sessions is the view of the session lifecycle the gate needs.
// Implemented by session.Manager.
type Sessions interface {
	ResolvePrincipal(ctx context.Context, sessionID string) (uuid.UUID, bool, error)
	ResolveRole(ctx context.Context, sessionID string) (Level, bool, error)
}

// Gate converts session state into an access decision. Every protected
// handler goes through it instead of re-reading the session itself.
type Gate struct {
	sessions Sessions
}

func NewGate(sessions Sessions) *Gate {
	return &Gate{sessions: sessions}
}

// RequireAuthenticated succeeds iff the session carries a principal.
// A session-store failure propagates as-is; it is never collapsed into
// ErrUnauthorized, because "store is down" and "not logged in" demand
// different responses.
func (g *Gate) RequireAuthenticated(ctx context.Context, sessionID string) (uuid.UUID, error) {
	id, ok, err := g.sessions.ResolvePrincipal(ctx, sessionID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("auth: resolve principal: %w", err)
	}
	if !ok {
		return uuid.Nil, ErrUnauthorized
	}
	return id, nil
}

// RequireAdmin first requires authentication, then an Admin role snapshot.
// The two failure kinds stay distinct: ErrUnauthorized asks for a login,
// ErrForbidden denies the single action.
func (g *Gate) RequireAdmin(ctx context.Context, sessionID string) (uuid.UUID, error) {
	id, err := g.RequireAuthenticated(ctx, sessionID)
	if err != nil {
		return uuid.Nil, err
	}

	level, ok, err := g.sessions.ResolveRole(ctx, sessionID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("auth: resolve role: %w", err)
	}
	if !ok {
		// Principal without a role snapshot should not happen (both are
		// written atomically); fail closed if it does.
		return uuid.Nil, ErrUnauthorized
	}
	if level != LevelAdmin {
		return uuid.Nil, ErrForbidden
	}
	return id, nil
}
