package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mahmoud-eltahawy/cryptos-site/internal/auth"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/logger"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/session"
)

const principalIDKey = "principalID"

// PrincipalID extracts the authenticated principal set by RequireAuth.
func PrincipalID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(principalIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// Auth wires the authorization gate into the router. The gate check
// runs and completes before any guarded handler executes; on failure
// the chain is aborted and the handler never runs.
type Auth struct {
	gate *auth.Gate
}

func NewAuth(gate *auth.Gate) *Auth {
	return &Auth{gate: gate}
}

func sessionID(c *gin.Context) string {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// RequireAuth admits any authenticated principal. Anonymous requests
// get 401 (the UI redirects those to the login page); a session-store
// failure is a 500, never a 401 — "store is down" must not read as
// "logged out".
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := a.gate.RequireAuthenticated(c.Request.Context(), sessionID(c))
		if err != nil {
			abortWithAuthError(c, err)
			return
		}
		c.Set(principalIDKey, id)
		c.Next()
	}
}

// RequireAdmin admits Admin principals only. Authenticated non-admins
// get 403 and keep their session.
func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := a.gate.RequireAdmin(c.Request.Context(), sessionID(c))
		if err != nil {
			abortWithAuthError(c, err)
			return
		}
		c.Set(principalIDKey, id)
		c.Next()
	}
}

func abortWithAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, auth.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		logger.Error("session store failure", map[string]any{
			"error": err.Error(),
			"path":  c.Request.URL.Path,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session store unavailable"})
	}
}
