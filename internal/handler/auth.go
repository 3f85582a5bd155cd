package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mahmoud-eltahawy/cryptos-site/internal/auth"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/logger"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/middleware"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/session"
)

type loginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and establishes an authenticated session.
// The session write completes before the response is sent, so a client
// that immediately hits a protected route sees consistent state.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	principalID, level, err := h.credentials.Authenticate(
		c.Request.Context(),
		req.Name,
		req.Password,
	)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		// One message for unknown name and wrong password.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err != nil {
		logger.Error("credential lookup failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}

	if err := h.sessions.Establish(
		c.Request.Context(),
		sessionID,
		principalID,
		level,
	); err != nil {
		logger.Error("failed to establish session", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}

	session.SetCookie(c.Writer, sessionID, h.cookieOpts)

	logger.Info("login", map[string]any{
		"principal_id": principalID.String(),
		"level":        level.String(),
	})

	c.JSON(http.StatusOK, gin.H{
		"status": "logged_in",
		"id":     principalID,
		"level":  level,
	})
}

// Logout clears the session and the cookie. Idempotent: logging out an
// anonymous client still succeeds with 204.
func (h *Handler) Logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		if err := h.sessions.Clear(c.Request.Context(), cookie.Value); err != nil {
			logger.Error("failed to clear session", map[string]any{
				"error": err.Error(),
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
			return
		}
	}

	session.ClearCookie(c.Writer, h.cookieOpts)
	c.Status(http.StatusNoContent)
}

// me returns the caller's own identity record.
func (h *Handler) me(c *gin.Context) {
	id, ok := middleware.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, user.Secure())
}
