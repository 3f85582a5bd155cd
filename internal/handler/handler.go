package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mahmoud-eltahawy/cryptos-site/internal/auth"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/db"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/middleware"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/session"
)

// CredentialSource verifies a name/password pair. Implemented by
// credentials.Service; tests substitute a stub.
type CredentialSource interface {
	Authenticate(ctx context.Context, name, password string) (uuid.UUID, auth.Level, error)
}

// ImageStore uploads an image blob and returns its public URL.
// Implemented by storage.S3.
type ImageStore interface {
	UploadImage(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)
}

type Handler struct {
	credentials CredentialSource
	sessions    *session.Manager
	db          *db.DB
	images      ImageStore
	cookieOpts  session.CookieOptions
}

func New(
	credentials CredentialSource,
	sessions *session.Manager,
	database *db.DB,
	images ImageStore,
) *Handler {
	return &Handler{
		credentials: credentials,
		sessions:    sessions,
		db:          database,
		images:      images,
		cookieOpts: session.CookieOptions{
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// RegisterRoutes lays out the route tree: a public catalog, the session
// endpoints, a login-gated dashboard, and an admin-gated mutation area.
// Every protected route passes the gate before its handler runs.
func (h *Handler) RegisterRoutes(r *gin.Engine, authmw *middleware.Auth) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public catalog
	r.GET("/estates", h.listEstates)
	r.GET("/estates/:id", h.getEstate)

	// Session lifecycle
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)

	// Any authenticated principal
	dash := r.Group("/dashboard")
	dash.Use(authmw.RequireAuth())
	dash.GET("/me", h.me)
	dash.GET("/users", h.listUsers)
	dash.GET("/users/:id", h.getUser)
	dash.GET("/estates/:id", h.getEstateFull)

	// Admin only: destructive and administrative operations
	admin := r.Group("/dashboard")
	admin.Use(authmw.RequireAdmin())
	admin.POST("/users", h.createUser)
	admin.PATCH("/users/:id", h.updateUser)
	admin.DELETE("/users/:id", h.deleteUser)
	admin.POST("/estates", h.createEstate)
	admin.PATCH("/estates/:id", h.updateEstate)
	admin.DELETE("/estates/:id", h.deleteEstate)
	admin.POST("/images", h.uploadImage)
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
