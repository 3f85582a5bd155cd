package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mahmoud-eltahawy/cryptos-site/internal/auth"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/auth/credentials"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/config"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/handler"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/middleware"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/session"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client, cfg.SessionTTL)
	sessions := session.NewManager(sessionStore)
	gate := auth.NewGate(sessions)
	credentialService := credentials.NewService(infra.DB)

	var images handler.ImageStore
	if infra.Images != nil {
		images = infra.Images
	}

	siteHandler := handler.New(
		credentialService,
		sessions,
		infra.DB,
		images,
	)

	authMiddleware := middleware.NewAuth(gate)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	siteHandler.RegisterRoutes(router, authMiddleware)

	return router, func() error {
		return infra.DB.Close()
	}, nil
}
