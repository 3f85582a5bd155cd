package app

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/lib/pq"

	"github.com/mahmoud-eltahawy/cryptos-site/internal/config"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/db"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/logger"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/redis"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/storage"
)

type Infra struct {
	DB     *db.DB
	Redis  *redis.Client
	Images *storage.S3
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	if cfg.DatabaseDSN == "" {
		return nil, errors.New("DATABASE_DSN must be set")
	}

	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := db.RunMigration(ctx, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", nil)

	// Image storage is optional: without S3 settings the site still
	// serves listings, uploads just return 503.
	var images *storage.S3
	if cfg.S3EndpointURL != "" {
		images, err = storage.NewS3(storage.S3Config{
			EndpointURL: cfg.S3EndpointURL,
			Region:      cfg.S3Region,
			Bucket:      cfg.S3Bucket,
			Username:    cfg.S3Username,
			Password:    cfg.S3Password,
		})
		if err != nil {
			return nil, err
		}
		if err := images.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("object storage ready", map[string]any{
			"bucket": cfg.S3Bucket,
		})
	} else {
		logger.Warn("object storage not configured, image upload disabled", nil)
	}

	return &Infra{
		DB:     &db.DB{DB: sqlDB},
		Redis:  redisClient,
		Images: images,
	}, nil
}
