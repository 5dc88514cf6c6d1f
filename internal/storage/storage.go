package storage

import (
	"context"
	"fmt"
	"strings"

	"recruit-go/internal/config"
	"recruit-go/internal/logger"
)

// Storage aggregates every storage-backed dependency.
type Storage struct {
	// Relational record store
	MySQL *MySQL

	// Object store for résumé binaries
	MinIO *MinIO

	// Listing cache
	Redis *Redis
}

// NewStorage builds the storage aggregate from config. MySQL and MinIO are
// required; Redis is optional and the service degrades to uncached reads
// without it.
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}

	storage := &Storage{}
	var err error
	var initErrors []string

	storage.MySQL, err = NewMySQL(&cfg.MySQL)
	if err != nil {
		initErrors = append(initErrors, fmt.Sprintf("MySQL: %v", err))
	}

	storage.MinIO, err = NewMinIO(&cfg.MinIO)
	if err != nil {
		initErrors = append(initErrors, fmt.Sprintf("MinIO: %v", err))
	}

	if cfg.Redis.Address != "" {
		storage.Redis, err = NewRedis(&cfg.Redis)
		if err != nil {
			// A dead cache is not fatal; log and continue uncached.
			logger.Warn().Err(err).Msg("Redis initialization failed, listing cache disabled")
			storage.Redis = nil
		}
	} else {
		logger.Info().Msg("Redis not configured, listing cache disabled")
	}

	if storage.MySQL == nil || storage.MinIO == nil {
		return nil, fmt.Errorf("storage initialization failed: %s", strings.Join(initErrors, "; "))
	}

	return storage, nil
}

// Close closes all connections.
func (s *Storage) Close() {
	if s.MySQL != nil {
		if err := s.MySQL.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close MySQL connection")
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close Redis connection")
		}
	}
	// The MinIO client holds no persistent connection requiring Close.
}
