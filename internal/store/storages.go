package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-net-storage/internal/config"
	"github.com/MKhiriev/go-net-storage/internal/logger"
)

// Storages groups the server repositories so they can be passed to the
// service layer as one value.
type Storages struct {
	UserRepository    UserRepository
	StorageRepository StorageRepository

	db *DB
}

// NewStorages opens the configured database, applies migrations and builds
// the repositories on top of it.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("driver", cfg.DB.Driver).Msg("creating new storages...")

	db, err := NewDB(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		StorageRepository: NewStorageRepository(db, logger),
		db:                db,
	}, nil
}

// Close closes the underlying database.
func (s *Storages) Close() error {
	return s.db.Close()
}
