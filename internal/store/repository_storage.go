package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/models"
)

const (
	maxWriteAttempts = 3
	writeRetryDelay  = 20 * time.Millisecond
)

// storageRepository is the SQL implementation of [StorageRepository] over the
// "storage" table.
type storageRepository struct {
	logger *logger.Logger
	db     *DB
	now    func() time.Time
}

// NewStorageRepository constructs a [StorageRepository] backed by db.
func NewStorageRepository(db *DB, logger *logger.Logger) StorageRepository {
	logger.Debug().Msg("creating storage repository")
	return &storageRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ReadObjects implements [StorageRepository].
func (r *storageRepository) ReadObjects(ctx context.Context, ids []models.StorageObjectID) ([]models.StorageObject, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	log := logger.FromContext(ctx)

	query, args, err := r.db.selectObjectsQuery(ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*storageRepository.ReadObjects").Msg("error selecting storage objects")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var objects []models.StorageObject
	for rows.Next() {
		var obj models.StorageObject
		if err = rows.Scan(
			&obj.Collection, &obj.Key, &obj.UserID, &obj.Value, &obj.Version,
			&obj.PermissionRead, &obj.PermissionWrite, &obj.CreateTime, &obj.UpdateTime,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		objects = append(objects, obj)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return objects, nil
}

// WriteObjects implements [StorageRepository]. Preconditions are checked
// inside the transaction so a concurrent writer cannot slip in between the
// check and the upsert.
func (r *storageRepository) WriteObjects(ctx context.Context, writes []ObjectWrite) ([]models.StorageObjectAck, error) {
	log := logger.FromContext(ctx)

	for attempt := 1; ; attempt++ {
		acks, err := r.writeObjectsTx(ctx, writes)
		if err == nil || attempt == maxWriteAttempts || !r.db.IsRetryable(err) {
			return acks, err
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("retrying storage write")
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", err, ctx.Err())
		case <-time.After(time.Duration(attempt) * writeRetryDelay):
		}
	}
}

func (r *storageRepository) writeObjectsTx(ctx context.Context, writes []ObjectWrite) ([]models.StorageObjectAck, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*storageRepository.WriteObjects").Msg("error beginning transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Err(rbErr).Str("func", "*storageRepository.WriteObjects").Msg("error rolling back transaction")
		}
	}()

	now := r.now()
	acks := make([]models.StorageObjectAck, 0, len(writes))
	for _, w := range writes {
		if err = r.checkPrecondition(ctx, tx, w); err != nil {
			return nil, err
		}

		obj := w.Object
		obj.CreateTime = now
		obj.UpdateTime = now

		query, args, err := r.db.upsertObjectQuery(obj)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "*storageRepository.WriteObjects").Msg("error upserting storage object")
			return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		acks = append(acks, models.StorageObjectAck{StorageAddress: obj.StorageAddress, Version: obj.Version})
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*storageRepository.WriteObjects").Msg("error committing transaction")
		return nil, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return acks, nil
}

func (r *storageRepository) checkPrecondition(ctx context.Context, tx *sql.Tx, w ObjectWrite) error {
	query, args, err := r.db.selectObjectVersionQuery(w.Object.StorageAddress)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		version         string
		permissionWrite int
	)
	err = tx.QueryRowContext(ctx, query, args...).Scan(&version, &permissionWrite)
	exists := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if exists && permissionWrite == models.PermissionNoWrite {
		return ErrObjectWriteForbidden
	}

	switch w.Precondition {
	case "":
		return nil
	case models.VersionIfAbsent:
		if exists {
			return ErrVersionConflict
		}
	default:
		if !exists || version != w.Precondition {
			return ErrVersionConflict
		}
	}

	return nil
}
