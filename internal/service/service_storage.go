package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/internal/store"
	"github.com/MKhiriev/go-net-storage/internal/utils"
	"github.com/MKhiriev/go-net-storage/models"
)

const (
	maxObjectsPerRequest = 100
	maxNameLength        = 128
)

type storageService struct {
	storageRepository store.StorageRepository

	logger *logger.Logger
}

func NewStorageService(storageRepository store.StorageRepository, logger *logger.Logger) StorageService {
	return &storageService{
		storageRepository: storageRepository,
		logger:            logger,
	}
}

// ReadObjects returns the readable objects among ids. An id without a user id
// addresses an object of the caller.
func (s *storageService) ReadObjects(ctx context.Context, callerID string, ids []models.StorageObjectID) ([]models.StorageObject, error) {
	if len(ids) == 0 || len(ids) > maxObjectsPerRequest {
		return nil, fmt.Errorf("%w: 1-%d object ids per read", ErrInvalidDataProvided, maxObjectsPerRequest)
	}

	lookup := make([]models.StorageObjectID, len(ids))
	for i, id := range ids {
		if err := validateName(id.Collection, id.Key); err != nil {
			return nil, err
		}
		if id.UserID == "" {
			id.UserID = callerID
		}
		lookup[i] = id
	}

	objects, err := s.storageRepository.ReadObjects(ctx, lookup)
	if err != nil {
		return nil, fmt.Errorf("read storage objects: %w", err)
	}

	readable := objects[:0]
	for _, obj := range objects {
		if canRead(obj, callerID) {
			readable = append(readable, obj)
		}
	}

	return readable, nil
}

// WriteObjects stores objects under callerID. The version of a stored object
// is derived from its value; the version of a write is a precondition.
func (s *storageService) WriteObjects(ctx context.Context, callerID string, objects []models.WriteStorageObject) ([]models.StorageObjectAck, error) {
	if len(objects) == 0 || len(objects) > maxObjectsPerRequest {
		return nil, fmt.Errorf("%w: 1-%d objects per write", ErrInvalidDataProvided, maxObjectsPerRequest)
	}

	seen := make(map[models.StorageAddress]struct{}, len(objects))
	writes := make([]store.ObjectWrite, 0, len(objects))
	for _, obj := range objects {
		if err := validateWrite(obj); err != nil {
			return nil, err
		}

		addr := models.StorageAddress{Collection: obj.Collection, Key: obj.Key, UserID: callerID}
		if _, dup := seen[addr]; dup {
			return nil, fmt.Errorf("%w: %s/%s written twice", ErrInvalidDataProvided, obj.Collection, obj.Key)
		}
		seen[addr] = struct{}{}

		writes = append(writes, store.ObjectWrite{
			Object: models.StorageObject{
				StorageAddress:  addr,
				Value:           obj.Value,
				Version:         utils.StorageVersion(obj.Value),
				PermissionRead:  obj.PermissionRead,
				PermissionWrite: obj.PermissionWrite,
			},
			Precondition: obj.Version,
		})
	}

	acks, err := s.storageRepository.WriteObjects(ctx, writes)
	if err != nil {
		return nil, fmt.Errorf("write storage objects: %w", err)
	}

	logger.FromContext(ctx).Debug().Str("user_id", callerID).Int("objects", len(acks)).Msg("storage objects written")
	return acks, nil
}

func canRead(obj models.StorageObject, callerID string) bool {
	switch obj.PermissionRead {
	case models.PermissionPublicRead:
		return true
	case models.PermissionOwnerRead:
		return obj.UserID == callerID
	default:
		return false
	}
}

func validateName(collection, key string) error {
	if collection == "" || len(collection) > maxNameLength {
		return fmt.Errorf("%w: collection must be 1-%d bytes", ErrInvalidDataProvided, maxNameLength)
	}
	if key == "" || len(key) > maxNameLength {
		return fmt.Errorf("%w: key must be 1-%d bytes", ErrInvalidDataProvided, maxNameLength)
	}
	return nil
}

func validateWrite(obj models.WriteStorageObject) error {
	if err := validateName(obj.Collection, obj.Key); err != nil {
		return err
	}

	var value map[string]json.RawMessage
	if err := json.Unmarshal([]byte(obj.Value), &value); err != nil || value == nil {
		return fmt.Errorf("%w: value must be a JSON object", ErrInvalidDataProvided)
	}

	if obj.PermissionRead < models.PermissionNoRead || obj.PermissionRead > models.PermissionPublicRead {
		return fmt.Errorf("%w: permission_read must be 0, 1 or 2", ErrInvalidDataProvided)
	}
	if obj.PermissionWrite < models.PermissionNoWrite || obj.PermissionWrite > models.PermissionOwnerWrite {
		return fmt.Errorf("%w: permission_write must be 0 or 1", ErrInvalidDataProvided)
	}

	return nil
}
