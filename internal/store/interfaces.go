// Package store implements the persistence layer of the reference server.
//
// Accounts and storage objects live in a relational database, either SQLite
// through mattn/go-sqlite3 or PostgreSQL through the pgx stdlib driver. The
// driver is chosen by configuration and SQL is built with squirrel so the same
// repositories serve both.
package store

import (
	"context"

	"github.com/MKhiriev/go-net-storage/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	// FindUsers returns every user whose id is in ids or whose username is
	// in usernames.
	FindUsers(ctx context.Context, ids, usernames []string) ([]models.User, error)
	// UpdateUser changes the non-empty fields of update for user id.
	UpdateUser(ctx context.Context, id string, update models.UpdateAccountRequest) (models.User, error)
}

// StorageRepository persists storage objects.
type StorageRepository interface {
	// ReadObjects returns the stored objects among ids. Missing objects are
	// skipped.
	ReadObjects(ctx context.Context, ids []models.StorageObjectID) ([]models.StorageObject, error)
	// WriteObjects stores every write in one transaction. Either all writes
	// are applied or none.
	WriteObjects(ctx context.Context, writes []ObjectWrite) ([]models.StorageObjectAck, error)
}

// ObjectWrite is a storage object to upsert together with the version the
// caller expects to replace.
type ObjectWrite struct {
	Object models.StorageObject

	// Precondition is empty for an unconditional write, [models.VersionIfAbsent]
	// when the object must not exist yet, or the version it must currently have.
	Precondition string
}

// ErrorClassificator decides whether a failed database operation may succeed
// when retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
