// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package storage implements records that are stored on the server, track the
// version the server issued for them and propagate writes to the other
// members of the current match.
//
// A [Record] is created by [Fetch], mutated locally through [Record.SetData]
// or [Record.Update], persisted with [Record.Write] and kept up to date with
// [Record.Refetch] or with updates broadcast by peers and delivered through a
// [Registry].
package storage

import (
	"context"

	"github.com/MKhiriev/go-net-storage/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/storage_mock.go -package=mock

// Session is the connection a record is read, written and broadcast through.
type Session interface {
	// IsActive reports whether the session is connected.
	IsActive() bool

	// CurrentPrincipalID returns the user id of the authenticated account.
	CurrentPrincipalID() string

	// CurrentGroupID returns the id of the match the session is part of.
	CurrentGroupID() (string, bool)

	// SendToGroup relays payload to every other member of the current match.
	SendToGroup(ctx context.Context, opCode models.OpCode, payload []byte) error

	// ReadStorageObjects reads objects from the record store.
	ReadStorageObjects(ctx context.Context, ids []models.StorageObjectID) ([]models.StorageObject, error)

	// WriteStorageObjects writes objects to the record store.
	WriteStorageObjects(ctx context.Context, objects []models.WriteStorageObject) ([]models.StorageObjectAck, error)
}

// Registry routes broadcast updates to the records registered for their
// address.
type Registry interface {
	// Register subscribes fn to updates of addr. The returned function
	// removes the subscription.
	Register(addr models.StorageAddress, fn func(models.StorageSyncData)) (unregister func())
}

// Data is implemented by every payload type a record can hold. NetDefault
// returns the value of a record whose address holds no object.
type Data[T any] interface {
	NetDefault() T
}
