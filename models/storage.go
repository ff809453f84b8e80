// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Read permission levels of a storage object.
const (
	// PermissionNoRead hides the object from every client; only the server can read it.
	PermissionNoRead = 0
	// PermissionOwnerRead allows only the owner to read the object.
	PermissionOwnerRead = 1
	// PermissionPublicRead allows any authenticated user to read the object.
	PermissionPublicRead = 2
)

// Write permission levels of a storage object.
const (
	// PermissionNoWrite forbids client writes; only the server can modify the object.
	PermissionNoWrite = 0
	// PermissionOwnerWrite allows only the owner to modify the object.
	PermissionOwnerWrite = 1
)

// VersionIfAbsent is a write precondition that only succeeds when no object
// exists at the target address yet.
const VersionIfAbsent = "*"

// StorageAddress is the immutable identity of a storage object. It is
// comparable and can be used as a map key.
type StorageAddress struct {
	// Collection groups related objects (e.g. "profiles").
	Collection string `json:"collection"`
	// Key names the object inside its collection.
	Key string `json:"key"`
	// UserID is the owner of the object.
	UserID string `json:"user_id"`
}

// StorageObjectID is a storage address together with the opaque version token
// issued by the backend. An empty Version means the object has never been
// observed on the backend.
type StorageObjectID struct {
	StorageAddress

	// Version is compared only by the backend and never interpreted by clients.
	Version string `json:"version,omitempty"`
}

// StorageObject is a single object returned by a storage read.
type StorageObject struct {
	StorageAddress

	// Value is the JSON encoded payload of the object.
	Value string `json:"value"`
	// Version is the backend version token of Value.
	Version string `json:"version"`

	PermissionRead  int `json:"permission_read"`
	PermissionWrite int `json:"permission_write"`

	CreateTime time.Time `json:"create_time"`
	UpdateTime time.Time `json:"update_time"`
}

// TableName returns the name of the database table storage objects live in.
func (o StorageObject) TableName() string {
	return "storage"
}

// ID returns the address and version of the object.
func (o StorageObject) ID() StorageObjectID {
	return StorageObjectID{StorageAddress: o.StorageAddress, Version: o.Version}
}

// WriteStorageObject is a single object sent in a storage write. The owner is
// always the authenticated caller.
type WriteStorageObject struct {
	Collection string `json:"collection"`
	Key        string `json:"key"`
	Value      string `json:"value"`

	// Version is an optional precondition: empty overwrites unconditionally,
	// [VersionIfAbsent] requires the object to be missing, anything else must
	// equal the stored version.
	Version string `json:"version,omitempty"`

	PermissionRead  int `json:"permission_read"`
	PermissionWrite int `json:"permission_write"`
}

// StorageObjectAck acknowledges a written object and carries its new version.
type StorageObjectAck struct {
	StorageAddress

	Version string `json:"version"`
}

// ReadStorageObjectsRequest lists the addresses to read.
type ReadStorageObjectsRequest struct {
	ObjectIDs []StorageObjectID `json:"object_ids"`
}

// StorageObjects is the storage read response. Addresses without a readable
// object are simply absent.
type StorageObjects struct {
	Objects []StorageObject `json:"objects"`
}

// WriteStorageObjectsRequest lists the objects to write.
type WriteStorageObjectsRequest struct {
	Objects []WriteStorageObject `json:"objects"`
}

// StorageObjectAcks is the storage write response, one ack per written object
// in request order.
type StorageObjectAcks struct {
	Acks []StorageObjectAck `json:"acks"`
}
