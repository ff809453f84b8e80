// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// StorageSyncData is the envelope broadcast to a match after a storage object
// was written. Peers apply it to their local copy of the same address without
// reading the backend again.
//
// Field names are part of the wire format shared with other clients.
type StorageSyncData struct {
	// ID is the address of the written object and the version it was written at.
	ID StorageObjectID `json:"Id"`
	// EncodedData is the JSON payload of the object, re-encoded as a string.
	EncodedData string `json:"EncodedData"`
}
