package storage

import "errors"

var (
	// ErrNotConnected is returned when an operation needs an active session.
	ErrNotConnected = errors.New("no active session")
	// ErrNotAuthorized is returned by Write when the local principal does not
	// own the record. Nothing is written or broadcast.
	ErrNotAuthorized = errors.New("record is owned by another user")
	// ErrDeserialization is returned when a stored or received payload does
	// not decode into the record type.
	ErrDeserialization = errors.New("payload does not match record type")
	// ErrSerialization is returned when the record payload cannot be encoded.
	ErrSerialization = errors.New("payload cannot be encoded")
	// ErrTransport wraps failures of the record store client.
	ErrTransport = errors.New("record store request failed")
)
