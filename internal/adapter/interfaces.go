// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the storage server.
//
// [ServerAdapter] is the REST side: authentication, accounts and storage
// objects. [SocketAdapter] is the realtime side: match membership and match
// data relay over a websocket.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-net-storage/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter defines communication with the REST API of the server.
// Implementations are responsible for serialisation, authentication header
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// AuthenticateCustom authenticates with a custom identifier, creating
	// the account first when create is true and the identifier is unknown.
	// On success the returned token is stored via SetToken.
	AuthenticateCustom(ctx context.Context, req models.AuthenticateCustomRequest, create bool) (models.Session, error)

	// GetAccount returns the account of the authenticated caller.
	GetAccount(ctx context.Context) (models.ApiAccount, error)

	// UpdateAccount changes the username or display name of the caller.
	UpdateAccount(ctx context.Context, req models.UpdateAccountRequest) error

	// GetUsers looks users up by id and by username. Unknown entries are
	// absent from the result.
	GetUsers(ctx context.Context, ids, usernames []string) ([]models.User, error)

	// ReadStorageObjects reads the objects at the given addresses. Objects
	// that do not exist or are not readable are absent from the result.
	ReadStorageObjects(ctx context.Context, ids []models.StorageObjectID) ([]models.StorageObject, error)

	// WriteStorageObjects writes objects owned by the caller and returns one
	// ack per object in request order. A failed version precondition is
	// reported as [ErrConflict].
	WriteStorageObjects(ctx context.Context, objects []models.WriteStorageObject) ([]models.StorageObjectAck, error)
}

// SocketAdapter defines the realtime connection to the server.
//
// Handlers are invoked from the single reader goroutine in arrival order and
// must not block for long. Handlers must be set before Connect.
type SocketAdapter interface {
	// Connect opens the websocket authenticated by token.
	Connect(ctx context.Context, token string) error

	// Close closes the websocket and waits for the reader to stop. It must
	// not be called from a handler.
	Close() error

	// IsConnected reports whether the websocket is open.
	IsConnected() bool

	// CreateMatch creates a new match with the caller as its first presence.
	CreateMatch(ctx context.Context) (models.Match, error)

	// JoinMatch adds the caller to an existing match.
	JoinMatch(ctx context.Context, matchID string) (models.Match, error)

	// LeaveMatch removes the caller from a match.
	LeaveMatch(ctx context.Context, matchID string) error

	// SendMatchState relays data to every other presence of a match. Delivery
	// is not acknowledged.
	SendMatchState(ctx context.Context, matchID string, opCode models.OpCode, data []byte) error

	// SetMatchStateHandler sets the receiver of match data.
	SetMatchStateHandler(fn func(models.MatchState))

	// SetMatchPresenceHandler sets the receiver of match presence events.
	SetMatchPresenceHandler(fn func(models.MatchPresenceEvent))

	// SetClosedHandler sets the callback invoked once the websocket is closed.
	// err is nil when the closure was requested via Close.
	SetClosedHandler(fn func(err error))
}
