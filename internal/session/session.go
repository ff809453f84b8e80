// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the connection state of a client: the authenticated
// principal, the realtime socket and the match the client is part of.
//
// A [Session] is an explicit value passed to every component that needs it.
// It is the record store client used by synced records and the outbound path
// for match data.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-net-storage/internal/adapter"
	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/models"
)

// Session is the connection to the storage server.
type Session struct {
	server adapter.ServerAdapter
	socket adapter.SocketAdapter

	// opMu serialises Connect, Disconnect and match membership changes.
	opMu sync.Mutex

	mu           sync.RWMutex
	active       bool
	account      models.Account
	match        *Match
	stateHandler func(models.MatchState)

	// entering is set while a create or join request is in flight. Frames
	// that arrive before the match is installed are kept in early.
	entering bool
	early    []socketFrame

	joined observers[*Match]
	left   observers[*Match]

	logger *logger.Logger
}

// New creates a disconnected session over the given transports. The session
// installs itself as the handler of every socket event.
func New(server adapter.ServerAdapter, socket adapter.SocketAdapter, logger *logger.Logger) *Session {
	s := &Session{
		server: server,
		socket: socket,
		logger: logger.WithComponent("session"),
	}

	socket.SetMatchStateHandler(s.onSocketMatchState)
	socket.SetMatchPresenceHandler(s.onSocketMatchPresence)
	socket.SetClosedHandler(s.onSocketClosed)

	return s
}

// Connect authenticates with custom credentials, creating the account on
// first use, opens the realtime socket and fetches the current account.
func (s *Session) Connect(ctx context.Context, auth models.AuthData) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.IsActive() {
		return ErrAlreadyConnected
	}
	if auth.Password == "" {
		return ErrInvalidAuthData
	}

	session, err := s.server.AuthenticateCustom(ctx, models.AuthenticateCustomRequest{
		ID:       auth.Password,
		Username: auth.Username,
	}, true)
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	if err = s.socket.Connect(ctx, session.Token); err != nil {
		s.server.SetToken("")
		return fmt.Errorf("connect socket: %w", err)
	}

	apiAccount, err := s.server.GetAccount(ctx)
	if err != nil {
		if closeErr := s.socket.Close(); closeErr != nil {
			s.logger.Warn().Err(closeErr).Msg("closing socket after failed connect")
		}
		s.server.SetToken("")
		return fmt.Errorf("fetch current account: %w", err)
	}

	s.mu.Lock()
	s.active = true
	s.account = models.NewAccount(apiAccount.User, true)
	s.mu.Unlock()

	s.logger.Info().
		Str("user_id", apiAccount.User.ID).
		Bool("created", session.Created).
		Msg("session connected")
	return nil
}

// Disconnect closes the socket and forgets the principal. Disconnecting an
// inactive session is a no-op.
func (s *Session) Disconnect() error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.IsActive() {
		return nil
	}

	err := s.socket.Close()
	s.reset()

	if err != nil {
		return fmt.Errorf("close socket: %w", err)
	}
	return nil
}

// reset drops every piece of connection state and notifies left-match
// observers when a match was active.
func (s *Session) reset() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	match := s.match
	s.active = false
	s.account = models.Account{}
	s.match = nil
	s.mu.Unlock()

	s.server.SetToken("")
	if match != nil {
		s.left.notify(match)
	}
	s.logger.Info().Msg("session disconnected")
}

// IsActive reports whether the session is connected.
func (s *Session) IsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// CurrentPrincipalID returns the user id of the authenticated account, or an
// empty string when the session is inactive.
func (s *Session) CurrentPrincipalID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account.UserID
}

// Account returns the authenticated account.
func (s *Session) Account() (models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account, s.active
}

// IsOwner reports whether addr belongs to the authenticated account.
func (s *Session) IsOwner(addr models.StorageAddress) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active && addr.UserID == s.account.UserID
}

// ReadStorageObjects reads objects from the server.
func (s *Session) ReadStorageObjects(ctx context.Context, ids []models.StorageObjectID) ([]models.StorageObject, error) {
	if !s.IsActive() {
		return nil, ErrNotConnected
	}

	return s.server.ReadStorageObjects(ctx, ids)
}

// WriteStorageObjects writes objects owned by the authenticated account.
func (s *Session) WriteStorageObjects(ctx context.Context, objects []models.WriteStorageObject) ([]models.StorageObjectAck, error) {
	if !s.IsActive() {
		return nil, ErrNotConnected
	}

	return s.server.WriteStorageObjects(ctx, objects)
}

// OnMatchState attaches the single receiver of inbound match data. The
// receiver stays attached across reconnects.
func (s *Session) OnMatchState(fn func(models.MatchState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stateHandler != nil {
		return ErrHandlerAttached
	}
	s.stateHandler = fn
	return nil
}

func (s *Session) onSocketMatchState(state models.MatchState) {
	s.mu.Lock()
	if s.holdFrame(socketFrame{state: &state}) {
		s.mu.Unlock()
		return
	}
	handler, match := s.stateHandler, s.match
	s.mu.Unlock()

	if match == nil || match.ID() != state.MatchID {
		s.logger.Debug().Str("match_id", state.MatchID).Msg("dropping data of a match the session is not part of")
		return
	}
	if handler != nil {
		handler(state)
	}
}

func (s *Session) onSocketMatchPresence(ev models.MatchPresenceEvent) {
	s.mu.Lock()
	if s.holdFrame(socketFrame{presence: &ev}) {
		s.mu.Unlock()
		return
	}
	match := s.match
	s.mu.Unlock()

	if match == nil || match.ID() != ev.MatchID {
		return
	}
	match.applyPresenceEvent(ev)
}

// onSocketClosed handles a socket closed by the peer. Closures requested by
// Disconnect report a nil error and are already handled there.
func (s *Session) onSocketClosed(err error) {
	if err == nil {
		return
	}

	s.logger.Warn().Err(err).Msg("socket closed, disconnecting session")
	s.reset()
}
