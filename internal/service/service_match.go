package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/internal/utils"
	"github.com/MKhiriev/go-net-storage/models"
)

type realtimeSession struct {
	presence models.UserPresence
	send     func(models.SocketEnvelope) error
	matches  map[string]struct{}
}

type match struct {
	id        string
	presences []models.UserPresence
}

func (m *match) indexOf(sessionID string) int {
	for i, p := range m.presences {
		if p.SessionID == sessionID {
			return i
		}
	}
	return -1
}

// others returns the presences of m except sessionID.
func (m *match) others(sessionID string) []models.UserPresence {
	others := make([]models.UserPresence, 0, len(m.presences))
	for _, p := range m.presences {
		if p.SessionID != sessionID {
			others = append(others, p)
		}
	}
	return others
}

// delivery is an envelope queued for a session while the hub is locked.
type delivery struct {
	sessionID string
	send      func(models.SocketEnvelope) error
	env       models.SocketEnvelope
}

// matchHub is an in-memory relay. Matches exist while they have members.
type matchHub struct {
	mu       sync.Mutex
	sessions map[string]*realtimeSession
	matches  map[string]*match

	newID func() string

	logger *logger.Logger
}

func NewMatchHub(logger *logger.Logger) MatchService {
	return &matchHub{
		sessions: make(map[string]*realtimeSession),
		matches:  make(map[string]*match),
		newID:    utils.NewID,
		logger:   logger.WithComponent("match_hub"),
	}
}

func (h *matchHub) Connect(presence models.UserPresence, send func(models.SocketEnvelope) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[presence.SessionID]; ok {
		return ErrSessionExists
	}
	h.sessions[presence.SessionID] = &realtimeSession{
		presence: presence,
		send:     send,
		matches:  make(map[string]struct{}),
	}

	h.logger.Debug().Str("session_id", presence.SessionID).Str("user_id", presence.UserID).Msg("realtime session connected")
	return nil
}

// Disconnect removes the session from every match it is part of.
func (h *matchHub) Disconnect(sessionID string) {
	h.mu.Lock()
	sess, ok := h.sessions[sessionID]
	if !ok {
		h.mu.Unlock()
		return
	}
	var out []delivery
	for matchID := range sess.matches {
		out = append(out, h.leaveLocked(sess, matchID)...)
	}
	delete(h.sessions, sessionID)
	h.mu.Unlock()

	h.deliver(out)
	h.logger.Debug().Str("session_id", sessionID).Msg("realtime session disconnected")
}

func (h *matchHub) CreateMatch(ctx context.Context, sessionID string) (models.Match, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sess, ok := h.sessions[sessionID]
	if !ok {
		return models.Match{}, ErrSessionNotFound
	}

	m := &match{id: h.newID(), presences: []models.UserPresence{sess.presence}}
	h.matches[m.id] = m
	sess.matches[m.id] = struct{}{}

	logger.FromContext(ctx).Info().Str("match_id", m.id).Str("session_id", sessionID).Msg("match created")
	return models.Match{MatchID: m.id, Size: 1, Self: sess.presence}, nil
}

// JoinMatch adds the session to matchID and announces it to the other members.
// Joining a match the session is already in returns the current state.
func (h *matchHub) JoinMatch(ctx context.Context, sessionID, matchID string) (models.Match, error) {
	h.mu.Lock()
	sess, ok := h.sessions[sessionID]
	if !ok {
		h.mu.Unlock()
		return models.Match{}, ErrSessionNotFound
	}
	m, ok := h.matches[matchID]
	if !ok {
		h.mu.Unlock()
		return models.Match{}, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}

	var out []delivery
	if m.indexOf(sessionID) < 0 {
		event := models.MatchPresenceEvent{MatchID: matchID, Joins: []models.UserPresence{sess.presence}}
		out = h.broadcastLocked(m, sessionID, models.SocketEnvelope{MatchPresenceEvent: &event})
		m.presences = append(m.presences, sess.presence)
		sess.matches[matchID] = struct{}{}
	}
	result := models.Match{
		MatchID:   matchID,
		Size:      len(m.presences),
		Presences: m.others(sessionID),
		Self:      sess.presence,
	}
	h.mu.Unlock()

	h.deliver(out)
	logger.FromContext(ctx).Info().Str("match_id", matchID).Str("session_id", sessionID).Msg("match joined")
	return result, nil
}

func (h *matchHub) LeaveMatch(ctx context.Context, sessionID, matchID string) error {
	h.mu.Lock()
	sess, ok := h.sessions[sessionID]
	if !ok {
		h.mu.Unlock()
		return ErrSessionNotFound
	}
	if _, ok = sess.matches[matchID]; !ok {
		h.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotInMatch, matchID)
	}
	out := h.leaveLocked(sess, matchID)
	h.mu.Unlock()

	h.deliver(out)
	logger.FromContext(ctx).Info().Str("match_id", matchID).Str("session_id", sessionID).Msg("match left")
	return nil
}

// SendMatchData relays data to every other member of the match. A member that
// cannot be reached is logged and skipped.
func (h *matchHub) SendMatchData(ctx context.Context, sessionID string, data models.MatchDataSend) error {
	h.mu.Lock()
	sess, ok := h.sessions[sessionID]
	if !ok {
		h.mu.Unlock()
		return ErrSessionNotFound
	}
	m, ok := h.matches[data.MatchID]
	if !ok || m.indexOf(sessionID) < 0 {
		h.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotInMatch, data.MatchID)
	}

	state := models.MatchState{
		MatchID:  data.MatchID,
		OpCode:   data.OpCode,
		State:    data.Data,
		Presence: sess.presence,
	}
	out := h.broadcastLocked(m, sessionID, models.SocketEnvelope{MatchData: &state})
	h.mu.Unlock()

	h.deliver(out)
	return nil
}

func (h *matchHub) leaveLocked(sess *realtimeSession, matchID string) []delivery {
	delete(sess.matches, matchID)

	m, ok := h.matches[matchID]
	if !ok {
		return nil
	}
	if i := m.indexOf(sess.presence.SessionID); i >= 0 {
		m.presences = append(m.presences[:i], m.presences[i+1:]...)
	}
	if len(m.presences) == 0 {
		delete(h.matches, matchID)
		return nil
	}

	event := models.MatchPresenceEvent{MatchID: matchID, Leaves: []models.UserPresence{sess.presence}}
	return h.broadcastLocked(m, sess.presence.SessionID, models.SocketEnvelope{MatchPresenceEvent: &event})
}

func (h *matchHub) broadcastLocked(m *match, exceptSessionID string, env models.SocketEnvelope) []delivery {
	out := make([]delivery, 0, len(m.presences))
	for _, p := range m.presences {
		if p.SessionID == exceptSessionID {
			continue
		}
		if sess, ok := h.sessions[p.SessionID]; ok {
			out = append(out, delivery{sessionID: p.SessionID, send: sess.send, env: env})
		}
	}
	return out
}

func (h *matchHub) deliver(out []delivery) {
	for _, d := range out {
		if err := d.send(d.env); err != nil {
			h.logger.Warn().Err(err).Str("session_id", d.sessionID).Msg("dropping realtime message")
		}
	}
}
