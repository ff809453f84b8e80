package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-net-storage/models"
)

// Match is the group the session exchanges realtime data with.
type Match struct {
	id      string
	self    models.UserPresence
	session *Session

	mu        sync.RWMutex
	presences []models.UserPresence
}

func newMatch(m models.Match, session *Session) *Match {
	match := &Match{
		id:      m.MatchID,
		self:    m.Self,
		session: session,
	}
	match.presences = append(match.presences, m.Presences...)
	if m.Self.SessionID != "" && match.indexOf(m.Self.SessionID) < 0 {
		match.presences = append(match.presences, m.Self)
	}

	return match
}

// ID returns the match id other clients use to join.
func (m *Match) ID() string {
	return m.id
}

// Self returns the presence of the local session.
func (m *Match) Self() models.UserPresence {
	return m.self
}

// Presences returns the presences currently in the match, in join order.
func (m *Match) Presences() []models.UserPresence {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.UserPresence, len(m.presences))
	copy(out, m.presences)
	return out
}

// Players fetches the accounts of every user present in the match. A user
// connected with several sessions is listed once.
func (m *Match) Players(ctx context.Context) ([]models.Account, error) {
	presences := m.Presences()

	ids := make([]string, 0, len(presences))
	seen := make(map[string]struct{}, len(presences))
	for _, p := range presences {
		if _, ok := seen[p.UserID]; ok {
			continue
		}
		seen[p.UserID] = struct{}{}
		ids = append(ids, p.UserID)
	}

	accounts, err := m.session.fetchAccounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch players of match %s: %w", m.id, err)
	}

	return accounts, nil
}

func (m *Match) applyPresenceEvent(ev models.MatchPresenceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, leave := range ev.Leaves {
		if i := m.indexOf(leave.SessionID); i >= 0 {
			m.presences = append(m.presences[:i], m.presences[i+1:]...)
		}
	}
	for _, join := range ev.Joins {
		if m.indexOf(join.SessionID) < 0 {
			m.presences = append(m.presences, join)
		}
	}
}

func (m *Match) indexOf(sessionID string) int {
	for i, p := range m.presences {
		if p.SessionID == sessionID {
			return i
		}
	}
	return -1
}

// CreateMatch creates a new match and joins it.
func (s *Session) CreateMatch(ctx context.Context) (*Match, error) {
	return s.enterMatch(ctx, func() (models.Match, error) {
		return s.socket.CreateMatch(ctx)
	})
}

// JoinMatch joins an existing match.
func (s *Session) JoinMatch(ctx context.Context, matchID string) (*Match, error) {
	return s.enterMatch(ctx, func() (models.Match, error) {
		return s.socket.JoinMatch(ctx, matchID)
	})
}

func (s *Session) enterMatch(ctx context.Context, enter func() (models.Match, error)) (*Match, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.IsActive() {
		return nil, ErrNotConnected
	}
	if _, ok := s.CurrentGroupID(); ok {
		return nil, ErrAlreadyInGroup
	}

	s.mu.Lock()
	s.entering = true
	s.mu.Unlock()

	m, err := enter()
	if err != nil {
		s.mu.Lock()
		s.entering = false
		s.early = nil
		s.mu.Unlock()
		return nil, err
	}

	match := newMatch(m, s)
	s.installMatch(match)

	s.logger.Info().Str("match_id", match.ID()).Msg("joined match")
	s.joined.notify(match)
	return match, nil
}

// maxEarlyFrames bounds the frames held while a match is being entered.
const maxEarlyFrames = 256

// socketFrame is a match frame received before its match was installed.
// Exactly one field is set.
type socketFrame struct {
	state    *models.MatchState
	presence *models.MatchPresenceEvent
}

// holdFrame keeps f for installMatch while a create or join is in flight.
// s.mu must be held.
func (s *Session) holdFrame(f socketFrame) bool {
	if s.match != nil || !s.entering {
		return false
	}
	if len(s.early) >= maxEarlyFrames {
		s.logger.Warn().Msg("dropping match frame received while entering a match")
		return true
	}
	s.early = append(s.early, f)
	return true
}

// installMatch replays the frames held for match in arrival order and then
// makes it the current match. Frames arriving during the replay are held and
// replayed in the next round, so ordering is kept.
func (s *Session) installMatch(match *Match) {
	for {
		s.mu.Lock()
		frames, handler := s.early, s.stateHandler
		s.early = nil
		if len(frames) == 0 {
			s.match = match
			s.entering = false
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		for _, f := range frames {
			switch {
			case f.presence != nil && f.presence.MatchID == match.ID():
				match.applyPresenceEvent(*f.presence)
			case f.state != nil && f.state.MatchID == match.ID():
				if handler != nil {
					handler(*f.state)
				}
			default:
				s.logger.Debug().Msg("dropping early frame of another match")
			}
		}
	}
}

// LeaveMatch leaves the current match. The match is dropped locally even
// when the server cannot be told.
func (s *Session) LeaveMatch(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.IsActive() {
		return ErrNotConnected
	}

	s.mu.Lock()
	match := s.match
	s.match = nil
	s.mu.Unlock()

	if match == nil {
		return ErrNotInGroup
	}

	if err := s.socket.LeaveMatch(ctx, match.ID()); err != nil {
		s.logger.Warn().Err(err).Str("match_id", match.ID()).Msg("leave match")
	}

	s.logger.Info().Str("match_id", match.ID()).Msg("left match")
	s.left.notify(match)
	return nil
}

// Match returns the current match.
func (s *Session) Match() (*Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.match, s.match != nil
}

// CurrentGroupID returns the id of the current match.
func (s *Session) CurrentGroupID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.match == nil {
		return "", false
	}
	return s.match.ID(), true
}

// SendToGroup relays payload to every other presence of the current match.
func (s *Session) SendToGroup(ctx context.Context, opCode models.OpCode, payload []byte) error {
	if !s.IsActive() {
		return ErrNotConnected
	}

	matchID, ok := s.CurrentGroupID()
	if !ok {
		return ErrNotInGroup
	}

	return s.socket.SendMatchState(ctx, matchID, opCode, payload)
}

// OnJoinedMatch registers fn to run after the session entered a match.
func (s *Session) OnJoinedMatch(fn func(*Match)) (cancel func()) {
	return s.joined.add(fn)
}

// OnLeftMatch registers fn to run after the session left a match, including
// when the session was disconnected.
func (s *Session) OnLeftMatch(fn func(*Match)) (cancel func()) {
	return s.left.add(fn)
}
