package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-net-storage/internal/config"
	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/models"
	"github.com/gorilla/websocket"
)

const (
	socketPath       = "/ws"
	closeGracePeriod = time.Second
)

type wsSocketAdapter struct {
	url     string
	timeout time.Duration
	dialer  *websocket.Dialer

	// mu guards conn, done, pending and the handlers.
	mu      sync.Mutex
	conn    *websocket.Conn
	done    chan struct{}
	pending map[string]chan models.SocketEnvelope

	onMatchState    func(models.MatchState)
	onMatchPresence func(models.MatchPresenceEvent)
	onClosed        func(error)

	// writeMu serialises writers; gorilla connections support one concurrent writer.
	writeMu sync.Mutex
	nextCID atomic.Uint64

	logger *logger.Logger
}

// NewWebsocketAdapter constructs a gorilla/websocket implementation of
// [SocketAdapter]. The websocket URL is derived from adapterCfg.HTTPAddress by
// switching the scheme to ws/wss and appending /ws.
func NewWebsocketAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (SocketAdapter, error) {
	wsURL, err := socketURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter socket address: %w", err)
	}

	return &wsSocketAdapter{
		url:     wsURL,
		timeout: adapterCfg.RequestTimeout,
		dialer: &websocket.Dialer{
			HandshakeTimeout: adapterCfg.RequestTimeout,
		},
		pending: make(map[string]chan models.SocketEnvelope),
		logger:  logger.WithComponent("socket_adapter"),
	}, nil
}

func socketURL(httpAddress string) (string, error) {
	base, err := normalizeBaseURL(httpAddress)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path += socketPath

	return u.String(), nil
}

// Connect implements [SocketAdapter]. The token is sent as the "token" query
// parameter because browsers cannot set headers on websocket handshakes.
func (s *wsSocketAdapter) Connect(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return ErrSocketConnected
	}

	u, _ := url.Parse(s.url)
	query := u.Query()
	query.Set("token", token)
	u.RawQuery = query.Encode()

	conn, resp, err := s.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		return fmt.Errorf("dial socket: %w", err)
	}

	s.conn = conn
	s.done = make(chan struct{})
	go s.readLoop(conn, s.done)

	s.logger.Debug().Str("url", s.url).Msg("socket connected")
	return nil
}

// Close implements [SocketAdapter].
func (s *wsSocketAdapter) Close() error {
	s.mu.Lock()
	conn, done := s.conn, s.done
	s.conn = nil
	s.mu.Unlock()

	if conn == nil {
		return nil
	}

	s.writeMu.Lock()
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeGracePeriod),
	)
	s.writeMu.Unlock()

	err := conn.Close()
	<-done
	return err
}

// IsConnected implements [SocketAdapter].
func (s *wsSocketAdapter) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// CreateMatch implements [SocketAdapter].
func (s *wsSocketAdapter) CreateMatch(ctx context.Context) (models.Match, error) {
	resp, err := s.request(ctx, models.SocketEnvelope{MatchCreate: &models.MatchCreate{}})
	if err != nil {
		return models.Match{}, fmt.Errorf("create match: %w", err)
	}
	if resp.Match == nil {
		return models.Match{}, fmt.Errorf("create match: %w", ErrUnexpectedResponse)
	}

	return *resp.Match, nil
}

// JoinMatch implements [SocketAdapter].
func (s *wsSocketAdapter) JoinMatch(ctx context.Context, matchID string) (models.Match, error) {
	resp, err := s.request(ctx, models.SocketEnvelope{MatchJoin: &models.MatchJoin{MatchID: matchID}})
	if err != nil {
		return models.Match{}, fmt.Errorf("join match %s: %w", matchID, err)
	}
	if resp.Match == nil {
		return models.Match{}, fmt.Errorf("join match %s: %w", matchID, ErrUnexpectedResponse)
	}

	return *resp.Match, nil
}

// LeaveMatch implements [SocketAdapter].
func (s *wsSocketAdapter) LeaveMatch(ctx context.Context, matchID string) error {
	if _, err := s.request(ctx, models.SocketEnvelope{MatchLeave: &models.MatchLeave{MatchID: matchID}}); err != nil {
		return fmt.Errorf("leave match %s: %w", matchID, err)
	}

	return nil
}

// SendMatchState implements [SocketAdapter].
func (s *wsSocketAdapter) SendMatchState(ctx context.Context, matchID string, opCode models.OpCode, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return ErrSocketNotConnected
	}

	env := models.SocketEnvelope{MatchDataSend: &models.MatchDataSend{
		MatchID: matchID,
		OpCode:  opCode,
		Data:    data,
	}}
	if err := s.write(conn, env); err != nil {
		return fmt.Errorf("send match state: %w", err)
	}

	return nil
}

// SetMatchStateHandler implements [SocketAdapter].
func (s *wsSocketAdapter) SetMatchStateHandler(fn func(models.MatchState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMatchState = fn
}

// SetMatchPresenceHandler implements [SocketAdapter].
func (s *wsSocketAdapter) SetMatchPresenceHandler(fn func(models.MatchPresenceEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMatchPresence = fn
}

// SetClosedHandler implements [SocketAdapter].
func (s *wsSocketAdapter) SetClosedHandler(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClosed = fn
}

// request writes env with a fresh cid and waits for the response carrying
// the same cid.
func (s *wsSocketAdapter) request(ctx context.Context, env models.SocketEnvelope) (models.SocketEnvelope, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	env.CID = strconv.FormatUint(s.nextCID.Add(1), 10)
	respCh := make(chan models.SocketEnvelope, 1)

	s.mu.Lock()
	conn := s.conn
	if conn == nil {
		s.mu.Unlock()
		return models.SocketEnvelope{}, ErrSocketNotConnected
	}
	s.pending[env.CID] = respCh
	s.mu.Unlock()

	if err := s.write(conn, env); err != nil {
		s.dropPending(env.CID)
		return models.SocketEnvelope{}, err
	}

	select {
	case resp, ok := <-respCh:
		if !ok {
			return models.SocketEnvelope{}, ErrSocketClosed
		}
		if resp.Error != nil {
			return models.SocketEnvelope{}, mapSocketError(resp.Error)
		}
		return resp, nil
	case <-ctx.Done():
		s.dropPending(env.CID)
		return models.SocketEnvelope{}, ctx.Err()
	}
}

func (s *wsSocketAdapter) dropPending(cid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, cid)
}

func (s *wsSocketAdapter) write(conn *websocket.Conn, v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.timeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.timeout))
	}
	return conn.WriteJSON(v)
}

func (s *wsSocketAdapter) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	for {
		var env models.SocketEnvelope
		if err := conn.ReadJSON(&env); err != nil {
			s.handleClosed(conn, err)
			return
		}

		s.route(env)
	}
}

func (s *wsSocketAdapter) route(env models.SocketEnvelope) {
	if env.CID != "" {
		s.mu.Lock()
		respCh, ok := s.pending[env.CID]
		delete(s.pending, env.CID)
		s.mu.Unlock()

		if !ok {
			s.logger.Debug().Str("cid", env.CID).Msg("dropping response without a waiting request")
			return
		}
		respCh <- env
		return
	}

	s.mu.Lock()
	onMatchState, onMatchPresence := s.onMatchState, s.onMatchPresence
	s.mu.Unlock()

	switch {
	case env.MatchData != nil:
		if onMatchState != nil {
			onMatchState(*env.MatchData)
		}
	case env.MatchPresenceEvent != nil:
		if onMatchPresence != nil {
			onMatchPresence(*env.MatchPresenceEvent)
		}
	case env.Error != nil:
		s.logger.Warn().Int("code", env.Error.Code).Str("message", env.Error.Message).Msg("socket error pushed by server")
	default:
		s.logger.Debug().Msg("ignoring unknown socket message")
	}
}

// handleClosed fails every pending request and reports the closure. A read
// error on a connection that Close already detached is a requested closure.
func (s *wsSocketAdapter) handleClosed(conn *websocket.Conn, readErr error) {
	s.mu.Lock()
	requested := s.conn != conn
	if !requested {
		s.conn = nil
		_ = conn.Close()
	}
	for cid, respCh := range s.pending {
		close(respCh)
		delete(s.pending, cid)
	}
	onClosed := s.onClosed
	s.mu.Unlock()

	var err error
	if !requested {
		err = readErr
		s.logger.Warn().Err(readErr).Msg("socket closed by peer")
	}

	if onClosed != nil {
		onClosed(err)
	}
}
