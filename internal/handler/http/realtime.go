package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/internal/service"
	"github.com/MKhiriev/go-net-storage/internal/utils"
	"github.com/MKhiriev/go-net-storage/models"
)

const (
	socketWriteWait  = 10 * time.Second
	socketPongWait   = 60 * time.Second
	socketPingPeriod = socketPongWait * 9 / 10
	socketMaxMessage = 1 << 20
)

// socketConn serializes writes to a websocket connection. gorilla/websocket
// allows one concurrent writer only.
type socketConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *socketConn) send(env models.SocketEnvelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
	return c.conn.WriteJSON(env)
}

func (c *socketConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(socketWriteWait))
}

func (c *socketConn) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(socketPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return
			}
		}
	}
}

// realtime upgrades an authenticated request to the realtime socket and
// serves match requests until the peer goes away. Every connection is a new
// realtime session.
func (h *Handler) realtime(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		log.Err(ErrEmptyToken).Send()
		http.Error(w, ErrEmptyToken.Error(), http.StatusUnauthorized)
		return
	}

	token, err := h.services.AuthService.ParseToken(r.Context(), tokenString)
	if err != nil {
		log.Err(err).Msg("error occurred during parsing token")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already answered the request
		log.Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sc := &socketConn{conn: conn}
	presence := models.UserPresence{
		UserID:    token.UserID,
		SessionID: utils.NewID(),
		Username:  token.Username,
	}
	if err = h.services.MatchService.Connect(presence, sc.send); err != nil {
		log.Err(err).Msg("realtime session rejected")
		return
	}
	defer h.services.MatchService.Disconnect(presence.SessionID)

	log = log.GetChildLogger()
	log.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("session_id", presence.SessionID).Str("user_id", presence.UserID)
	})
	ctx := log.WithContext(r.Context())
	log.Info().Msg("realtime session opened")

	done := make(chan struct{})
	defer close(done)
	go sc.pingLoop(done)

	conn.SetReadLimit(socketMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(socketPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(socketPongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Msg("realtime session lost")
			} else {
				log.Info().Msg("realtime session closed")
			}
			return
		}

		var (
			env       models.SocketEnvelope
			decodeErr error
		)
		if err = json.Unmarshal(data, &env); err != nil {
			decodeErr = fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
		}

		resp := h.handleEnvelope(ctx, presence.SessionID, env, decodeErr)
		if resp == nil {
			continue
		}
		if err = sc.send(*resp); err != nil {
			log.Warn().Err(err).Msg("realtime write failed")
			return
		}
	}
}

// handleEnvelope serves a single socket request. The response carries the
// request cid. Requests without a cid only get an answer when they fail.
func (h *Handler) handleEnvelope(ctx context.Context, sessionID string, env models.SocketEnvelope, decodeErr error) *models.SocketEnvelope {
	resp := models.SocketEnvelope{CID: env.CID}

	err := decodeErr
	if err == nil {
		switch {
		case env.MatchCreate != nil:
			var match models.Match
			match, err = h.services.MatchService.CreateMatch(ctx, sessionID)
			resp.Match = &match
		case env.MatchJoin != nil:
			var match models.Match
			match, err = h.services.MatchService.JoinMatch(ctx, sessionID, env.MatchJoin.MatchID)
			resp.Match = &match
		case env.MatchLeave != nil:
			err = h.services.MatchService.LeaveMatch(ctx, sessionID, env.MatchLeave.MatchID)
		case env.MatchDataSend != nil:
			err = h.services.MatchService.SendMatchData(ctx, sessionID, *env.MatchDataSend)
		default:
			err = fmt.Errorf("%w: unknown socket message", service.ErrInvalidDataProvided)
		}
	}

	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("cid", env.CID).Msg("socket request failed")
		return &models.SocketEnvelope{CID: env.CID, Error: socketErrorFrom(err)}
	}
	if env.CID == "" {
		return nil
	}
	return &resp
}
