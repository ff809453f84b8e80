package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-net-storage/internal/config"
	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeRealtime is a minimal realtime endpoint answering match requests.
type fakeRealtime struct {
	t        *testing.T
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conn  *websocket.Conn
	token string

	sent      chan models.MatchDataSend
	connected chan struct{}
	wg        sync.WaitGroup
}

func newFakeRealtime(t *testing.T) (*fakeRealtime, *httptest.Server) {
	f := &fakeRealtime{
		t:         t,
		sent:      make(chan models.MatchDataSend, 8),
		connected: make(chan struct{}, 1),
	}
	srv := httptest.NewServer(f)
	t.Cleanup(func() {
		srv.Close()
		f.closeConn()
		f.wg.Wait()
	})
	return f, srv
}

func (f *fakeRealtime) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/ws" {
		http.NotFound(w, r)
		return
	}
	if r.URL.Query().Get("token") == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	f.wg.Add(1)
	defer f.wg.Done()

	f.mu.Lock()
	f.conn = conn
	f.token = r.URL.Query().Get("token")
	f.mu.Unlock()
	f.connected <- struct{}{}

	for {
		var env models.SocketEnvelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}

		resp := models.SocketEnvelope{CID: env.CID}
		switch {
		case env.MatchCreate != nil:
			resp.Match = &models.Match{MatchID: "m1", Size: 1, Self: models.UserPresence{UserID: "u1"}}
		case env.MatchJoin != nil && env.MatchJoin.MatchID == "missing":
			resp.Error = &models.SocketError{Code: models.SocketErrorMatchNotFound, Message: "match not found"}
		case env.MatchJoin != nil:
			resp.Match = &models.Match{MatchID: env.MatchJoin.MatchID, Size: 2}
		case env.MatchLeave != nil:
		case env.MatchDataSend != nil:
			f.sent <- *env.MatchDataSend
			continue
		}
		f.push(resp)
	}
}

func (f *fakeRealtime) push(env models.SocketEnvelope) {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NoError(f.t, f.conn.WriteJSON(env))
}

func (f *fakeRealtime) closeConn() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn != nil {
		_ = f.conn.Close()
	}
}

func newTestSocket(t *testing.T, serverURL string) *wsSocketAdapter {
	t.Helper()
	s, err := NewWebsocketAdapter(config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return s.(*wsSocketAdapter)
}

func verifyNoLeaks(t *testing.T) {
	opts := goleak.IgnoreCurrent()
	t.Cleanup(func() { goleak.VerifyNone(t, opts) })
}

func TestSocketURL(t *testing.T) {
	got, err := socketURL("http://localhost:7350")
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:7350/ws", got)

	got, err = socketURL("https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "wss://example.com/ws", got)
}

func TestSocket_MatchRequests(t *testing.T) {
	verifyNoLeaks(t)
	f, srv := newFakeRealtime(t)

	s := newTestSocket(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, s.Connect(ctx, "tok"))
	<-f.connected
	assert.True(t, s.IsConnected())
	assert.ErrorIs(t, s.Connect(ctx, "tok"), ErrSocketConnected)

	match, err := s.CreateMatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "m1", match.MatchID)

	match, err = s.JoinMatch(ctx, "m2")
	require.NoError(t, err)
	assert.Equal(t, "m2", match.MatchID)

	_, err = s.JoinMatch(ctx, "missing")
	require.ErrorIs(t, err, ErrSocketRequest)
	assert.ErrorIs(t, err, ErrNotFound)
	var socketErr *models.SocketError
	require.ErrorAs(t, err, &socketErr)
	assert.Equal(t, models.SocketErrorMatchNotFound, socketErr.Code)

	require.NoError(t, s.LeaveMatch(ctx, "m2"))

	require.NoError(t, s.Close())
	assert.False(t, s.IsConnected())
	assert.Equal(t, "tok", f.token)
}

func TestSocket_SendMatchState(t *testing.T) {
	verifyNoLeaks(t)
	f, srv := newFakeRealtime(t)

	s := newTestSocket(t, srv.URL)
	require.NoError(t, s.Connect(context.Background(), "tok"))
	<-f.connected

	require.NoError(t, s.SendMatchState(context.Background(), "m1", models.OpCodeSyncStorage, []byte(`{"a":1}`)))

	select {
	case got := <-f.sent:
		assert.Equal(t, "m1", got.MatchID)
		assert.Equal(t, models.OpCodeSyncStorage, got.OpCode)
		assert.Equal(t, []byte(`{"a":1}`), got.Data)
	case <-time.After(2 * time.Second):
		t.Fatal("match data was not relayed")
	}

	require.NoError(t, s.Close())
}

func TestSocket_PushedMessagesReachHandlers(t *testing.T) {
	verifyNoLeaks(t)
	f, srv := newFakeRealtime(t)

	states := make(chan models.MatchState, 1)
	presences := make(chan models.MatchPresenceEvent, 1)

	s := newTestSocket(t, srv.URL)
	s.SetMatchStateHandler(func(state models.MatchState) { states <- state })
	s.SetMatchPresenceHandler(func(ev models.MatchPresenceEvent) { presences <- ev })
	require.NoError(t, s.Connect(context.Background(), "tok"))
	<-f.connected

	f.push(models.SocketEnvelope{MatchData: &models.MatchState{MatchID: "m1", OpCode: 7, State: []byte("x")}})
	f.push(models.SocketEnvelope{MatchPresenceEvent: &models.MatchPresenceEvent{MatchID: "m1", Joins: []models.UserPresence{{UserID: "u2"}}}})

	select {
	case st := <-states:
		assert.Equal(t, models.OpCode(7), st.OpCode)
		assert.Equal(t, []byte("x"), st.State)
	case <-time.After(2 * time.Second):
		t.Fatal("match state not delivered")
	}
	select {
	case ev := <-presences:
		require.Len(t, ev.Joins, 1)
		assert.Equal(t, "u2", ev.Joins[0].UserID)
	case <-time.After(2 * time.Second):
		t.Fatal("presence event not delivered")
	}

	require.NoError(t, s.Close())
}

func TestSocket_PeerCloseReportsError(t *testing.T) {
	verifyNoLeaks(t)
	f, srv := newFakeRealtime(t)

	closed := make(chan error, 1)
	s := newTestSocket(t, srv.URL)
	s.SetClosedHandler(func(err error) { closed <- err })
	require.NoError(t, s.Connect(context.Background(), "tok"))
	<-f.connected

	f.closeConn()

	select {
	case err := <-closed:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("closed handler not invoked")
	}
	assert.False(t, s.IsConnected())

	_, err := s.CreateMatch(context.Background())
	assert.ErrorIs(t, err, ErrSocketNotConnected)
	assert.NoError(t, s.Close())
}

func TestSocket_RequestedCloseReportsNil(t *testing.T) {
	verifyNoLeaks(t)
	f, srv := newFakeRealtime(t)

	closed := make(chan error, 1)
	s := newTestSocket(t, srv.URL)
	s.SetClosedHandler(func(err error) { closed <- err })
	require.NoError(t, s.Connect(context.Background(), "tok"))
	<-f.connected

	require.NoError(t, s.Close())
	assert.NoError(t, <-closed)
}

func TestSocket_NotConnected(t *testing.T) {
	s := newTestSocket(t, "http://127.0.0.1:1")

	_, err := s.CreateMatch(context.Background())
	assert.ErrorIs(t, err, ErrSocketNotConnected)
	assert.ErrorIs(t, s.SendMatchState(context.Background(), "m", 1, nil), ErrSocketNotConnected)
	assert.NoError(t, s.Close())
}

func TestSocket_ConnectUnauthorized(t *testing.T) {
	_, srv := newFakeRealtime(t)

	s := newTestSocket(t, srv.URL)
	err := s.Connect(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, s.IsConnected())
}
