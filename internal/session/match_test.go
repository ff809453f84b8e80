package session

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-net-storage/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSession_CreateMatch_NotConnected(t *testing.T) {
	ts := newTestSession(t)

	_, err := ts.CreateMatch(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestSession_CreateMatch_NotifiesObservers(t *testing.T) {
	ts := newTestSession(t)
	ts.connect(t)

	var joined []string
	cancel := ts.OnJoinedMatch(func(m *Match) { joined = append(joined, m.ID()) })

	self := models.UserPresence{UserID: "u1", SessionID: "s1", Username: "alice"}
	ts.socket.EXPECT().CreateMatch(gomock.Any()).Return(models.Match{MatchID: "m1", Self: self}, nil)

	match, err := ts.CreateMatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "m1", match.ID())
	assert.Equal(t, self, match.Self())
	assert.Equal(t, []models.UserPresence{self}, match.Presences())
	assert.Equal(t, []string{"m1"}, joined)

	id, ok := ts.CurrentGroupID()
	assert.True(t, ok)
	assert.Equal(t, "m1", id)

	cur, ok := ts.Match()
	require.True(t, ok)
	assert.Same(t, match, cur)

	cancel()
	cancel()
}

func TestSession_JoinMatch_AlreadyInGroup(t *testing.T) {
	ts := newTestSession(t)
	ts.connect(t)

	ts.socket.EXPECT().JoinMatch(gomock.Any(), "m1").Return(models.Match{MatchID: "m1"}, nil)
	_, err := ts.JoinMatch(context.Background(), "m1")
	require.NoError(t, err)

	_, err = ts.JoinMatch(context.Background(), "m2")
	assert.ErrorIs(t, err, ErrAlreadyInGroup)
	_, err = ts.CreateMatch(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyInGroup)
}

func TestSession_JoinMatch_Error(t *testing.T) {
	ts := newTestSession(t)
	ts.connect(t)

	joinErr := errors.New("match not found")
	ts.socket.EXPECT().JoinMatch(gomock.Any(), "missing").Return(models.Match{}, joinErr)

	_, err := ts.JoinMatch(context.Background(), "missing")
	assert.ErrorIs(t, err, joinErr)
	_, ok := ts.CurrentGroupID()
	assert.False(t, ok)
}

func TestSession_LeaveMatch(t *testing.T) {
	ts := newTestSession(t)
	ts.connect(t)

	assert.ErrorIs(t, ts.LeaveMatch(context.Background()), ErrNotInGroup)

	ts.socket.EXPECT().CreateMatch(gomock.Any()).Return(models.Match{MatchID: "m1"}, nil)
	_, err := ts.CreateMatch(context.Background())
	require.NoError(t, err)

	var left string
	ts.OnLeftMatch(func(m *Match) { left = m.ID() })

	// the server failing to acknowledge does not keep the session in the match
	ts.socket.EXPECT().LeaveMatch(gomock.Any(), "m1").Return(errors.New("timeout"))
	require.NoError(t, ts.LeaveMatch(context.Background()))

	assert.Equal(t, "m1", left)
	_, ok := ts.CurrentGroupID()
	assert.False(t, ok)
}

func TestSession_SendToGroup(t *testing.T) {
	ts := newTestSession(t)
	assert.ErrorIs(t, ts.SendToGroup(context.Background(), models.OpCodeSyncStorage, nil), ErrNotConnected)

	ts.connect(t)
	assert.ErrorIs(t, ts.SendToGroup(context.Background(), models.OpCodeSyncStorage, nil), ErrNotInGroup)

	ts.socket.EXPECT().CreateMatch(gomock.Any()).Return(models.Match{MatchID: "m1"}, nil)
	_, err := ts.CreateMatch(context.Background())
	require.NoError(t, err)

	ts.socket.EXPECT().SendMatchState(gomock.Any(), "m1", models.OpCodeSyncStorage, []byte("payload")).Return(nil)
	require.NoError(t, ts.SendToGroup(context.Background(), models.OpCodeSyncStorage, []byte("payload")))
}

func TestMatch_PresenceEvents(t *testing.T) {
	ts := newTestSession(t)
	ts.connect(t)

	self := models.UserPresence{UserID: "u1", SessionID: "s1"}
	bob := models.UserPresence{UserID: "u2", SessionID: "s2"}
	carol := models.UserPresence{UserID: "u3", SessionID: "s3"}

	ts.socket.EXPECT().JoinMatch(gomock.Any(), "m1").
		Return(models.Match{MatchID: "m1", Self: self, Presences: []models.UserPresence{bob, self}}, nil)
	match, err := ts.JoinMatch(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, []models.UserPresence{bob, self}, match.Presences())

	ts.onPresence(models.MatchPresenceEvent{MatchID: "m1", Joins: []models.UserPresence{carol, carol}})
	ts.onPresence(models.MatchPresenceEvent{MatchID: "m1", Leaves: []models.UserPresence{bob}})
	ts.onPresence(models.MatchPresenceEvent{MatchID: "other", Leaves: []models.UserPresence{self}})

	assert.Equal(t, []models.UserPresence{self, carol}, match.Presences())
}

func TestMatch_Players(t *testing.T) {
	ts := newTestSession(t)
	ts.connect(t)

	ts.socket.EXPECT().CreateMatch(gomock.Any()).Return(models.Match{
		MatchID: "m1",
		Self:    models.UserPresence{UserID: "u1", SessionID: "s1"},
		Presences: []models.UserPresence{
			{UserID: "u2", SessionID: "s2"},
			{UserID: "u2", SessionID: "s3"},
		},
	}, nil)
	match, err := ts.CreateMatch(context.Background())
	require.NoError(t, err)

	ts.server.EXPECT().GetUsers(gomock.Any(), []string{"u2", "u1"}, nil).Return([]models.User{
		{ID: "u1", Username: "alice"},
		{ID: "u2", Username: "bob"},
	}, nil)

	players, err := match.Players(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Account{
		{Username: "bob", UserID: "u2"},
		{Username: "alice", UserID: "u1", Local: true},
	}, players)
}

func TestSession_FramesBeforeJoinResponseAreReplayed(t *testing.T) {
	ts := newTestSession(t)
	ts.connect(t)

	var got []models.MatchState
	require.NoError(t, ts.OnMatchState(func(s models.MatchState) { got = append(got, s) }))

	self := models.UserPresence{UserID: "u1", SessionID: "s1"}
	bob := models.UserPresence{UserID: "u2", SessionID: "s2"}

	ts.socket.EXPECT().CreateMatch(gomock.Any()).
		DoAndReturn(func(context.Context) (models.Match, error) {
			ts.onPresence(models.MatchPresenceEvent{MatchID: "m1", Joins: []models.UserPresence{bob}})
			ts.onState(models.MatchState{MatchID: "m1", OpCode: models.OpCodeSyncStorage, State: []byte("first")})
			ts.onState(models.MatchState{MatchID: "other", OpCode: models.OpCodeSyncStorage, State: []byte("foreign")})
			ts.onState(models.MatchState{MatchID: "m1", OpCode: models.OpCodeSyncStorage, State: []byte("second")})
			return models.Match{MatchID: "m1", Self: self}, nil
		})

	match, err := ts.CreateMatch(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, []byte("first"), got[0].State)
	assert.Equal(t, []byte("second"), got[1].State)
	assert.ElementsMatch(t, []models.UserPresence{self, bob}, match.Presences())

	ts.onState(models.MatchState{MatchID: "m1", OpCode: models.OpCodeSyncStorage, State: []byte("third")})
	require.Len(t, got, 3)
}

func TestSession_FailedJoinDiscardsEarlyFrames(t *testing.T) {
	ts := newTestSession(t)
	ts.connect(t)

	var got []models.MatchState
	require.NoError(t, ts.OnMatchState(func(s models.MatchState) { got = append(got, s) }))

	ts.socket.EXPECT().JoinMatch(gomock.Any(), "m1").
		DoAndReturn(func(context.Context, string) (models.Match, error) {
			ts.onState(models.MatchState{MatchID: "m1", State: []byte("early")})
			return models.Match{}, errors.New("match not found")
		})
	_, err := ts.JoinMatch(context.Background(), "m1")
	require.Error(t, err)

	ts.socket.EXPECT().JoinMatch(gomock.Any(), "m2").Return(models.Match{MatchID: "m2"}, nil)
	_, err = ts.JoinMatch(context.Background(), "m2")
	require.NoError(t, err)

	ts.onState(models.MatchState{MatchID: "m1", State: []byte("late")})
	assert.Empty(t, got)
}
