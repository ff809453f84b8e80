package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/MKhiriev/go-net-storage/internal/dispatcher"
	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/internal/mock"
	"github.com/MKhiriev/go-net-storage/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type profile struct {
	Score int    `json:"score"`
	Name  string `json:"name"`
}

func (profile) NetDefault() profile {
	return profile{Name: "anonymous"}
}

var (
	addrP1 = models.StorageAddress{Collection: "profiles", Key: "p1", UserID: "u1"}
	addrP2 = models.StorageAddress{Collection: "profiles", Key: "p2", UserID: "u1"}
)

// newSession returns an active session mock authenticated as principal.
func newSession(ctrl *gomock.Controller, principal string) *mock.MockSession {
	sess := mock.NewMockSession(ctrl)
	sess.EXPECT().IsActive().Return(true).AnyTimes()
	sess.EXPECT().CurrentPrincipalID().Return(principal).AnyTimes()
	return sess
}

func readIDs(addr models.StorageAddress) []models.StorageObjectID {
	return []models.StorageObjectID{{StorageAddress: addr}}
}

// fetchWith creates a record at addr whose store holds objects.
func fetchWith(t *testing.T, sess *mock.MockSession, addr models.StorageAddress, syncOnWrite bool, objects ...models.StorageObject) *Record[profile] {
	t.Helper()
	sess.EXPECT().ReadStorageObjects(gomock.Any(), readIDs(addr)).Return(objects, nil)

	r, err := Fetch[profile](context.Background(), sess, addr, syncOnWrite)
	require.NoError(t, err)
	return r
}

func envelope(t *testing.T, addr models.StorageAddress, version string, p profile) models.StorageSyncData {
	t.Helper()
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	return models.StorageSyncData{
		ID:          models.StorageObjectID{StorageAddress: addr, Version: version},
		EncodedData: string(raw),
	}
}

// ── Fetch ────────────────────────────────────────────────────────────────────

func TestFetch_NotConnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := mock.NewMockSession(ctrl)
	sess.EXPECT().IsActive().Return(false)

	r, err := Fetch[profile](context.Background(), sess, addrP1, true)
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Nil(t, r)
}

func TestFetch_NoObjectYieldsDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u1")

	r := fetchWith(t, sess, addrP1, true)

	assert.Equal(t, profile{Name: "anonymous"}, r.Data())
	assert.Empty(t, r.Version())
	assert.Equal(t, addrP1, r.Address())
	assert.Equal(t, models.StorageObjectID{StorageAddress: addrP1}, r.ID())
	assert.True(t, r.SyncOnWrite())
}

func TestFetch_ObjectPresent(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u1")

	r := fetchWith(t, sess, addrP1, false, models.StorageObject{
		StorageAddress: addrP1,
		Value:          `{"score":7,"name":"alice"}`,
		Version:        "v3",
	})

	data, version := r.Snapshot()
	assert.Equal(t, profile{Score: 7, Name: "alice"}, data)
	assert.Equal(t, "v3", version)
	assert.False(t, r.SyncOnWrite())
}

func TestFetch_DeserializationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u1")
	sess.EXPECT().ReadStorageObjects(gomock.Any(), readIDs(addrP1)).
		Return([]models.StorageObject{{StorageAddress: addrP1, Value: `{"score":"ten"}`, Version: "v1"}}, nil)

	r, err := Fetch[profile](context.Background(), sess, addrP1, true)
	assert.ErrorIs(t, err, ErrDeserialization)
	assert.Nil(t, r)
}

func TestFetch_TransportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u1")
	readErr := errors.New("connection refused")
	sess.EXPECT().ReadStorageObjects(gomock.Any(), gomock.Any()).Return(nil, readErr)

	r, err := Fetch[profile](context.Background(), sess, addrP1, true)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, readErr)
	assert.Nil(t, r)
}

// ── Refetch ──────────────────────────────────────────────────────────────────

func TestRefetch_OverwritesAndNotifies(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u1")
	r := fetchWith(t, sess, addrP1, true)

	synced := 0
	r.OnSynced(func() { synced++ })

	sess.EXPECT().ReadStorageObjects(gomock.Any(), readIDs(addrP1)).
		Return([]models.StorageObject{{StorageAddress: addrP1, Value: `{"score":5}`, Version: "v9"}}, nil)
	require.NoError(t, r.Refetch(context.Background()))

	data, version := r.Snapshot()
	assert.Equal(t, profile{Score: 5}, data)
	assert.Equal(t, "v9", version)
	assert.Equal(t, 1, synced)
}

func TestRefetch_NoObjectKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u1")
	r := fetchWith(t, sess, addrP1, true,
		models.StorageObject{StorageAddress: addrP1, Value: `{"score":1}`, Version: "v1"})

	synced := 0
	r.OnSynced(func() { synced++ })

	sess.EXPECT().ReadStorageObjects(gomock.Any(), readIDs(addrP1)).Return(nil, nil)
	require.NoError(t, r.Refetch(context.Background()))

	data, version := r.Snapshot()
	assert.Equal(t, profile{Score: 1}, data)
	assert.Equal(t, "v1", version)
	assert.Zero(t, synced)
}

func TestRefetch_NotConnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := mock.NewMockSession(ctrl)
	gomock.InOrder(
		sess.EXPECT().IsActive().Return(true),
		sess.EXPECT().ReadStorageObjects(gomock.Any(), gomock.Any()).Return(nil, nil),
		sess.EXPECT().IsActive().Return(false),
	)

	r, err := Fetch[profile](context.Background(), sess, addrP1, true)
	require.NoError(t, err)
	assert.ErrorIs(t, r.Refetch(context.Background()), ErrNotConnected)
}

func TestRefetch_DeserializationFailureKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u1")
	r := fetchWith(t, sess, addrP1, true)

	sess.EXPECT().ReadStorageObjects(gomock.Any(), gomock.Any()).
		Return([]models.StorageObject{{StorageAddress: addrP1, Value: `[]`, Version: "v2"}}, nil)

	assert.ErrorIs(t, r.Refetch(context.Background()), ErrDeserialization)
	assert.Empty(t, r.Version())
	assert.Equal(t, profile{Name: "anonymous"}, r.Data())
}

// ── Write ────────────────────────────────────────────────────────────────────

func TestWrite_NotConnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := mock.NewMockSession(ctrl)
	gomock.InOrder(
		sess.EXPECT().IsActive().Return(true),
		sess.EXPECT().ReadStorageObjects(gomock.Any(), gomock.Any()).Return(nil, nil),
		sess.EXPECT().IsActive().Return(false),
	)

	r, err := Fetch[profile](context.Background(), sess, addrP1, true)
	require.NoError(t, err)
	assert.ErrorIs(t, r.Write(context.Background()), ErrNotConnected)
}

// TestWrite_NonOwner verifies that a write by another principal neither
// reaches the store nor the match.
func TestWrite_NonOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u2")
	r := fetchWith(t, sess, addrP1, true)

	r.SetData(profile{Score: 99})
	// no WriteStorageObjects, CurrentGroupID or SendToGroup expectations:
	// any such call fails the test
	assert.ErrorIs(t, r.Write(context.Background()), ErrNotAuthorized)
	assert.Empty(t, r.Version())
}

func TestWrite_OwnerInMatchWritesAndBroadcastsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u1")
	r := fetchWith(t, sess, addrP1, true)

	r.Update(func(p *profile) { p.Score = 10 })

	var sent models.StorageSyncData
	gomock.InOrder(
		sess.EXPECT().WriteStorageObjects(gomock.Any(), []models.WriteStorageObject{{
			Collection:      "profiles",
			Key:             "p1",
			Value:           `{"score":10,"name":"anonymous"}`,
			PermissionRead:  models.PermissionPublicRead,
			PermissionWrite: models.PermissionOwnerWrite,
		}}).Return([]models.StorageObjectAck{{StorageAddress: addrP1, Version: "v1"}}, nil).Times(1),
		sess.EXPECT().CurrentGroupID().Return("m1", true),
		sess.EXPECT().SendToGroup(gomock.Any(), models.OpCodeSyncStorage, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ models.OpCode, payload []byte) error {
				require.NoError(t, json.Unmarshal(payload, &sent))
				return nil
			}).Times(1),
	)

	require.NoError(t, r.Write(context.Background()))

	assert.Equal(t, "v1", r.Version())
	assert.Equal(t, addrP1, sent.ID.StorageAddress)
	assert.Equal(t, "v1", sent.ID.Version)
	assert.JSONEq(t, `{"score":10,"name":"anonymous"}`, sent.EncodedData)
}

func TestWrite_RemoteUpdateDuringWriteKeepsPair(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u1")
	r := fetchWith(t, sess, addrP1, true)
	r.Update(func(p *profile) { p.Score = 10 })

	var sent models.StorageSyncData
	sess.EXPECT().WriteStorageObjects(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []models.WriteStorageObject) ([]models.StorageObjectAck, error) {
			applied, err := r.ApplyRemoteUpdate(envelope(t, addrP1, "vRemote", profile{Score: 99, Name: "remote"}))
			require.NoError(t, err)
			require.True(t, applied)
			return []models.StorageObjectAck{{StorageAddress: addrP1, Version: "vLocal"}}, nil
		})
	sess.EXPECT().CurrentGroupID().Return("m1", true)
	sess.EXPECT().SendToGroup(gomock.Any(), models.OpCodeSyncStorage, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.OpCode, payload []byte) error {
			return json.Unmarshal(payload, &sent)
		})

	require.NoError(t, r.Write(context.Background()))

	data, version := r.Snapshot()
	assert.Equal(t, profile{Score: 99, Name: "remote"}, data)
	assert.Equal(t, "vRemote", version)

	// peers still receive exactly what the store acknowledged
	assert.Equal(t, "vLocal", sent.ID.Version)
	assert.JSONEq(t, `{"score":10,"name":"anonymous"}`, sent.EncodedData)
}

func TestWrite_RefetchDuringWriteKeepsPair(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u1")
	r := fetchWith(t, sess, addrP1, false)

	sess.EXPECT().ReadStorageObjects(gomock.Any(), readIDs(addrP1)).Return([]models.StorageObject{
		{StorageAddress: addrP1, Value: `{"score":7,"name":"stored"}`, Version: "v9"},
	}, nil)
	sess.EXPECT().WriteStorageObjects(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ []models.WriteStorageObject) ([]models.StorageObjectAck, error) {
			require.NoError(t, r.Refetch(ctx))
			return []models.StorageObjectAck{{StorageAddress: addrP1, Version: "v1"}}, nil
		})

	require.NoError(t, r.Write(context.Background()))

	data, version := r.Snapshot()
	assert.Equal(t, profile{Score: 7, Name: "stored"}, data)
	assert.Equal(t, "v9", version)
}

func TestWrite_LocalEditDuringWriteKeepsPreviousVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u1")
	r := fetchWith(t, sess, addrP1, false, models.StorageObject{
		StorageAddress: addrP1, Value: `{"score":1,"name":"a"}`, Version: "v1",
	})

	sess.EXPECT().WriteStorageObjects(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []models.WriteStorageObject) ([]models.StorageObjectAck, error) {
			r.SetData(profile{Score: 5, Name: "edited"})
			return []models.StorageObjectAck{{StorageAddress: addrP1, Version: "v2"}}, nil
		})

	require.NoError(t, r.Write(context.Background()))

	data, version := r.Snapshot()
	assert.Equal(t, profile{Score: 5, Name: "edited"}, data)
	assert.Equal(t, "v1", version)
}

func TestWrite_EnvelopeWireFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u1")
	r := fetchWith(t, sess, addrP1, true)

	var raw []byte
	sess.EXPECT().WriteStorageObjects(gomock.Any(), gomock.Any()).
		Return([]models.StorageObjectAck{{StorageAddress: addrP1, Version: "v1"}}, nil)
	sess.EXPECT().CurrentGroupID().Return("m1", true)
	sess.EXPECT().SendToGroup(gomock.Any(), models.OpCodeSyncStorage, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.OpCode, payload []byte) error {
			raw = payload
			return nil
		})

	require.NoError(t, r.Write(context.Background()))
	assert.JSONEq(t, `{
		"Id": {"collection": "profiles", "key": "p1", "user_id": "u1", "version": "v1"},
		"EncodedData": "{\"score\":0,\"name\":\"anonymous\"}"
	}`, string(raw))
}

func TestWrite_SyncDisabledNeverBroadcasts(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u1")
	r := fetchWith(t, sess, addrP1, false)

	sess.EXPECT().WriteStorageObjects(gomock.Any(), gomock.Any()).
		Return([]models.StorageObjectAck{{StorageAddress: addrP1, Version: "v1"}}, nil)
	sess.EXPECT().CurrentGroupID().Return("m1", true).AnyTimes()

	require.NoError(t, r.Write(context.Background()))
	assert.Equal(t, "v1", r.Version())
}

func TestWrite_NoMatchNoBroadcast(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u1")
	r := fetchWith(t, sess, addrP1, true)

	sess.EXPECT().WriteStorageObjects(gomock.Any(), gomock.Any()).
		Return([]models.StorageObjectAck{{StorageAddress: addrP1, Version: "v1"}}, nil)
	sess.EXPECT().CurrentGroupID().Return("", false)

	require.NoError(t, r.Write(context.Background()))
}

func TestWrite_BroadcastFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u1")
	r := fetchWith(t, sess, addrP1, true)

	sess.EXPECT().WriteStorageObjects(gomock.Any(), gomock.Any()).
		Return([]models.StorageObjectAck{{StorageAddress: addrP1, Version: "v2"}}, nil)
	sess.EXPECT().CurrentGroupID().Return("m1", true)
	sess.EXPECT().SendToGroup(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("socket closed"))

	require.NoError(t, r.Write(context.Background()))
	assert.Equal(t, "v2", r.Version())
}

func TestWrite_TransportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u1")
	r := fetchWith(t, sess, addrP1, true)

	sess.EXPECT().WriteStorageObjects(gomock.Any(), gomock.Any()).Return(nil, errors.New("503"))

	assert.ErrorIs(t, r.Write(context.Background()), ErrTransport)
	assert.Empty(t, r.Version())
}

// ── ApplyRemoteUpdate ────────────────────────────────────────────────────────

func TestApplyRemoteUpdate_AddressMismatchIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u2")
	r := fetchWith(t, sess, addrP1, true,
		models.StorageObject{StorageAddress: addrP1, Value: `{"score":1}`, Version: "v1"})

	synced := 0
	r.OnSynced(func() { synced++ })

	others := []models.StorageAddress{
		{Collection: "other", Key: "p1", UserID: "u1"},
		{Collection: "profiles", Key: "p2", UserID: "u1"},
		{Collection: "profiles", Key: "p1", UserID: "u9"},
	}
	for _, addr := range others {
		t.Run(formatAddress(addr), func(t *testing.T) {
			applied, err := r.ApplyRemoteUpdate(envelope(t, addr, "v5", profile{Score: 50}))
			require.NoError(t, err)
			assert.False(t, applied)

			data, version := r.Snapshot()
			assert.Equal(t, profile{Score: 1}, data)
			assert.Equal(t, "v1", version)
		})
	}
	assert.Zero(t, synced)
}

func TestApplyRemoteUpdate_MatchingIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u2")
	r := fetchWith(t, sess, addrP1, true)

	synced := 0
	cancel := r.OnSynced(func() { synced++ })

	env := envelope(t, addrP1, "v5", profile{Score: 50, Name: "bob"})

	applied, err := r.ApplyRemoteUpdate(env)
	require.NoError(t, err)
	assert.True(t, applied)
	first, firstVersion := r.Snapshot()

	applied, err = r.ApplyRemoteUpdate(env)
	require.NoError(t, err)
	assert.True(t, applied)
	second, secondVersion := r.Snapshot()

	assert.Equal(t, profile{Score: 50, Name: "bob"}, first)
	assert.Equal(t, "v5", firstVersion)
	assert.Equal(t, first, second)
	assert.Equal(t, firstVersion, secondVersion)
	assert.Equal(t, 2, synced)

	cancel()
	_, err = r.ApplyRemoteUpdate(env)
	require.NoError(t, err)
	assert.Equal(t, 2, synced)
}

func TestApplyRemoteUpdate_UndecodablePayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u2")
	r := fetchWith(t, sess, addrP1, true)

	applied, err := r.ApplyRemoteUpdate(models.StorageSyncData{
		ID:          models.StorageObjectID{StorageAddress: addrP1, Version: "v5"},
		EncodedData: "not json",
	})
	assert.ErrorIs(t, err, ErrDeserialization)
	assert.False(t, applied)
	assert.Empty(t, r.Version())
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestRegister_DeliversToApplyRemoteUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u2")
	r := fetchWith(t, sess, addrP1, true)

	reg := mock.NewMockRegistry(ctrl)
	var deliver func(models.StorageSyncData)
	unregistered := false
	reg.EXPECT().Register(addrP1, gomock.Any()).
		DoAndReturn(func(_ models.StorageAddress, fn func(models.StorageSyncData)) func() {
			deliver = fn
			return func() { unregistered = true }
		})

	unregister := r.Register(reg)
	require.NotNil(t, deliver)

	deliver(envelope(t, addrP1, "v2", profile{Score: 2}))
	assert.Equal(t, 2, r.Data().Score)

	// undecodable envelopes are dropped without panicking
	deliver(models.StorageSyncData{ID: models.StorageObjectID{StorageAddress: addrP1}, EncodedData: "{"})
	assert.Equal(t, "v2", r.Version())

	unregister()
	assert.True(t, unregistered)
}

// ── end to end ───────────────────────────────────────────────────────────────

// TestScenario_OwnerWriteReachesPeer covers a fetch on an empty store, a
// write by the owner and the peer side applying the broadcast through its
// dispatcher. A peer record of another key stays untouched.
func TestScenario_OwnerWriteReachesPeer(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	owner := newSession(ctrl, "u1")
	peer := newSession(ctrl, "u2")
	peerDispatcher := dispatcher.New(logger.Nop())

	var stored string
	owner.EXPECT().WriteStorageObjects(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, objects []models.WriteStorageObject) ([]models.StorageObjectAck, error) {
			stored = objects[0].Value
			return []models.StorageObjectAck{{StorageAddress: addrP1, Version: "v1"}}, nil
		})
	owner.EXPECT().CurrentGroupID().Return("m1", true)
	owner.EXPECT().SendToGroup(gomock.Any(), models.OpCodeSyncStorage, gomock.Any()).
		DoAndReturn(func(_ context.Context, op models.OpCode, payload []byte) error {
			peerDispatcher.OnGroupMessage(models.MatchState{
				MatchID:  "m1",
				OpCode:   op,
				State:    payload,
				Presence: models.UserPresence{UserID: "u1"},
			})
			return nil
		})

	ownerRecord := fetchWith(t, owner, addrP1, true)
	assert.Equal(t, profile{Name: "anonymous"}, ownerRecord.Data())
	assert.Empty(t, ownerRecord.Version())

	peerRecord := fetchWith(t, peer, addrP1, true)
	peerOther := fetchWith(t, peer, addrP2, true,
		models.StorageObject{StorageAddress: addrP2, Value: `{"score":3}`, Version: "v7"})
	peerRecord.Register(peerDispatcher)
	peerOther.Register(peerDispatcher)

	synced := make(chan struct{}, 1)
	peerRecord.OnSynced(func() { synced <- struct{}{} })

	ownerRecord.SetData(profile{Score: 10})
	require.NoError(t, ownerRecord.Write(ctx))

	<-synced
	assert.JSONEq(t, `{"score":10,"name":""}`, stored)
	assert.Equal(t, 10, peerRecord.Data().Score)
	assert.Equal(t, "v1", peerRecord.Version())

	data, version := peerOther.Snapshot()
	assert.Equal(t, profile{Score: 3}, data)
	assert.Equal(t, "v7", version)
}

// ── concurrency ──────────────────────────────────────────────────────────────

// TestSnapshot_VersionAndPayloadMoveTogether applies updates whose version
// encodes the payload and checks that readers never see a mixed pair.
func TestSnapshot_VersionAndPayloadMoveTogether(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := newSession(ctrl, "u2")
	r := fetchWith(t, sess, addrP1, true)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				n := w*1000 + i
				raw := fmt.Sprintf(`{"score":%d}`, n)
				_, err := r.ApplyRemoteUpdate(models.StorageSyncData{
					ID:          models.StorageObjectID{StorageAddress: addrP1, Version: strconv.Itoa(n)},
					EncodedData: raw,
				})
				assert.NoError(t, err)
			}
		}(w)
	}
	for rd := 0; rd < 4; rd++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				data, version := r.Snapshot()
				if version == "" {
					continue
				}
				assert.Equal(t, version, strconv.Itoa(data.Score))
			}
		}()
	}
	wg.Wait()
}
