package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/models"
)

// Record is a typed storage object bound to a session.
//
// Version and payload are guarded together: readers never observe one
// updated without the other.
type Record[T Data[T]] struct {
	addr        models.StorageAddress
	syncOnWrite bool
	sess        Session

	mu      sync.RWMutex
	version string
	data    T
	// generation advances on every change of data. Write adopts its
	// acknowledged version only while generation is unchanged.
	generation uint64

	obsMu     sync.Mutex
	obsNextID uint64
	observers map[uint64]func()

	logger *logger.Logger
}

// Fetch reads the object at addr. When the store holds no object the record
// starts with T's NetDefault value and an empty version.
//
// syncOnWrite makes every successful Write broadcast the new state to the
// current match.
func Fetch[T Data[T]](ctx context.Context, sess Session, addr models.StorageAddress, syncOnWrite bool) (*Record[T], error) {
	r := &Record[T]{
		addr:        addr,
		syncOnWrite: syncOnWrite,
		sess:        sess,
		observers:   make(map[uint64]func()),
		logger:      logger.FromContext(ctx),
	}

	obj, found, err := r.read(ctx)
	if err != nil {
		return nil, err
	}

	if !found {
		var zero T
		r.data = zero.NetDefault()
		return r, nil
	}

	data, err := decode[T](obj.Value)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", formatAddress(addr), err)
	}
	r.data = data
	r.version = obj.Version

	return r, nil
}

// Refetch replaces version and payload with the object currently stored.
// When the store no longer holds an object the record is left untouched.
func (r *Record[T]) Refetch(ctx context.Context) error {
	obj, found, err := r.read(ctx)
	if err != nil {
		return err
	}

	if !found {
		r.logger.Debug().Str("address", formatAddress(r.addr)).Msg("refetch found no object, keeping local state")
		return nil
	}

	data, err := decode[T](obj.Value)
	if err != nil {
		return fmt.Errorf("refetch %s: %w", formatAddress(r.addr), err)
	}

	r.mu.Lock()
	r.data = data
	r.version = obj.Version
	r.generation++
	r.mu.Unlock()

	r.notifySynced()
	return nil
}

func (r *Record[T]) read(ctx context.Context) (models.StorageObject, bool, error) {
	if !r.sess.IsActive() {
		return models.StorageObject{}, false, ErrNotConnected
	}

	objects, err := r.sess.ReadStorageObjects(ctx, []models.StorageObjectID{{StorageAddress: r.addr}})
	if err != nil {
		return models.StorageObject{}, false, fmt.Errorf("%w: read %s: %w", ErrTransport, formatAddress(r.addr), err)
	}

	for _, obj := range objects {
		if obj.StorageAddress == r.addr {
			return obj, true, nil
		}
	}

	return models.StorageObject{}, false, nil
}

// Write stores the payload, overwriting whatever the store holds, and adopts
// the version the store acknowledged. If the payload changed while the write
// was in flight the record keeps the newer payload and its version.
//
// When the record syncs on write and the session is in a match, the new state
// is broadcast to the match afterwards. The broadcast is best effort: a failed
// send is logged and does not fail the write.
func (r *Record[T]) Write(ctx context.Context) error {
	if !r.sess.IsActive() {
		return ErrNotConnected
	}
	if r.addr.UserID != r.sess.CurrentPrincipalID() {
		return ErrNotAuthorized
	}

	r.mu.RLock()
	encoded, err := json.Marshal(r.data)
	version, generation := r.version, r.generation
	r.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	acks, err := r.sess.WriteStorageObjects(ctx, []models.WriteStorageObject{{
		Collection:      r.addr.Collection,
		Key:             r.addr.Key,
		Value:           string(encoded),
		PermissionRead:  models.PermissionPublicRead,
		PermissionWrite: models.PermissionOwnerWrite,
	}})
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrTransport, formatAddress(r.addr), err)
	}

	for _, ack := range acks {
		if ack.StorageAddress == r.addr && ack.Version != "" {
			version = ack.Version
		}
	}

	r.mu.Lock()
	if r.generation == generation {
		r.version = version
	} else {
		r.logger.Debug().Str("address", formatAddress(r.addr)).Msg("record changed during write, keeping newer state")
	}
	r.mu.Unlock()

	r.broadcast(ctx, version, encoded)
	return nil
}

func (r *Record[T]) broadcast(ctx context.Context, version string, encoded []byte) {
	if !r.syncOnWrite {
		return
	}
	matchID, ok := r.sess.CurrentGroupID()
	if !ok {
		return
	}

	payload, err := json.Marshal(models.StorageSyncData{
		ID:          models.StorageObjectID{StorageAddress: r.addr, Version: version},
		EncodedData: string(encoded),
	})
	if err != nil {
		r.logger.Error().Err(err).Str("address", formatAddress(r.addr)).Msg("encoding sync envelope")
		return
	}

	if err = r.sess.SendToGroup(ctx, models.OpCodeSyncStorage, payload); err != nil {
		r.logger.Warn().Err(err).
			Str("address", formatAddress(r.addr)).
			Str("match_id", matchID).
			Msg("sync broadcast dropped")
	}
}

// ApplyRemoteUpdate applies an update broadcast by a peer. It reports false
// without touching the record when the envelope addresses another record.
// Applying the same envelope again yields the same state.
func (r *Record[T]) ApplyRemoteUpdate(env models.StorageSyncData) (bool, error) {
	if env.ID.StorageAddress != r.addr {
		return false, nil
	}

	data, err := decode[T](env.EncodedData)
	if err != nil {
		return false, fmt.Errorf("apply update to %s: %w", formatAddress(r.addr), err)
	}

	r.mu.Lock()
	r.data = data
	r.version = env.ID.Version
	r.generation++
	r.mu.Unlock()

	r.notifySynced()
	return true, nil
}

// Register subscribes the record to updates of its address delivered by reg.
func (r *Record[T]) Register(reg Registry) (unregister func()) {
	return reg.Register(r.addr, func(env models.StorageSyncData) {
		if _, err := r.ApplyRemoteUpdate(env); err != nil {
			r.logger.Warn().Err(err).Msg("dropping sync envelope")
		}
	})
}

// OnSynced registers fn to run after the record was overwritten by Refetch or
// by a remote update. The returned function removes it.
func (r *Record[T]) OnSynced(fn func()) (cancel func()) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()

	id := r.obsNextID
	r.obsNextID++
	r.observers[id] = fn

	return func() {
		r.obsMu.Lock()
		defer r.obsMu.Unlock()
		delete(r.observers, id)
	}
}

func (r *Record[T]) notifySynced() {
	r.obsMu.Lock()
	fns := make([]func(), 0, len(r.observers))
	for _, fn := range r.observers {
		fns = append(fns, fn)
	}
	r.obsMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Address returns the address of the record.
func (r *Record[T]) Address() models.StorageAddress {
	return r.addr
}

// ID returns the address together with the current version.
func (r *Record[T]) ID() models.StorageObjectID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return models.StorageObjectID{StorageAddress: r.addr, Version: r.version}
}

// Version returns the version last issued by the store, empty if the object
// was never observed on the store.
func (r *Record[T]) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// Data returns the payload. Reference fields of T are shared with the record.
func (r *Record[T]) Data() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data
}

// Snapshot returns payload and version read together.
func (r *Record[T]) Snapshot() (T, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data, r.version
}

// SetData replaces the payload. Call Write to persist it.
func (r *Record[T]) SetData(data T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = data
	r.generation++
}

// Update mutates the payload in place under the record lock. fn must not call
// other methods of the record.
func (r *Record[T]) Update(fn func(data *T)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.data)
	r.generation++
}

// SyncOnWrite reports whether writes are broadcast to the match.
func (r *Record[T]) SyncOnWrite() bool {
	return r.syncOnWrite
}

func decode[T any](value string) (T, error) {
	var data T
	if err := json.Unmarshal([]byte(value), &data); err != nil {
		return data, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}
	return data, nil
}

func formatAddress(addr models.StorageAddress) string {
	return addr.Collection + "/" + addr.Key + "/" + addr.UserID
}
