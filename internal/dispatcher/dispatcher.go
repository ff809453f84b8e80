// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package dispatcher routes inbound match data to local subscribers.
//
// Storage sync envelopes are decoded once and delivered to the records
// registered for the envelope address. Other op codes are delivered to the
// handlers registered for them; op codes nobody handles are ignored.
package dispatcher

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/models"
)

var (
	ErrAlreadyAttached = errors.New("dispatcher already attached to a source")
	ErrReservedOpCode  = errors.New("op code is reserved for storage sync")
)

// Source is the inbound path of match data, typically a session.
type Source interface {
	OnMatchState(fn func(models.MatchState)) error
}

// Dispatcher fans inbound match data out to registered subscribers.
// Registrations do not own their subscribers.
type Dispatcher struct {
	mu       sync.RWMutex
	nextID   uint64
	records  map[models.StorageAddress]map[uint64]func(models.StorageSyncData)
	handlers map[models.OpCode]map[uint64]func(models.MatchState)
	attached bool

	logger *logger.Logger
}

// New creates a dispatcher with no subscribers.
func New(logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		records:  make(map[models.StorageAddress]map[uint64]func(models.StorageSyncData)),
		handlers: make(map[models.OpCode]map[uint64]func(models.MatchState)),
		logger:   logger.WithComponent("dispatcher"),
	}
}

// Attach subscribes the dispatcher to src. A dispatcher attaches once.
func (d *Dispatcher) Attach(src Source) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.attached {
		return ErrAlreadyAttached
	}
	if err := src.OnMatchState(d.OnGroupMessage); err != nil {
		return err
	}
	d.attached = true
	return nil
}

// Register subscribes fn to sync envelopes addressed to addr.
func (d *Dispatcher) Register(addr models.StorageAddress, fn func(models.StorageSyncData)) (unregister func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++
	if d.records[addr] == nil {
		d.records[addr] = make(map[uint64]func(models.StorageSyncData))
	}
	d.records[addr][id] = fn

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		delete(d.records[addr], id)
		if len(d.records[addr]) == 0 {
			delete(d.records, addr)
		}
	}
}

// Handle subscribes fn to match data carrying opCode.
func (d *Dispatcher) Handle(opCode models.OpCode, fn func(models.MatchState)) (unregister func(), err error) {
	if opCode == models.OpCodeSyncStorage {
		return nil, ErrReservedOpCode
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++
	if d.handlers[opCode] == nil {
		d.handlers[opCode] = make(map[uint64]func(models.MatchState))
	}
	d.handlers[opCode][id] = fn

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		delete(d.handlers[opCode], id)
		if len(d.handlers[opCode]) == 0 {
			delete(d.handlers, opCode)
		}
	}, nil
}

// OnGroupMessage routes a single inbound message. Malformed sync envelopes
// are logged and dropped.
func (d *Dispatcher) OnGroupMessage(state models.MatchState) {
	if state.OpCode != models.OpCodeSyncStorage {
		d.deliverState(state)
		return
	}

	var env models.StorageSyncData
	if err := json.Unmarshal(state.State, &env); err != nil {
		d.logger.Warn().Err(err).
			Str("match_id", state.MatchID).
			Str("sender", state.Presence.UserID).
			Msg("dropping malformed sync envelope")
		return
	}

	d.mu.RLock()
	subs := make([]func(models.StorageSyncData), 0, len(d.records[env.ID.StorageAddress]))
	for _, fn := range d.records[env.ID.StorageAddress] {
		subs = append(subs, fn)
	}
	d.mu.RUnlock()

	if len(subs) == 0 {
		d.logger.Debug().
			Str("collection", env.ID.Collection).
			Str("key", env.ID.Key).
			Str("user_id", env.ID.UserID).
			Msg("no record registered for sync envelope")
		return
	}

	for _, fn := range subs {
		d.safeCall(func() { fn(env) })
	}
}

func (d *Dispatcher) deliverState(state models.MatchState) {
	d.mu.RLock()
	subs := make([]func(models.MatchState), 0, len(d.handlers[state.OpCode]))
	for _, fn := range d.handlers[state.OpCode] {
		subs = append(subs, fn)
	}
	d.mu.RUnlock()

	for _, fn := range subs {
		d.safeCall(func() { fn(state) })
	}
}

// safeCall keeps a panicking subscriber from stopping the socket reader.
func (d *Dispatcher) safeCall(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Interface("panic", r).Msg("match data subscriber panicked")
		}
	}()
	fn()
}
