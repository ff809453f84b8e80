// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// OpCode tags a match data message with its kind.
type OpCode int64

// Reserved op codes. Every message kind of the system must use a distinct value.
const (
	// OpCodeSyncStorage carries a [StorageSyncData] envelope.
	OpCodeSyncStorage OpCode = 1
)

// UserPresence describes a single user session connected to a match.
type UserPresence struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Username  string `json:"username"`
}

// Match describes a realtime match the client created or joined.
type Match struct {
	MatchID   string         `json:"match_id"`
	Size      int            `json:"size"`
	Presences []UserPresence `json:"presences"`
	// Self is the presence of the receiving session.
	Self UserPresence `json:"self"`
}

// MatchState is a data message received from a match.
type MatchState struct {
	MatchID  string       `json:"match_id"`
	OpCode   OpCode       `json:"op_code"`
	State    []byte       `json:"data"`
	Presence UserPresence `json:"presence"`
}

// MatchPresenceEvent reports users joining or leaving a match.
type MatchPresenceEvent struct {
	MatchID string         `json:"match_id"`
	Joins   []UserPresence `json:"joins,omitempty"`
	Leaves  []UserPresence `json:"leaves,omitempty"`
}
