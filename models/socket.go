// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SocketEnvelope is a single frame of the realtime protocol. Exactly one of
// the message fields is set. Requests carry a CID which the server echoes on
// the matching response; server pushed messages have no CID.
type SocketEnvelope struct {
	CID string `json:"cid,omitempty"`

	MatchCreate   *MatchCreate   `json:"match_create,omitempty"`
	MatchJoin     *MatchJoin     `json:"match_join,omitempty"`
	MatchLeave    *MatchLeave    `json:"match_leave,omitempty"`
	MatchDataSend *MatchDataSend `json:"match_data_send,omitempty"`

	Match              *Match              `json:"match,omitempty"`
	MatchData          *MatchState         `json:"match_data,omitempty"`
	MatchPresenceEvent *MatchPresenceEvent `json:"match_presence_event,omitempty"`
	Error              *SocketError        `json:"error,omitempty"`
}

// MatchCreate asks the server for a new match with the caller as its first presence.
type MatchCreate struct{}

// MatchJoin asks the server to add the caller to an existing match.
type MatchJoin struct {
	MatchID string `json:"match_id"`
}

// MatchLeave removes the caller from a match.
type MatchLeave struct {
	MatchID string `json:"match_id"`
}

// MatchDataSend relays data to every other presence of a match.
type MatchDataSend struct {
	MatchID string `json:"match_id"`
	OpCode  OpCode `json:"op_code"`
	Data    []byte `json:"data"`
}

// Socket error codes.
const (
	SocketErrorBadInput      = 3
	SocketErrorMatchNotFound = 4
	SocketErrorMatchJoin     = 5
	SocketErrorInternal      = 13
)

// SocketError is returned in place of a response when a request fails.
type SocketError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *SocketError) Error() string {
	return e.Message
}
