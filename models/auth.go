// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AuthData holds the credentials used to open a session. It should be
// discarded once the session has been authenticated.
type AuthData struct {
	Username string
	Password string
}

// AuthenticateCustomRequest is the body of a custom authentication request.
// ID is the secret custom identifier of the account.
type AuthenticateCustomRequest struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
}

// Session is the result of a successful authentication.
type Session struct {
	Token string `json:"token"`
	// Created is true when the account was created by this request.
	Created bool `json:"created"`
}
