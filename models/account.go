// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is the public view of a user account.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	CreateTime  time.Time `json:"create_time"`

	// CustomIDHash is the bcrypt hash of the custom id the account
	// authenticates with. It never leaves the server.
	CustomIDHash string `json:"-"`
}

// TableName returns the name of the database table associated with the User model.
func (u User) TableName() string {
	return "users"
}

// ApiAccount is the account of the authenticated caller.
type ApiAccount struct {
	User User `json:"user"`
}

// Users is the response of a user lookup.
type Users struct {
	Users []User `json:"users"`
}

// UpdateAccountRequest changes the username or display name of the caller.
// Empty fields are left untouched.
type UpdateAccountRequest struct {
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Account is a principal known to the client: either the account of the
// local session or any other user fetched from the server.
type Account struct {
	DisplayName string
	Username    string
	UserID      string

	// Local is true for the account authenticated by the current session.
	Local bool
}

// NewAccount builds an Account from an API user.
func NewAccount(u User, local bool) Account {
	return Account{
		DisplayName: u.DisplayName,
		Username:    u.Username,
		UserID:      u.ID,
		Local:       local,
	}
}
