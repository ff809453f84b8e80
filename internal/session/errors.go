package session

import "errors"

var (
	ErrNotConnected     = errors.New("session is not connected")
	ErrAlreadyConnected = errors.New("session is already connected")
	ErrInvalidAuthData  = errors.New("auth data requires a password")
	ErrNotInGroup       = errors.New("session is not in a match")
	ErrAlreadyInGroup   = errors.New("session is already in a match")
	ErrHandlerAttached  = errors.New("match state handler already attached")
	ErrAccountNotFound  = errors.New("account not found")
	ErrNotLocalAccount  = errors.New("account is not authenticated by this session")
)
