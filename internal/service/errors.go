package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong custom id")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrPermissionDenied = errors.New("permission denied")

	ErrMatchNotFound   = errors.New("match not found")
	ErrNotInMatch      = errors.New("session is not in the match")
	ErrSessionNotFound = errors.New("realtime session not found")
	ErrSessionExists   = errors.New("realtime session already registered")
)
