package adapter

import "errors"

// REST errors mapped from HTTP status codes by mapHTTPError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("version conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
)

// Realtime socket errors.
var (
	ErrSocketNotConnected = errors.New("socket is not connected")
	ErrSocketConnected    = errors.New("socket is already connected")
	ErrSocketClosed       = errors.New("socket closed before a response arrived")
	ErrSocketRequest      = errors.New("socket request rejected")
	ErrUnexpectedResponse = errors.New("unexpected socket response")
)
