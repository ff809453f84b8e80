package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/internal/service"
	"github.com/MKhiriev/go-net-storage/internal/store"
	"github.com/MKhiriev/go-net-storage/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrVersionIsNotSpecified:   http.StatusBadRequest,
	service.ErrPermissionDenied:        http.StatusForbidden,

	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrVersionConflict:       http.StatusConflict,
	store.ErrObjectWriteForbidden:  http.StatusForbidden,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with the status it maps to. Internal
// details are only exposed for client errors.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg(msg)
		http.Error(w, http.StatusText(status), status)
		return
	}

	log.Warn().Err(err).Int("status", status).Msg(msg)
	http.Error(w, err.Error(), status)
}

var socketErrorCodes = map[error]int{
	service.ErrInvalidDataProvided: models.SocketErrorBadInput,
	service.ErrMatchNotFound:       models.SocketErrorMatchNotFound,
	service.ErrNotInMatch:          models.SocketErrorMatchJoin,
	service.ErrSessionNotFound:     models.SocketErrorMatchJoin,
}

func socketErrorFrom(err error) *models.SocketError {
	for target, code := range socketErrorCodes {
		if errors.Is(err, target) {
			return &models.SocketError{Code: code, Message: err.Error()}
		}
	}
	return &models.SocketError{Code: models.SocketErrorInternal, Message: "internal error"}
}
