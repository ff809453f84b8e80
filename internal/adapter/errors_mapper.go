package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-net-storage/models"
	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusBadGateway:          ErrBadGateway,
	http.StatusInternalServerError: ErrInternalServerError,
}

// socketErrors mirrors statusErrors for error envelopes pushed over the socket.
var socketErrors = map[int]error{
	models.SocketErrorBadInput:      ErrBadRequest,
	models.SocketErrorMatchNotFound: ErrNotFound,
	models.SocketErrorMatchJoin:     ErrConflict,
	models.SocketErrorInternal:      ErrInternalServerError,
}

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if sentinel, ok := statusErrors[code]; ok {
		return fmt.Errorf("%w: %s", sentinel, body)
	}

	if body == "" {
		body = http.StatusText(code)
	}
	return fmt.Errorf("http %d: %s", code, body)
}

// mapSocketError keeps the server's error envelope reachable through errors.As
// and adds the matching REST sentinel when the code is known.
func mapSocketError(socketErr *models.SocketError) error {
	if sentinel, ok := socketErrors[socketErr.Code]; ok {
		return fmt.Errorf("%w: %w: %w", ErrSocketRequest, sentinel, socketErr)
	}
	return fmt.Errorf("%w: %w", ErrSocketRequest, socketErr)
}
