package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-net-storage/internal/config"
	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/internal/utils"
	"github.com/MKhiriev/go-net-storage/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger.WithComponent("server_adapter")}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// AuthenticateCustom implements [ServerAdapter]. It POSTs the custom id to
// POST /v2/account/authenticate/custom and stores the returned token.
func (h *httpServerAdapter) AuthenticateCustom(ctx context.Context, req models.AuthenticateCustomRequest, create bool) (models.Session, error) {
	var session models.Session

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("create", strconv.FormatBool(create)).
		SetBody(req).
		SetResult(&session).
		Post("/v2/account/authenticate/custom")
	if err != nil {
		return models.Session{}, fmt.Errorf("authenticate request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}
	if session.Token == "" {
		return models.Session{}, fmt.Errorf("authenticate: empty token in response")
	}

	h.SetToken(session.Token)
	h.logger.Debug().Bool("created", session.Created).Msg("authenticated")
	return session, nil
}

// GetAccount implements [ServerAdapter] via GET /v2/account.
func (h *httpServerAdapter) GetAccount(ctx context.Context) (models.ApiAccount, error) {
	var account models.ApiAccount

	resp, err := h.authedRequest(ctx).
		SetResult(&account).
		Get("/v2/account")
	if err != nil {
		return models.ApiAccount{}, fmt.Errorf("get account request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ApiAccount{}, err
	}

	return account, nil
}

// UpdateAccount implements [ServerAdapter] via PUT /v2/account.
func (h *httpServerAdapter) UpdateAccount(ctx context.Context, req models.UpdateAccountRequest) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Put("/v2/account")
	if err != nil {
		return fmt.Errorf("update account request: %w", err)
	}

	return mapHTTPError(resp)
}

// GetUsers implements [ServerAdapter] via GET /v2/user. Every id and
// username becomes a repeated query parameter.
func (h *httpServerAdapter) GetUsers(ctx context.Context, ids, usernames []string) ([]models.User, error) {
	if len(ids) == 0 && len(usernames) == 0 {
		return nil, nil
	}

	query := url.Values{}
	for _, id := range ids {
		query.Add("ids", id)
	}
	for _, username := range usernames {
		query.Add("usernames", username)
	}

	var users models.Users
	resp, err := h.authedRequest(ctx).
		SetQueryParamsFromValues(query).
		SetResult(&users).
		Get("/v2/user")
	if err != nil {
		return nil, fmt.Errorf("get users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return users.Users, nil
}

// ReadStorageObjects implements [ServerAdapter] via POST /v2/storage.
func (h *httpServerAdapter) ReadStorageObjects(ctx context.Context, ids []models.StorageObjectID) ([]models.StorageObject, error) {
	var objects models.StorageObjects

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ReadStorageObjectsRequest{ObjectIDs: ids}).
		SetResult(&objects).
		Post("/v2/storage")
	if err != nil {
		return nil, fmt.Errorf("read storage request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return objects.Objects, nil
}

// WriteStorageObjects implements [ServerAdapter] via PUT /v2/storage.
func (h *httpServerAdapter) WriteStorageObjects(ctx context.Context, objects []models.WriteStorageObject) ([]models.StorageObjectAck, error) {
	var acks models.StorageObjectAcks

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.WriteStorageObjectsRequest{Objects: objects}).
		SetResult(&acks).
		Put("/v2/storage")
	if err != nil {
		return nil, fmt.Errorf("write storage request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	if len(acks.Acks) != len(objects) {
		return nil, fmt.Errorf("write storage: got %d acks for %d objects", len(acks.Acks), len(objects))
	}

	return acks.Acks, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
