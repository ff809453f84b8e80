package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/internal/utils"
	"github.com/MKhiriev/go-net-storage/models"
)

// authenticateCustom signs a user in with a custom id. With ?create=true a
// missing account is created on the fly.
func (h *Handler) authenticateCustom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	create := false
	if raw := r.URL.Query().Get("create"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			log.Err(err).Str("create", raw).Msg("invalid create parameter")
			http.Error(w, "invalid create parameter", http.StatusBadRequest)
			return
		}
		create = parsed
	}

	var req models.AuthenticateCustomRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, created, err := h.services.AuthService.AuthenticateCustom(ctx, req, create)
	if err != nil {
		writeError(w, r, err, "custom authentication failed")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		writeError(w, r, err, "creation of token failed")
		return
	}

	log.Debug().Str("user_id", user.ID).Bool("created", created).Msg("user authenticated")
	utils.WriteJSON(w, models.Session{Token: token.SignedString, Created: created}, http.StatusOK)
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	account, err := h.services.AccountService.GetAccount(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "get account failed")
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req models.UpdateAccountRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AccountService.UpdateAccount(r.Context(), userID, req); err != nil {
		writeError(w, r, err, "update account failed")
		return
	}

	if req.Username != "" {
		previous, _ := utils.GetUsernameFromContext(r.Context())
		logger.FromRequest(r).Info().Str("user_id", userID).Str("from", previous).Str("to", req.Username).Msg("username changed")
	}

	w.WriteHeader(http.StatusOK)
}

// getUsers looks users up by the repeated ids and usernames query parameters.
func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	users, err := h.services.AccountService.GetUsers(r.Context(), query["ids"], query["usernames"])
	if err != nil {
		writeError(w, r, err, "get users failed")
		return
	}
	if users == nil {
		users = []models.User{}
	}

	utils.WriteJSON(w, models.Users{Users: users}, http.StatusOK)
}
