package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/internal/store"
	"github.com/MKhiriev/go-net-storage/models"
)

const (
	maxDisplayNameLength = 255
	maxUserLookup        = 100
)

type accountService struct {
	userRepository store.UserRepository

	logger *logger.Logger
}

func NewAccountService(userRepository store.UserRepository, logger *logger.Logger) AccountService {
	return &accountService{
		userRepository: userRepository,
		logger:         logger,
	}
}

func (s *accountService) GetAccount(ctx context.Context, userID string) (models.ApiAccount, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.ApiAccount{}, fmt.Errorf("get account: %w", err)
	}

	return models.ApiAccount{User: user}, nil
}

// UpdateAccount changes username and display name of userID. At least one of
// them must be set.
func (s *accountService) UpdateAccount(ctx context.Context, userID string, req models.UpdateAccountRequest) error {
	switch {
	case req.Username == "" && req.DisplayName == "":
		return fmt.Errorf("%w: nothing to update", ErrInvalidDataProvided)
	case len(req.Username) > maxUsernameLength:
		return fmt.Errorf("%w: username must be at most %d bytes", ErrInvalidDataProvided, maxUsernameLength)
	case len(req.DisplayName) > maxDisplayNameLength:
		return fmt.Errorf("%w: display name must be at most %d bytes", ErrInvalidDataProvided, maxDisplayNameLength)
	}

	user, err := s.userRepository.UpdateUser(ctx, userID, req)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Str("display_name", user.DisplayName).
		Msg("account updated")
	return nil
}

// GetUsers looks users up by id and by username. Unknown ids and usernames
// are skipped.
func (s *accountService) GetUsers(ctx context.Context, ids, usernames []string) ([]models.User, error) {
	if len(ids)+len(usernames) > maxUserLookup {
		return nil, fmt.Errorf("%w: at most %d users per lookup", ErrInvalidDataProvided, maxUserLookup)
	}

	users, err := s.userRepository.FindUsers(ctx, ids, usernames)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}

	return users, nil
}
