package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-net-storage/internal/config"
	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/internal/store"
	"github.com/MKhiriev/go-net-storage/internal/utils"
	"github.com/MKhiriev/go-net-storage/models"
)

const (
	minCustomIDLength = 6
	// bcrypt ignores everything past 72 bytes
	maxCustomIDLength = 72
	maxUsernameLength = 128
)

// authService is the concrete implementation of AuthService.
// Custom ids are stored as bcrypt hashes, sessions are HS256 JWTs.
type authService struct {
	userRepository store.UserRepository

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	hashCost int
	newID    func() string
	now      func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with token parameters from cfg.
func NewAuthService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		hashCost:       bcrypt.DefaultCost,
		newID:          utils.NewID,
		now:            func() time.Time { return time.Now().UTC() },
		logger:         logger,
	}
}

// AuthenticateCustom looks the account up by username and verifies the
// custom id against its stored hash.
//
// Returns:
//   - ErrInvalidDataProvided if the custom id or username is malformed.
//   - ErrWrongPassword if the custom id does not match.
//   - store.ErrNoUserWasFound if the account is missing and create is false.
//   - store.ErrUsernameAlreadyExists if a concurrent request created the
//     account first.
func (a *authService) AuthenticateCustom(ctx context.Context, req models.AuthenticateCustomRequest, create bool) (models.User, bool, error) {
	log := logger.FromContext(ctx)

	if err := validateCustomAuth(req); err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("invalid custom auth request")
		return models.User{}, false, err
	}

	user, err := a.userRepository.FindUserByUsername(ctx, req.Username)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(user.CustomIDHash), []byte(req.ID)) != nil {
			log.Warn().Str("user_id", user.ID).Msg("wrong custom id")
			return models.User{}, false, ErrWrongPassword
		}
		return user, false, nil

	case errors.Is(err, store.ErrNoUserWasFound):
		if !create {
			return models.User{}, false, fmt.Errorf("user search by username failed: %w", err)
		}

	default:
		log.Err(err).Str("username", req.Username).Msg("user search by username failed")
		return models.User{}, false, fmt.Errorf("user search by username failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.ID), a.hashCost)
	if err != nil {
		return models.User{}, false, fmt.Errorf("hashing custom id: %w", err)
	}

	created, err := a.userRepository.CreateUser(ctx, models.User{
		ID:           a.newID(),
		Username:     req.Username,
		CustomIDHash: string(hash),
		CreateTime:   a.now(),
	})
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, false, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return created, true, nil
}

// CreateToken issues a signed JWT carrying the user id and username.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, user.Username, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT. Every validation failure is reported as
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func validateCustomAuth(req models.AuthenticateCustomRequest) error {
	if len(req.ID) < minCustomIDLength || len(req.ID) > maxCustomIDLength {
		return fmt.Errorf("%w: custom id must be %d-%d bytes", ErrInvalidDataProvided, minCustomIDLength, maxCustomIDLength)
	}
	if req.Username == "" || len(req.Username) > maxUsernameLength {
		return fmt.Errorf("%w: username must be 1-%d bytes", ErrInvalidDataProvided, maxUsernameLength)
	}

	return nil
}
