// Package service implements the business logic of the reference server:
// custom authentication and session tokens, accounts, permission checked
// storage objects and the realtime match hub.
package service

import (
	"context"

	"github.com/MKhiriev/go-net-storage/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type AuthService interface {
	// AuthenticateCustom signs in with a custom id, creating the account on
	// first use when create is set. It reports whether an account was created.
	AuthenticateCustom(ctx context.Context, req models.AuthenticateCustomRequest, create bool) (models.User, bool, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AccountService interface {
	GetAccount(ctx context.Context, userID string) (models.ApiAccount, error)
	UpdateAccount(ctx context.Context, userID string, req models.UpdateAccountRequest) error
	GetUsers(ctx context.Context, ids, usernames []string) ([]models.User, error)
}

type StorageService interface {
	// ReadObjects returns the objects among ids that exist and callerID may read.
	ReadObjects(ctx context.Context, callerID string, ids []models.StorageObjectID) ([]models.StorageObject, error)
	// WriteObjects stores objects owned by callerID.
	WriteObjects(ctx context.Context, callerID string, objects []models.WriteStorageObject) ([]models.StorageObjectAck, error)
}

// MatchService relays realtime data between the sessions of a match.
//
// send is called outside of any hub lock; it must be safe for concurrent use.
type MatchService interface {
	Connect(presence models.UserPresence, send func(models.SocketEnvelope) error) error
	Disconnect(sessionID string)

	CreateMatch(ctx context.Context, sessionID string) (models.Match, error)
	JoinMatch(ctx context.Context, sessionID, matchID string) (models.Match, error)
	LeaveMatch(ctx context.Context, sessionID, matchID string) error
	SendMatchData(ctx context.Context, sessionID string, data models.MatchDataSend) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
