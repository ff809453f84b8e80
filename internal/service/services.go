package service

import (
	"fmt"

	"github.com/MKhiriev/go-net-storage/internal/config"
	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/internal/store"
	"github.com/MKhiriev/go-net-storage/models"
)

type Services struct {
	AuthService    AuthService
	AccountService AccountService
	StorageService StorageService
	MatchService   MatchService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	logger.Info().Msg("creating new services...")

	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.Auth, logger),
		AccountService: NewAccountService(storages.UserRepository, logger),
		StorageService: NewStorageService(storages.StorageRepository, logger),
		MatchService:   NewMatchHub(logger),
		AppInfoService: appInfo,
	}, nil
}
