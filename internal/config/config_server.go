package config

import (
	"fmt"
	"time"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"

	defaultServerAddress = ":8080"
	defaultServerTimeout = 30 * time.Second
	defaultTokenDuration = 24 * time.Hour
	defaultTokenIssuer   = "net-storage"
	defaultStorageDriver = DriverSQLite
	defaultAppVersion    = "dev"
)

// ServerConfig is the reference server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	App     App
	Auth    Auth
	Storage Storage
	Server  Server
}

// GetServerConfig builds and validates the server config view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := newServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

func newServerConfig(cfg *StructuredConfig) *ServerConfig {
	serverCfg := &ServerConfig{
		App:     cfg.App,
		Auth:    cfg.Auth,
		Storage: cfg.Storage,
		Server:  cfg.Server,
	}

	if serverCfg.App.Version == "" {
		serverCfg.App.Version = defaultAppVersion
	}
	if serverCfg.Server.HTTPAddress == "" {
		serverCfg.Server.HTTPAddress = defaultServerAddress
	}
	if serverCfg.Server.RequestTimeout == 0 {
		serverCfg.Server.RequestTimeout = defaultServerTimeout
	}
	if serverCfg.Auth.TokenDuration == 0 {
		serverCfg.Auth.TokenDuration = defaultTokenDuration
	}
	if serverCfg.Auth.TokenIssuer == "" {
		serverCfg.Auth.TokenIssuer = defaultTokenIssuer
	}
	if serverCfg.Storage.DB.Driver == "" {
		serverCfg.Storage.DB.Driver = defaultStorageDriver
	}

	return serverCfg
}
