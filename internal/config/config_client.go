package config

import (
	"fmt"
	"time"
)

const (
	defaultClientRequestTimeout = 10 * time.Second
	defaultRefetchInterval      = 5 * time.Minute
	defaultCollection           = "profiles"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the server base URL. The websocket URL is derived from it.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientIdentity holds the custom authentication credentials and the demo
// record settings.
type ClientIdentity struct {
	Username   string
	Password   string
	MatchID    string
	Collection string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// RefetchInterval defines how often registered records are re-read.
	RefetchInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// LogPath is the client log file. Empty logs to stderr.
	LogPath string
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Client contains credentials and demo record settings.
	Client ClientIdentity
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, fills defaults and validates the resulting
// [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		LogPath: cfg.App.LogPath,
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Client: ClientIdentity{
			Username:   cfg.Client.Username,
			Password:   cfg.Client.Password,
			MatchID:    cfg.Client.MatchID,
			Collection: cfg.Client.Collection,
		},
		Workers: ClientWorkers{RefetchInterval: cfg.Workers.RefetchInterval},
	}

	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = defaultClientRequestTimeout
	}
	if clientCfg.Workers.RefetchInterval == 0 {
		clientCfg.Workers.RefetchInterval = defaultRefetchInterval
	}
	if clientCfg.Client.Collection == "" {
		clientCfg.Client.Collection = defaultCollection
	}

	return clientCfg
}
