// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from environment
// variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix : prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Auth holds session token parameters of the reference server.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds the persistence settings of the reference server.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings of the reference server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the address of the server the client talks to.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Client holds credentials and demo record settings of the client.
	Client Client `envPrefix:"CLIENT_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application.
	// Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogPath is the file the client writes its logs to.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`
}

// Auth holds session token configuration.
type Auth struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a session token remains valid.
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Storage groups the configuration for the server storage backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver selects the database: "sqlite3" or "pgx".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the connection string, a file path for sqlite3 or a
	// postgres URL for pgx.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address the HTTP and websocket API listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration of a single REST request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the client side view of the server address.
type Adapter struct {
	// HTTPAddress is the base address of the server REST API; the realtime
	// socket is derived from it.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound REST request and socket round trip.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Client holds the settings of the demo client.
type Client struct {
	// Username and Password are the custom authentication credentials.
	// Env: CLIENT_USERNAME, CLIENT_PASSWORD
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`

	// MatchID joins an existing match; empty creates a new one.
	// Env: CLIENT_MATCH_ID
	MatchID string `env:"MATCH_ID"`

	// Collection is the storage collection of the demo record.
	// Env: CLIENT_COLLECTION
	Collection string `env:"COLLECTION"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// RefetchInterval is how often registered records are re-read from the server.
	// Env: WORKERS_REFETCH_INTERVAL
	RefetchInterval time.Duration `env:"REFETCH_INTERVAL"`
}

// GetStructuredConfig loads and merges the application configuration from all
// available sources. A field set by an earlier source is never replaced by a
// later one:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
