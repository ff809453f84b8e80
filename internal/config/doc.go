// Package config loads the settings of both binaries.
//
// Sources are merged with mergo in priority order: environment variables,
// then command-line flags, then the JSON file named by -c or CONFIG. A later
// source only fills fields the earlier ones left empty.
//
// The client reads [GetClientConfig] (adapter address, credentials, match,
// refetch interval). The backend reads [GetServerConfig] (listen address,
// token signing, database). Both are validated views over [StructuredConfig].
package config
