// Package config provides configuration management for RecallKit.
//
// Configuration is resolved in three layers, later layers winning:
//
//   - Built-in defaults
//   - The YAML config file ($RECALLKIT_CONFIG_PATH/recallkit.yml,
//     /etc/recallkit/recallkit.yml by default)
//   - RECALLKIT_* environment variables
//
// The source of every attribute is tracked so "recallkit configuration show"
// can explain where each value came from.
//
// # Key Configuration Options
//
//   - RECALLKIT_DATA_DIR: Directory holding per-profile progress files
//   - RECALLKIT_BUILD_DIR: Directory holding converted topic sets
//   - RECALLKIT_API_TOKEN: Bearer token required for mutating requests
//   - RECALLKIT_API_BASE: API base URL injected into the study page
//   - RECALLKIT_CORS_ORIGINS: Comma-separated allowed origins
//   - RECALLKIT_DATABASE_URL: Store progress in PostgreSQL instead of files
package config
