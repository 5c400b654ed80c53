// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the authsvc server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory
//     credential store; durability across restarts is then absent.
//   - SessionTTL: lifetime of issued sessions; 0 means sessions never
//     expire (not the default).
//   - SessionSweepInterval: how often expired/revoked sessions are swept.
//   - SessionTokenSize: random bytes per session token (hex-encoded on the
//     wire). 32 bytes = 256 bits of entropy.
//   - HashIterations: PBKDF2-SHA256 iteration count. Tune upward as
//     hardware allows; never below the default in production.
//   - SaltSize: random bytes per password salt.
type Config struct {
	EndpointAddrGRPC     string
	DatabaseDSN          string
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
	SessionTokenSize     int
	HashIterations       int
	SaltSize             int
}

// LoadDefaults populates Config with the documented defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SessionTTL = 30 * time.Minute
	c.SessionSweepInterval = 1 * time.Minute
	c.SessionTokenSize = 32
	c.HashIterations = 100_000
	c.SaltSize = 16
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
