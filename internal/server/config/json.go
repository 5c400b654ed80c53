package config

import (
	"encoding/json"
	"os"

	"github.com/dsmelov/authsvc/internal/flagx"
	"github.com/dsmelov/authsvc/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// Interval fields use timex.Duration, which accepts both string values such
// as "30m" and integer nanoseconds. After unmarshalling, fields are copied
// into the runtime Config.
type JsonConfig struct {
	EndpointAddrGRPC     string         `json:"endpoint_addr_grpc"`
	DatabaseDSN          string         `json:"database_dsn"`
	SessionTTL           timex.Duration `json:"session_ttl"`
	SessionSweepInterval timex.Duration `json:"session_sweep_interval"`
	SessionTokenSize     int            `json:"session_token_size"`
	HashIterations       int            `json:"hash_iterations"`
	SaltSize             int            `json:"salt_size"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics: a broken config file should
// stop the process before it starts serving.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrGRPC = c.EndpointAddrGRPC
	config.DatabaseDSN = c.DatabaseDSN
	config.SessionTTL = c.SessionTTL.Duration
	config.SessionSweepInterval = c.SessionSweepInterval.Duration
	config.SessionTokenSize = c.SessionTokenSize
	config.HashIterations = c.HashIterations
	config.SaltSize = c.SaltSize
}
