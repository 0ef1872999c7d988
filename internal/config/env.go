package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvHome     = "SOMNIFLOW_HOME"
	EnvRPC      = "SOMNIFLOW_RPC"
	EnvChainID  = "SOMNIFLOW_CHAIN_ID"
	EnvExplorer = "SOMNIFLOW_EXPLORER"
	EnvLogLevel = "SOMNIFLOW_LOG_LEVEL"
)

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvRPC); v != "" {
		cfg.Chain.RPC = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvChainID); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			cfg.Chain.ID = id
		}
	}

	if v := os.Getenv(EnvExplorer); v != "" {
		cfg.Chain.Explorer = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}
