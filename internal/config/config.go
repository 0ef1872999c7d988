// Package config provides configuration management for SomniFlow.
package config

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/somniflow/somniflow/internal/provider"
	"github.com/somniflow/somniflow/internal/token"
)

// Config represents the application configuration.
type Config struct {
	Version   int             `yaml:"version"`
	Home      string          `yaml:"home"`
	Chain     ChainConfig     `yaml:"chain"`
	Contracts ContractsConfig `yaml:"contracts"`
	Tokens    []TokenConfig   `yaml:"tokens"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ChainConfig defines the product's required network.
type ChainConfig struct {
	ID           int64          `yaml:"id"`
	Name         string         `yaml:"name"`
	RPC          string         `yaml:"rpc"`
	FallbackRPCs []string       `yaml:"fallback_rpcs,omitempty"`
	Explorer     string         `yaml:"explorer"`
	Native       CurrencyConfig `yaml:"native"`
}

// CurrencyConfig describes the chain's native currency.
type CurrencyConfig struct {
	Name     string `yaml:"name"`
	Symbol   string `yaml:"symbol"`
	Decimals int    `yaml:"decimals"`
}

// ContractsConfig holds the product contract addresses.
type ContractsConfig struct {
	Streaming   string `yaml:"streaming"`
	Marketplace string `yaml:"marketplace"`
	Collection  string `yaml:"collection"`
}

// TokenConfig defines an ERC20 token available to the product.
type TokenConfig struct {
	Symbol   string `yaml:"symbol"`
	Address  string `yaml:"address"`
	Decimals int    `yaml:"decimals"`
	Name     string `yaml:"name"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file, layered over defaults.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// GetHome returns the somniflow home directory path.
func (c *Config) GetHome() string {
	return c.Home
}

// GetRPC returns the chain RPC URL.
func (c *Config) GetRPC() string {
	return c.Chain.RPC
}

// RequiredChainID returns the product's required chain id.
func (c *Config) RequiredChainID() *big.Int {
	return big.NewInt(c.Chain.ID)
}

// ExplorerTxURL returns the block explorer URL for a transaction hash.
func (c *Config) ExplorerTxURL(hash string) string {
	return fmt.Sprintf("%s/tx/%s", c.Chain.Explorer, hash)
}

// TokenInfos converts the configured token table into registry entries,
// with the native currency included as a Native entry.
func (c *Config) TokenInfos() []token.Info {
	infos := make([]token.Info, 0, len(c.Tokens)+1)
	infos = append(infos, token.Info{
		Symbol:   c.Chain.Native.Symbol,
		Decimals: c.Chain.Native.Decimals,
		Name:     c.Chain.Native.Name,
		Native:   true,
	})
	for _, t := range c.Tokens {
		infos = append(infos, token.Info{
			Symbol:   t.Symbol,
			Address:  t.Address,
			Decimals: t.Decimals,
			Name:     t.Name,
		})
	}
	return infos
}

// AddChainParams builds the wallet_addEthereumChain payload for the required
// chain, used when the wallet does not know the network yet.
func (c *Config) AddChainParams() provider.AddChainParams {
	return provider.AddChainParams{
		ChainID:           provider.HexChainID(c.RequiredChainID()),
		ChainName:         c.Chain.Name,
		RPCURLs:           append([]string{c.Chain.RPC}, c.Chain.FallbackRPCs...),
		BlockExplorerURLs: []string{c.Chain.Explorer},
		NativeCurrency: provider.NativeCurrency{
			Name:     c.Chain.Native.Name,
			Symbol:   c.Chain.Native.Symbol,
			Decimals: c.Chain.Native.Decimals,
		},
	}
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path.
func (c *Config) GetLoggingFile() string {
	return c.Logging.File
}

// DefaultHome returns the default somniflow home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".somniflow"
	}
	return filepath.Join(home, ".somniflow")
}
