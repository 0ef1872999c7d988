package config

// DefaultRPCURL is the default Somnia Shannon testnet RPC endpoint.
const DefaultRPCURL = "https://dream-rpc.somnia.network"

// DefaultExplorerURL is the default Somnia Shannon block explorer.
const DefaultExplorerURL = "https://shannon-explorer.somnia.network"

// SomniaShannonChainID is the Somnia Shannon testnet chain id.
const SomniaShannonChainID = 50312

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.somniflow",
		Chain: ChainConfig{
			ID:       SomniaShannonChainID,
			Name:     "Somnia Shannon Testnet",
			RPC:      DefaultRPCURL,
			Explorer: DefaultExplorerURL,
			Native: CurrencyConfig{
				Name:     "Somnia Test Token",
				Symbol:   "STT",
				Decimals: 18,
			},
		},
		Contracts: ContractsConfig{
			Streaming:   "0x5A2b02f8C1D7E6a9c33F8d41B7a90E2D64C80F11",
			Marketplace: "0x9C41e6F02a7d85B3c0A7E9b64D12F5a8E3B60D27",
			Collection:  "0x2E73c9A450F8b1D06e52C3a98B47d0E61FA92C84",
		},
		Tokens: []TokenConfig{
			{
				Symbol:   "SUSD",
				Address:  "0x7F10bC52a9E640D3cE84b12A06f94E27D5B31A09",
				Decimals: 6,
				Name:     "Somnia USD",
			},
			{
				Symbol:   "WSTT",
				Address:  "0x4D88aE03F1b6C27e05942Bd16C09D6a3E821F7C5",
				Decimals: 18,
				Name:     "Wrapped STT",
			},
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.somniflow/somniflow.log",
		},
	}
}
