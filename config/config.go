package config

import (
	"encoding/json"
	"os"
)

// SepoliaChainID is the network every page expects unless overridden.
const SepoliaChainID uint64 = 11155111

// Config represents the application configuration
type Config struct {
	RPCURLs   []RPCUrl  `json:"rpc_urls"`
	ChainID   uint64    `json:"chain_id"`
	Contracts Contracts `json:"contracts"`
	Keystore  string    `json:"keystore,omitempty"`
	Explorer  string    `json:"explorer,omitempty"`
	Logger    bool      `json:"logger"`
}

// RPCUrl represents an RPC endpoint
type RPCUrl struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// Contracts holds the deployed address of every contract the pages talk to.
// Empty strings mean "not deployed yet".
type Contracts struct {
	Whitelist string `json:"whitelist"`
	NFT       string `json:"nft"`
	Token     string `json:"token"`
	Exchange  string `json:"exchange"`
	DAO       string `json:"dao"`
}

// ActiveRPC returns the URL of the endpoint marked active, or "".
func (c Config) ActiveRPC() string {
	for _, r := range c.RPCURLs {
		if r.Active {
			return r.URL
		}
	}
	return ""
}

// ExpectedChainID returns the configured chain id, defaulting to Sepolia.
func (c Config) ExpectedChainID() uint64 {
	if c.ChainID == 0 {
		return SepoliaChainID
	}
	return c.ChainID
}

// Load reads the config from the specified path
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		RPCURLs: []RPCUrl{
			{
				Name:   "Public Sepolia",
				URL:    "https://ethereum-sepolia-rpc.publicnode.com",
				Active: true,
			},
		},
		ChainID: SepoliaChainID,
		Contracts: Contracts{
			Whitelist: "0x532C7f4127c10BeD66D80024ba3725efcC738d0e",
			NFT:       "0xD44B2e199611812e58dc8e6ccd3189298E8Bc3A8",
		},
		Explorer: "https://sepolia.etherscan.io",
		Logger:   false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		cfg := DefaultConfig()
		_ = Save(path, cfg)
		return cfg
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Invalid config, return default
		return DefaultConfig()
	}

	return cfg
}
