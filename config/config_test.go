package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")

	cfg := LoadOrCreate(path)
	require.Equal(t, DefaultConfig(), cfg)

	// second load reads the file written by the first
	cfg.Contracts.Token = "0x0000000000000000000000000000000000000001"
	require.NoError(t, Save(path, cfg))
	require.Equal(t, cfg, Load(path))
}

func TestLoadMissingFile(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Empty(t, cfg.RPCURLs)
	require.Equal(t, SepoliaChainID, cfg.ExpectedChainID())
}

func TestActiveRPC(t *testing.T) {
	cfg := Config{RPCURLs: []RPCUrl{
		{Name: "a", URL: "http://a"},
		{Name: "b", URL: "http://b", Active: true},
	}}
	require.Equal(t, "http://b", cfg.ActiveRPC())
	require.Equal(t, "", Config{}.ActiveRPC())
}

func TestDAppsUsesConfiguredAddresses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Contracts.DAO = "0x00000000000000000000000000000000000000aa"
	apps := DApps(cfg)
	require.Len(t, apps, 5)
	require.Equal(t, PageDAO, apps[4].Page)
	require.Equal(t, cfg.Contracts.DAO, apps[4].Address)
	require.Equal(t, "Sepolia", apps[0].Network)
}
