// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "mainnet", cfg.Network)
	assert.Equal(t, "bolt", cfg.Store)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "ARMarket", cfg.DomainName)
	assert.Equal(t, 1024, cfg.CacheSize)
	assert.Empty(t, cfg.LogFile)
	assert.True(t, strings.HasSuffix(cfg.DataDir, ".armarket"), cfg.DataDir)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "node", "config")
	want := Config{
		DataDir:    "/srv/armarket",
		ListenAddr: "127.0.0.1:9100",
		Network:    "devnet",
		Store:      "leveldb",
		LogLevel:   "debug",
		LogFile:    "/var/log/armarket.log",
		DomainName: "ARMarket Staging",
		CacheSize:  64,
	}
	require.NoError(t, SaveConfig(path, want))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# ARMarket Configuration\n"))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
# staging node
network = testnet

  Store=memory
cachesize = 16
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "testnet", cfg.Network)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, ":8080", cfg.ListenAddr, "unset keys keep their default")
	assert.Equal(t, "ARMarket", cfg.DomainName)
}

func TestLoadConfigValues(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, c Config)
	}{
		{
			name:  "value containing equals",
			body:  "domainname = a=b\n",
			check: func(t *testing.T, c Config) { assert.Equal(t, "a=b", c.DomainName) },
		},
		{
			name:  "empty value",
			body:  "logfile =\n",
			check: func(t *testing.T, c Config) { assert.Empty(t, c.LogFile) },
		},
		{
			name:  "unknown key ignored",
			body:  "relay = on\nloglevel = warn\n",
			check: func(t *testing.T, c Config) { assert.Equal(t, "warn", c.LogLevel) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeFile(t, tt.body))
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrConfigNotFound)

	for _, body := range []string{
		"network\n",
		" = mainnet\n",
		"cachesize = lots\n",
	} {
		_, err := LoadConfig(writeFile(t, body))
		assert.ErrorIs(t, err, ErrInvalidConfigLine, body)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr error
	}{
		{"empty datadir", func(c *Config) { c.DataDir = "" }, ErrEmptyDataDir},
		{"unknown network", func(c *Config) { c.Network = "regtest" }, ErrInvalidNetwork},
		{"empty network", func(c *Config) { c.Network = "" }, ErrInvalidNetwork},
		{"unknown store", func(c *Config) { c.Store = "sqlite" }, ErrInvalidStore},
		{"listen without port", func(c *Config) { c.ListenAddr = "localhost" }, ErrInvalidListenAddr},
		{"empty listen", func(c *Config) { c.ListenAddr = "" }, ErrInvalidListenAddr},
		{"unknown level", func(c *Config) { c.LogLevel = "verbose" }, ErrInvalidLogLevel},
		{"blank domain", func(c *Config) { c.DomainName = "  " }, ErrEmptyDomainName},
		{"negative cache", func(c *Config) { c.CacheSize = -1 }, ErrInvalidCacheSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, ValidateConfig(cfg), tt.wantErr)
		})
	}
}

func TestValidateConfigAccepts(t *testing.T) {
	variants := []func(c *Config){
		func(c *Config) { c.Network = "testnet" },
		func(c *Config) { c.Network = "devnet" },
		func(c *Config) { c.Store = "memory" },
		func(c *Config) { c.LogLevel = "DEBUG" },
		func(c *Config) { c.ListenAddr = "[::1]:8080" },
		func(c *Config) { c.ListenAddr = "0.0.0.0:0" },
		func(c *Config) { c.CacheSize = 0 },
	}
	for i, modify := range variants {
		cfg := DefaultConfig()
		modify(&cfg)
		assert.NoError(t, ValidateConfig(cfg), "variant %d", i)
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/user/.armarket", "config"), ConfigPath("/home/user/.armarket"))
	assert.Equal(t, filepath.Join("/home/user/.armarket", "config"), ConfigPath("/home/user/.armarket/"))
}
