package market

import (
	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/ledger"
	"github.com/bitfsorg/armarket-go/revshare"
)

// Config returns the configuration as of the frame's transaction.
func (m *Market) Config(tx ledger.Tx) (Config, error) {
	var cfg Config
	ok, err := ledger.GetGob(tx, bucketConfig, keyConfig, &cfg)
	if err != nil {
		return cfg, err
	}
	if !ok {
		cfg = Config{PlatformCuts: revshare.DefaultPlatformCuts()}
	}
	return cfg, nil
}

// Configure binds the media registry allowed to call media-only operations.
func (m *Market) Configure(f *ledger.Frame, media account.Address) error {
	return m.update(f, "media", func(c *Config) { c.Media = media })
}

// ConfigurePlatformAddress sets the recipient of the platform share.
func (m *Market) ConfigurePlatformAddress(f *ledger.Frame, addr account.Address) error {
	return m.update(f, "platform", func(c *Config) { c.Platform = addr })
}

// ConfigurePoolAddress sets the recipient of the pool share.
func (m *Market) ConfigurePoolAddress(f *ledger.Frame, addr account.Address) error {
	return m.update(f, "pool", func(c *Config) { c.Pool = addr })
}

// ConfigureMintAddress sets the relayer allowed to submit edition mints.
func (m *Market) ConfigureMintAddress(f *ledger.Frame, addr account.Address) error {
	return m.update(f, "mint", func(c *Config) { c.Mint = addr })
}

// ConfigurePlatformCuts replaces the first- and further-sale cuts. It
// applies from the next mint or settlement.
func (m *Market) ConfigurePlatformCuts(f *ledger.Frame, cuts revshare.PlatformCuts) error {
	return m.update(f, "platform_cuts", func(c *Config) { c.PlatformCuts = cuts })
}

// ConfigureEnforcePlatformCuts toggles share enforcement.
func (m *Market) ConfigureEnforcePlatformCuts(f *ledger.Frame, enforce bool) error {
	return m.update(f, "enforce_platform_cuts", func(c *Config) { c.EnforceCuts = enforce })
}

func (m *Market) update(f *ledger.Frame, field string, apply func(*Config)) error {
	if err := m.owner.RequireOwner(f); err != nil {
		return err
	}
	cfg, err := m.Config(f.Tx)
	if err != nil {
		return err
	}
	apply(&cfg)
	cfg.Version++
	if err := ledger.PutGob(f.Tx, bucketConfig, keyConfig, cfg); err != nil {
		return err
	}
	f.Emit(event.ConfigChanged, 0, ConfigData{Component: Component, Version: cfg.Version, Field: field})
	return nil
}
