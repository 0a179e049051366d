// Package media is the authorization layer in front of the token registry.
//
// It mints tokens from direct calls, from creator signatures relayed by a
// third party and from batched edition signatures, and it keeps the
// records the market settles against: creator, previous owner, hashes and
// edition placement. Content hashes, metadata hashes and artwork/object
// key pairs are dedupe keys and stay consumed for good.
package media

import (
	"crypto/sha256"

	"github.com/bitfsorg/armarket-go/access"
	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/eip712"
	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/ledger"
	"github.com/bitfsorg/armarket-go/market"
	"github.com/bitfsorg/armarket-go/registry"
)

var (
	bucketConfig        = []byte("media_config")
	bucketTokens        = []byte("media_tokens")
	bucketContent       = []byte("media_content")
	bucketMetadata      = []byte("media_metadata")
	bucketPairs         = []byte("media_pairs")
	bucketEditions      = []byte("media_editions")
	bucketSigNonces     = []byte("media_sig_nonces")
	bucketObjectNonces  = []byte("media_arobject_nonces")
	bucketPermitNonces  = []byte("media_permit_nonces")
	bucketCreatorCount  = []byte("media_creator_count")
	bucketCreatorTokens = []byte("media_creator_tokens")

	keyConfig = []byte("config")
	keyNextID = []byte("next_id")
)

// Component is the access slot name of the media layer.
const Component = "media"

var _ market.Tokens = (*Media)(nil)

// Media mints and manages tokens. All state lives in the ledger.
type Media struct {
	self   account.Address
	reg    *registry.Registry
	mkt    *market.Market
	owner  access.Ownable
	domain eip712.Domain
}

// New returns a media layer at self that settles through mkt. The domain
// binds every signature it accepts; its verifying address is set to self.
func New(self account.Address, reg *registry.Registry, mkt *market.Market, domain eip712.Domain) *Media {
	domain.VerifyingContract = self
	return &Media{
		self:   self,
		reg:    reg,
		mkt:    mkt,
		owner:  access.New(Component),
		domain: domain,
	}
}

// Address returns the address the media layer calls the market from.
func (m *Media) Address() account.Address {
	return m.self
}

// Domain returns the typed-data domain signatures must be made under.
func (m *Media) Domain() eip712.Domain {
	return m.domain
}

// Ownable returns the media system owner slot.
func (m *Media) Ownable() access.Ownable {
	return m.owner
}

// Init records owner as system owner and writes the default configuration
// if none exists yet.
func (m *Media) Init(tx ledger.Tx, owner account.Address) error {
	if err := m.owner.Init(tx, owner); err != nil {
		return err
	}
	ok, err := ledger.Has(tx, bucketConfig, keyConfig)
	if err != nil || ok {
		return err
	}
	return ledger.PutGob(tx, bucketConfig, keyConfig, Config{Version: 1, MaxEditionOf: DefaultMaxEditionOf})
}

// Config returns the media configuration.
func (m *Media) Config(tx ledger.Tx) (Config, error) {
	var cfg Config
	ok, err := ledger.GetGob(tx, bucketConfig, keyConfig, &cfg)
	if err != nil {
		return cfg, err
	}
	if !ok {
		cfg.MaxEditionOf = DefaultMaxEditionOf
	}
	return cfg, nil
}

// Configure binds the market. It must be the market this layer was built with.
func (m *Media) Configure(f *ledger.Frame, marketAddr account.Address) error {
	if marketAddr != m.mkt.Address() {
		return ErrMarketNotConfigured
	}
	return m.update(f, "market", func(c *Config) { c.Market = marketAddr })
}

// ConfigureMaxEditionOf bounds the size of future editions.
func (m *Media) ConfigureMaxEditionOf(f *ledger.Frame, limit uint64) error {
	if limit == 0 {
		return ErrEditionOfZero
	}
	return m.update(f, "max_edition_of", func(c *Config) { c.MaxEditionOf = limit })
}

func (m *Media) update(f *ledger.Frame, field string, apply func(*Config)) error {
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
	f.Emit(event.ConfigChanged, 0, market.ConfigData{Component: Component, Version: cfg.Version, Field: field})
	return nil
}

// requireMarket returns a frame that calls the market as this layer.
func (m *Media) requireMarket(f *ledger.Frame) (*ledger.Frame, error) {
	cfg, err := m.Config(f.Tx)
	if err != nil {
		return nil, err
	}
	if cfg.Market.IsZero() {
		return nil, ErrMarketNotConfigured
	}
	return f.As(m.self), nil
}

func (m *Media) token(tx ledger.Tx, id uint64) (Token, error) {
	var t Token
	ok, err := ledger.GetGob(tx, bucketTokens, ledger.U64(id), &t)
	if err != nil {
		return t, err
	}
	if !ok {
		return t, registry.ErrNonexistentToken
	}
	return t, nil
}

func (m *Media) putToken(tx ledger.Tx, id uint64, t Token) error {
	return ledger.PutGob(tx, bucketTokens, ledger.U64(id), t)
}

// pairHash keys an artwork/object key pair.
func pairHash(awKeyHex, objKeyHex [32]byte) [32]byte {
	return sha256.Sum256(ledger.Key(awKeyHex[:], objKeyHex[:]))
}

// KeyHash is the digest of an artwork or object key signed over in
// mint authorizations.
func KeyHash(keyHex [32]byte) [32]byte {
	return sha256.Sum256(keyHex[:])
}
