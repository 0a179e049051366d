// Package market holds the revenue-share ledger, the ask and bid books
// and the settlement engine that settles a trade in one unit of work.
//
// Every operation runs inside a ledger.Frame. Escrowed bid funds are held
// in the currency ledger under the market's own address and only move in
// the same frame that updates ownership and shares.
package market

import (
	"github.com/bitfsorg/armarket-go/access"
	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/currency"
	"github.com/bitfsorg/armarket-go/ledger"
	"github.com/bitfsorg/armarket-go/revshare"
)

var (
	bucketConfig = []byte("market_config")
	bucketShares = []byte("market_shares")
	bucketAsks   = []byte("market_asks")
	bucketBids   = []byte("market_bids")

	keyConfig = []byte("config")
)

// Component is the access slot name of the market.
const Component = "market"

// Tokens is the token registry view the market settles against.
type Tokens interface {
	OwnerOf(tx ledger.Tx, id uint64) (account.Address, error)
	IsApprovedOrOwner(tx ledger.Tx, spender account.Address, id uint64) (bool, error)
	TokenCreator(tx ledger.Tx, id uint64) (account.Address, error)
	PreviousTokenOwner(tx ledger.Tx, id uint64) (account.Address, error)
	ObjKeyHex(tx ledger.Tx, id uint64) ([32]byte, error)

	// AuctionTransfer moves id to recipient for a settled trade. The frame
	// sender is the market.
	AuctionTransfer(f *ledger.Frame, id uint64, recipient account.Address) error
}

// Market is stateless apart from its collaborators; all state lives in the
// ledger.
type Market struct {
	self   account.Address
	cur    *currency.Ledger
	tokens Tokens
	owner  access.Ownable
}

// New returns a market that escrows funds under self.
func New(self account.Address, cur *currency.Ledger) *Market {
	return &Market{self: self, cur: cur, owner: access.New(Component)}
}

// Attach binds the token registry. It must be called before any
// token-scoped operation.
func (m *Market) Attach(tokens Tokens) {
	m.tokens = tokens
}

// Address returns the escrow address of the market.
func (m *Market) Address() account.Address {
	return m.self
}

// Ownable returns the market's system owner slot.
func (m *Market) Ownable() access.Ownable {
	return m.owner
}

// Init records owner as system owner and writes the default configuration
// if none exists yet.
func (m *Market) Init(tx ledger.Tx, owner account.Address) error {
	if err := m.owner.Init(tx, owner); err != nil {
		return err
	}
	ok, err := ledger.Has(tx, bucketConfig, keyConfig)
	if err != nil || ok {
		return err
	}
	return ledger.PutGob(tx, bucketConfig, keyConfig, Config{
		Version:      1,
		PlatformCuts: revshare.DefaultPlatformCuts(),
	})
}

func (m *Market) requireMedia(f *ledger.Frame) (Config, error) {
	cfg, err := m.Config(f.Tx)
	if err != nil {
		return cfg, err
	}
	if cfg.Media.IsZero() || f.Sender != cfg.Media {
		return cfg, ErrOnlyMedia
	}
	return cfg, nil
}

// approved reports whether the frame sender owns id or is approved for it.
func (m *Market) approved(f *ledger.Frame, id uint64) (bool, error) {
	if m.tokens == nil {
		return false, ErrNotAttached
	}
	return m.tokens.IsApprovedOrOwner(f.Tx, f.Sender, id)
}

// mayAsk is approved extended to the media layer, which places the
// initial asks of an edition for its creator.
func (m *Market) mayAsk(f *ledger.Frame, id uint64) (bool, error) {
	cfg, err := m.Config(f.Tx)
	if err != nil {
		return false, err
	}
	if !cfg.Media.IsZero() && f.Sender == cfg.Media {
		return true, nil
	}
	return m.approved(f, id)
}
