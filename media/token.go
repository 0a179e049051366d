package media

import (
	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/ledger"
)

// Burn destroys id. The sender must own or be approved for the token, and
// the owner must still be its creator. Bid shares survive so that open
// bids can still be withdrawn.
func (m *Media) Burn(f *ledger.Frame, id uint64) error {
	ok, err := m.reg.Exists(f.Tx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNonexistentToken
	}
	if err := m.requireApproved(f, id); err != nil {
		return err
	}
	owner, err := m.reg.OwnerOf(f.Tx, id)
	if err != nil {
		return err
	}
	t, err := m.token(f.Tx, id)
	if err != nil {
		return err
	}
	if owner != t.Creator {
		return ErrNotCreator
	}

	mf, err := m.requireMarket(f)
	if err != nil {
		return err
	}
	if err := m.mkt.ClearAsk(mf, id); err != nil {
		return err
	}
	if err := m.reg.Burn(f, id); err != nil {
		return err
	}
	t.TokenURI = ""
	t.MetadataURI = ""
	t.PreviousOwner = account.Zero
	t.Burned = true
	return m.putToken(f.Tx, id, t)
}

// UpdateTokenURI replaces the content URI of id.
func (m *Media) UpdateTokenURI(f *ledger.Frame, id uint64, uri string) error {
	t, err := m.updatable(f, id, uri)
	if err != nil {
		return err
	}
	t.TokenURI = uri
	if err := m.putToken(f.Tx, id, t); err != nil {
		return err
	}
	f.Emit(event.TokenURIUpdated, id, URIData{Owner: f.Sender, URI: uri})
	return nil
}

// UpdateTokenMetadataURI replaces the metadata URI of id.
func (m *Media) UpdateTokenMetadataURI(f *ledger.Frame, id uint64, uri string) error {
	t, err := m.updatable(f, id, uri)
	if err != nil {
		return err
	}
	t.MetadataURI = uri
	if err := m.putToken(f.Tx, id, t); err != nil {
		return err
	}
	f.Emit(event.MetadataUpdated, id, URIData{Owner: f.Sender, URI: uri})
	return nil
}

func (m *Media) updatable(f *ledger.Frame, id uint64, uri string) (Token, error) {
	if err := m.requireApproved(f, id); err != nil {
		return Token{}, err
	}
	if uri == "" {
		return Token{}, ErrURIEmpty
	}
	return m.token(f.Tx, id)
}

// RevokeApproval clears the approved address of id. The owner or the
// approved address itself may revoke; operators may not.
func (m *Media) RevokeApproval(f *ledger.Frame, id uint64) error {
	owner, err := m.reg.OwnerOf(f.Tx, id)
	if err != nil {
		return err
	}
	approved, err := m.reg.GetApproved(f.Tx, id)
	if err != nil {
		return err
	}
	if f.Sender != owner && (approved.IsZero() || f.Sender != approved) {
		return ErrCallerNotApproved
	}
	return m.reg.ForceApprove(f, account.Zero, id)
}

// TransferFrom moves id from from to to. The standing ask is dropped.
func (m *Media) TransferFrom(f *ledger.Frame, from, to account.Address, id uint64) error {
	mf, err := m.requireMarket(f)
	if err != nil {
		return err
	}
	if err := m.reg.TransferFrom(f, from, to, id); err != nil {
		return err
	}
	return m.mkt.ClearAsk(mf, id)
}

// Approve sets to as the approved address of id.
func (m *Media) Approve(f *ledger.Frame, to account.Address, id uint64) error {
	return m.reg.Approve(f, to, id)
}

// SetApprovalForAll grants or revokes operator rights over all of the
// sender's tokens.
func (m *Media) SetApprovalForAll(f *ledger.Frame, operator account.Address, approved bool) error {
	return m.reg.SetApprovalForAll(f, operator, approved)
}

// AuctionTransfer hands id to recipient for a trade the market settled.
// The seller becomes the previous owner.
func (m *Media) AuctionTransfer(f *ledger.Frame, id uint64, recipient account.Address) error {
	cfg, err := m.Config(f.Tx)
	if err != nil {
		return err
	}
	if cfg.Market.IsZero() || f.Sender != cfg.Market {
		return ErrOnlyMarket
	}
	owner, err := m.reg.OwnerOf(f.Tx, id)
	if err != nil {
		return err
	}
	t, err := m.token(f.Tx, id)
	if err != nil {
		return err
	}
	t.PreviousOwner = owner
	if err := m.putToken(f.Tx, id, t); err != nil {
		return err
	}
	return m.reg.Transfer(f, owner, recipient, id)
}

func (m *Media) requireApproved(f *ledger.Frame, id uint64) error {
	ok, err := m.reg.IsApprovedOrOwner(f.Tx, f.Sender, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOnlyApprovedOrOwner
	}
	return nil
}
