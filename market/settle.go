package market

import (
	"fmt"

	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/ledger"
	"github.com/bitfsorg/armarket-go/revshare"
)

// AcceptBid settles the bid expected placed on id. The stored bid of
// expected.Bidder must carry exactly the expected terms, so a bidder
// cannot swap a lower offer in front of the owner's acceptance.
func (m *Market) AcceptBid(f *ledger.Frame, id uint64, expected Bid) error {
	ok, err := m.approved(f, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOnlyApprovedOrOwner
	}
	stored, err := m.BidForTokenBidder(f.Tx, id, expected.Bidder)
	if err != nil {
		return err
	}
	if stored.Amount.IsZero() {
		return ErrAcceptBidZero
	}
	if !stored.Matches(expected) {
		return ErrUnexpectedBid
	}
	shares, err := m.sharesOf(f.Tx, id)
	if err != nil {
		return err
	}
	if !revshare.IsSplittable(&stored.Amount, shares) {
		return ErrBidUnsplittable
	}
	return m.settle(f, id, stored, shares)
}

// settle pays the stakeholders, hands the token to the bid recipient,
// clears the books for id and writes the next sale's shares.
func (m *Market) settle(f *ledger.Frame, id uint64, bid Bid, shares revshare.BidShares) error {
	cfg, err := m.Config(f.Tx)
	if err != nil {
		return err
	}
	next, err := revshare.NextSaleShares(shares, bid.SellOnShare, cfg.PlatformCuts, cfg.EnforceCuts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSellOnShareInvalid, err)
	}

	owner, err := m.tokens.OwnerOf(f.Tx, id)
	if err != nil {
		return err
	}
	creator, err := m.tokens.TokenCreator(f.Tx, id)
	if err != nil {
		return err
	}
	prev, err := m.tokens.PreviousTokenOwner(f.Tx, id)
	if err != nil {
		return err
	}

	payouts, err := revshare.Distribute(&bid.Amount, shares, revshare.Stakeholders{
		PrevOwner: prev,
		Creator:   creator,
		Platform:  cfg.Platform,
		Pool:      cfg.Pool,
		Owner:     owner,
	})
	if err != nil {
		return err
	}

	if err := f.Tx.Delete(bucketBids, bidKey(id, bid.Bidder)); err != nil {
		return err
	}
	for _, p := range payouts {
		if p.Amount.IsZero() {
			continue
		}
		amount := p.Amount
		if err := m.pay(f, bid.Currency, p.Address, &amount); err != nil {
			return fmt.Errorf("market: pay %s: %w", p.Role, err)
		}
	}

	if err := m.tokens.AuctionTransfer(f.As(m.self), id, bid.Recipient); err != nil {
		return err
	}
	if err := f.Tx.Delete(bucketAsks, ledger.U64(id)); err != nil {
		return err
	}
	if err := m.refundAll(f, id); err != nil {
		return err
	}

	f.Emit(event.BidFinalized, id, BidData{Bid: bid})
	return m.putShares(f, id, next)
}

// refundAll returns every remaining escrow on id to its bidder.
func (m *Market) refundAll(f *ledger.Frame, id uint64) error {
	bids, err := m.BidsForToken(f.Tx, id)
	if err != nil {
		return err
	}
	for _, b := range bids {
		if err := f.Tx.Delete(bucketBids, bidKey(id, b.Bidder)); err != nil {
			return err
		}
		if err := m.pay(f, b.Currency, b.Bidder, &b.Amount); err != nil {
			return err
		}
		f.Emit(event.BidRemoved, id, BidData{Bid: b})
	}
	return nil
}
