package market

import (
	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/currency"
	"github.com/bitfsorg/armarket-go/decimal"
	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/ledger"
	"github.com/bitfsorg/armarket-go/revshare"
	"github.com/holiman/uint256"
)

func bidKey(id uint64, bidder account.Address) []byte {
	return ledger.Key(ledger.U64(id), bidder[:])
}

// BidForTokenBidder returns bidder's bid on id, or the zero Bid.
func (m *Market) BidForTokenBidder(tx ledger.Tx, id uint64, bidder account.Address) (Bid, error) {
	var b Bid
	_, err := ledger.GetGob(tx, bucketBids, bidKey(id, bidder), &b)
	return b, err
}

// BidsForToken returns every outstanding bid on id, ordered by bidder.
func (m *Market) BidsForToken(tx ledger.Tx, id uint64) ([]Bid, error) {
	var keys [][]byte
	err := tx.Scan(bucketBids, ledger.U64(id), func(k, _ []byte) error {
		keys = append(keys, k)
		return nil
	})
	if err != nil {
		return nil, err
	}
	bids := make([]Bid, 0, len(keys))
	for _, k := range keys {
		var b Bid
		if _, err := ledger.GetGob(tx, bucketBids, k, &b); err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, nil
}

// IsValidBid reports whether amount splits cleanly across id's shares.
func (m *Market) IsValidBid(tx ledger.Tx, id uint64, amount *uint256.Int) (bool, error) {
	shares, err := m.sharesOf(tx, id)
	if err != nil {
		return false, err
	}
	return revshare.IsSplittable(amount, shares), nil
}

// SetBid escrows bid on id, refunding any earlier bid by the same bidder.
// A bid that meets the current ask in the same currency settles at once.
func (m *Market) SetBid(f *ledger.Frame, id uint64, bid Bid) error {
	if m.tokens == nil {
		return ErrNotAttached
	}
	shares, err := m.sharesOf(f.Tx, id)
	if err != nil {
		return err
	}
	if _, err := m.tokens.OwnerOf(f.Tx, id); err != nil {
		return err
	}
	if bid.Bidder != f.Sender {
		return ErrBidderNotCaller
	}
	if bid.Amount.IsZero() {
		return ErrBidZero
	}
	if bid.Recipient.IsZero() {
		return ErrBidRecipientZero
	}
	cfg, err := m.Config(f.Tx)
	if err != nil {
		return err
	}
	if bid.SellOnShare.Cmp(decimal.Hundred()) > 0 {
		return ErrSellOnShareInvalid
	}
	if _, err := revshare.NextSaleShares(shares, bid.SellOnShare, cfg.PlatformCuts, cfg.EnforceCuts); err != nil {
		return ErrSellOnShareInvalid
	}

	prior, err := m.BidForTokenBidder(f.Tx, id, bid.Bidder)
	if err != nil {
		return err
	}
	if !prior.Amount.IsZero() {
		if err := m.pay(f, prior.Currency, prior.Bidder, &prior.Amount); err != nil {
			return err
		}
		f.Emit(event.BidRemoved, id, BidData{Bid: prior})
	}

	if err := m.escrow(f, bid); err != nil {
		return err
	}
	if err := ledger.PutGob(f.Tx, bucketBids, bidKey(id, bid.Bidder), bid); err != nil {
		return err
	}
	f.Emit(event.BidCreated, id, BidData{Bid: bid})

	ask, err := m.CurrentAskForToken(f.Tx, id)
	if err != nil {
		return err
	}
	if ask.IsZero() || ask.Currency != bid.Currency || bid.Amount.Lt(&ask.Amount) {
		return nil
	}
	if !revshare.IsSplittable(&bid.Amount, shares) {
		return ErrBidUnsplittable
	}
	return m.settle(f, id, bid, shares)
}

// RemoveBid refunds and clears the sender's bid on id. It works after the
// token has been burned.
func (m *Market) RemoveBid(f *ledger.Frame, id uint64) error {
	if _, err := m.sharesOf(f.Tx, id); err != nil {
		return err
	}
	bid, err := m.BidForTokenBidder(f.Tx, id, f.Sender)
	if err != nil {
		return err
	}
	if bid.Amount.IsZero() {
		return ErrRemoveBidZero
	}
	if err := f.Tx.Delete(bucketBids, bidKey(id, f.Sender)); err != nil {
		return err
	}
	if err := m.pay(f, bid.Currency, bid.Bidder, &bid.Amount); err != nil {
		return err
	}
	f.Emit(event.BidRemoved, id, BidData{Bid: bid})
	return nil
}

// escrow pulls the bid amount into the market. Native bids are wrapped on
// the way in; token bids spend the allowance the bidder gave the market.
func (m *Market) escrow(f *ledger.Frame, bid Bid) error {
	if bid.Currency == currency.Native {
		if err := m.cur.Transfer(f, currency.Native, m.self, &bid.Amount); err != nil {
			return err
		}
		return m.cur.Deposit(f.As(m.self), &bid.Amount)
	}
	return m.cur.TransferFrom(f.As(m.self), bid.Currency, bid.Bidder, m.self, &bid.Amount)
}

// pay releases escrowed funds to to, unwrapping native bids.
func (m *Market) pay(f *ledger.Frame, cur, to account.Address, amount *uint256.Int) error {
	self := f.As(m.self)
	if cur == currency.Native {
		if err := m.cur.Withdraw(self, amount); err != nil {
			return err
		}
	}
	return m.cur.Transfer(self, cur, to, amount)
}
