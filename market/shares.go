package market

import (
	"fmt"

	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/ledger"
	"github.com/bitfsorg/armarket-go/revshare"
)

// SetBidShares writes the shares of id. Only the media registry may call
// it. The sum is checked only while cuts are enforced.
func (m *Market) SetBidShares(f *ledger.Frame, id uint64, shares revshare.BidShares) error {
	cfg, err := m.requireMedia(f)
	if err != nil {
		return err
	}
	if cfg.EnforceCuts {
		if err := revshare.ValidateBidShares(shares); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidBidShares, err)
		}
	}
	return m.putShares(f, id, shares)
}

// BidSharesForToken returns the current shares of id. It reports false for
// a token that was never minted.
func (m *Market) BidSharesForToken(tx ledger.Tx, id uint64) (revshare.BidShares, bool, error) {
	var s revshare.BidShares
	ok, err := ledger.GetGob(tx, bucketShares, ledger.U64(id), &s)
	return s, ok, err
}

func (m *Market) sharesOf(tx ledger.Tx, id uint64) (revshare.BidShares, error) {
	s, ok, err := m.BidSharesForToken(tx, id)
	if err != nil {
		return s, err
	}
	if !ok {
		return s, ErrTokenNotCreated
	}
	return s, nil
}

func (m *Market) putShares(f *ledger.Frame, id uint64, shares revshare.BidShares) error {
	if err := ledger.PutGob(f.Tx, bucketShares, ledger.U64(id), shares); err != nil {
		return err
	}
	f.Emit(event.BidShareUpdated, id, BidSharesData{Shares: shares})
	return nil
}
