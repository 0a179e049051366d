package engine

import (
	"context"
	"errors"

	"github.com/holiman/uint256"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/eip712"
	"github.com/bitfsorg/armarket-go/ledger"
	"github.com/bitfsorg/armarket-go/market"
	"github.com/bitfsorg/armarket-go/media"
	"github.com/bitfsorg/armarket-go/registry"
	"github.com/bitfsorg/armarket-go/revshare"
)

// TokenView is everything known about one token. Owner and Approved are
// zero for a burned token.
type TokenView struct {
	ID            uint64             `json:"id"`
	Owner         account.Address    `json:"owner"`
	Approved      account.Address    `json:"approved"`
	Creator       account.Address    `json:"creator"`
	PreviousOwner account.Address    `json:"previous_owner"`
	ContentHash   [32]byte           `json:"content_hash"`
	MetadataHash  [32]byte           `json:"metadata_hash"`
	TokenURI      string             `json:"token_uri"`
	MetadataURI   string             `json:"metadata_uri"`
	Media         media.MediaData    `json:"media"`
	Shares        revshare.BidShares `json:"bid_shares"`
	Ask           market.Ask         `json:"ask"`
	Burned        bool               `json:"burned"`
}

// Token returns the view of id. Views are cached until a call touches the token.
func (e *Engine) Token(ctx context.Context, id uint64) (TokenView, error) {
	if e.views == nil {
		return read(ctx, e, func(tx ledger.Tx) (TokenView, error) {
			return e.tokenView(tx, id)
		})
	}

	e.cacheMu.Lock()
	if v, ok := e.views.Get(id); ok {
		e.cacheMu.Unlock()
		return v.(TokenView), nil
	}
	gen := e.gen
	e.cacheMu.Unlock()

	v, err := read(ctx, e, func(tx ledger.Tx) (TokenView, error) {
		return e.tokenView(tx, id)
	})
	if err != nil {
		return v, err
	}

	// A call that committed while the snapshot was read may have changed
	// the token; only a view from the current generation is cached.
	e.cacheMu.Lock()
	if e.gen == gen {
		e.views.Add(id, v)
	}
	e.cacheMu.Unlock()
	return v, nil
}

func (e *Engine) tokenView(tx ledger.Tx, id uint64) (TokenView, error) {
	t, err := e.md.Token(tx, id)
	if err != nil {
		return TokenView{}, err
	}
	v := TokenView{
		ID:            id,
		Creator:       t.Creator,
		PreviousOwner: t.PreviousOwner,
		ContentHash:   t.ContentHash,
		MetadataHash:  t.MetadataHash,
		TokenURI:      t.TokenURI,
		MetadataURI:   t.MetadataURI,
		Media:         t.Media,
		Burned:        t.Burned,
	}
	if !t.Burned {
		if v.Owner, err = e.md.OwnerOf(tx, id); err != nil {
			return v, err
		}
		if v.Approved, err = e.md.GetApproved(tx, id); err != nil {
			return v, err
		}
		if v.Ask, err = e.mkt.CurrentAskForToken(tx, id); err != nil {
			return v, err
		}
	}
	if v.Shares, _, err = e.mkt.BidSharesForToken(tx, id); err != nil {
		return v, err
	}
	return v, nil
}

// Domain returns the typed-data domain mint and permit signatures are made under.
func (e *Engine) Domain() eip712.Domain {
	return e.md.Domain()
}

// Owner returns the system owner of a component.
func (e *Engine) Owner(ctx context.Context, component string) (account.Address, error) {
	o, err := e.ownable(component)
	if err != nil {
		return account.Zero, err
	}
	return read(ctx, e, o.Owner)
}

func (e *Engine) MarketConfig(ctx context.Context) (market.Config, error) {
	return read(ctx, e, e.mkt.Config)
}

func (e *Engine) MediaConfig(ctx context.Context) (media.Config, error) {
	return read(ctx, e, e.md.Config)
}

// --- market ---

// BidShares returns the shares of id, or market.ErrTokenNotCreated.
func (e *Engine) BidShares(ctx context.Context, id uint64) (revshare.BidShares, error) {
	return read(ctx, e, func(tx ledger.Tx) (revshare.BidShares, error) {
		s, ok, err := e.mkt.BidSharesForToken(tx, id)
		if err == nil && !ok {
			err = market.ErrTokenNotCreated
		}
		return s, err
	})
}

func (e *Engine) CurrentAsk(ctx context.Context, id uint64) (market.Ask, error) {
	return read(ctx, e, func(tx ledger.Tx) (market.Ask, error) {
		return e.mkt.CurrentAskForToken(tx, id)
	})
}

func (e *Engine) Bid(ctx context.Context, id uint64, bidder account.Address) (market.Bid, error) {
	return read(ctx, e, func(tx ledger.Tx) (market.Bid, error) {
		return e.mkt.BidForTokenBidder(tx, id, bidder)
	})
}

func (e *Engine) Bids(ctx context.Context, id uint64) ([]market.Bid, error) {
	return read(ctx, e, func(tx ledger.Tx) ([]market.Bid, error) {
		return e.mkt.BidsForToken(tx, id)
	})
}

func (e *Engine) IsValidBid(ctx context.Context, id uint64, amount *uint256.Int) (bool, error) {
	return read(ctx, e, func(tx ledger.Tx) (bool, error) {
		return e.mkt.IsValidBid(tx, id, amount)
	})
}

// --- media ---

func (e *Engine) TotalSupply(ctx context.Context) (uint64, error) {
	return read(ctx, e, e.md.TotalSupply)
}

func (e *Engine) TokenBalanceOf(ctx context.Context, owner account.Address) (uint64, error) {
	return read(ctx, e, func(tx ledger.Tx) (uint64, error) {
		return e.md.BalanceOf(tx, owner)
	})
}

func (e *Engine) TokenByIndex(ctx context.Context, i uint64) (uint64, error) {
	return read(ctx, e, func(tx ledger.Tx) (uint64, error) {
		return e.md.TokenByIndex(tx, i)
	})
}

func (e *Engine) TokenOfOwnerByIndex(ctx context.Context, owner account.Address, i uint64) (uint64, error) {
	return read(ctx, e, func(tx ledger.Tx) (uint64, error) {
		return e.md.TokenOfOwnerByIndex(tx, owner, i)
	})
}

// TokensOfOwner lists the live tokens of owner in index order.
func (e *Engine) TokensOfOwner(ctx context.Context, owner account.Address) ([]uint64, error) {
	return read(ctx, e, func(tx ledger.Tx) ([]uint64, error) {
		n, err := e.md.BalanceOf(tx, owner)
		if err != nil {
			return nil, err
		}
		ids := make([]uint64, 0, n)
		for i := uint64(0); i < n; i++ {
			id, err := e.md.TokenOfOwnerByIndex(tx, owner, i)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		return ids, nil
	})
}

func (e *Engine) IsApprovedForAll(ctx context.Context, owner, operator account.Address) (bool, error) {
	return read(ctx, e, func(tx ledger.Tx) (bool, error) {
		return e.md.IsApprovedForAll(tx, owner, operator)
	})
}

func (e *Engine) CreatorBalanceOf(ctx context.Context, creator account.Address) (uint64, error) {
	return read(ctx, e, func(tx ledger.Tx) (uint64, error) {
		return e.md.CreatorBalanceOf(tx, creator)
	})
}

// TokensOfCreator lists every token creator minted, burned ones included.
func (e *Engine) TokensOfCreator(ctx context.Context, creator account.Address) ([]uint64, error) {
	return read(ctx, e, func(tx ledger.Tx) ([]uint64, error) {
		var ids []uint64
		for i := uint64(0); ; i++ {
			id, err := e.md.TokenOfCreatorByIndex(tx, creator, i)
			if errors.Is(err, registry.ErrIndexOutOfBounds) {
				return ids, nil
			}
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	})
}

func (e *Engine) MintWithSigNonce(ctx context.Context, creator account.Address) (uint64, error) {
	return read(ctx, e, func(tx ledger.Tx) (uint64, error) {
		return e.md.MintWithSigNonce(tx, creator)
	})
}

func (e *Engine) MintArObjectNonce(ctx context.Context, creator account.Address) (*uint256.Int, error) {
	return read(ctx, e, func(tx ledger.Tx) (*uint256.Int, error) {
		return e.md.MintArObjectNonce(tx, creator)
	})
}

func (e *Engine) PermitNonce(ctx context.Context, owner account.Address, id uint64) (uint64, error) {
	return read(ctx, e, func(tx ledger.Tx) (uint64, error) {
		return e.md.PermitNonce(tx, owner, id)
	})
}

// EditionProgress is the minting state of one edition.
type EditionProgress struct {
	Minted    uint64 `json:"minted"`
	EditionOf uint64 `json:"edition_of"`
}

// Edition reports the progress of the edition keyed by the artwork/object
// pair. ok is false if none was started.
func (e *Engine) Edition(ctx context.Context, awKeyHex, objKeyHex [32]byte) (EditionProgress, bool, error) {
	var (
		p  EditionProgress
		ok bool
	)
	err := e.view(ctx, func(tx ledger.Tx) error {
		var err error
		p.Minted, p.EditionOf, ok, err = e.md.EditionProgress(tx, awKeyHex, objKeyHex)
		return err
	})
	return p, ok, err
}

// --- currency ---

func (e *Engine) BalanceOf(ctx context.Context, cur, holder account.Address) (*uint256.Int, error) {
	return read(ctx, e, func(tx ledger.Tx) (*uint256.Int, error) {
		return e.cur.BalanceOf(tx, cur, holder)
	})
}

func (e *Engine) Allowance(ctx context.Context, cur, owner, spender account.Address) (*uint256.Int, error) {
	return read(ctx, e, func(tx ledger.Tx) (*uint256.Int, error) {
		return e.cur.Allowance(tx, cur, owner, spender)
	})
}
