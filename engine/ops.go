package engine

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/bitfsorg/armarket-go/access"
	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/currency"
	"github.com/bitfsorg/armarket-go/ledger"
	"github.com/bitfsorg/armarket-go/market"
	"github.com/bitfsorg/armarket-go/media"
	"github.com/bitfsorg/armarket-go/revshare"
)

func (e *Engine) ownable(component string) (access.Ownable, error) {
	switch component {
	case market.Component:
		return e.mkt.Ownable(), nil
	case media.Component:
		return e.md.Ownable(), nil
	default:
		return access.Ownable{}, ErrUnknownComponent
	}
}

// --- ownership and configuration ---

// TransferOwnership hands a component ("market" or "media") to next.
func (e *Engine) TransferOwnership(ctx context.Context, caller account.Address, component string, next account.Address) (*Receipt, error) {
	o, err := e.ownable(component)
	if err != nil {
		return nil, err
	}
	return e.exec(ctx, "transfer_ownership", caller, func(f *ledger.Frame) error {
		return o.TransferOwnership(f, next)
	})
}

// RenounceOwnership leaves a component without an owner.
func (e *Engine) RenounceOwnership(ctx context.Context, caller account.Address, component string) (*Receipt, error) {
	o, err := e.ownable(component)
	if err != nil {
		return nil, err
	}
	return e.exec(ctx, "renounce_ownership", caller, o.RenounceOwnership)
}

func (e *Engine) ConfigureMarketMedia(ctx context.Context, caller, mediaAddr account.Address) (*Receipt, error) {
	return e.exec(ctx, "configure_market_media", caller, func(f *ledger.Frame) error {
		return e.mkt.Configure(f, mediaAddr)
	})
}

func (e *Engine) ConfigurePlatformAddress(ctx context.Context, caller, addr account.Address) (*Receipt, error) {
	return e.exec(ctx, "configure_platform_address", caller, func(f *ledger.Frame) error {
		return e.mkt.ConfigurePlatformAddress(f, addr)
	})
}

func (e *Engine) ConfigurePoolAddress(ctx context.Context, caller, addr account.Address) (*Receipt, error) {
	return e.exec(ctx, "configure_pool_address", caller, func(f *ledger.Frame) error {
		return e.mkt.ConfigurePoolAddress(f, addr)
	})
}

func (e *Engine) ConfigureMintAddress(ctx context.Context, caller, addr account.Address) (*Receipt, error) {
	return e.exec(ctx, "configure_mint_address", caller, func(f *ledger.Frame) error {
		return e.mkt.ConfigureMintAddress(f, addr)
	})
}

func (e *Engine) ConfigurePlatformCuts(ctx context.Context, caller account.Address, cuts revshare.PlatformCuts) (*Receipt, error) {
	return e.exec(ctx, "configure_platform_cuts", caller, func(f *ledger.Frame) error {
		return e.mkt.ConfigurePlatformCuts(f, cuts)
	})
}

func (e *Engine) ConfigureEnforcePlatformCuts(ctx context.Context, caller account.Address, enforce bool) (*Receipt, error) {
	return e.exec(ctx, "configure_enforce_platform_cuts", caller, func(f *ledger.Frame) error {
		return e.mkt.ConfigureEnforcePlatformCuts(f, enforce)
	})
}

// ConfigureMedia binds media to the market. Only this engine's market is accepted.
func (e *Engine) ConfigureMedia(ctx context.Context, caller, marketAddr account.Address) (*Receipt, error) {
	return e.exec(ctx, "configure_media", caller, func(f *ledger.Frame) error {
		return e.md.Configure(f, marketAddr)
	})
}

func (e *Engine) ConfigureMaxEditionOf(ctx context.Context, caller account.Address, limit uint64) (*Receipt, error) {
	return e.exec(ctx, "configure_max_edition_of", caller, func(f *ledger.Frame) error {
		return e.md.ConfigureMaxEditionOf(f, limit)
	})
}

// --- market ---

// SetBidShares writes shares directly. The market accepts it only from the
// media layer, so every external caller is refused.
func (e *Engine) SetBidShares(ctx context.Context, caller account.Address, id uint64, shares revshare.BidShares) (*Receipt, error) {
	return e.exec(ctx, "set_bid_shares", caller, func(f *ledger.Frame) error {
		return e.mkt.SetBidShares(f, id, shares)
	})
}

func (e *Engine) SetAsk(ctx context.Context, caller account.Address, id uint64, ask market.Ask) (*Receipt, error) {
	return e.exec(ctx, "set_ask", caller, func(f *ledger.Frame) error {
		return e.mkt.SetAsk(f, id, ask)
	})
}

func (e *Engine) RemoveAsk(ctx context.Context, caller account.Address, id uint64) (*Receipt, error) {
	return e.exec(ctx, "remove_ask", caller, func(f *ledger.Frame) error {
		return e.mkt.RemoveAsk(f, id)
	})
}

func (e *Engine) SetAskForBatch(ctx context.Context, caller account.Address, ids []uint64, ask market.Ask, objKeyHex [32]byte) (*Receipt, error) {
	return e.exec(ctx, "set_ask_for_batch", caller, func(f *ledger.Frame) error {
		return e.mkt.SetAskForBatch(f, ids, ask, objKeyHex)
	})
}

func (e *Engine) RemoveAskForBatch(ctx context.Context, caller account.Address, ids []uint64) (*Receipt, error) {
	return e.exec(ctx, "remove_ask_for_batch", caller, func(f *ledger.Frame) error {
		return e.mkt.RemoveAskForBatch(f, ids)
	})
}

// SetBid escrows bid. A bid meeting the ask settles within the same call.
func (e *Engine) SetBid(ctx context.Context, caller account.Address, id uint64, bid market.Bid) (*Receipt, error) {
	return e.exec(ctx, "set_bid", caller, func(f *ledger.Frame) error {
		return e.mkt.SetBid(f, id, bid)
	})
}

func (e *Engine) RemoveBid(ctx context.Context, caller account.Address, id uint64) (*Receipt, error) {
	return e.exec(ctx, "remove_bid", caller, func(f *ledger.Frame) error {
		return e.mkt.RemoveBid(f, id)
	})
}

func (e *Engine) AcceptBid(ctx context.Context, caller account.Address, id uint64, expected market.Bid) (*Receipt, error) {
	return e.exec(ctx, "accept_bid", caller, func(f *ledger.Frame) error {
		return e.mkt.AcceptBid(f, id, expected)
	})
}

// --- media ---

func (e *Engine) Mint(ctx context.Context, caller account.Address, data media.MintData, shares revshare.BidShares) (*Receipt, error) {
	var id uint64
	r, err := e.exec(ctx, "mint", caller, func(f *ledger.Frame) error {
		var err error
		id, err = e.md.Mint(f, data, shares)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.TokenIDs = []uint64{id}
	return r, nil
}

// MintWithSig mints for creator on the strength of the creator's signature.
// caller is the relayer.
func (e *Engine) MintWithSig(ctx context.Context, caller, creator account.Address, data media.MintData, shares revshare.BidShares, nonce uint64, auth media.Authorization) (*Receipt, error) {
	var id uint64
	r, err := e.exec(ctx, "mint_with_sig", caller, func(f *ledger.Frame) error {
		var err error
		id, err = e.md.MintWithSig(f, creator, data, shares, nonce, auth)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.TokenIDs = []uint64{id}
	return r, nil
}

// MintArObject mints one chunk of a signed edition.
func (e *Engine) MintArObject(ctx context.Context, caller, creator account.Address, batch media.EditionBatch, data media.EditionData, shares revshare.BidShares, auth media.Authorization) (*Receipt, error) {
	var ids []uint64
	r, err := e.exec(ctx, "mint_ar_object", caller, func(f *ledger.Frame) error {
		var err error
		ids, err = e.md.MintArObject(f, creator, batch, data, shares, auth)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.TokenIDs = ids
	return r, nil
}

func (e *Engine) Permit(ctx context.Context, caller, spender account.Address, id uint64, auth media.Authorization) (*Receipt, error) {
	return e.exec(ctx, "permit", caller, func(f *ledger.Frame) error {
		return e.md.Permit(f, spender, id, auth)
	})
}

func (e *Engine) Burn(ctx context.Context, caller account.Address, id uint64) (*Receipt, error) {
	return e.exec(ctx, "burn", caller, func(f *ledger.Frame) error {
		return e.md.Burn(f, id)
	})
}

func (e *Engine) UpdateTokenURI(ctx context.Context, caller account.Address, id uint64, uri string) (*Receipt, error) {
	return e.exec(ctx, "update_token_uri", caller, func(f *ledger.Frame) error {
		return e.md.UpdateTokenURI(f, id, uri)
	})
}

func (e *Engine) UpdateTokenMetadataURI(ctx context.Context, caller account.Address, id uint64, uri string) (*Receipt, error) {
	return e.exec(ctx, "update_token_metadata_uri", caller, func(f *ledger.Frame) error {
		return e.md.UpdateTokenMetadataURI(f, id, uri)
	})
}

func (e *Engine) RevokeApproval(ctx context.Context, caller account.Address, id uint64) (*Receipt, error) {
	return e.exec(ctx, "revoke_approval", caller, func(f *ledger.Frame) error {
		return e.md.RevokeApproval(f, id)
	})
}

func (e *Engine) TransferFrom(ctx context.Context, caller, from, to account.Address, id uint64) (*Receipt, error) {
	return e.exec(ctx, "transfer_from", caller, func(f *ledger.Frame) error {
		return e.md.TransferFrom(f, from, to, id)
	})
}

func (e *Engine) Approve(ctx context.Context, caller, to account.Address, id uint64) (*Receipt, error) {
	return e.exec(ctx, "approve", caller, func(f *ledger.Frame) error {
		return e.md.Approve(f, to, id)
	})
}

func (e *Engine) SetApprovalForAll(ctx context.Context, caller, operator account.Address, approved bool) (*Receipt, error) {
	return e.exec(ctx, "set_approval_for_all", caller, func(f *ledger.Frame) error {
		return e.md.SetApprovalForAll(f, operator, approved)
	})
}

// --- currency ---

// Fund credits native coin to holder. Only the market owner may fund.
func (e *Engine) Fund(ctx context.Context, caller, holder account.Address, amount *uint256.Int) (*Receipt, error) {
	return e.fund(ctx, "fund", caller, currency.Native, holder, amount)
}

// FundToken credits a token currency to holder. Only the market owner may
// fund, and the wrapped currency is only minted through Deposit.
func (e *Engine) FundToken(ctx context.Context, caller, cur, holder account.Address, amount *uint256.Int) (*Receipt, error) {
	if cur == e.cur.Wrapped() {
		return nil, ErrFundWrapped
	}
	return e.fund(ctx, "fund_token", caller, cur, holder, amount)
}

func (e *Engine) fund(ctx context.Context, op string, caller, cur, holder account.Address, amount *uint256.Int) (*Receipt, error) {
	if amount.IsZero() {
		return nil, ErrZeroAmount
	}
	return e.exec(ctx, op, caller, func(f *ledger.Frame) error {
		if err := e.mkt.Ownable().RequireOwner(f); err != nil {
			return err
		}
		return e.cur.Mint(f.Tx, cur, holder, amount)
	})
}

// ApproveCurrency sets the caller's allowance of cur for spender.
func (e *Engine) ApproveCurrency(ctx context.Context, caller, cur, spender account.Address, amount *uint256.Int) (*Receipt, error) {
	return e.exec(ctx, "approve_currency", caller, func(f *ledger.Frame) error {
		return e.cur.Approve(f, cur, spender, amount)
	})
}

// Deposit wraps native coin of the caller.
func (e *Engine) Deposit(ctx context.Context, caller account.Address, amount *uint256.Int) (*Receipt, error) {
	if amount.IsZero() {
		return nil, ErrZeroAmount
	}
	return e.exec(ctx, "deposit", caller, func(f *ledger.Frame) error {
		return e.cur.Deposit(f, amount)
	})
}

// Withdraw unwraps wrapped coin of the caller.
func (e *Engine) Withdraw(ctx context.Context, caller account.Address, amount *uint256.Int) (*Receipt, error) {
	if amount.IsZero() {
		return nil, ErrZeroAmount
	}
	return e.exec(ctx, "withdraw", caller, func(f *ledger.Frame) error {
		return e.cur.Withdraw(f, amount)
	})
}
