package api

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/eip712"
	"github.com/bitfsorg/armarket-go/engine"
	"github.com/bitfsorg/armarket-go/market"
	"github.com/bitfsorg/armarket-go/media"
	"github.com/bitfsorg/armarket-go/revshare"
)

// Backend is the engine surface the HTTP layer drives.
type Backend interface {
	Addresses() engine.Addresses
	Domain() eip712.Domain
	Owner(ctx context.Context, component string) (account.Address, error)
	MarketConfig(ctx context.Context) (market.Config, error)
	MediaConfig(ctx context.Context) (media.Config, error)

	TransferOwnership(ctx context.Context, caller account.Address, component string, next account.Address) (*engine.Receipt, error)
	RenounceOwnership(ctx context.Context, caller account.Address, component string) (*engine.Receipt, error)
	ConfigureMarketMedia(ctx context.Context, caller, mediaAddr account.Address) (*engine.Receipt, error)
	ConfigurePlatformAddress(ctx context.Context, caller, addr account.Address) (*engine.Receipt, error)
	ConfigurePoolAddress(ctx context.Context, caller, addr account.Address) (*engine.Receipt, error)
	ConfigureMintAddress(ctx context.Context, caller, addr account.Address) (*engine.Receipt, error)
	ConfigurePlatformCuts(ctx context.Context, caller account.Address, cuts revshare.PlatformCuts) (*engine.Receipt, error)
	ConfigureEnforcePlatformCuts(ctx context.Context, caller account.Address, enforce bool) (*engine.Receipt, error)
	ConfigureMedia(ctx context.Context, caller, marketAddr account.Address) (*engine.Receipt, error)
	ConfigureMaxEditionOf(ctx context.Context, caller account.Address, limit uint64) (*engine.Receipt, error)

	SetBidShares(ctx context.Context, caller account.Address, id uint64, shares revshare.BidShares) (*engine.Receipt, error)
	SetAsk(ctx context.Context, caller account.Address, id uint64, ask market.Ask) (*engine.Receipt, error)
	RemoveAsk(ctx context.Context, caller account.Address, id uint64) (*engine.Receipt, error)
	SetAskForBatch(ctx context.Context, caller account.Address, ids []uint64, ask market.Ask, objKeyHex [32]byte) (*engine.Receipt, error)
	RemoveAskForBatch(ctx context.Context, caller account.Address, ids []uint64) (*engine.Receipt, error)
	SetBid(ctx context.Context, caller account.Address, id uint64, bid market.Bid) (*engine.Receipt, error)
	RemoveBid(ctx context.Context, caller account.Address, id uint64) (*engine.Receipt, error)
	AcceptBid(ctx context.Context, caller account.Address, id uint64, expected market.Bid) (*engine.Receipt, error)

	Mint(ctx context.Context, caller account.Address, data media.MintData, shares revshare.BidShares) (*engine.Receipt, error)
	MintWithSig(ctx context.Context, caller, creator account.Address, data media.MintData, shares revshare.BidShares, nonce uint64, auth media.Authorization) (*engine.Receipt, error)
	MintArObject(ctx context.Context, caller, creator account.Address, batch media.EditionBatch, data media.EditionData, shares revshare.BidShares, auth media.Authorization) (*engine.Receipt, error)
	Permit(ctx context.Context, caller, spender account.Address, id uint64, auth media.Authorization) (*engine.Receipt, error)
	Burn(ctx context.Context, caller account.Address, id uint64) (*engine.Receipt, error)
	UpdateTokenURI(ctx context.Context, caller account.Address, id uint64, uri string) (*engine.Receipt, error)
	UpdateTokenMetadataURI(ctx context.Context, caller account.Address, id uint64, uri string) (*engine.Receipt, error)
	RevokeApproval(ctx context.Context, caller account.Address, id uint64) (*engine.Receipt, error)
	TransferFrom(ctx context.Context, caller, from, to account.Address, id uint64) (*engine.Receipt, error)
	Approve(ctx context.Context, caller, to account.Address, id uint64) (*engine.Receipt, error)
	SetApprovalForAll(ctx context.Context, caller, operator account.Address, approved bool) (*engine.Receipt, error)

	Fund(ctx context.Context, caller, holder account.Address, amount *uint256.Int) (*engine.Receipt, error)
	FundToken(ctx context.Context, caller, cur, holder account.Address, amount *uint256.Int) (*engine.Receipt, error)
	ApproveCurrency(ctx context.Context, caller, cur, spender account.Address, amount *uint256.Int) (*engine.Receipt, error)
	Deposit(ctx context.Context, caller account.Address, amount *uint256.Int) (*engine.Receipt, error)
	Withdraw(ctx context.Context, caller account.Address, amount *uint256.Int) (*engine.Receipt, error)

	Token(ctx context.Context, id uint64) (engine.TokenView, error)
	BidShares(ctx context.Context, id uint64) (revshare.BidShares, error)
	CurrentAsk(ctx context.Context, id uint64) (market.Ask, error)
	Bid(ctx context.Context, id uint64, bidder account.Address) (market.Bid, error)
	Bids(ctx context.Context, id uint64) ([]market.Bid, error)
	IsValidBid(ctx context.Context, id uint64, amount *uint256.Int) (bool, error)
	TotalSupply(ctx context.Context) (uint64, error)
	TokensOfOwner(ctx context.Context, owner account.Address) ([]uint64, error)
	TokensOfCreator(ctx context.Context, creator account.Address) ([]uint64, error)
	IsApprovedForAll(ctx context.Context, owner, operator account.Address) (bool, error)
	MintWithSigNonce(ctx context.Context, creator account.Address) (uint64, error)
	MintArObjectNonce(ctx context.Context, creator account.Address) (*uint256.Int, error)
	PermitNonce(ctx context.Context, owner account.Address, id uint64) (uint64, error)
	Edition(ctx context.Context, awKeyHex, objKeyHex [32]byte) (engine.EditionProgress, bool, error)
	BalanceOf(ctx context.Context, cur, holder account.Address) (*uint256.Int, error)
	Allowance(ctx context.Context, cur, owner, spender account.Address) (*uint256.Int, error)
}

var _ Backend = (*engine.Engine)(nil)
