package market

import "github.com/bitfsorg/armarket-go/fault"

var (
	// ErrOnlyMedia indicates a media-only operation called by anyone else.
	ErrOnlyMedia = fault.New(fault.Authorization, "market: only media contract")

	// ErrOnlyApprovedOrOwner indicates a caller without rights over the token.
	ErrOnlyApprovedOrOwner = fault.New(fault.Authorization, "market: only approved or owner")

	// ErrBatchSetNotApproved indicates a batch ask naming a token the caller may not manage.
	ErrBatchSetNotApproved = fault.New(fault.Authorization, "market: setAskForBatch only approved or owner")

	// ErrBatchRemoveNotApproved indicates a batch ask removal naming a token the caller may not manage.
	ErrBatchRemoveNotApproved = fault.New(fault.Authorization, "market: removeAskForBatch only approved or owner")

	// ErrBatchObjKeyMismatch indicates a batch ask naming a token outside the object key.
	ErrBatchObjKeyMismatch = fault.New(fault.Validation, "market: setAskForBatch only specified objKeyHex")

	// ErrEmptyBatch indicates a batch operation with no tokens.
	ErrEmptyBatch = fault.New(fault.Validation, "market: token batch must be non-empty")

	// ErrAskZero indicates an ask amount of zero.
	ErrAskZero = fault.New(fault.Validation, "market: ask needs to be > 0")

	// ErrAskUnsplittable indicates an ask amount that loses value when split.
	ErrAskUnsplittable = fault.New(fault.Validation, "market: ask invalid for share splitting")

	// ErrBidZero indicates a bid amount of zero.
	ErrBidZero = fault.New(fault.Validation, "market: cannot bid amount of 0")

	// ErrBidRecipientZero indicates a bid whose recipient is the zero address.
	ErrBidRecipientZero = fault.New(fault.Validation, "market: bid recipient cannot be 0 address")

	// ErrBidderNotCaller indicates a bid placed on behalf of another account.
	ErrBidderNotCaller = fault.New(fault.Authorization, "market: bidder must be the caller")

	// ErrSellOnShareInvalid indicates a sell-on share the next sale could not honor.
	ErrSellOnShareInvalid = fault.New(fault.Validation, "market: sell on fee invalid for share splitting")

	// ErrRemoveBidZero indicates removal of a bid that holds no escrow.
	ErrRemoveBidZero = fault.New(fault.NotFound, "market: cannot remove bid amount of 0")

	// ErrTokenNotCreated indicates a token that was never minted.
	ErrTokenNotCreated = fault.New(fault.NotFound, "market: token with that id has not been created")

	// ErrAcceptBidZero indicates acceptance of a bid that holds no escrow.
	ErrAcceptBidZero = fault.New(fault.NotFound, "market: cannot accept bid of 0")

	// ErrUnexpectedBid indicates the stored bid differs from the one the owner agreed to.
	ErrUnexpectedBid = fault.New(fault.Validation, "market: unexpected bid found")

	// ErrBidUnsplittable indicates a bid amount that loses value when split.
	ErrBidUnsplittable = fault.New(fault.Validation, "market: bid invalid for share splitting")

	// ErrInvalidBidShares indicates shares that do not sum to 100 while cuts are enforced.
	ErrInvalidBidShares = fault.New(fault.Validation, "market: invalid bid shares, must sum to 100")

	// ErrNotAttached indicates the market was used before a token registry was attached.
	ErrNotAttached = fault.New(fault.Validation, "market: token registry not attached")
)
