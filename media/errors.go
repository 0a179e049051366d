package media

import "github.com/bitfsorg/armarket-go/fault"

var (
	// ErrMarketNotConfigured indicates a call before the market was bound.
	ErrMarketNotConfigured = fault.New(fault.Validation, "media: market address is not configured")

	// ErrOnlyMarket indicates an auction transfer not made by the market.
	ErrOnlyMarket = fault.New(fault.Authorization, "media: only market contract")

	// ErrOnlyApprovedOrOwner indicates a caller without rights over the token.
	ErrOnlyApprovedOrOwner = fault.New(fault.Authorization, "media: only approved or owner")

	// ErrNotCreator indicates a burn of a token its creator no longer owns.
	ErrNotCreator = fault.New(fault.Authorization, "media: owner is not creator of media")

	// ErrNonexistentToken indicates a burn of an unknown or burned token.
	ErrNonexistentToken = fault.New(fault.NotFound, "media: nonexistent token")

	// ErrCallerNotApproved indicates an approval revocation by an unrelated caller.
	ErrCallerNotApproved = fault.New(fault.Authorization, "media: caller not approved address")
)

var (
	// ErrContentHashZero indicates a mint without a content hash.
	ErrContentHashZero = fault.New(fault.Validation, "media: content hash must be non-zero")

	// ErrMetadataHashZero indicates a mint without a metadata hash.
	ErrMetadataHashZero = fault.New(fault.Validation, "media: metadata hash must be non-zero")

	// ErrURIEmpty indicates an empty token or metadata URI.
	ErrURIEmpty = fault.New(fault.Validation, "media: specified uri must be non-empty")

	// ErrEditionOfZero indicates an edition size below one.
	ErrEditionOfZero = fault.New(fault.Validation, "media: editionOf must be > zero")

	// ErrEditionNumberZero indicates an edition number below one.
	ErrEditionNumberZero = fault.New(fault.Validation, "media: editionNumber must be > zero")

	// ErrEditionNumberRange indicates an edition number past the edition size.
	ErrEditionNumberRange = fault.New(fault.Validation, "media: editionNumber must be <= editionOf")

	// ErrContentHashUsed indicates a content hash that was already minted.
	ErrContentHashUsed = fault.New(fault.Replay, "media: a token has already been created with this content hash")

	// ErrMetadataHashUsed indicates a metadata hash that was already minted.
	ErrMetadataHashUsed = fault.New(fault.Replay, "media: a token has already been created with this metadata hash")

	// ErrPairMinted indicates an artwork/object key pair that was already minted.
	ErrPairMinted = fault.New(fault.Replay, "media: mint arObject hash already been minted")
)

var (
	// ErrMintWithSigExpired indicates a mint signature past its deadline.
	ErrMintWithSigExpired = fault.New(fault.Expiry, "media: mintWithSig expired")

	// ErrMintWithSigInvalid indicates a mint signature not made by the creator.
	ErrMintWithSigInvalid = fault.New(fault.Authorization, "media: mintWithSig signature invalid")

	// ErrMintWithSigInvalidNonce indicates a mint nonce other than the creator's current one.
	ErrMintWithSigInvalidNonce = fault.New(fault.Replay, "media: mintWithSig invalid-nonce")

	// ErrMintWithSigPairMinted indicates a signed mint of an already minted key pair.
	ErrMintWithSigPairMinted = fault.New(fault.Replay, "media: mintWithSig arObject hash already been minted")
)

var (
	// ErrArObjectExpired indicates an edition signature past its deadline.
	ErrArObjectExpired = fault.New(fault.Expiry, "media: mintArObject expired")

	// ErrArObjectSignatureInvalid indicates an edition signature not made by the creator.
	ErrArObjectSignatureInvalid = fault.New(fault.Authorization, "media: signature invalid")

	// ErrArObjectInvalidNonce indicates an edition nonce at or below the creator's last one.
	ErrArObjectInvalidNonce = fault.New(fault.Replay, "media: mintArObject invalid-nonce")

	// ErrArObjectPairMinted indicates an edition for an already minted key pair.
	ErrArObjectPairMinted = fault.New(fault.Replay, "media: mintArObject arObject hash already been minted")

	// ErrArObjectInvalidData indicates chunk arrays or offsets that do not fit the edition.
	ErrArObjectInvalidData = fault.New(fault.Validation, "media: mintArObject invalid-data")

	// ErrArObjectInitialAskZero indicates an initial ask requested at zero.
	ErrArObjectInitialAskZero = fault.New(fault.Validation, "media: mintArObject initialAsk is zero")

	// ErrArObjectEditionMismatch indicates a chunk whose signed parameters differ from the first chunk.
	ErrArObjectEditionMismatch = fault.New(fault.Validation, "media: mintArObject edition parameters differ from the signed edition")

	// ErrEditionTooLarge indicates an edition above the configured maximum.
	ErrEditionTooLarge = fault.New(fault.Validation, "media: mintArObject editionOf exceeds maximum")
)

var (
	// ErrPermitExpired indicates a permit past its deadline.
	ErrPermitExpired = fault.New(fault.Expiry, "media: permit expired")

	// ErrPermitSignatureInvalid indicates a permit not signed by the token owner.
	ErrPermitSignatureInvalid = fault.New(fault.Authorization, "media: permit signature invalid")
)
