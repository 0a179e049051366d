package registry

import "github.com/bitfsorg/armarket-go/fault"

var (
	// ErrNonexistentToken indicates a query or move of a token that is not minted.
	ErrNonexistentToken = fault.New(fault.NotFound, "registry: operator query for nonexistent token")

	// ErrAlreadyMinted indicates a mint of an id that already has an owner.
	ErrAlreadyMinted = fault.New(fault.Replay, "registry: token already minted")

	// ErrMintToZero indicates a mint to the zero address.
	ErrMintToZero = fault.New(fault.Validation, "registry: mint to the zero address")

	// ErrTransferToZero indicates a transfer to the zero address.
	ErrTransferToZero = fault.New(fault.Validation, "registry: transfer to the zero address")

	// ErrNotOwnToken indicates a transfer whose from is not the token's owner.
	ErrNotOwnToken = fault.New(fault.Authorization, "registry: transfer of token that is not own")

	// ErrNotApprovedOrOwner indicates a transfer by a caller without rights over the token.
	ErrNotApprovedOrOwner = fault.New(fault.Authorization, "registry: transfer caller is not owner nor approved")

	// ErrApprovalToOwner indicates an approval naming the current owner.
	ErrApprovalToOwner = fault.New(fault.Validation, "registry: approval to current owner")

	// ErrApproveNotAllowed indicates an approval by a caller that is neither owner nor operator.
	ErrApproveNotAllowed = fault.New(fault.Authorization, "registry: approve caller is not owner nor approved for all")

	// ErrApproveToCaller indicates an operator approval naming the caller.
	ErrApproveToCaller = fault.New(fault.Validation, "registry: approve to caller")

	// ErrIndexOutOfBounds indicates an enumeration index at or past the end.
	ErrIndexOutOfBounds = fault.New(fault.NotFound, "registry: index out of bounds")
)
