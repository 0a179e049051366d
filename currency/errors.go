package currency

import "github.com/bitfsorg/armarket-go/fault"

var (
	// ErrInsufficientBalance indicates the payer holds less than the amount moved.
	ErrInsufficientBalance = fault.New(fault.Validation, "currency: transfer amount exceeds balance")

	// ErrInsufficientAllowance indicates the spender was approved for less than the amount moved.
	ErrInsufficientAllowance = fault.New(fault.Authorization, "currency: transfer amount exceeds allowance")

	// ErrZeroRecipient indicates a credit to the zero address.
	ErrZeroRecipient = fault.New(fault.Validation, "currency: transfer to the zero address")

	// ErrZeroSpender indicates an approval for the zero address.
	ErrZeroSpender = fault.New(fault.Validation, "currency: approve to the zero address")

	// ErrOverflow indicates a balance would exceed 2^256-1.
	ErrOverflow = fault.New(fault.Validation, "currency: balance overflow")
)
