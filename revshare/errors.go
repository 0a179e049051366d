package revshare

import (
	"github.com/bitfsorg/armarket-go/fault"
)

var (
	// ErrInvalidBidShares indicates the five shares do not sum to 100.
	ErrInvalidBidShares = fault.New(fault.Validation, "revshare: invalid bid shares, must sum to 100")

	// ErrSharesExceedTotal indicates the fixed shares leave a negative owner share.
	ErrSharesExceedTotal = fault.New(fault.Validation, "revshare: shares exceed 100")

	// ErrInsufficientPayment indicates the component splits exceed the amount.
	ErrInsufficientPayment = fault.New(fault.Validation, "revshare: insufficient payment for distribution")

	// ErrZeroAmount indicates a distribution of nothing.
	ErrZeroAmount = fault.New(fault.Validation, "revshare: amount must be > 0")
)
