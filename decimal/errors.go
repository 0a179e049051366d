package decimal

import (
	"github.com/bitfsorg/armarket-go/fault"
)

var (
	// ErrOverflow indicates a result does not fit in 256 bits.
	ErrOverflow = fault.New(fault.Validation, "decimal: arithmetic overflow")

	// ErrUnderflow indicates a subtraction would go below zero.
	ErrUnderflow = fault.New(fault.Validation, "decimal: arithmetic underflow")

	// ErrInvalidDecimal indicates percentage text could not be parsed.
	ErrInvalidDecimal = fault.New(fault.Validation, "decimal: invalid decimal")

	// ErrInvalidAmount indicates amount text is not a non-negative integer.
	ErrInvalidAmount = fault.New(fault.Validation, "decimal: invalid amount")
)
