package engine

import (
	"errors"

	"github.com/bitfsorg/armarket-go/fault"
)

var (
	// ErrNoStore indicates New was called without a ledger store.
	ErrNoStore = errors.New("engine: store is required")

	// ErrNoOwner indicates a bootstrap without a system owner.
	ErrNoOwner = errors.New("engine: system owner is required")

	// ErrUnknownComponent indicates an ownership call naming neither market nor media.
	ErrUnknownComponent = fault.New(fault.Validation, "engine: unknown component")

	// ErrFundWrapped indicates a faucet credit of the wrapped currency, which is only minted by deposit.
	ErrFundWrapped = fault.New(fault.Validation, "engine: wrapped currency is only minted by deposit")

	// ErrComponentCaller indicates an external call made as the market, media or wrapped coin address.
	ErrComponentCaller = fault.New(fault.Authorization, "engine: caller is a component address")

	// ErrZeroAmount indicates a currency movement of nothing.
	ErrZeroAmount = fault.New(fault.Validation, "engine: amount must be non-zero")
)
