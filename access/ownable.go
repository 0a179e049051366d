// Package access implements the single system owner that gates
// configuration of each marketplace component.
package access

import (
	"fmt"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/fault"
	"github.com/bitfsorg/armarket-go/ledger"
)

var bucketOwners = []byte("access_owners")

var (
	// ErrNotOwner indicates the caller is not the component's system owner.
	ErrNotOwner = fault.New(fault.Authorization, "Ownable: caller is not the owner")

	// ErrZeroOwner indicates a transfer to the zero address.
	ErrZeroOwner = fault.New(fault.Validation, "Ownable: new owner is the zero address")
)

// OwnershipTransferred is the payload of event.OwnershipChanged.
type OwnershipTransferred struct {
	Component string          `json:"component"`
	Previous  account.Address `json:"previous"`
	Next      account.Address `json:"next"`
}

// Ownable stores the owner of one named component.
type Ownable struct {
	component string
}

// New returns the owner slot for component.
func New(component string) Ownable {
	return Ownable{component: component}
}

// Owner returns the current owner, or the zero address once renounced.
func (o Ownable) Owner(tx ledger.Tx) (account.Address, error) {
	data, err := tx.Get(bucketOwners, []byte(o.component))
	if err != nil || data == nil {
		return account.Zero, err
	}
	return account.FromBytes(data)
}

// Init sets the first owner. It is a no-op if the slot was ever written.
func (o Ownable) Init(tx ledger.Tx, owner account.Address) error {
	ok, err := ledger.Has(tx, bucketOwners, []byte(o.component))
	if err != nil || ok {
		return err
	}
	return tx.Put(bucketOwners, []byte(o.component), owner.Bytes())
}

// RequireOwner rejects any sender other than the owner.
func (o Ownable) RequireOwner(f *ledger.Frame) error {
	owner, err := o.Owner(f.Tx)
	if err != nil {
		return err
	}
	if owner.IsZero() || owner != f.Sender {
		return ErrNotOwner
	}
	return nil
}

// TransferOwnership hands the component to next.
func (o Ownable) TransferOwnership(f *ledger.Frame, next account.Address) error {
	if err := o.RequireOwner(f); err != nil {
		return err
	}
	if next.IsZero() {
		return ErrZeroOwner
	}
	return o.set(f, next)
}

// RenounceOwnership leaves the component without an owner. Owner-only
// operations are rejected from then on.
func (o Ownable) RenounceOwnership(f *ledger.Frame) error {
	if err := o.RequireOwner(f); err != nil {
		return err
	}
	return o.set(f, account.Zero)
}

func (o Ownable) set(f *ledger.Frame, next account.Address) error {
	prev, err := o.Owner(f.Tx)
	if err != nil {
		return err
	}
	if err := f.Tx.Put(bucketOwners, []byte(o.component), next.Bytes()); err != nil {
		return fmt.Errorf("access: store owner of %s: %w", o.component, err)
	}
	f.Emit(event.OwnershipChanged, 0, OwnershipTransferred{Component: o.component, Previous: prev, Next: next})
	return nil
}
