// Package currency keeps fungible balances for the native coin and for
// every token currency bids and asks can be denominated in.
//
// The native coin is the zero currency. A single wrapped currency backs
// native escrow: Deposit moves native coin into the wrapper's custody and
// credits the same amount of wrapped coin.
package currency

import (
	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/ledger"
	"github.com/holiman/uint256"
)

var (
	bucketBalances   = []byte("currency_balances")
	bucketAllowances = []byte("currency_allowances")
	bucketSupply     = []byte("currency_supply")
)

// Native is the currency value that denotes the chain's native coin.
var Native = account.Zero

// Ledger moves balances inside a ledger.Tx.
type Ledger struct {
	wrapped account.Address
}

// New returns a Ledger whose wrapped-native currency lives at wrapped.
func New(wrapped account.Address) *Ledger {
	return &Ledger{wrapped: wrapped}
}

// Wrapped returns the wrapped-native currency.
func (l *Ledger) Wrapped() account.Address {
	return l.wrapped
}

// BalanceOf returns holder's balance of cur.
func (l *Ledger) BalanceOf(tx ledger.Tx, cur, holder account.Address) (*uint256.Int, error) {
	return readAmount(tx, bucketBalances, ledger.Key(cur[:], holder[:]))
}

// TotalSupply returns the amount of cur ever minted less the amount burned.
func (l *Ledger) TotalSupply(tx ledger.Tx, cur account.Address) (*uint256.Int, error) {
	return readAmount(tx, bucketSupply, cur[:])
}

// Allowance returns how much of owner's cur spender may move.
func (l *Ledger) Allowance(tx ledger.Tx, cur, owner, spender account.Address) (*uint256.Int, error) {
	return readAmount(tx, bucketAllowances, ledger.Key(cur[:], owner[:], spender[:]))
}

// Mint credits new cur to holder. It backs the development faucet.
func (l *Ledger) Mint(tx ledger.Tx, cur, to account.Address, amount *uint256.Int) error {
	if to.IsZero() {
		return ErrZeroRecipient
	}
	if err := l.addTo(tx, bucketSupply, cur[:], amount); err != nil {
		return err
	}
	return l.addTo(tx, bucketBalances, ledger.Key(cur[:], to[:]), amount)
}

// Transfer moves amount of cur from the frame sender to to.
func (l *Ledger) Transfer(f *ledger.Frame, cur, to account.Address, amount *uint256.Int) error {
	return l.move(f.Tx, cur, f.Sender, to, amount)
}

// TransferFrom moves amount of cur from from to to, spending the frame
// sender's allowance unless the sender is from.
func (l *Ledger) TransferFrom(f *ledger.Frame, cur, from, to account.Address, amount *uint256.Int) error {
	if f.Sender != from {
		key := ledger.Key(cur[:], from[:], f.Sender[:])
		allowed, err := readAmount(f.Tx, bucketAllowances, key)
		if err != nil {
			return err
		}
		if allowed.Lt(amount) {
			return ErrInsufficientAllowance
		}
		if err := writeAmount(f.Tx, bucketAllowances, key, new(uint256.Int).Sub(allowed, amount)); err != nil {
			return err
		}
	}
	return l.move(f.Tx, cur, from, to, amount)
}

// Approve sets the frame sender's allowance of cur for spender.
func (l *Ledger) Approve(f *ledger.Frame, cur, spender account.Address, amount *uint256.Int) error {
	if spender.IsZero() {
		return ErrZeroSpender
	}
	return writeAmount(f.Tx, bucketAllowances, ledger.Key(cur[:], f.Sender[:], spender[:]), amount)
}

// Deposit wraps amount of the sender's native coin.
func (l *Ledger) Deposit(f *ledger.Frame, amount *uint256.Int) error {
	if err := l.move(f.Tx, Native, f.Sender, l.wrapped, amount); err != nil {
		return err
	}
	if err := l.addTo(f.Tx, bucketSupply, l.wrapped[:], amount); err != nil {
		return err
	}
	return l.addTo(f.Tx, bucketBalances, ledger.Key(l.wrapped[:], f.Sender[:]), amount)
}

// Withdraw unwraps amount of the sender's wrapped coin back to native.
func (l *Ledger) Withdraw(f *ledger.Frame, amount *uint256.Int) error {
	if err := l.subFrom(f.Tx, bucketBalances, ledger.Key(l.wrapped[:], f.Sender[:]), amount); err != nil {
		return err
	}
	if err := l.subFrom(f.Tx, bucketSupply, l.wrapped[:], amount); err != nil {
		return err
	}
	return l.move(f.Tx, Native, l.wrapped, f.Sender, amount)
}

func (l *Ledger) move(tx ledger.Tx, cur, from, to account.Address, amount *uint256.Int) error {
	if to.IsZero() {
		return ErrZeroRecipient
	}
	if err := l.subFrom(tx, bucketBalances, ledger.Key(cur[:], from[:]), amount); err != nil {
		return err
	}
	return l.addTo(tx, bucketBalances, ledger.Key(cur[:], to[:]), amount)
}

func (l *Ledger) addTo(tx ledger.Tx, bucket, key []byte, amount *uint256.Int) error {
	cur, err := readAmount(tx, bucket, key)
	if err != nil {
		return err
	}
	sum, overflow := new(uint256.Int).AddOverflow(cur, amount)
	if overflow {
		return ErrOverflow
	}
	return writeAmount(tx, bucket, key, sum)
}

func (l *Ledger) subFrom(tx ledger.Tx, bucket, key []byte, amount *uint256.Int) error {
	cur, err := readAmount(tx, bucket, key)
	if err != nil {
		return err
	}
	if cur.Lt(amount) {
		return ErrInsufficientBalance
	}
	return writeAmount(tx, bucket, key, new(uint256.Int).Sub(cur, amount))
}

func readAmount(tx ledger.Tx, bucket, key []byte) (*uint256.Int, error) {
	data, err := tx.Get(bucket, key)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(data), nil
}

func writeAmount(tx ledger.Tx, bucket, key []byte, v *uint256.Int) error {
	if v.IsZero() {
		return tx.Delete(bucket, key)
	}
	b := v.Bytes32()
	return tx.Put(bucket, key, b[:])
}
