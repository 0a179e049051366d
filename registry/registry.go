// Package registry is the non-fungible token core: ownership, single-token
// approvals, operator approvals and enumeration.
//
// It performs no marketplace policy. The media layer decides who may mint
// or burn and calls in here to move ownership.
package registry

import (
	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/ledger"
)

var (
	bucketOwners     = []byte("registry_owners")
	bucketApprovals  = []byte("registry_approvals")
	bucketOperators  = []byte("registry_operators")
	bucketBalances   = []byte("registry_balances")
	bucketAll        = []byte("registry_all")
	bucketAllIndex   = []byte("registry_all_index")
	bucketOwned      = []byte("registry_owned")
	bucketOwnedIndex = []byte("registry_owned_index")
	bucketMeta       = []byte("registry_meta")

	keySupply = []byte("supply")
	flagSet   = []byte{1}
)

// TransferData is the payload of event.Transfer. Mints come from the zero
// address and burns go to it.
type TransferData struct {
	From account.Address `json:"from"`
	To   account.Address `json:"to"`
}

// ApprovalData is the payload of event.Approval.
type ApprovalData struct {
	Owner    account.Address `json:"owner"`
	Approved account.Address `json:"approved"`
}

// ApprovalForAllData is the payload of event.ApprovalForAll.
type ApprovalForAllData struct {
	Owner    account.Address `json:"owner"`
	Operator account.Address `json:"operator"`
	Approved bool            `json:"approved"`
}

// Registry operates on token ownership state inside a ledger.Tx.
type Registry struct{}

// New returns a Registry.
func New() *Registry {
	return &Registry{}
}

// Exists reports whether id has an owner.
func (r *Registry) Exists(tx ledger.Tx, id uint64) (bool, error) {
	return ledger.Has(tx, bucketOwners, ledger.U64(id))
}

// OwnerOf returns the owner of id.
func (r *Registry) OwnerOf(tx ledger.Tx, id uint64) (account.Address, error) {
	data, err := tx.Get(bucketOwners, ledger.U64(id))
	if err != nil {
		return account.Zero, err
	}
	if data == nil {
		return account.Zero, ErrNonexistentToken
	}
	return account.FromBytes(data)
}

// BalanceOf returns how many tokens owner holds.
func (r *Registry) BalanceOf(tx ledger.Tx, owner account.Address) (uint64, error) {
	return ledger.GetUint64(tx, bucketBalances, owner[:])
}

// TotalSupply returns the number of live tokens.
func (r *Registry) TotalSupply(tx ledger.Tx) (uint64, error) {
	return ledger.GetUint64(tx, bucketMeta, keySupply)
}

// TokenByIndex returns the id at position i of the live-token list.
func (r *Registry) TokenByIndex(tx ledger.Tx, i uint64) (uint64, error) {
	return lookup(tx, bucketAll, ledger.U64(i))
}

// TokenOfOwnerByIndex returns the id at position i of owner's token list.
func (r *Registry) TokenOfOwnerByIndex(tx ledger.Tx, owner account.Address, i uint64) (uint64, error) {
	return lookup(tx, bucketOwned, ledger.Key(owner[:], ledger.U64(i)))
}

// GetApproved returns the approved address of id, or zero.
func (r *Registry) GetApproved(tx ledger.Tx, id uint64) (account.Address, error) {
	if _, err := r.OwnerOf(tx, id); err != nil {
		return account.Zero, err
	}
	data, err := tx.Get(bucketApprovals, ledger.U64(id))
	if err != nil || data == nil {
		return account.Zero, err
	}
	return account.FromBytes(data)
}

// IsApprovedForAll reports whether operator may manage all of owner's tokens.
func (r *Registry) IsApprovedForAll(tx ledger.Tx, owner, operator account.Address) (bool, error) {
	return ledger.Has(tx, bucketOperators, ledger.Key(owner[:], operator[:]))
}

// IsApprovedOrOwner reports whether spender owns id, is its approved
// address, or is an operator of its owner.
func (r *Registry) IsApprovedOrOwner(tx ledger.Tx, spender account.Address, id uint64) (bool, error) {
	owner, err := r.OwnerOf(tx, id)
	if err != nil {
		return false, err
	}
	if spender == owner {
		return true, nil
	}
	approved, err := r.GetApproved(tx, id)
	if err != nil {
		return false, err
	}
	if !approved.IsZero() && approved == spender {
		return true, nil
	}
	return r.IsApprovedForAll(tx, owner, spender)
}

// Mint creates id owned by to.
func (r *Registry) Mint(f *ledger.Frame, to account.Address, id uint64) error {
	if to.IsZero() {
		return ErrMintToZero
	}
	ok, err := r.Exists(f.Tx, id)
	if err != nil {
		return err
	}
	if ok {
		return ErrAlreadyMinted
	}

	supply, err := r.TotalSupply(f.Tx)
	if err != nil {
		return err
	}
	if err := f.Tx.Put(bucketAll, ledger.U64(supply), ledger.U64(id)); err != nil {
		return err
	}
	if err := f.Tx.Put(bucketAllIndex, ledger.U64(id), ledger.U64(supply)); err != nil {
		return err
	}
	if err := ledger.PutUint64(f.Tx, bucketMeta, keySupply, supply+1); err != nil {
		return err
	}
	if err := r.addOwned(f.Tx, to, id); err != nil {
		return err
	}
	f.Emit(event.Transfer, id, TransferData{From: account.Zero, To: to})
	return nil
}

// Burn destroys id. Authorization is the caller's responsibility.
func (r *Registry) Burn(f *ledger.Frame, id uint64) error {
	owner, err := r.OwnerOf(f.Tx, id)
	if err != nil {
		return err
	}
	if err := r.clearApproval(f, owner, id); err != nil {
		return err
	}
	if err := r.removeOwned(f.Tx, owner, id); err != nil {
		return err
	}
	if err := r.removeFromAll(f.Tx, id); err != nil {
		return err
	}
	f.Emit(event.Transfer, id, TransferData{From: owner, To: account.Zero})
	return nil
}

// TransferFrom moves id from from to to on behalf of the frame sender.
func (r *Registry) TransferFrom(f *ledger.Frame, from, to account.Address, id uint64) error {
	ok, err := r.IsApprovedOrOwner(f.Tx, f.Sender, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotApprovedOrOwner
	}
	return r.Transfer(f, from, to, id)
}

// Transfer moves id from from to to without checking the sender. The single
// token approval is cleared.
func (r *Registry) Transfer(f *ledger.Frame, from, to account.Address, id uint64) error {
	owner, err := r.OwnerOf(f.Tx, id)
	if err != nil {
		return err
	}
	if owner != from {
		return ErrNotOwnToken
	}
	if to.IsZero() {
		return ErrTransferToZero
	}
	if err := r.clearApproval(f, owner, id); err != nil {
		return err
	}
	if err := r.removeOwned(f.Tx, from, id); err != nil {
		return err
	}
	if err := r.addOwned(f.Tx, to, id); err != nil {
		return err
	}
	f.Emit(event.Transfer, id, TransferData{From: from, To: to})
	return nil
}

// Approve sets to as the approved address of id. The sender must be the
// owner or one of its operators.
func (r *Registry) Approve(f *ledger.Frame, to account.Address, id uint64) error {
	owner, err := r.OwnerOf(f.Tx, id)
	if err != nil {
		return err
	}
	if to == owner {
		return ErrApprovalToOwner
	}
	if f.Sender != owner {
		op, err := r.IsApprovedForAll(f.Tx, owner, f.Sender)
		if err != nil {
			return err
		}
		if !op {
			return ErrApproveNotAllowed
		}
	}
	return r.setApproval(f, owner, to, id)
}

// ForceApprove sets the approved address of id without checking the
// sender. It backs signed permits and approval revocation.
func (r *Registry) ForceApprove(f *ledger.Frame, to account.Address, id uint64) error {
	owner, err := r.OwnerOf(f.Tx, id)
	if err != nil {
		return err
	}
	return r.setApproval(f, owner, to, id)
}

// SetApprovalForAll grants or revokes operator rights over all of the
// sender's tokens.
func (r *Registry) SetApprovalForAll(f *ledger.Frame, operator account.Address, approved bool) error {
	if operator == f.Sender {
		return ErrApproveToCaller
	}
	key := ledger.Key(f.Sender[:], operator[:])
	var err error
	if approved {
		err = f.Tx.Put(bucketOperators, key, flagSet)
	} else {
		err = f.Tx.Delete(bucketOperators, key)
	}
	if err != nil {
		return err
	}
	f.Emit(event.ApprovalForAll, 0, ApprovalForAllData{Owner: f.Sender, Operator: operator, Approved: approved})
	return nil
}

func (r *Registry) setApproval(f *ledger.Frame, owner, to account.Address, id uint64) error {
	var err error
	if to.IsZero() {
		err = f.Tx.Delete(bucketApprovals, ledger.U64(id))
	} else {
		err = f.Tx.Put(bucketApprovals, ledger.U64(id), to.Bytes())
	}
	if err != nil {
		return err
	}
	f.Emit(event.Approval, id, ApprovalData{Owner: owner, Approved: to})
	return nil
}

func (r *Registry) clearApproval(f *ledger.Frame, owner account.Address, id uint64) error {
	data, err := f.Tx.Get(bucketApprovals, ledger.U64(id))
	if err != nil || data == nil {
		return err
	}
	return r.setApproval(f, owner, account.Zero, id)
}

func (r *Registry) addOwned(tx ledger.Tx, owner account.Address, id uint64) error {
	n, err := r.BalanceOf(tx, owner)
	if err != nil {
		return err
	}
	if err := tx.Put(bucketOwned, ledger.Key(owner[:], ledger.U64(n)), ledger.U64(id)); err != nil {
		return err
	}
	if err := tx.Put(bucketOwnedIndex, ledger.U64(id), ledger.U64(n)); err != nil {
		return err
	}
	if err := ledger.PutUint64(tx, bucketBalances, owner[:], n+1); err != nil {
		return err
	}
	return tx.Put(bucketOwners, ledger.U64(id), owner.Bytes())
}

// removeOwned swaps the last entry of owner's list into id's slot.
func (r *Registry) removeOwned(tx ledger.Tx, owner account.Address, id uint64) error {
	n, err := r.BalanceOf(tx, owner)
	if err != nil {
		return err
	}
	idx, err := ledger.GetUint64(tx, bucketOwnedIndex, ledger.U64(id))
	if err != nil {
		return err
	}
	last := n - 1
	if idx != last {
		moved, err := lookup(tx, bucketOwned, ledger.Key(owner[:], ledger.U64(last)))
		if err != nil {
			return err
		}
		if err := tx.Put(bucketOwned, ledger.Key(owner[:], ledger.U64(idx)), ledger.U64(moved)); err != nil {
			return err
		}
		if err := tx.Put(bucketOwnedIndex, ledger.U64(moved), ledger.U64(idx)); err != nil {
			return err
		}
	}
	if err := tx.Delete(bucketOwned, ledger.Key(owner[:], ledger.U64(last))); err != nil {
		return err
	}
	if err := tx.Delete(bucketOwnedIndex, ledger.U64(id)); err != nil {
		return err
	}
	if last == 0 {
		if err := tx.Delete(bucketBalances, owner[:]); err != nil {
			return err
		}
	} else if err := ledger.PutUint64(tx, bucketBalances, owner[:], last); err != nil {
		return err
	}
	return tx.Delete(bucketOwners, ledger.U64(id))
}

func (r *Registry) removeFromAll(tx ledger.Tx, id uint64) error {
	supply, err := r.TotalSupply(tx)
	if err != nil {
		return err
	}
	idx, err := ledger.GetUint64(tx, bucketAllIndex, ledger.U64(id))
	if err != nil {
		return err
	}
	last := supply - 1
	if idx != last {
		moved, err := lookup(tx, bucketAll, ledger.U64(last))
		if err != nil {
			return err
		}
		if err := tx.Put(bucketAll, ledger.U64(idx), ledger.U64(moved)); err != nil {
			return err
		}
		if err := tx.Put(bucketAllIndex, ledger.U64(moved), ledger.U64(idx)); err != nil {
			return err
		}
	}
	if err := tx.Delete(bucketAll, ledger.U64(last)); err != nil {
		return err
	}
	if err := tx.Delete(bucketAllIndex, ledger.U64(id)); err != nil {
		return err
	}
	return ledger.PutUint64(tx, bucketMeta, keySupply, last)
}

func lookup(tx ledger.Tx, bucket, key []byte) (uint64, error) {
	data, err := tx.Get(bucket, key)
	if err != nil {
		return 0, err
	}
	if data == nil {
		return 0, ErrIndexOutOfBounds
	}
	return ledger.ParseU64(data)
}

