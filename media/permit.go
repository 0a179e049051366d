package media

import (
	"fmt"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/eip712"
	"github.com/bitfsorg/armarket-go/ledger"
)

// Permit makes spender the approved address of id on the strength of a
// signature by the token's current owner. Each (owner, token) pair has
// its own nonce.
func (m *Media) Permit(f *ledger.Frame, spender account.Address, id uint64, auth Authorization) error {
	if f.Unix() > auth.Deadline {
		return ErrPermitExpired
	}
	owner, err := m.reg.OwnerOf(f.Tx, id)
	if err != nil {
		return err
	}
	nonce, err := m.PermitNonce(f.Tx, owner, id)
	if err != nil {
		return err
	}

	msg := PermitMessage(spender, id, nonce, auth.Deadline)
	signer, err := eip712.RecoverMessage(m.domain, msg, auth.Signature)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPermitSignatureInvalid, err)
	}
	if signer != owner {
		return ErrPermitSignatureInvalid
	}

	if err := ledger.PutUint64(f.Tx, bucketPermitNonces, permitKey(owner, id), nonce+1); err != nil {
		return err
	}
	return m.reg.ForceApprove(f, spender, id)
}

// PermitNonce returns the nonce the next permit of owner for id must be signed with.
func (m *Media) PermitNonce(tx ledger.Tx, owner account.Address, id uint64) (uint64, error) {
	return ledger.GetUint64(tx, bucketPermitNonces, permitKey(owner, id))
}

func permitKey(owner account.Address, id uint64) []byte {
	return ledger.Key(owner[:], ledger.U64(id))
}
