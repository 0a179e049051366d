package media

import (
	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/ledger"
	"github.com/bitfsorg/armarket-go/registry"
)

// Token returns the stored record of id, including burned tokens.
func (m *Media) Token(tx ledger.Tx, id uint64) (Token, error) {
	return m.token(tx, id)
}

// OwnerOf returns the owner of a live token.
func (m *Media) OwnerOf(tx ledger.Tx, id uint64) (account.Address, error) {
	return m.reg.OwnerOf(tx, id)
}

// IsApprovedOrOwner reports whether spender may manage id.
func (m *Media) IsApprovedOrOwner(tx ledger.Tx, spender account.Address, id uint64) (bool, error) {
	return m.reg.IsApprovedOrOwner(tx, spender, id)
}

// BalanceOf returns the number of live tokens owner holds.
func (m *Media) BalanceOf(tx ledger.Tx, owner account.Address) (uint64, error) {
	return m.reg.BalanceOf(tx, owner)
}

// TotalSupply returns the number of live tokens.
func (m *Media) TotalSupply(tx ledger.Tx) (uint64, error) {
	return m.reg.TotalSupply(tx)
}

func (m *Media) TokenByIndex(tx ledger.Tx, i uint64) (uint64, error) {
	return m.reg.TokenByIndex(tx, i)
}

func (m *Media) TokenOfOwnerByIndex(tx ledger.Tx, owner account.Address, i uint64) (uint64, error) {
	return m.reg.TokenOfOwnerByIndex(tx, owner, i)
}

func (m *Media) GetApproved(tx ledger.Tx, id uint64) (account.Address, error) {
	return m.reg.GetApproved(tx, id)
}

func (m *Media) IsApprovedForAll(tx ledger.Tx, owner, operator account.Address) (bool, error) {
	return m.reg.IsApprovedForAll(tx, owner, operator)
}

// TokenCreator returns the creator of id.
func (m *Media) TokenCreator(tx ledger.Tx, id uint64) (account.Address, error) {
	t, err := m.token(tx, id)
	return t.Creator, err
}

// PreviousTokenOwner returns the seller of the last settled trade of id,
// or its creator if it was never sold. It is zero once burned.
func (m *Media) PreviousTokenOwner(tx ledger.Tx, id uint64) (account.Address, error) {
	t, err := m.token(tx, id)
	return t.PreviousOwner, err
}

func (m *Media) TokenContentHash(tx ledger.Tx, id uint64) ([32]byte, error) {
	t, err := m.token(tx, id)
	return t.ContentHash, err
}

func (m *Media) TokenMetadataHash(tx ledger.Tx, id uint64) ([32]byte, error) {
	t, err := m.token(tx, id)
	return t.MetadataHash, err
}

// TokenURI returns the content URI of id. It is empty once burned.
func (m *Media) TokenURI(tx ledger.Tx, id uint64) (string, error) {
	t, err := m.token(tx, id)
	return t.TokenURI, err
}

// TokenMetadataURI returns the metadata URI of id. It is empty once burned.
func (m *Media) TokenMetadataURI(tx ledger.Tx, id uint64) (string, error) {
	t, err := m.token(tx, id)
	return t.MetadataURI, err
}

// TokenMediaData returns the edition placement of id.
func (m *Media) TokenMediaData(tx ledger.Tx, id uint64) (MediaData, error) {
	t, err := m.token(tx, id)
	return t.Media, err
}

// ObjKeyHex returns the object key id was minted under.
func (m *Media) ObjKeyHex(tx ledger.Tx, id uint64) ([32]byte, error) {
	t, err := m.token(tx, id)
	return t.Media.ObjKeyHex, err
}

// CreatorBalanceOf returns how many tokens creator has ever minted.
func (m *Media) CreatorBalanceOf(tx ledger.Tx, creator account.Address) (uint64, error) {
	return ledger.GetUint64(tx, bucketCreatorCount, creator[:])
}

// TokenOfCreatorByIndex returns the i-th token minted by creator. Burned
// tokens keep their slot.
func (m *Media) TokenOfCreatorByIndex(tx ledger.Tx, creator account.Address, i uint64) (uint64, error) {
	data, err := tx.Get(bucketCreatorTokens, ledger.Key(creator[:], ledger.U64(i)))
	if err != nil {
		return 0, err
	}
	if data == nil {
		return 0, registry.ErrIndexOutOfBounds
	}
	return ledger.ParseU64(data)
}
