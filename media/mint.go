package media

import (
	"fmt"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/eip712"
	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/ledger"
	"github.com/bitfsorg/armarket-go/market"
	"github.com/bitfsorg/armarket-go/revshare"
)

// Mint creates a token owned by the sender, who is also its creator.
func (m *Media) Mint(f *ledger.Frame, data MintData, shares revshare.BidShares) (uint64, error) {
	if err := m.checkMint(f.Tx, data, ErrPairMinted); err != nil {
		return 0, err
	}
	return m.mintSingle(f, f.Sender, data, shares)
}

// MintWithSig creates a token for creator from a signature the creator
// made over the token's hashes, its creator share, the creator's current
// nonce and a deadline. Any relayer may submit it.
func (m *Media) MintWithSig(f *ledger.Frame, creator account.Address, data MintData, shares revshare.BidShares, nonce uint64, auth Authorization) (uint64, error) {
	if f.Unix() > auth.Deadline {
		return 0, ErrMintWithSigExpired
	}

	msg := MintMessage(data, shares.Creator, nonce, auth.Deadline)
	signer, err := eip712.RecoverMessage(m.domain, msg, auth.Signature)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMintWithSigInvalid, err)
	}
	if creator.IsZero() || signer != creator {
		return 0, ErrMintWithSigInvalid
	}

	current, err := m.MintWithSigNonce(f.Tx, creator)
	if err != nil {
		return 0, err
	}
	if nonce != current {
		return 0, ErrMintWithSigInvalidNonce
	}
	if err := m.checkMint(f.Tx, data, ErrMintWithSigPairMinted); err != nil {
		return 0, err
	}
	if err := ledger.PutUint64(f.Tx, bucketSigNonces, creator[:], current+1); err != nil {
		return 0, err
	}
	return m.mintSingle(f, creator, data, shares)
}

// MintWithSigNonce returns the nonce the next MintWithSig of creator must carry.
func (m *Media) MintWithSigNonce(tx ledger.Tx, creator account.Address) (uint64, error) {
	return ledger.GetUint64(tx, bucketSigNonces, creator[:])
}

func (m *Media) mintSingle(f *ledger.Frame, creator account.Address, data MintData, shares revshare.BidShares) (uint64, error) {
	id, err := m.mintOne(f, creator, data, shares)
	if err != nil {
		return 0, err
	}
	if err := f.Tx.Put(bucketPairs, pairKey(data.AwKeyHex, data.ObjKeyHex), ledger.U64(id)); err != nil {
		return 0, err
	}
	f.Emit(event.TokenObjectMinted, id, MintedObject{
		Creator:  creator,
		TokenIDs: []uint64{id},
		Data:     data.media(),
	})
	return id, nil
}

// checkMint validates one token's data and its dedupe keys. pairErr is
// the rejection reported for an already minted key pair.
func (m *Media) checkMint(tx ledger.Tx, data MintData, pairErr error) error {
	if err := checkData(data); err != nil {
		return err
	}
	if err := m.checkUnique(tx, data.ContentHash, data.MetadataHash); err != nil {
		return err
	}
	used, err := ledger.Has(tx, bucketPairs, pairKey(data.AwKeyHex, data.ObjKeyHex))
	if err != nil {
		return err
	}
	if used {
		return pairErr
	}
	return nil
}

func checkData(data MintData) error {
	switch {
	case data.ContentHash == [32]byte{}:
		return ErrContentHashZero
	case data.MetadataHash == [32]byte{}:
		return ErrMetadataHashZero
	case data.TokenURI == "" || data.MetadataURI == "":
		return ErrURIEmpty
	case data.EditionOf == 0:
		return ErrEditionOfZero
	case data.EditionNumber == 0:
		return ErrEditionNumberZero
	case data.EditionNumber > data.EditionOf:
		return ErrEditionNumberRange
	}
	return nil
}

func (m *Media) checkUnique(tx ledger.Tx, content, metadata [32]byte) error {
	used, err := ledger.Has(tx, bucketContent, content[:])
	if err != nil {
		return err
	}
	if used {
		return ErrContentHashUsed
	}
	used, err = ledger.Has(tx, bucketMetadata, metadata[:])
	if err != nil {
		return err
	}
	if used {
		return ErrMetadataHashUsed
	}
	return nil
}

// mintOne creates the next token for creator, consumes its hashes and
// writes its first-sale shares through the market. The key pair is
// marked by the caller.
func (m *Media) mintOne(f *ledger.Frame, creator account.Address, data MintData, supplied revshare.BidShares) (uint64, error) {
	mf, err := m.requireMarket(f)
	if err != nil {
		return 0, err
	}
	cfg, err := m.mkt.Config(f.Tx)
	if err != nil {
		return 0, err
	}
	shares, err := revshare.FirstSaleShares(supplied, cfg.PlatformCuts, cfg.EnforceCuts)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", market.ErrInvalidBidShares, err)
	}

	id, err := ledger.GetUint64(f.Tx, bucketConfig, keyNextID)
	if err != nil {
		return 0, err
	}
	if err := ledger.PutUint64(f.Tx, bucketConfig, keyNextID, id+1); err != nil {
		return 0, err
	}
	if err := m.reg.Mint(f, creator, id); err != nil {
		return 0, err
	}

	err = m.putToken(f.Tx, id, Token{
		Creator:       creator,
		PreviousOwner: creator,
		ContentHash:   data.ContentHash,
		MetadataHash:  data.MetadataHash,
		TokenURI:      data.TokenURI,
		MetadataURI:   data.MetadataURI,
		Media:         data.media(),
	})
	if err != nil {
		return 0, err
	}
	if err := f.Tx.Put(bucketContent, data.ContentHash[:], ledger.U64(id)); err != nil {
		return 0, err
	}
	if err := f.Tx.Put(bucketMetadata, data.MetadataHash[:], ledger.U64(id)); err != nil {
		return 0, err
	}
	if err := m.addCreated(f.Tx, creator, id); err != nil {
		return 0, err
	}
	if err := m.mkt.SetBidShares(mf, id, shares); err != nil {
		return 0, err
	}
	return id, nil
}

func (m *Media) addCreated(tx ledger.Tx, creator account.Address, id uint64) error {
	n, err := m.CreatorBalanceOf(tx, creator)
	if err != nil {
		return err
	}
	if err := tx.Put(bucketCreatorTokens, ledger.Key(creator[:], ledger.U64(n)), ledger.U64(id)); err != nil {
		return err
	}
	return ledger.PutUint64(tx, bucketCreatorCount, creator[:], n+1)
}

func (d MintData) media() MediaData {
	return MediaData{
		AwKeyHex:      d.AwKeyHex,
		ObjKeyHex:     d.ObjKeyHex,
		EditionOf:     d.EditionOf,
		EditionNumber: d.EditionNumber,
	}
}

func pairKey(awKeyHex, objKeyHex [32]byte) []byte {
	h := pairHash(awKeyHex, objKeyHex)
	return h[:]
}
