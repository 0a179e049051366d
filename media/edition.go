package media

import (
	"fmt"

	"github.com/bitfsorg/armarket-go/access"
	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/eip712"
	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/ledger"
	"github.com/bitfsorg/armarket-go/market"
	"github.com/bitfsorg/armarket-go/revshare"
	"github.com/holiman/uint256"
)

// MintArObject mints one chunk of an edition signed by creator.
//
// The chunks of an edition are submitted in order, starting at batch
// offset 0, and together cover editions 1..EditionOf. The first chunk
// checks the deadline, consumes the creator's nonce and claims the key
// pair. Later chunks must carry the same signed parameters and continue
// exactly where the previous chunk stopped. Only the media owner or the
// market's mint relayer may submit.
func (m *Media) MintArObject(f *ledger.Frame, creator account.Address, batch EditionBatch, data EditionData, shares revshare.BidShares, auth Authorization) ([]uint64, error) {
	if err := m.requireRelayer(f); err != nil {
		return nil, err
	}
	cfg, err := m.Config(f.Tx)
	if err != nil {
		return nil, err
	}
	if err := checkEdition(batch, data, cfg.MaxEditionOf); err != nil {
		return nil, err
	}

	digest := eip712.Digest(m.domain, data.message(auth.Deadline))
	first := data.BatchOffset == 0
	if first && f.Unix() > auth.Deadline {
		return nil, ErrArObjectExpired
	}
	signer, err := eip712.Recover(digest, auth.Signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArObjectSignatureInvalid, err)
	}
	if creator.IsZero() || signer != creator {
		return nil, ErrArObjectSignatureInvalid
	}

	pair := pairKey(data.AwKeyHex, data.ObjKeyHex)
	var ed edition
	if first {
		if ed, err = m.openEdition(f.Tx, creator, data, pair, digest); err != nil {
			return nil, err
		}
	} else {
		ok, err := ledger.GetGob(f.Tx, bucketEditions, pair, &ed)
		if err != nil {
			return nil, err
		}
		if !ok || ed.Minted != data.BatchOffset {
			return nil, ErrArObjectInvalidData
		}
		if ed.Creator != creator || ed.Digest != digest {
			return nil, ErrArObjectEditionMismatch
		}
	}

	ids := make([]uint64, 0, data.BatchSize)
	for i := range batch.TokenURIs {
		item := MintData{
			TokenURI:      batch.TokenURIs[i],
			MetadataURI:   batch.MetadataURIs[i],
			AwKeyHex:      data.AwKeyHex,
			ObjKeyHex:     data.ObjKeyHex,
			ContentHash:   batch.ContentHashes[i],
			MetadataHash:  batch.MetadataHashes[i],
			EditionOf:     data.EditionOf,
			EditionNumber: data.BatchOffset + uint64(i) + 1,
		}
		if err := checkData(item); err != nil {
			return nil, err
		}
		if err := m.checkUnique(f.Tx, item.ContentHash, item.MetadataHash); err != nil {
			return nil, err
		}
		id, err := m.mintOne(f, creator, item, shares)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	ed.Minted += data.BatchSize
	if err := ledger.PutGob(f.Tx, bucketEditions, pair, ed); err != nil {
		return nil, err
	}

	if data.SetInitialAsk {
		mf := f.As(m.self)
		ask := market.Ask{Currency: data.Currency, Amount: data.InitialAsk}
		for _, id := range ids {
			if err := m.mkt.SetAsk(mf, id, ask); err != nil {
				return nil, err
			}
		}
	}

	f.Emit(event.TokenObjectMinted, ids[0], MintedObject{
		Creator:  creator,
		TokenIDs: ids,
		Data: MediaData{
			AwKeyHex:      data.AwKeyHex,
			ObjKeyHex:     data.ObjKeyHex,
			EditionOf:     data.EditionOf,
			EditionNumber: data.BatchOffset + 1,
		},
	})
	return ids, nil
}

// MintArObjectNonce returns the highest edition nonce creator has used.
// The next edition must be signed with a strictly greater nonce.
func (m *Media) MintArObjectNonce(tx ledger.Tx, creator account.Address) (*uint256.Int, error) {
	data, err := tx.Get(bucketObjectNonces, creator[:])
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(data), nil
}

// EditionProgress reports how many tokens of the edition keyed by the
// artwork/object pair have been minted, and its size. ok is false if no
// edition was started for the pair.
func (m *Media) EditionProgress(tx ledger.Tx, awKeyHex, objKeyHex [32]byte) (minted, editionOf uint64, ok bool, err error) {
	var ed edition
	ok, err = ledger.GetGob(tx, bucketEditions, pairKey(awKeyHex, objKeyHex), &ed)
	return ed.Minted, ed.EditionOf, ok, err
}

func (m *Media) requireRelayer(f *ledger.Frame) error {
	owner, err := m.owner.Owner(f.Tx)
	if err != nil {
		return err
	}
	if !owner.IsZero() && f.Sender == owner {
		return nil
	}
	cfg, err := m.mkt.Config(f.Tx)
	if err != nil {
		return err
	}
	if !cfg.Mint.IsZero() && f.Sender == cfg.Mint {
		return nil
	}
	return access.ErrNotOwner
}

// openEdition consumes the nonce and claims the key pair for a new edition.
func (m *Media) openEdition(tx ledger.Tx, creator account.Address, data EditionData, pair []byte, digest eip712.Hash) (edition, error) {
	last, err := m.MintArObjectNonce(tx, creator)
	if err != nil {
		return edition{}, err
	}
	if !data.Nonce.Gt(last) {
		return edition{}, ErrArObjectInvalidNonce
	}
	used, err := ledger.Has(tx, bucketPairs, pair)
	if err != nil {
		return edition{}, err
	}
	if used {
		return edition{}, ErrArObjectPairMinted
	}

	nonce := data.Nonce.Bytes32()
	if err := tx.Put(bucketObjectNonces, creator[:], nonce[:]); err != nil {
		return edition{}, err
	}
	next, err := ledger.GetUint64(tx, bucketConfig, keyNextID)
	if err != nil {
		return edition{}, err
	}
	if err := tx.Put(bucketPairs, pair, ledger.U64(next)); err != nil {
		return edition{}, err
	}
	return edition{Creator: creator, EditionOf: data.EditionOf, Digest: digest}, nil
}

func checkEdition(batch EditionBatch, data EditionData, maxEditionOf uint64) error {
	n := data.BatchSize
	if n == 0 ||
		uint64(len(batch.TokenURIs)) != n ||
		uint64(len(batch.MetadataURIs)) != n ||
		uint64(len(batch.ContentHashes)) != n ||
		uint64(len(batch.MetadataHashes)) != n {
		return ErrArObjectInvalidData
	}
	if data.EditionOf == 0 {
		return ErrEditionOfZero
	}
	if data.EditionOf > maxEditionOf {
		return ErrEditionTooLarge
	}
	if data.BatchOffset >= data.EditionOf || n > data.EditionOf-data.BatchOffset {
		return ErrArObjectInvalidData
	}
	if data.SetInitialAsk && data.InitialAsk.IsZero() {
		return ErrArObjectInitialAskZero
	}
	return nil
}

func (d EditionData) message(deadline uint64) eip712.MintArObject {
	return eip712.MintArObject{
		AwKeyHash:     KeyHash(d.AwKeyHex),
		ObjKeyHash:    KeyHash(d.ObjKeyHex),
		EditionOf:     *uint256.NewInt(d.EditionOf),
		SetInitialAsk: d.SetInitialAsk,
		InitialAsk:    d.InitialAsk,
		Nonce:         d.Nonce,
		Deadline:      *uint256.NewInt(deadline),
	}
}
