package media

import (
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/holiman/uint256"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/decimal"
	"github.com/bitfsorg/armarket-go/eip712"
)

// MintMessage is the typed-data message a creator signs to authorize
// MintWithSig of data.
func MintMessage(data MintData, creatorShare decimal.Decimal, nonce, deadline uint64) eip712.MintWithSig {
	return eip712.MintWithSig{
		AwKeyHash:    KeyHash(data.AwKeyHex),
		ObjKeyHash:   KeyHash(data.ObjKeyHex),
		ContentHash:  data.ContentHash,
		MetadataHash: data.MetadataHash,
		CreatorShare: creatorShare.Value,
		Nonce:        *uint256.NewInt(nonce),
		Deadline:     *uint256.NewInt(deadline),
	}
}

// PermitMessage is the typed-data message an owner signs to approve spender for id.
func PermitMessage(spender account.Address, id, nonce, deadline uint64) eip712.Permit {
	return eip712.Permit{
		Spender:  spender,
		TokenID:  *uint256.NewInt(id),
		Nonce:    *uint256.NewInt(nonce),
		Deadline: *uint256.NewInt(deadline),
	}
}

// EditionMessage is the typed-data message a creator signs once for every
// chunk of an edition.
func EditionMessage(data EditionData, deadline uint64) eip712.MintArObject {
	return data.message(deadline)
}

// SignMint authorizes MintWithSig of data under domain.
func SignMint(priv *ec.PrivateKey, domain eip712.Domain, data MintData, creatorShare decimal.Decimal, nonce, deadline uint64) (Authorization, error) {
	return sign(priv, domain, MintMessage(data, creatorShare, nonce, deadline), deadline)
}

// SignEdition authorizes MintArObject of the edition described by data.
func SignEdition(priv *ec.PrivateKey, domain eip712.Domain, data EditionData, deadline uint64) (Authorization, error) {
	return sign(priv, domain, EditionMessage(data, deadline), deadline)
}

// SignPermit authorizes Permit of spender for id.
func SignPermit(priv *ec.PrivateKey, domain eip712.Domain, spender account.Address, id, nonce, deadline uint64) (Authorization, error) {
	return sign(priv, domain, PermitMessage(spender, id, nonce, deadline), deadline)
}

func sign(priv *ec.PrivateKey, domain eip712.Domain, msg eip712.Message, deadline uint64) (Authorization, error) {
	sig, err := eip712.SignMessage(priv, domain, msg)
	if err != nil {
		return Authorization{}, err
	}
	return Authorization{Deadline: deadline, Signature: sig}, nil
}
