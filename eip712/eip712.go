// Package eip712 hashes the typed authorization messages accepted by the
// media layer and recovers their signer.
//
// Verification is a pure function of the domain, the message and the
// signature: it never touches ledger state, so nonce and deadline policy
// stay with the caller.
package eip712

import (
	"github.com/bitfsorg/armarket-go/account"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
)

// HashLength is the length of every typed-data hash.
const HashLength = 32

// Hash is a keccak256 digest.
type Hash [HashLength]byte

var (
	domainTypeHash = typeHash("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)")

	mintWithSigTypeHash = typeHash("MintWithSig(bytes32 awKeyHash,bytes32 objKeyHash,bytes32 contentHash,bytes32 metadataHash,uint256 creatorShare,uint256 nonce,uint256 deadline)")

	mintArObjectTypeHash = typeHash("MintArObject(bytes32 awKeyHash,bytes32 objKeyHash,uint256 editionOf,bool setInitialAsk,uint256 initialAsk,uint256 nonce,uint256 deadline)")

	permitTypeHash = typeHash("Permit(address spender,uint256 tokenId,uint256 nonce,uint256 deadline)")
)

// Domain binds signatures to one deployment.
type Domain struct {
	Name              string
	Version           string
	ChainID           uint64
	VerifyingContract account.Address
}

// Separator returns hashStruct(EIP712Domain).
func (d Domain) Separator() Hash {
	return keccak(
		domainTypeHash[:],
		keccakBytes([]byte(d.Name)),
		keccakBytes([]byte(d.Version)),
		word(uint256.NewInt(d.ChainID)),
		addressWord(d.VerifyingContract),
	)
}

// Message is a typed struct with an EIP-712 struct hash.
type Message interface {
	StructHash() Hash
}

// Digest returns keccak256(0x19 0x01 || domainSeparator || hashStruct(m)),
// the value that is actually signed.
func Digest(d Domain, m Message) Hash {
	sep := d.Separator()
	sh := m.StructHash()
	return keccak([]byte{0x19, 0x01}, sep[:], sh[:])
}

// MintWithSig authorizes a single mint on behalf of a creator.
type MintWithSig struct {
	AwKeyHash    [32]byte
	ObjKeyHash   [32]byte
	ContentHash  [32]byte
	MetadataHash [32]byte
	CreatorShare uint256.Int
	Nonce        uint256.Int
	Deadline     uint256.Int
}

func (m MintWithSig) StructHash() Hash {
	return keccak(
		mintWithSigTypeHash[:],
		m.AwKeyHash[:],
		m.ObjKeyHash[:],
		m.ContentHash[:],
		m.MetadataHash[:],
		word(&m.CreatorShare),
		word(&m.Nonce),
		word(&m.Deadline),
	)
}

// MintArObject authorizes a whole edition sharing one artwork/object key pair.
type MintArObject struct {
	AwKeyHash     [32]byte
	ObjKeyHash    [32]byte
	EditionOf     uint256.Int
	SetInitialAsk bool
	InitialAsk    uint256.Int
	Nonce         uint256.Int
	Deadline      uint256.Int
}

func (m MintArObject) StructHash() Hash {
	var flag uint256.Int
	if m.SetInitialAsk {
		flag.SetOne()
	}
	return keccak(
		mintArObjectTypeHash[:],
		m.AwKeyHash[:],
		m.ObjKeyHash[:],
		word(&m.EditionOf),
		word(&flag),
		word(&m.InitialAsk),
		word(&m.Nonce),
		word(&m.Deadline),
	)
}

// Permit authorizes spender as the approved address of a token.
type Permit struct {
	Spender  account.Address
	TokenID  uint256.Int
	Nonce    uint256.Int
	Deadline uint256.Int
}

func (m Permit) StructHash() Hash {
	return keccak(
		permitTypeHash[:],
		addressWord(m.Spender),
		word(&m.TokenID),
		word(&m.Nonce),
		word(&m.Deadline),
	)
}

func typeHash(signature string) Hash {
	return keccak([]byte(signature))
}

func keccak(parts ...[]byte) Hash {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var out Hash
	h.Sum(out[:0])
	return out
}

func keccakBytes(b []byte) []byte {
	h := keccak(b)
	return h[:]
}

func word(v *uint256.Int) []byte {
	b := v.Bytes32()
	return b[:]
}

func addressWord(a account.Address) []byte {
	var w [32]byte
	copy(w[12:], a[:])
	return w[:]
}
