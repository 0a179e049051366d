package media

import (
	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/eip712"
	"github.com/holiman/uint256"
)

// MintData describes a single token to mint.
type MintData struct {
	TokenURI      string   `json:"token_uri"`
	MetadataURI   string   `json:"metadata_uri"`
	AwKeyHex      [32]byte `json:"aw_key_hex"`
	ObjKeyHex     [32]byte `json:"obj_key_hex"`
	ContentHash   [32]byte `json:"content_hash"`
	MetadataHash  [32]byte `json:"metadata_hash"`
	EditionOf     uint64   `json:"edition_of"`
	EditionNumber uint64   `json:"edition_number"`
}

// EditionData carries the signed parameters of an edition plus the
// position of the chunk being submitted.
type EditionData struct {
	AwKeyHex      [32]byte        `json:"aw_key_hex"`
	ObjKeyHex     [32]byte        `json:"obj_key_hex"`
	EditionOf     uint64          `json:"edition_of"`
	InitialAsk    uint256.Int     `json:"initial_ask"`
	BatchSize     uint64          `json:"batch_size"`
	BatchOffset   uint64          `json:"batch_offset"`
	Nonce         uint256.Int     `json:"nonce"`
	Currency      account.Address `json:"currency"`
	SetInitialAsk bool            `json:"set_initial_ask"`
}

// EditionBatch holds the per-token values of one chunk. All four slices
// must have BatchSize entries.
type EditionBatch struct {
	TokenURIs      []string   `json:"token_uris"`
	MetadataURIs   []string   `json:"metadata_uris"`
	ContentHashes  [][32]byte `json:"content_hashes"`
	MetadataHashes [][32]byte `json:"metadata_hashes"`
}

// Authorization is an off-band signature together with the deadline it
// was signed with, in seconds since the epoch.
type Authorization struct {
	Deadline  uint64           `json:"deadline"`
	Signature eip712.Signature `json:"signature"`
}

// MediaData is the edition placement of a token.
type MediaData struct {
	AwKeyHex      [32]byte `json:"aw_key_hex"`
	ObjKeyHex     [32]byte `json:"obj_key_hex"`
	EditionOf     uint64   `json:"edition_of"`
	EditionNumber uint64   `json:"edition_number"`
}

// Token is the stored record of a minted token. Burning clears the URIs
// and the previous owner but keeps the hashes, which stay consumed.
type Token struct {
	Creator       account.Address
	PreviousOwner account.Address
	ContentHash   [32]byte
	MetadataHash  [32]byte
	TokenURI      string
	MetadataURI   string
	Media         MediaData
	Burned        bool
}

// Config is the media configuration. Version increases on every change.
type Config struct {
	Version      uint64          `json:"version"`
	Market       account.Address `json:"market"`
	MaxEditionOf uint64          `json:"max_edition_of"`
}

// DefaultMaxEditionOf bounds the size of a single edition.
const DefaultMaxEditionOf = 1_000_000

// MintedObject is the payload of event.TokenObjectMinted. A chunk of an
// edition reports only the ids it minted.
type MintedObject struct {
	Creator  account.Address `json:"creator"`
	TokenIDs []uint64        `json:"token_ids"`
	Data     MediaData       `json:"data"`
}

// URIData is the payload of event.TokenURIUpdated and event.MetadataUpdated.
type URIData struct {
	Owner account.Address `json:"owner"`
	URI   string          `json:"uri"`
}

type edition struct {
	Creator   account.Address
	EditionOf uint64
	Minted    uint64
	Digest    eip712.Hash
}
