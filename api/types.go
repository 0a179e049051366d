package api

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/decimal"
	"github.com/bitfsorg/armarket-go/eip712"
	"github.com/bitfsorg/armarket-go/engine"
	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/market"
	"github.com/bitfsorg/armarket-go/media"
	"github.com/bitfsorg/armarket-go/revshare"
)

// Hex32 is a 32-byte value in 0x-prefixed hex.
type Hex32 [32]byte

func (h Hex32) MarshalText() ([]byte, error) {
	return []byte("0x" + hex.EncodeToString(h[:])), nil
}

func (h *Hex32) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(strings.TrimPrefix(string(text), "0x"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if len(b) != len(h) {
		return fmt.Errorf("%w: expected 32 bytes, got %d", ErrBadRequest, len(b))
	}
	copy(h[:], b)
	return nil
}

func raw(in []Hex32) [][32]byte {
	out := make([][32]byte, len(in))
	for i, h := range in {
		out[i] = [32]byte(h)
	}
	return out
}

// Amount is an integer in the smallest currency unit, carried as a
// base-10 string so no JSON number precision is lost.
type Amount uint256.Int

func (a Amount) MarshalText() ([]byte, error) {
	v := uint256.Int(a)
	return []byte(decimal.FormatAmount(&v)), nil
}

func (a *Amount) UnmarshalText(text []byte) error {
	v, err := decimal.ParseAmount(string(text))
	if err != nil {
		return err
	}
	*a = Amount(*v)
	return nil
}

func (a *Amount) value() *uint256.Int {
	return (*uint256.Int)(a)
}

func amount(v *uint256.Int) Amount {
	if v == nil {
		return Amount{}
	}
	return Amount(*v)
}

// Ask is the wire form of market.Ask.
type Ask struct {
	Currency account.Address `json:"currency"`
	Amount   Amount          `json:"amount"`
}

func (a Ask) market() market.Ask {
	return market.Ask{Currency: a.Currency, Amount: uint256.Int(a.Amount)}
}

func askOf(a market.Ask) Ask {
	return Ask{Currency: a.Currency, Amount: Amount(a.Amount)}
}

// Bid is the wire form of market.Bid.
type Bid struct {
	Currency    account.Address `json:"currency"`
	Amount      Amount          `json:"amount"`
	Bidder      account.Address `json:"bidder"`
	Recipient   account.Address `json:"recipient"`
	SellOnShare decimal.Decimal `json:"sell_on_share"`
}

func (b Bid) market() market.Bid {
	return market.Bid{
		Currency:    b.Currency,
		Amount:      uint256.Int(b.Amount),
		Bidder:      b.Bidder,
		Recipient:   b.Recipient,
		SellOnShare: b.SellOnShare,
	}
}

func bidOf(b market.Bid) Bid {
	return Bid{
		Currency:    b.Currency,
		Amount:      Amount(b.Amount),
		Bidder:      b.Bidder,
		Recipient:   b.Recipient,
		SellOnShare: b.SellOnShare,
	}
}

// MintData is the wire form of media.MintData.
type MintData struct {
	TokenURI      string `json:"token_uri"`
	MetadataURI   string `json:"metadata_uri"`
	AwKeyHex      Hex32  `json:"aw_key_hex"`
	ObjKeyHex     Hex32  `json:"obj_key_hex"`
	ContentHash   Hex32  `json:"content_hash"`
	MetadataHash  Hex32  `json:"metadata_hash"`
	EditionOf     uint64 `json:"edition_of"`
	EditionNumber uint64 `json:"edition_number"`
}

func (d MintData) media() media.MintData {
	return media.MintData{
		TokenURI:      d.TokenURI,
		MetadataURI:   d.MetadataURI,
		AwKeyHex:      d.AwKeyHex,
		ObjKeyHex:     d.ObjKeyHex,
		ContentHash:   d.ContentHash,
		MetadataHash:  d.MetadataHash,
		EditionOf:     d.EditionOf,
		EditionNumber: d.EditionNumber,
	}
}

// EditionData is the wire form of media.EditionData.
type EditionData struct {
	AwKeyHex      Hex32           `json:"aw_key_hex"`
	ObjKeyHex     Hex32           `json:"obj_key_hex"`
	EditionOf     uint64          `json:"edition_of"`
	SetInitialAsk bool            `json:"set_initial_ask"`
	InitialAsk    Amount          `json:"initial_ask"`
	Currency      account.Address `json:"currency"`
	Nonce         Amount          `json:"nonce"`
	BatchSize     uint64          `json:"batch_size"`
	BatchOffset   uint64          `json:"batch_offset"`
}

func (d EditionData) media() media.EditionData {
	return media.EditionData{
		AwKeyHex:      d.AwKeyHex,
		ObjKeyHex:     d.ObjKeyHex,
		EditionOf:     d.EditionOf,
		SetInitialAsk: d.SetInitialAsk,
		InitialAsk:    uint256.Int(d.InitialAsk),
		Currency:      d.Currency,
		Nonce:         uint256.Int(d.Nonce),
		BatchSize:     d.BatchSize,
		BatchOffset:   d.BatchOffset,
	}
}

// EditionBatch is the wire form of media.EditionBatch.
type EditionBatch struct {
	TokenURIs      []string `json:"token_uris"`
	MetadataURIs   []string `json:"metadata_uris"`
	ContentHashes  []Hex32  `json:"content_hashes"`
	MetadataHashes []Hex32  `json:"metadata_hashes"`
}

func (b EditionBatch) media() media.EditionBatch {
	return media.EditionBatch{
		TokenURIs:      b.TokenURIs,
		MetadataURIs:   b.MetadataURIs,
		ContentHashes:  raw(b.ContentHashes),
		MetadataHashes: raw(b.MetadataHashes),
	}
}

// Authorization is a signature with the deadline it was made for.
type Authorization struct {
	Deadline  uint64           `json:"deadline"`
	Signature eip712.Signature `json:"signature"`
}

func (a Authorization) media() media.Authorization {
	return media.Authorization{Deadline: a.Deadline, Signature: a.Signature}
}

// MediaData is the wire form of media.MediaData.
type MediaData struct {
	AwKeyHex      Hex32  `json:"aw_key_hex"`
	ObjKeyHex     Hex32  `json:"obj_key_hex"`
	EditionOf     uint64 `json:"edition_of"`
	EditionNumber uint64 `json:"edition_number"`
}

func mediaDataOf(d media.MediaData) MediaData {
	return MediaData{
		AwKeyHex:      d.AwKeyHex,
		ObjKeyHex:     d.ObjKeyHex,
		EditionOf:     d.EditionOf,
		EditionNumber: d.EditionNumber,
	}
}

// Token is the wire form of engine.TokenView.
type Token struct {
	ID            uint64             `json:"id"`
	Owner         account.Address    `json:"owner"`
	Approved      account.Address    `json:"approved"`
	Creator       account.Address    `json:"creator"`
	PreviousOwner account.Address    `json:"previous_owner"`
	ContentHash   Hex32              `json:"content_hash"`
	MetadataHash  Hex32              `json:"metadata_hash"`
	TokenURI      string             `json:"token_uri"`
	MetadataURI   string             `json:"metadata_uri"`
	Media         MediaData          `json:"media"`
	Shares        revshare.BidShares `json:"bid_shares"`
	Ask           Ask                `json:"ask"`
	Burned        bool               `json:"burned"`
}

func tokenOf(v engine.TokenView) Token {
	return Token{
		ID:            v.ID,
		Owner:         v.Owner,
		Approved:      v.Approved,
		Creator:       v.Creator,
		PreviousOwner: v.PreviousOwner,
		ContentHash:   v.ContentHash,
		MetadataHash:  v.MetadataHash,
		TokenURI:      v.TokenURI,
		MetadataURI:   v.MetadataURI,
		Media:         mediaDataOf(v.Media),
		Shares:        v.Shares,
		Ask:           askOf(v.Ask),
		Burned:        v.Burned,
	}
}

// Event is the wire form of event.Event.
type Event struct {
	ID      uuid.UUID  `json:"id"`
	Kind    event.Kind `json:"kind"`
	TokenID uint64     `json:"token_id"`
	Time    time.Time  `json:"time"`
	Data    any        `json:"data,omitempty"`
}

// mintedObject is the wire form of media.MintedObject.
type mintedObject struct {
	Creator  account.Address `json:"creator"`
	TokenIDs []uint64        `json:"token_ids"`
	Data     MediaData       `json:"data"`
}

func eventOf(e event.Event) Event {
	out := Event{ID: e.ID, Kind: e.Kind, TokenID: e.TokenID, Time: e.Time, Data: e.Data}
	switch d := e.Data.(type) {
	case market.AskData:
		out.Data = struct {
			Ask Ask `json:"ask"`
		}{askOf(d.Ask)}
	case market.BidData:
		out.Data = struct {
			Bid Bid `json:"bid"`
		}{bidOf(d.Bid)}
	case media.MintedObject:
		out.Data = mintedObject{Creator: d.Creator, TokenIDs: d.TokenIDs, Data: mediaDataOf(d.Data)}
	}
	return out
}

func eventsOf(in []event.Event) []Event {
	out := make([]Event, len(in))
	for i, e := range in {
		out[i] = eventOf(e)
	}
	return out
}

// Receipt is the response to every mutation.
type Receipt struct {
	TokenIDs []uint64 `json:"token_ids,omitempty"`
	Events   []Event  `json:"events"`
}

func receiptOf(r *engine.Receipt) Receipt {
	return Receipt{TokenIDs: r.TokenIDs, Events: eventsOf(r.Events)}
}

// Domain is the typed-data domain clients sign under.
type Domain struct {
	Name              string          `json:"name"`
	Version           string          `json:"version"`
	ChainID           uint64          `json:"chain_id"`
	VerifyingContract account.Address `json:"verifying_contract"`
}

// Info describes the deployment.
type Info struct {
	Addresses engine.Addresses `json:"addresses"`
	Domain    Domain           `json:"domain"`
	Market    market.Config    `json:"market"`
	Media     media.Config     `json:"media"`
}

// Error is the body of every failed request.
type Error struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}
