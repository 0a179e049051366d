// Package event defines the notifications emitted by marketplace calls and
// the sinks they are delivered to once a call commits.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Kind names a notification.
type Kind string

const (
	AskCreated        Kind = "ask_created"
	AskRemoved        Kind = "ask_removed"
	BidCreated        Kind = "bid_created"
	BidRemoved        Kind = "bid_removed"
	BidFinalized      Kind = "bid_finalized"
	BidShareUpdated   Kind = "bid_share_updated"
	TokenObjectMinted Kind = "token_object_minted"
	TokenURIUpdated   Kind = "token_uri_updated"
	MetadataUpdated   Kind = "token_metadata_uri_updated"
	Transfer          Kind = "transfer"
	Approval          Kind = "approval"
	ApprovalForAll    Kind = "approval_for_all"
	OwnershipChanged  Kind = "ownership_transferred"
	ConfigChanged     Kind = "config_changed"
)

// Event is one notification. Data holds the kind-specific payload defined
// by the emitting package (market.Ask, market.Bid, media.MintedObject, ...).
type Event struct {
	ID      uuid.UUID `json:"id"`
	Kind    Kind      `json:"kind"`
	TokenID uint64    `json:"token_id"`
	Time    time.Time `json:"time"`
	Data    any       `json:"data,omitempty"`
}

// New builds an event with a fresh identifier.
func New(kind Kind, tokenID uint64, at time.Time, data any) Event {
	return Event{
		ID:      uuid.New(),
		Kind:    kind,
		TokenID: tokenID,
		Time:    at,
		Data:    data,
	}
}

// Filter returns the events of the given kind, in order.
func Filter(events []Event, kind Kind) []Event {
	var out []Event
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
