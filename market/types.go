package market

import (
	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/decimal"
	"github.com/bitfsorg/armarket-go/revshare"
	"github.com/holiman/uint256"
)

// Ask is the standing sale offer on a token. A zero currency is the
// native coin.
type Ask struct {
	Currency account.Address `json:"currency"`
	Amount   uint256.Int     `json:"amount"`
}

// IsZero reports whether no ask is set.
func (a Ask) IsZero() bool {
	return a.Amount.IsZero()
}

// Bid is an escrowed purchase offer. SellOnShare is the percentage the
// current owner keeps as prevOwner share on the next resale if this bid
// is accepted.
type Bid struct {
	Currency    account.Address `json:"currency"`
	Amount      uint256.Int     `json:"amount"`
	Bidder      account.Address `json:"bidder"`
	Recipient   account.Address `json:"recipient"`
	SellOnShare decimal.Decimal `json:"sell_on_share"`
}

// Matches reports whether b carries the same terms as o.
func (b Bid) Matches(o Bid) bool {
	return b.Currency == o.Currency &&
		b.Amount.Eq(&o.Amount) &&
		b.Recipient == o.Recipient &&
		b.SellOnShare.Equal(o.SellOnShare)
}

// Config is the owner-set marketplace configuration. Version increases on
// every change.
type Config struct {
	Version      uint64                `json:"version"`
	Media        account.Address       `json:"media"`
	Platform     account.Address       `json:"platform"`
	Pool         account.Address       `json:"pool"`
	Mint         account.Address       `json:"mint"`
	PlatformCuts revshare.PlatformCuts `json:"platform_cuts"`
	EnforceCuts  bool                  `json:"enforce_platform_cuts"`
}

// AskData is the payload of event.AskCreated and event.AskRemoved.
type AskData struct {
	Ask Ask `json:"ask"`
}

// BidData is the payload of event.BidCreated, event.BidRemoved and
// event.BidFinalized.
type BidData struct {
	Bid Bid `json:"bid"`
}

// BidSharesData is the payload of event.BidShareUpdated.
type BidSharesData struct {
	Shares revshare.BidShares `json:"bid_shares"`
}

// ConfigData is the payload of event.ConfigChanged.
type ConfigData struct {
	Component string `json:"component"`
	Version   uint64 `json:"version"`
	Field     string `json:"field"`
}
