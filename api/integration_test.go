package api

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/decimal"
	"github.com/bitfsorg/armarket-go/engine"
	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/ledger"
)

var (
	deployer = account.Address{0xD0}
	artist   = account.Address{0xC1}
	platform = account.Address{0x01, 0x01}
	pool     = account.Address{0x02, 0x02}
)

type liveServer struct {
	t   *testing.T
	h   http.Handler
	rec *event.Recorder
}

func newLiveServer(t *testing.T) *liveServer {
	t.Helper()
	log := zaptest.NewLogger(t)
	rec := event.NewRecorder(0)
	e, err := engine.New(engine.Options{
		Store:  ledger.NewMemStore(),
		Owner:  deployer,
		Sink:   rec,
		Logger: log,
		Now:    func() time.Time { return time.Unix(1700000000, 0) },
	})
	require.NoError(t, err)
	return &liveServer{t: t, h: New(e, rec, log).Handler(), rec: rec}
}

// call issues a request and decodes a 200 response into out.
func (ls *liveServer) call(method, path string, caller account.Address, body, out any) {
	ls.t.Helper()
	rr := do(ls.t, ls.h, method, path, caller, body)
	require.Equal(ls.t, http.StatusOK, rr.Code, "%s %s: %s", method, path, rr.Body.String())
	if out != nil {
		require.NoError(ls.t, json.NewDecoder(rr.Body).Decode(out))
	}
}

func (ls *liveServer) status(method, path string, caller account.Address, body any) (int, Error) {
	ls.t.Helper()
	rr := do(ls.t, ls.h, method, path, caller, body)
	var e Error
	if rr.Code != http.StatusOK {
		require.NoError(ls.t, json.NewDecoder(rr.Body).Decode(&e))
	}
	return rr.Code, e
}

func mintBodyFor(tag string) map[string]any {
	var aw, obj Hex32
	copy(aw[:], "aw "+tag)
	copy(obj[:], "obj "+tag)
	content := Hex32(sha256.Sum256([]byte("content " + tag)))
	meta := Hex32(sha256.Sum256([]byte("metadata " + tag)))
	return map[string]any{
		"data": MintData{
			TokenURI:      "www.example.com/" + tag,
			MetadataURI:   "www.example2.com/" + tag,
			AwKeyHex:      aw,
			ObjKeyHex:     obj,
			ContentHash:   content,
			MetadataHash:  meta,
			EditionOf:     1,
			EditionNumber: 1,
		},
		"shares": map[string]string{
			"prev_owner": "0",
			"owner":      "0",
			"creator":    "5",
			"platform":   "0",
			"pool":       "0",
		},
	}
}

func TestSaleOverHTTP(t *testing.T) {
	ls := newLiveServer(t)
	buyer := account.Address{0xB1}

	ls.call(http.MethodPost, "/v1/market/config/platform", deployer, addressBody{platform}, nil)
	ls.call(http.MethodPost, "/v1/market/config/pool", deployer, addressBody{pool}, nil)
	ls.call(http.MethodPost, "/v1/market/config/enforce", deployer, map[string]bool{"enforce": true}, nil)

	var minted Receipt
	ls.call(http.MethodPost, "/v1/mint", artist, mintBodyFor("a"), &minted)
	require.Len(t, minted.TokenIDs, 1)
	id := minted.TokenIDs[0]

	path := fmt.Sprintf("/v1/tokens/%d", id)

	var view Token
	ls.call(http.MethodGet, path, account.Zero, nil, &view)
	assert.Equal(t, artist, view.Owner)
	assert.Equal(t, artist, view.Creator)
	assert.Equal(t, "www.example.com/a", view.TokenURI)
	assert.Equal(t, decimal.New(80), view.Shares.Owner)
	assert.Equal(t, decimal.New(10), view.Shares.Platform)

	hundred := decimal.FormatAmount(decimal.Coins(100))
	ls.call(http.MethodPost, "/v1/currency/fund", deployer, map[string]string{"holder": buyer.Hex(), "amount": hundred}, nil)
	ls.call(http.MethodPut, path+"/ask", artist, map[string]string{"currency": account.Zero.Hex(), "amount": hundred}, nil)

	var valid struct {
		Valid bool `json:"valid"`
	}
	ls.call(http.MethodGet, path+"/valid-bid?amount="+hundred, account.Zero, nil, &valid)
	assert.True(t, valid.Valid)

	var settled Receipt
	ls.call(http.MethodPost, path+"/bids", buyer, map[string]string{
		"currency":      account.Zero.Hex(),
		"amount":        hundred,
		"bidder":        buyer.Hex(),
		"recipient":     buyer.Hex(),
		"sell_on_share": "10",
	}, &settled)
	kinds := make([]event.Kind, len(settled.Events))
	for i, e := range settled.Events {
		kinds[i] = e.Kind
	}
	assert.Contains(t, kinds, event.BidFinalized)

	balance := func(holder account.Address) string {
		var out struct {
			Amount string `json:"amount"`
		}
		ls.call(http.MethodGet, "/v1/currency/balances?holder="+holder.Hex(), account.Zero, nil, &out)
		return out.Amount
	}
	assert.Equal(t, decimal.FormatAmount(decimal.Coins(85)), balance(artist))
	assert.Equal(t, decimal.FormatAmount(decimal.Coins(10)), balance(platform))
	assert.Equal(t, decimal.FormatAmount(decimal.Coins(5)), balance(pool))

	var owned tokenIDs
	ls.call(http.MethodGet, "/v1/tokens?owner="+buyer.Hex(), account.Zero, nil, &owned)
	assert.Equal(t, []uint64{id}, owned.TokenIDs)

	var created tokenIDs
	ls.call(http.MethodGet, "/v1/tokens?creator="+artist.Hex(), account.Zero, nil, &created)
	assert.Equal(t, []uint64{id}, created.TokenIDs)

	var feed struct {
		Events []Event `json:"events"`
		Next   int     `json:"next"`
	}
	ls.call(http.MethodGet, "/v1/events", account.Zero, nil, &feed)
	assert.Equal(t, len(ls.rec.Events()), feed.Next)
	assert.Len(t, feed.Events, feed.Next)

	var tail struct {
		Events []Event `json:"events"`
		Next   int     `json:"next"`
	}
	ls.call(http.MethodGet, "/v1/events?since=1000000", account.Zero, nil, &tail)
	assert.Equal(t, feed.Next, tail.Next)
}

func TestRejectionsOverHTTP(t *testing.T) {
	ls := newLiveServer(t)
	stranger := account.Address{0x07}

	code, e := ls.status(http.MethodPost, "/v1/market/config/platform", stranger, addressBody{platform})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "authorization", e.Kind)

	ls.call(http.MethodPost, "/v1/mint", artist, mintBodyFor("a"), nil)
	code, e = ls.status(http.MethodPost, "/v1/mint", artist, mintBodyFor("a"))
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "replay", e.Kind)

	code, e = ls.status(http.MethodGet, "/v1/tokens/42", account.Zero, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", e.Kind)

	code, _ = ls.status(http.MethodGet, "/v1/tokens", account.Zero, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = ls.status(http.MethodGet, "/v1/owners/vault", account.Zero, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	var info Info
	ls.call(http.MethodGet, "/v1/info", account.Zero, nil, &info)
	code, e = ls.status(http.MethodDelete, "/v1/tokens/0/ask", info.Addresses.Media, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, engine.ErrComponentCaller.Error(), e.Error)

	var aw, obj Hex32
	copy(aw[:], "aw never minted")
	copy(obj[:], "obj never minted")
	awText, _ := aw.MarshalText()
	objText, _ := obj.MarshalText()
	code, _ = ls.status(http.MethodGet, "/v1/mint/editions/"+string(awText)+"/"+string(objText), account.Zero, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestInfoOverHTTP(t *testing.T) {
	ls := newLiveServer(t)

	var info Info
	ls.call(http.MethodGet, "/v1/info", account.Zero, nil, &info)
	assert.Equal(t, engine.DefaultDomainName, info.Domain.Name)
	assert.Equal(t, info.Addresses.Media, info.Domain.VerifyingContract)
	assert.Equal(t, info.Addresses.Media, info.Market.Media)
	assert.Equal(t, info.Addresses.Market, info.Media.Market)

	var owner struct {
		Owner account.Address `json:"owner"`
	}
	ls.call(http.MethodGet, "/v1/owners/media", account.Zero, nil, &owner)
	assert.Equal(t, deployer, owner.Owner)
}
