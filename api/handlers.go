package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/engine"
	"github.com/bitfsorg/armarket-go/revshare"
)

// --- deployment and ownership ---

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	mc, err := s.b.MarketConfig(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	dc, err := s.b.MediaConfig(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	d := s.b.Domain()
	writeJSON(w, http.StatusOK, Info{
		Addresses: s.b.Addresses(),
		Domain: Domain{
			Name:              d.Name,
			Version:           d.Version,
			ChainID:           d.ChainID,
			VerifyingContract: d.VerifyingContract,
		},
		Market: mc,
		Media:  dc,
	})
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	if s.events == nil {
		s.fail(w, r, ErrEventsDisabled)
		return
	}
	since := 0
	if q := r.URL.Query().Get("since"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			s.fail(w, r, ErrBadRequest)
			return
		}
		since = n
	}
	events, next := s.events.Since(since)
	writeJSON(w, http.StatusOK, struct {
		Events []Event `json:"events"`
		Next   int     `json:"next"`
	}{eventsOf(events), next})
}

func (s *Server) owner(w http.ResponseWriter, r *http.Request) {
	component := chi.URLParam(r, "component")
	owner, err := s.b.Owner(r.Context(), component)
	s.respond(w, r, struct {
		Component string          `json:"component"`
		Owner     account.Address `json:"owner"`
	}{component, owner}, err)
}

func (s *Server) transferOwnership(w http.ResponseWriter, r *http.Request) {
	var body struct {
		NewOwner account.Address `json:"new_owner"`
	}
	component := chi.URLParam(r, "component")
	s.mutate(w, r, &body, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return s.b.TransferOwnership(ctx, caller, component, body.NewOwner)
	})
}

func (s *Server) renounceOwnership(w http.ResponseWriter, r *http.Request) {
	component := chi.URLParam(r, "component")
	s.mutate(w, r, nil, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return s.b.RenounceOwnership(ctx, caller, component)
	})
}

// --- configuration ---

type addressBody struct {
	Address account.Address `json:"address"`
}

func (s *Server) configureAddress(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, caller, addr account.Address) (*engine.Receipt, error)) {
	var body addressBody
	s.mutate(w, r, &body, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return fn(ctx, caller, body.Address)
	})
}

func (s *Server) marketConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.b.MarketConfig(r.Context())
	s.respond(w, r, cfg, err)
}

func (s *Server) configureMarketMedia(w http.ResponseWriter, r *http.Request) {
	s.configureAddress(w, r, s.b.ConfigureMarketMedia)
}

func (s *Server) configurePlatform(w http.ResponseWriter, r *http.Request) {
	s.configureAddress(w, r, s.b.ConfigurePlatformAddress)
}

func (s *Server) configurePool(w http.ResponseWriter, r *http.Request) {
	s.configureAddress(w, r, s.b.ConfigurePoolAddress)
}

func (s *Server) configureMint(w http.ResponseWriter, r *http.Request) {
	s.configureAddress(w, r, s.b.ConfigureMintAddress)
}

func (s *Server) configureCuts(w http.ResponseWriter, r *http.Request) {
	var cuts revshare.PlatformCuts
	s.mutate(w, r, &cuts, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return s.b.ConfigurePlatformCuts(ctx, caller, cuts)
	})
}

func (s *Server) configureEnforce(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enforce bool `json:"enforce"`
	}
	s.mutate(w, r, &body, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return s.b.ConfigureEnforcePlatformCuts(ctx, caller, body.Enforce)
	})
}

func (s *Server) mediaConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.b.MediaConfig(r.Context())
	s.respond(w, r, cfg, err)
}

func (s *Server) configureMediaMarket(w http.ResponseWriter, r *http.Request) {
	s.configureAddress(w, r, s.b.ConfigureMedia)
}

func (s *Server) configureMaxEdition(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MaxEditionOf uint64 `json:"max_edition_of"`
	}
	s.mutate(w, r, &body, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return s.b.ConfigureMaxEditionOf(ctx, caller, body.MaxEditionOf)
	})
}

// --- token reads ---

type tokenIDs struct {
	TokenIDs []uint64 `json:"token_ids"`
}

func (s *Server) listTokens(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		ids []uint64
		err error
	)
	switch {
	case q.Get("owner") != "":
		var owner account.Address
		if owner, err = addrParam(q.Get("owner"), "owner"); err == nil {
			ids, err = s.b.TokensOfOwner(r.Context(), owner)
		}
	case q.Get("creator") != "":
		var creator account.Address
		if creator, err = addrParam(q.Get("creator"), "creator"); err == nil {
			ids, err = s.b.TokensOfCreator(r.Context(), creator)
		}
	default:
		err = ErrMissingFilter
	}
	if ids == nil {
		ids = []uint64{}
	}
	s.respond(w, r, tokenIDs{ids}, err)
}

func (s *Server) totalSupply(w http.ResponseWriter, r *http.Request) {
	n, err := s.b.TotalSupply(r.Context())
	s.respond(w, r, struct {
		TotalSupply uint64 `json:"total_supply"`
	}{n}, err)
}

func (s *Server) token(w http.ResponseWriter, r *http.Request) {
	id, err := tokenID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	v, err := s.b.Token(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenOf(v))
}

func (s *Server) bidShares(w http.ResponseWriter, r *http.Request) {
	id, err := tokenID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	shares, err := s.b.BidShares(r.Context(), id)
	s.respond(w, r, shares, err)
}

func (s *Server) currentAsk(w http.ResponseWriter, r *http.Request) {
	id, err := tokenID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ask, err := s.b.CurrentAsk(r.Context(), id)
	s.respond(w, r, askOf(ask), err)
}

func (s *Server) bids(w http.ResponseWriter, r *http.Request) {
	id, err := tokenID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	bids, err := s.b.Bids(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]Bid, len(bids))
	for i, b := range bids {
		out[i] = bidOf(b)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) bid(w http.ResponseWriter, r *http.Request) {
	id, err := tokenID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	bidder, err := addrParam(chi.URLParam(r, "bidder"), "bidder")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	b, err := s.b.Bid(r.Context(), id, bidder)
	s.respond(w, r, bidOf(b), err)
}

func (s *Server) isValidBid(w http.ResponseWriter, r *http.Request) {
	id, err := tokenID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var amt Amount
	if err := amt.UnmarshalText([]byte(r.URL.Query().Get("amount"))); err != nil {
		s.fail(w, r, err)
		return
	}
	ok, err := s.b.IsValidBid(r.Context(), id, amt.value())
	s.respond(w, r, struct {
		Valid bool `json:"valid"`
	}{ok}, err)
}

// --- market mutations ---

func (s *Server) setBidShares(w http.ResponseWriter, r *http.Request) {
	var shares revshare.BidShares
	s.mutateToken(w, r, &shares, func(ctx context.Context, caller account.Address, id uint64) (*engine.Receipt, error) {
		return s.b.SetBidShares(ctx, caller, id, shares)
	})
}

func (s *Server) setAsk(w http.ResponseWriter, r *http.Request) {
	var ask Ask
	s.mutateToken(w, r, &ask, func(ctx context.Context, caller account.Address, id uint64) (*engine.Receipt, error) {
		return s.b.SetAsk(ctx, caller, id, ask.market())
	})
}

func (s *Server) removeAsk(w http.ResponseWriter, r *http.Request) {
	s.mutateToken(w, r, nil, s.b.RemoveAsk)
}

func (s *Server) setAskForBatch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TokenIDs  []uint64 `json:"token_ids"`
		Ask       Ask      `json:"ask"`
		ObjKeyHex Hex32    `json:"obj_key_hex"`
	}
	s.mutate(w, r, &body, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return s.b.SetAskForBatch(ctx, caller, body.TokenIDs, body.Ask.market(), body.ObjKeyHex)
	})
}

func (s *Server) removeAskForBatch(w http.ResponseWriter, r *http.Request) {
	var body tokenIDs
	s.mutate(w, r, &body, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return s.b.RemoveAskForBatch(ctx, caller, body.TokenIDs)
	})
}

func (s *Server) setBid(w http.ResponseWriter, r *http.Request) {
	var bid Bid
	s.mutateToken(w, r, &bid, func(ctx context.Context, caller account.Address, id uint64) (*engine.Receipt, error) {
		return s.b.SetBid(ctx, caller, id, bid.market())
	})
}

func (s *Server) removeBid(w http.ResponseWriter, r *http.Request) {
	s.mutateToken(w, r, nil, s.b.RemoveBid)
}

func (s *Server) acceptBid(w http.ResponseWriter, r *http.Request) {
	var expected Bid
	s.mutateToken(w, r, &expected, func(ctx context.Context, caller account.Address, id uint64) (*engine.Receipt, error) {
		return s.b.AcceptBid(ctx, caller, id, expected.market())
	})
}

// --- minting ---

type mintBody struct {
	Data   MintData           `json:"data"`
	Shares revshare.BidShares `json:"shares"`
}

func (s *Server) mint(w http.ResponseWriter, r *http.Request) {
	var body mintBody
	s.mutate(w, r, &body, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return s.b.Mint(ctx, caller, body.Data.media(), body.Shares)
	})
}

func (s *Server) mintWithSig(w http.ResponseWriter, r *http.Request) {
	var body struct {
		mintBody
		Creator       account.Address `json:"creator"`
		Nonce         uint64          `json:"nonce"`
		Authorization Authorization   `json:"authorization"`
	}
	s.mutate(w, r, &body, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return s.b.MintWithSig(ctx, caller, body.Creator, body.Data.media(), body.Shares, body.Nonce, body.Authorization.media())
	})
}

func (s *Server) mintArObject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Creator       account.Address    `json:"creator"`
		Batch         EditionBatch       `json:"batch"`
		Data          EditionData        `json:"data"`
		Shares        revshare.BidShares `json:"shares"`
		Authorization Authorization      `json:"authorization"`
	}
	s.mutate(w, r, &body, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return s.b.MintArObject(ctx, caller, body.Creator, body.Batch.media(), body.Data.media(), body.Shares, body.Authorization.media())
	})
}

func (s *Server) mintNonces(w http.ResponseWriter, r *http.Request) {
	creator, err := addrParam(chi.URLParam(r, "creator"), "creator")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sigNonce, err := s.b.MintWithSigNonce(r.Context(), creator)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	objNonce, err := s.b.MintArObjectNonce(r.Context(), creator)
	s.respond(w, r, struct {
		MintWithSig  uint64 `json:"mint_with_sig"`
		MintArObject Amount `json:"mint_ar_object"`
	}{sigNonce, amount(objNonce)}, err)
}

func (s *Server) edition(w http.ResponseWriter, r *http.Request) {
	aw, err := hexParam(chi.URLParam(r, "aw"), "aw")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	obj, err := hexParam(chi.URLParam(r, "obj"), "obj")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p, ok, err := s.b.Edition(r.Context(), aw, obj)
	if err == nil && !ok {
		err = ErrEditionNotStarted
	}
	s.respond(w, r, p, err)
}

// --- token mutations ---

func (s *Server) burn(w http.ResponseWriter, r *http.Request) {
	s.mutateToken(w, r, nil, s.b.Burn)
}

type uriBody struct {
	URI string `json:"uri"`
}

func (s *Server) updateTokenURI(w http.ResponseWriter, r *http.Request) {
	var body uriBody
	s.mutateToken(w, r, &body, func(ctx context.Context, caller account.Address, id uint64) (*engine.Receipt, error) {
		return s.b.UpdateTokenURI(ctx, caller, id, body.URI)
	})
}

func (s *Server) updateMetadataURI(w http.ResponseWriter, r *http.Request) {
	var body uriBody
	s.mutateToken(w, r, &body, func(ctx context.Context, caller account.Address, id uint64) (*engine.Receipt, error) {
		return s.b.UpdateTokenMetadataURI(ctx, caller, id, body.URI)
	})
}

func (s *Server) permit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Spender       account.Address `json:"spender"`
		Authorization Authorization   `json:"authorization"`
	}
	s.mutateToken(w, r, &body, func(ctx context.Context, caller account.Address, id uint64) (*engine.Receipt, error) {
		return s.b.Permit(ctx, caller, body.Spender, id, body.Authorization.media())
	})
}

func (s *Server) permitNonce(w http.ResponseWriter, r *http.Request) {
	owner, err := addrParam(chi.URLParam(r, "owner"), "owner")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	id, err := tokenID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	n, err := s.b.PermitNonce(r.Context(), owner, id)
	s.respond(w, r, struct {
		Nonce uint64 `json:"nonce"`
	}{n}, err)
}

func (s *Server) revokeApproval(w http.ResponseWriter, r *http.Request) {
	s.mutateToken(w, r, nil, s.b.RevokeApproval)
}

func (s *Server) transfer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		From account.Address `json:"from"`
		To   account.Address `json:"to"`
	}
	s.mutateToken(w, r, &body, func(ctx context.Context, caller account.Address, id uint64) (*engine.Receipt, error) {
		return s.b.TransferFrom(ctx, caller, body.From, body.To, id)
	})
}

func (s *Server) approve(w http.ResponseWriter, r *http.Request) {
	var body struct {
		To account.Address `json:"to"`
	}
	s.mutateToken(w, r, &body, func(ctx context.Context, caller account.Address, id uint64) (*engine.Receipt, error) {
		return s.b.Approve(ctx, caller, body.To, id)
	})
}

func (s *Server) isApprovedForAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	owner, err := addrParam(q.Get("owner"), "owner")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	operator, err := addrParam(q.Get("operator"), "operator")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ok, err := s.b.IsApprovedForAll(r.Context(), owner, operator)
	s.respond(w, r, struct {
		Approved bool `json:"approved"`
	}{ok}, err)
}

func (s *Server) setApprovalForAll(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Operator account.Address `json:"operator"`
		Approved bool            `json:"approved"`
	}
	s.mutate(w, r, &body, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return s.b.SetApprovalForAll(ctx, caller, body.Operator, body.Approved)
	})
}

// --- currency ---

type amountResponse struct {
	Amount Amount `json:"amount"`
}

func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cur, err := optAddr(q.Get("currency"), "currency")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	holder, err := addrParam(q.Get("holder"), "holder")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	v, err := s.b.BalanceOf(r.Context(), cur, holder)
	s.respond(w, r, amountResponse{amount(v)}, err)
}

func (s *Server) allowance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cur, err := addrParam(q.Get("currency"), "currency")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	owner, err := addrParam(q.Get("owner"), "owner")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	spender, err := addrParam(q.Get("spender"), "spender")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	v, err := s.b.Allowance(r.Context(), cur, owner, spender)
	s.respond(w, r, amountResponse{amount(v)}, err)
}

func (s *Server) fund(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Holder account.Address `json:"holder"`
		Amount Amount          `json:"amount"`
	}
	s.mutate(w, r, &body, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return s.b.Fund(ctx, caller, body.Holder, body.Amount.value())
	})
}

func (s *Server) fundToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Currency account.Address `json:"currency"`
		Holder   account.Address `json:"holder"`
		Amount   Amount          `json:"amount"`
	}
	s.mutate(w, r, &body, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return s.b.FundToken(ctx, caller, body.Currency, body.Holder, body.Amount.value())
	})
}

func (s *Server) approveCurrency(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Currency account.Address `json:"currency"`
		Spender  account.Address `json:"spender"`
		Amount   Amount          `json:"amount"`
	}
	s.mutate(w, r, &body, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return s.b.ApproveCurrency(ctx, caller, body.Currency, body.Spender, body.Amount.value())
	})
}

func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	var body amountResponse
	s.mutate(w, r, &body, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return s.b.Deposit(ctx, caller, body.Amount.value())
	})
}

func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	var body amountResponse
	s.mutate(w, r, &body, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return s.b.Withdraw(ctx, caller, body.Amount.value())
	})
}
