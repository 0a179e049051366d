// Package api exposes an engine over a JSON HTTP interface.
//
// Every mutation names its caller in the X-Caller header. The engine
// trusts that identity as it trusts a transaction sender; deployments put
// an authenticating proxy in front of the server.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/engine"
	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/fault"
)

// CallerHeader carries the address a mutation is executed as.
const CallerHeader = "X-Caller"

// maxBody bounds request bodies. A full edition chunk stays well below it.
const maxBody = 4 << 20

// Server routes HTTP requests to a Backend.
type Server struct {
	b      Backend
	events *event.Recorder
	log    *zap.Logger
}

// New creates a Server. events may be nil, which disables the event feed.
func New(b Backend, events *event.Recorder, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{b: b, events: events, log: log}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/info", s.info)
		r.Get("/events", s.listEvents)

		r.Route("/owners/{component}", func(r chi.Router) {
			r.Get("/", s.owner)
			r.Post("/transfer", s.transferOwnership)
			r.Post("/renounce", s.renounceOwnership)
		})

		r.Route("/market/config", func(r chi.Router) {
			r.Get("/", s.marketConfig)
			r.Post("/media", s.configureMarketMedia)
			r.Post("/platform", s.configurePlatform)
			r.Post("/pool", s.configurePool)
			r.Post("/mint", s.configureMint)
			r.Post("/cuts", s.configureCuts)
			r.Post("/enforce", s.configureEnforce)
		})

		r.Route("/media/config", func(r chi.Router) {
			r.Get("/", s.mediaConfig)
			r.Post("/market", s.configureMediaMarket)
			r.Post("/max-edition", s.configureMaxEdition)
		})

		r.Route("/tokens", func(r chi.Router) {
			r.Get("/", s.listTokens)
			r.Get("/supply", s.totalSupply)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.token)
				r.Get("/bid-shares", s.bidShares)
				r.Put("/bid-shares", s.setBidShares)
				r.Get("/ask", s.currentAsk)
				r.Put("/ask", s.setAsk)
				r.Delete("/ask", s.removeAsk)
				r.Get("/bids", s.bids)
				r.Post("/bids", s.setBid)
				r.Delete("/bids", s.removeBid)
				r.Get("/bids/{bidder}", s.bid)
				r.Post("/accept", s.acceptBid)
				r.Get("/valid-bid", s.isValidBid)
				r.Post("/burn", s.burn)
				r.Post("/uri", s.updateTokenURI)
				r.Post("/metadata-uri", s.updateMetadataURI)
				r.Post("/permit", s.permit)
				r.Post("/revoke", s.revokeApproval)
				r.Post("/transfer", s.transfer)
				r.Post("/approve", s.approve)
			})
		})

		r.Post("/asks/batch", s.setAskForBatch)
		r.Post("/asks/batch/remove", s.removeAskForBatch)

		r.Route("/mint", func(r chi.Router) {
			r.Post("/", s.mint)
			r.Post("/sig", s.mintWithSig)
			r.Post("/edition", s.mintArObject)
			r.Get("/nonces/{creator}", s.mintNonces)
			r.Get("/editions/{aw}/{obj}", s.edition)
		})

		r.Get("/permit-nonces/{owner}/{id}", s.permitNonce)

		r.Get("/operators", s.isApprovedForAll)
		r.Post("/operators", s.setApprovalForAll)

		r.Route("/currency", func(r chi.Router) {
			r.Get("/balances", s.balance)
			r.Get("/allowances", s.allowance)
			r.Post("/fund", s.fund)
			r.Post("/fund-token", s.fundToken)
			r.Post("/approve", s.approveCurrency)
			r.Post("/deposit", s.deposit)
			r.Post("/withdraw", s.withdraw)
		})
	})
	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api: shutdown: %w", err)
		}
		return nil
	}
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// --- request helpers ---

func callerOf(r *http.Request) (account.Address, error) {
	h := r.Header.Get(CallerHeader)
	if h == "" {
		return account.Zero, ErrMissingCaller
	}
	a, err := account.ParseAddress(h)
	if err != nil {
		return account.Zero, fmt.Errorf("%w: %s: %w", ErrBadRequest, CallerHeader, err)
	}
	return a, nil
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, fault.Validation) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

func tokenID(r *http.Request) (uint64, error) {
	return uintParam(chi.URLParam(r, "id"), "id")
}

func uintParam(s, name string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrBadRequest, name, err)
	}
	return n, nil
}

func addrParam(s, name string) (account.Address, error) {
	a, err := account.ParseAddress(s)
	if err != nil {
		return account.Zero, fmt.Errorf("%w: %s: %w", ErrBadRequest, name, err)
	}
	return a, nil
}

// optAddr parses an optional address query value. Empty means the zero
// address, which names the native coin where a currency is expected.
func optAddr(s, name string) (account.Address, error) {
	if s == "" {
		return account.Zero, nil
	}
	return addrParam(s, name)
}

func hexParam(s, name string) ([32]byte, error) {
	var h Hex32
	if err := h.UnmarshalText([]byte(s)); err != nil {
		return [32]byte{}, fmt.Errorf("%s: %w", name, err)
	}
	return h, nil
}

// --- response helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := fault.KindOf(err)
	status := statusOf(kind)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
	}
	writeJSON(w, status, Error{Error: err.Error(), Kind: string(kind)})
}

// mutate decodes body (when non-nil), resolves the caller and runs fn.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, body any, fn func(ctx context.Context, caller account.Address) (*engine.Receipt, error)) {
	caller, err := callerOf(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if body != nil {
		if err := decode(r, body); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	rc, err := fn(r.Context(), caller)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, receiptOf(rc))
}

// mutateToken is mutate for routes under /tokens/{id}.
func (s *Server) mutateToken(w http.ResponseWriter, r *http.Request, body any, fn func(ctx context.Context, caller account.Address, id uint64) (*engine.Receipt, error)) {
	id, err := tokenID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.mutate(w, r, body, func(ctx context.Context, caller account.Address) (*engine.Receipt, error) {
		return fn(ctx, caller, id)
	})
}

// respond writes v, or the error if err is set.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
