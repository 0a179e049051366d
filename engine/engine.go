// Package engine runs marketplace calls against a ledger store.
//
// Every mutation is one ledger unit of work executed behind a single
// global lock, so calls are applied one at a time in a total order. The
// events a call emits are published to the configured sink only after its
// unit of work has committed; a rejected call publishes nothing. Reads run
// against store snapshots and are never blocked by a running mutation.
package engine

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/currency"
	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/fault"
	"github.com/bitfsorg/armarket-go/ledger"
	"github.com/bitfsorg/armarket-go/market"
	"github.com/bitfsorg/armarket-go/media"
	"github.com/bitfsorg/armarket-go/registry"
	"github.com/bitfsorg/armarket-go/wallet"
)

// DefaultCacheSize is the number of token views kept when Options.CacheSize
// is zero. A negative CacheSize disables the view cache.
const DefaultCacheSize = 1024

// DefaultDomainName is the typed-data domain name signatures are made under.
const DefaultDomainName = "ARMarket"

// Options configures an Engine.
type Options struct {
	Store ledger.Store
	Owner account.Address // system owner of market and media at bootstrap

	Chain      wallet.ChainProfile // zero value means wallet.DevNet
	DomainName string

	Sink      event.Sink  // nil discards
	Logger    *zap.Logger // nil discards
	CacheSize int         // 0 means DefaultCacheSize, negative disables

	Now func() time.Time // nil means time.Now
}

// Addresses are the fixed component addresses of an engine.
type Addresses struct {
	Market  account.Address `json:"market"`
	Media   account.Address `json:"media"`
	Wrapped account.Address `json:"wrapped"`
}

// Receipt describes a committed call.
type Receipt struct {
	TokenIDs []uint64      `json:"token_ids,omitempty"`
	Events   []event.Event `json:"events"`
}

// Engine serializes marketplace calls.
type Engine struct {
	mu    sync.Mutex
	store ledger.Store
	cur   *currency.Ledger
	reg   *registry.Registry
	mkt   *market.Market
	md    *media.Media
	sink  event.Sink
	log   *zap.Logger
	now   func() time.Time

	cacheMu sync.Mutex
	gen     uint64
	views   *lru.Cache
}

// New wires the components over opts.Store and bootstraps them: the owner
// is recorded for market and media, and each is bound to the other. Both
// steps are skipped for a store that was bootstrapped before.
func New(opts Options) (*Engine, error) {
	if opts.Store == nil {
		return nil, ErrNoStore
	}
	if opts.Owner.IsZero() {
		return nil, ErrNoOwner
	}
	chain := opts.Chain
	if chain.ChainID == 0 {
		chain = wallet.DevNet
	}
	name := opts.DomainName
	if name == "" {
		name = DefaultDomainName
	}
	var views *lru.Cache
	if opts.CacheSize >= 0 {
		size := opts.CacheSize
		if size == 0 {
			size = DefaultCacheSize
		}
		var err error
		if views, err = lru.New(size); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		store: opts.Store,
		cur:   currency.New(account.ForComponent("wrapped")),
		reg:   registry.New(),
		sink:  opts.Sink,
		log:   opts.Logger,
		now:   opts.Now,
		views: views,
	}
	if e.sink == nil {
		e.sink = event.Discard
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.now == nil {
		e.now = time.Now
	}
	e.mkt = market.New(account.ForComponent(market.Component), e.cur)
	e.md = media.New(account.ForComponent(media.Component), e.reg, e.mkt, chain.Domain(name, account.Zero))
	e.mkt.Attach(e.md)

	if err := e.bootstrap(opts.Owner); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) bootstrap(owner account.Address) error {
	return e.store.Update(func(tx ledger.Tx) error {
		if err := e.mkt.Init(tx, owner); err != nil {
			return err
		}
		if err := e.md.Init(tx, owner); err != nil {
			return err
		}
		f := ledger.NewFrame(tx, owner, e.now())
		mcfg, err := e.mkt.Config(tx)
		if err != nil {
			return err
		}
		if mcfg.Media.IsZero() {
			if err := e.mkt.Configure(f, e.md.Address()); err != nil {
				return err
			}
		}
		dcfg, err := e.md.Config(tx)
		if err != nil {
			return err
		}
		if dcfg.Market.IsZero() {
			return e.md.Configure(f, e.mkt.Address())
		}
		return nil
	})
}

// Addresses returns the component addresses.
func (e *Engine) Addresses() Addresses {
	return Addresses{
		Market:  e.mkt.Address(),
		Media:   e.md.Address(),
		Wrapped: e.cur.Wrapped(),
	}
}

// Close closes the underlying store.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Close()
}

// exec runs fn as caller in one unit of work. The receipt holds the events
// of the committed call. Component addresses only act through the frames
// their own code derives, never as an external caller.
func (e *Engine) exec(ctx context.Context, op string, caller account.Address, fn func(f *ledger.Frame) error) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.isComponent(caller) {
		e.rejected(op, caller, ErrComponentCaller)
		return nil, ErrComponentCaller
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var events []event.Event
	err := e.store.Update(func(tx ledger.Tx) error {
		f := ledger.NewFrame(tx, caller, e.now())
		if err := fn(f); err != nil {
			return err
		}
		events = f.Events()
		return nil
	})
	if err != nil {
		e.rejected(op, caller, err)
		return nil, err
	}

	e.invalidate(events)
	e.log.Debug("call committed",
		zap.String("op", op),
		zap.Stringer("caller", caller),
		zap.Int("events", len(events)),
	)

	// Publishing under the lock keeps sink order equal to commit order.
	if err := e.sink.Publish(ctx, events); err != nil {
		e.log.Warn("publish events", zap.String("op", op), zap.Error(err))
	}
	return &Receipt{Events: events}, nil
}

func (e *Engine) rejected(op string, caller account.Address, err error) {
	e.log.Info("call rejected",
		zap.String("op", op),
		zap.Stringer("caller", caller),
		zap.String("kind", string(fault.KindOf(err))),
		zap.Error(err),
	)
}

func (e *Engine) isComponent(a account.Address) bool {
	return a == e.mkt.Address() || a == e.md.Address() || a == e.cur.Wrapped()
}

// invalidate drops the cached views of every token a committed call touched.
func (e *Engine) invalidate(events []event.Event) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	e.gen++
	if e.views == nil {
		return
	}
	for _, ev := range events {
		e.views.Remove(ev.TokenID)
	}
}

func (e *Engine) view(ctx context.Context, fn func(tx ledger.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.store.View(fn)
}

// read runs fn against a snapshot and returns its result.
func read[T any](ctx context.Context, e *Engine, fn func(tx ledger.Tx) (T, error)) (T, error) {
	var out T
	err := e.view(ctx, func(tx ledger.Tx) error {
		var err error
		out, err = fn(tx)
		return err
	})
	return out, err
}
