package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/api"
	"github.com/bitfsorg/armarket-go/config"
	"github.com/bitfsorg/armarket-go/engine"
	"github.com/bitfsorg/armarket-go/event"
	"github.com/bitfsorg/armarket-go/ledger"
	"github.com/bitfsorg/armarket-go/wallet"
)

// recorderLimit bounds the in-memory event feed served at /v1/events.
const recorderLimit = 10000

var (
	ownerFlag = &cli.StringFlag{
		Name:     "owner",
		Usage:    "address that owns the market and media on first start",
		EnvVars:  []string{"ARMARKET_OWNER"},
		Required: true,
	}
	listenFlag = &cli.StringFlag{
		Name:  "listen",
		Usage: "HTTP listen address, overrides the config file",
	}
	storeFlag = &cli.StringFlag{
		Name:  "store",
		Usage: "ledger backend (bolt, leveldb or memory), overrides the config file",
	}
	networkFlag = &cli.StringFlag{
		Name:  "network",
		Usage: "chain profile (mainnet, testnet or devnet), overrides the config file",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "loglevel",
		Usage: "log level, overrides the config file",
	}
)

var commandServe = &cli.Command{
	Name:  "serve",
	Usage: "run the engine behind the HTTP API",
	Description: `
Open the ledger in the data directory, bootstrap the market and media on
first start and serve the HTTP API until interrupted.`,
	Flags: []cli.Flag{
		ownerFlag,
		listenFlag,
		storeFlag,
		networkFlag,
		logLevelFlag,
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		owner, err := account.ParseAddress(c.String(ownerFlag.Name))
		if err != nil {
			return fmt.Errorf("--owner: %w", err)
		}
		chain, err := wallet.GetChain(cfg.Network)
		if err != nil {
			return err
		}

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
		store, err := ledger.Open(cfg.Store, cfg.DataDir)
		if err != nil {
			return err
		}

		rec := event.NewRecorder(recorderLimit)
		e, err := engine.New(engine.Options{
			Store:      store,
			Owner:      owner,
			Chain:      *chain,
			DomainName: cfg.DomainName,
			Sink:       event.Multi(rec, event.NewLogSink(log)),
			Logger:     log,
			CacheSize:  viewCacheSize(cfg),
		})
		if err != nil {
			store.Close()
			return err
		}
		defer e.Close()

		addrs := e.Addresses()
		log.Info("engine ready",
			zap.String("network", chain.Name),
			zap.String("store", cfg.Store),
			zap.Stringer("market", addrs.Market),
			zap.Stringer("media", addrs.Media),
			zap.Stringer("wrapped", addrs.Wrapped),
		)

		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return api.New(e, rec, log).ListenAndServe(ctx, cfg.ListenAddr)
	},
}

// loadConfig reads <datadir>/config, falling back to defaults when the
// file is absent, then applies command line overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	dataDir := c.String(dataDirFlag.Name)
	cfg, err := config.LoadConfig(config.ConfigPath(dataDir))
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return cfg, err
	}
	if cfg.DataDir == "" || errors.Is(err, config.ErrConfigNotFound) {
		cfg.DataDir = dataDir
	}
	overrides := []struct {
		flag *cli.StringFlag
		dst  *string
	}{
		{listenFlag, &cfg.ListenAddr},
		{storeFlag, &cfg.Store},
		{networkFlag, &cfg.Network},
		{logLevelFlag, &cfg.LogLevel},
	}
	for _, o := range overrides {
		if c.IsSet(o.flag.Name) {
			*o.dst = c.String(o.flag.Name)
		}
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// viewCacheSize maps the config value onto engine.Options, where zero
// selects the default size. In the config file zero turns the cache off.
func viewCacheSize(cfg config.Config) int {
	if cfg.CacheSize == 0 {
		return -1
	}
	return cfg.CacheSize
}

// newLogger builds a JSON logger at the configured level, writing to the
// log file if one is set and to stderr otherwise.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.LogFile != "" {
		zc.OutputPaths = []string{cfg.LogFile}
	}
	return zc.Build()
}
