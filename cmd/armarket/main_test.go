package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/api"
	"github.com/bitfsorg/armarket-go/config"
	"github.com/bitfsorg/armarket-go/decimal"
	"github.com/bitfsorg/armarket-go/eip712"
	"github.com/bitfsorg/armarket-go/engine"
	"github.com/bitfsorg/armarket-go/media"
	"github.com/bitfsorg/armarket-go/wallet"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// run executes the CLI in-process and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := newApp()
	a.Writer = &out
	a.ErrWriter = &out
	err := a.Run(append([]string{"armarket"}, args...))
	return out.String(), err
}

func passwordFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "password")
	require.NoError(t, os.WriteFile(path, []byte("correct horse\n"), 0600))
	return path
}

func generateKeystore(t *testing.T, dir, network string) (outputKey, string) {
	t.Helper()
	pw := passwordFile(t, dir)
	out, err := run(t, "--datadir", dir, "keys", "generate",
		"--passwordfile", pw,
		"--network", network,
		"--mnemonic", testMnemonic,
		"--json")
	require.NoError(t, err, out)
	var key outputKey
	require.NoError(t, json.Unmarshal([]byte(out), &key))
	return key, pw
}

func TestKeysGenerateAndInspect(t *testing.T) {
	dir := t.TempDir()
	key, pw := generateKeystore(t, dir, "devnet")

	w, err := wallet.FromMnemonic(testMnemonic, "")
	require.NoError(t, err)
	want, err := w.Derive(0, 0)
	require.NoError(t, err)
	assert.Equal(t, want.Address.Hex(), key.Address)
	assert.Equal(t, "m/44'/60'/0'/0/0", key.Path)
	assert.Equal(t, "devnet", key.Chain)
	assert.Empty(t, key.Mnemonic, "imported mnemonic is not echoed")
	assert.FileExists(t, filepath.Join(dir, keystoreName))

	out, err := run(t, "--datadir", dir, "keys", "inspect", "--passwordfile", pw, "--index", "1", "--json")
	require.NoError(t, err, out)
	var inspected outputKey
	require.NoError(t, json.Unmarshal([]byte(out), &inspected))
	second, err := w.Derive(0, 1)
	require.NoError(t, err)
	assert.Equal(t, second.Address.Hex(), inspected.Address)
	assert.Empty(t, inspected.PrivateKey)

	// Refuses to overwrite.
	_, err = run(t, "--datadir", dir, "keys", "generate", "--passwordfile", pw)
	assert.Error(t, err)
}

func TestKeysGenerateFreshMnemonic(t *testing.T) {
	dir := t.TempDir()
	pw := passwordFile(t, dir)
	out, err := run(t, "--datadir", dir, "keys", "generate", "--passwordfile", pw, "--json")
	require.NoError(t, err, out)

	var key outputKey
	require.NoError(t, json.Unmarshal([]byte(out), &key))
	assert.True(t, wallet.ValidateMnemonic(key.Mnemonic))
	assert.Equal(t, "mainnet", key.Chain)
}

func TestKeysInspectWrongPassword(t *testing.T) {
	dir := t.TempDir()
	generateKeystore(t, dir, "devnet")

	bad := filepath.Join(dir, "bad")
	require.NoError(t, os.WriteFile(bad, []byte("wrong"), 0600))
	_, err := run(t, "--datadir", dir, "keys", "inspect", "--passwordfile", bad)
	assert.ErrorIs(t, err, wallet.ErrDecryptionFailed)
}

func TestSignPermitRecoversSigner(t *testing.T) {
	dir := t.TempDir()
	key, pw := generateKeystore(t, dir, "devnet")
	spender := account.Address{0x5E}

	out, err := run(t, "--datadir", dir, "sign", "permit",
		"--passwordfile", pw,
		"--spender", spender.Hex(),
		"--token", "7",
		"--nonce", "2",
		"--deadline", "1700086400",
		"--json")
	require.NoError(t, err, out)

	var sig outputSignature
	require.NoError(t, json.Unmarshal([]byte(out), &sig))
	assert.Equal(t, key.Address, sig.Signer.Hex())
	assert.Equal(t, uint64(1700086400), sig.Deadline)

	domain := wallet.DevNet.Domain(engine.DefaultDomainName, account.ForComponent(media.Component))
	got, err := eip712.RecoverMessage(domain, media.PermitMessage(spender, 7, 2, 1700086400), sig.Signature)
	require.NoError(t, err)
	assert.Equal(t, sig.Signer, got)
}

func TestSignMintRecoversSigner(t *testing.T) {
	dir := t.TempDir()
	_, pw := generateKeystore(t, dir, "testnet")

	var data media.MintData
	data.AwKeyHex[0], data.ObjKeyHex[0] = 0x01, 0x02
	data.ContentHash[0], data.MetadataHash[0] = 0x03, 0x04
	hexOf := func(b [32]byte) string {
		text, _ := api.Hex32(b).MarshalText()
		return string(text)
	}

	out, err := run(t, "--datadir", dir, "sign", "mint",
		"--passwordfile", pw,
		"--aw", hexOf(data.AwKeyHex),
		"--obj", hexOf(data.ObjKeyHex),
		"--content-hash", hexOf(data.ContentHash),
		"--metadata-hash", hexOf(data.MetadataHash),
		"--creator-share", "5",
		"--deadline", "99",
		"--json")
	require.NoError(t, err, out)

	var sig outputSignature
	require.NoError(t, json.Unmarshal([]byte(out), &sig))

	domain := wallet.TestNet.Domain(engine.DefaultDomainName, account.ForComponent(media.Component))
	got, err := eip712.RecoverMessage(domain, media.MintMessage(data, decimal.New(5), 0, 99), sig.Signature)
	require.NoError(t, err)
	assert.Equal(t, sig.Signer, got)
}

func TestSignRejectsBadHash(t *testing.T) {
	dir := t.TempDir()
	_, pw := generateKeystore(t, dir, "devnet")

	_, err := run(t, "--datadir", dir, "sign", "edition",
		"--passwordfile", pw,
		"--aw", "0x1234",
		"--obj", "0x1234",
		"--edition-of", "10",
		"--deadline", "99")
	assert.Error(t, err)
}

func TestInitWritesConfig(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "--datadir", dir, "init", "--network", "devnet", "--store", "leveldb")
	require.NoError(t, err, out)

	cfg, err := config.LoadConfig(config.ConfigPath(dir))
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "devnet", cfg.Network)
	assert.Equal(t, "leveldb", cfg.Store)

	_, err = run(t, "--datadir", dir, "init")
	assert.Error(t, err)

	_, err = run(t, "--datadir", t.TempDir(), "init", "--network", "regtest")
	assert.ErrorIs(t, err, config.ErrInvalidNetwork)
}

func TestNewLoggerWritesFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogLevel = "debug"
	cfg.LogFile = filepath.Join(t.TempDir(), "armarket.log")

	log, err := newLogger(cfg)
	require.NoError(t, err)
	log.Debug("hello")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)

	cfg.LogLevel = "loud"
	_, err = newLogger(cfg)
	assert.Error(t, err)
}

func TestViewCacheSize(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, 1024, viewCacheSize(cfg))

	cfg.CacheSize = 16
	assert.Equal(t, 16, viewCacheSize(cfg))

	cfg.CacheSize = 0
	assert.Negative(t, viewCacheSize(cfg), "zero in the config file turns the cache off")
}
