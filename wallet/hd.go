package wallet

import (
	"fmt"

	bip32 "github.com/bsv-blockchain/go-sdk/compat/bip32"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	chaincfg "github.com/bsv-blockchain/go-sdk/transaction/chaincfg"

	"github.com/bitfsorg/armarket-go/account"
)

const (
	// BIP44 path constants.
	PurposeBIP44     = 44
	CoinTypeEthereum = 60

	// ExternalChain is the only chain signers are derived on.
	ExternalChain = 0

	// MaxIndex is the largest non-hardened BIP32 index.
	MaxIndex = 1<<31 - 1

	// BIP32 hardened offset.
	Hardened = 0x80000000
)

// Wallet derives signing keys for creators, owners and operators.
type Wallet struct {
	masterKey *bip32.ExtendedKey
}

// Signer is a derived key and the account it controls.
type Signer struct {
	PrivateKey *ec.PrivateKey  `json:"-"`
	Address    account.Address `json:"address"`
	Path       string          `json:"path"`
}

// NewWallet creates a Wallet from a BIP39 seed.
func NewWallet(seed []byte) (*Wallet, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}
	// The BIP32 version bytes only affect xprv serialization, never derivation.
	masterKey, err := bip32.NewMaster(seed, &chaincfg.MainNet)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}
	return &Wallet{masterKey: masterKey}, nil
}

// FromMnemonic is NewWallet over SeedFromMnemonic.
func FromMnemonic(mnemonic, passphrase string) (*Wallet, error) {
	seed, err := SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	return NewWallet(seed)
}

// Derive returns the signer at m/44'/60'/acct'/0/index.
func (w *Wallet) Derive(acct, index uint32) (*Signer, error) {
	if acct > MaxIndex || index > MaxIndex {
		return nil, ErrIndexOutOfRange
	}
	key := w.masterKey
	steps := []struct {
		name string
		idx  uint32
	}{
		{"purpose", PurposeBIP44 + Hardened},
		{"coin type", CoinTypeEthereum + Hardened},
		{"account", acct + Hardened},
		{"chain", ExternalChain},
		{"index", index},
	}
	for _, s := range steps {
		child, err := key.Child(s.idx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s derivation: %w", ErrDerivationFailed, s.name, err)
		}
		key = child
	}
	return toSigner(key, fmt.Sprintf("m/44'/60'/%d'/0/%d", acct, index))
}

// Signers derives the first n signers of account acct.
func (w *Wallet) Signers(acct uint32, n int) ([]*Signer, error) {
	out := make([]*Signer, 0, n)
	for i := 0; i < n; i++ {
		s, err := w.Derive(acct, uint32(i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// SignerFromKey wraps a raw 32-byte private key.
func SignerFromKey(raw []byte) (*Signer, error) {
	if len(raw) != 32 {
		return nil, fmt.Errorf("%w: private key must be 32 bytes", ErrInvalidSeed)
	}
	priv, pub := ec.PrivateKeyFromBytes(raw)
	if priv == nil || pub == nil {
		return nil, ErrInvalidSeed
	}
	return &Signer{PrivateKey: priv, Address: account.FromPublicKey(pub)}, nil
}

func toSigner(extKey *bip32.ExtendedKey, path string) (*Signer, error) {
	priv, err := extKey.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to extract EC private key: %w", ErrDerivationFailed, err)
	}
	pub := priv.PubKey()
	if pub == nil {
		return nil, fmt.Errorf("%w: failed to derive public key", ErrDerivationFailed)
	}
	return &Signer{PrivateKey: priv, Address: account.FromPublicKey(pub), Path: path}, nil
}
