package wallet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/eip712"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The well-known development mnemonic shared by local chain tooling.
const devMnemonic = "test test test test test test test test test test test junk"

// --- Mnemonic tests ---

func TestGenerateMnemonic(t *testing.T) {
	for bits, words := range map[int]int{Mnemonic12Words: 12, Mnemonic24Words: 24} {
		m, err := GenerateMnemonic(bits)
		require.NoError(t, err)
		assert.Len(t, strings.Fields(m), words)
		assert.True(t, ValidateMnemonic(m))
	}

	_, err := GenerateMnemonic(64)
	assert.ErrorIs(t, err, ErrInvalidEntropy)
	_, err = GenerateMnemonic(192)
	assert.ErrorIs(t, err, ErrInvalidEntropy)
}

func TestValidateMnemonic(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		valid    bool
	}{
		{"dev mnemonic", devMnemonic, true},
		{"invalid words", "foo bar baz qux quux corge grault garply waldo fred plugh xyzzy", false},
		{"empty", "", false},
		{"partial", "test test", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateMnemonic(tt.mnemonic))
		})
	}
}

func TestSeedFromMnemonic(t *testing.T) {
	s1, err := SeedFromMnemonic(devMnemonic, "")
	require.NoError(t, err)
	s2, err := SeedFromMnemonic(devMnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
	assert.Len(t, s1, 64)

	s3, err := SeedFromMnemonic(devMnemonic, "passphrase")
	require.NoError(t, err)
	assert.NotEqual(t, s1, s3)

	_, err = SeedFromMnemonic("invalid mnemonic words here", "")
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

// --- Derivation tests ---

func TestDerive_KnownAddresses(t *testing.T) {
	w, err := FromMnemonic(devMnemonic, "")
	require.NoError(t, err)

	signers, err := w.Signers(0, 2)
	require.NoError(t, err)
	require.Len(t, signers, 2)

	assert.Equal(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", strings.ToLower(signers[0].Address.Hex()))
	assert.Equal(t, "0x70997970c51812dc3a010c7d01b50e0d17dc79c8", strings.ToLower(signers[1].Address.Hex()))
	assert.Equal(t, "m/44'/60'/0'/0/0", signers[0].Path)
	assert.Equal(t, "m/44'/60'/0'/0/1", signers[1].Path)
}

func TestDerive_Deterministic(t *testing.T) {
	w, err := FromMnemonic(devMnemonic, "")
	require.NoError(t, err)

	a, err := w.Derive(3, 7)
	require.NoError(t, err)
	b, err := w.Derive(3, 7)
	require.NoError(t, err)
	assert.Equal(t, a.Address, b.Address)

	c, err := w.Derive(4, 7)
	require.NoError(t, err)
	assert.NotEqual(t, a.Address, c.Address)
}

func TestDerive_Errors(t *testing.T) {
	_, err := NewWallet(nil)
	assert.ErrorIs(t, err, ErrInvalidSeed)

	w, err := FromMnemonic(devMnemonic, "")
	require.NoError(t, err)
	_, err = w.Derive(Hardened, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = w.Derive(0, Hardened)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSignerFromKey(t *testing.T) {
	raw := make([]byte, 32)
	raw[31] = 1
	s, err := SignerFromKey(raw)
	require.NoError(t, err)
	assert.Equal(t, account.MustParse("0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"), s.Address)

	_, err = SignerFromKey(raw[:31])
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestDerivedSignerSignsPermit(t *testing.T) {
	w, err := FromMnemonic(devMnemonic, "")
	require.NoError(t, err)
	s, err := w.Derive(0, 0)
	require.NoError(t, err)

	d := DevNet.Domain("ARMedia", account.Address{0xAA})
	msg := eip712.Permit{Spender: account.Address{0x01}, TokenID: *uint256.NewInt(1), Nonce: *uint256.NewInt(0), Deadline: *uint256.NewInt(99)}
	sig, err := eip712.SignMessage(s.PrivateKey, d, msg)
	require.NoError(t, err)

	got, err := eip712.RecoverMessage(d, msg, sig)
	require.NoError(t, err)
	assert.Equal(t, s.Address, got)
}

// --- Keystore tests ---

func TestSealOpen(t *testing.T) {
	secret := make([]byte, 64)
	for i := range secret {
		secret[i] = byte(i)
	}

	sealed, err := Seal(secret, "pw")
	require.NoError(t, err)
	assert.Greater(t, len(sealed), len(secret))

	opened, err := Open(sealed, "pw")
	require.NoError(t, err)
	assert.Equal(t, secret, opened)

	other, err := Seal(secret, "pw")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, other, "salt and nonce are random")

	_, err = Open(sealed, "wrong")
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	_, err = Open([]byte{1, 2, 3}, "pw")
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	_, err = Seal(nil, "pw")
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestKeystoreFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "keystore.json")
	seed, err := SeedFromMnemonic(devMnemonic, "")
	require.NoError(t, err)

	require.NoError(t, SaveKeystore(path, seed, "pw", "devnet"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	w, chain, err := LoadKeystore(path, "pw")
	require.NoError(t, err)
	assert.Equal(t, "devnet", chain)

	s, err := w.Derive(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", strings.ToLower(s.Address.Hex()))

	_, _, err = LoadKeystore(path, "nope")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

// --- Chain profile tests ---

func TestGetChain(t *testing.T) {
	c, err := GetChain("mainnet")
	require.NoError(t, err)
	assert.Equal(t, uint64(100), c.ChainID)

	_, err = GetChain("nope")
	assert.ErrorIs(t, err, ErrInvalidChain)
}

func TestLoadCustomChain(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"name":"local","chain_id":1337,"native_symbol":"ETH"}`), 0600))
	c, err := LoadCustomChain(good)
	require.NoError(t, err)
	assert.Equal(t, ChainProfile{Name: "local", ChainID: 1337, NativeSymbol: "ETH"}, *c)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"name":"local"}`), 0600))
	_, err = LoadCustomChain(bad)
	assert.ErrorIs(t, err, ErrInvalidChain)

	_, err = LoadCustomChain(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestChainDomain(t *testing.T) {
	verifying := account.Address{0xAB}
	d := TestNet.Domain("ARMedia", verifying)
	assert.Equal(t, eip712.Domain{Name: "ARMedia", Version: "1", ChainID: 4, VerifyingContract: verifying}, d)
	assert.NotEqual(t, d.Separator(), MainNet.Domain("ARMedia", verifying).Separator())
}
