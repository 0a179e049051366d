package eip712

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/bitfsorg/armarket-go/account"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDomain() Domain {
	return Domain{
		Name:              "OpenAR",
		Version:           "1",
		ChainID:           100,
		VerifyingContract: account.MustParse("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"),
	}
}

func newKey(t *testing.T) (*ec.PrivateKey, account.Address) {
	t.Helper()
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	return priv, account.FromPublicKey(priv.PubKey())
}

func testMint() MintWithSig {
	m := MintWithSig{
		AwKeyHash:    sha256.Sum256([]byte("artwork")),
		ObjKeyHash:   sha256.Sum256([]byte("object")),
		ContentHash:  sha256.Sum256([]byte("content")),
		MetadataHash: sha256.Sum256([]byte("{}")),
	}
	m.CreatorShare.Mul(uint256.NewInt(5), uint256.NewInt(1_000_000_000_000_000_000))
	m.Deadline.SetUint64(1700086400)
	return m
}

func TestDomainSeparator_ReferenceVector(t *testing.T) {
	// Domain from the EIP-712 "Ether Mail" example.
	d := Domain{
		Name:              "Ether Mail",
		Version:           "1",
		ChainID:           1,
		VerifyingContract: account.MustParse("0xcccccccccccccccccccccccccccccccccccccccc"),
	}
	sep := d.Separator()
	assert.Equal(t, "f2cee375fa42b42143804025fc449deafd50cc031ca257e0b194a650a912090f", hex.EncodeToString(sep[:]))
}

func TestSignRecover_RoundTrip(t *testing.T) {
	priv, addr := newKey(t)
	d := testDomain()

	messages := map[string]Message{
		"mintWithSig": testMint(),
		"mintArObject": MintArObject{
			AwKeyHash:     sha256.Sum256([]byte("artwork")),
			ObjKeyHash:    sha256.Sum256([]byte("object")),
			EditionOf:     *uint256.NewInt(107),
			SetInitialAsk: true,
			InitialAsk:    *uint256.NewInt(222),
			Nonce:         *uint256.NewInt(1700000000123),
			Deadline:      *uint256.NewInt(1700086400),
		},
		"permit": Permit{
			Spender:  account.Address{0xAA},
			TokenID:  *uint256.NewInt(0),
			Deadline: *uint256.NewInt(1700086400),
		},
	}

	for name, m := range messages {
		t.Run(name, func(t *testing.T) {
			sig, err := SignMessage(priv, d, m)
			require.NoError(t, err)
			assert.Contains(t, []uint8{27, 28}, sig.V)

			got, err := RecoverMessage(d, m, sig)
			require.NoError(t, err)
			assert.Equal(t, addr, got)
		})
	}
}

func TestRecover_TamperedMessage(t *testing.T) {
	priv, addr := newKey(t)
	d := testDomain()
	m := testMint()

	sig, err := SignMessage(priv, d, m)
	require.NoError(t, err)

	m.CreatorShare.SetUint64(99)
	got, err := RecoverMessage(d, m, sig)
	if err == nil {
		assert.NotEqual(t, addr, got)
	}

	other := d
	other.ChainID = 1
	got, err = RecoverMessage(other, testMint(), sig)
	if err == nil {
		assert.NotEqual(t, addr, got)
	}
}

func TestStructHash_FieldsMatter(t *testing.T) {
	a := MintArObject{EditionOf: *uint256.NewInt(10)}
	b := a
	b.SetInitialAsk = true
	assert.NotEqual(t, a.StructHash(), b.StructHash())

	p := Permit{Spender: account.Address{1}}
	q := Permit{Spender: account.Address{2}}
	assert.NotEqual(t, p.StructHash(), q.StructHash())
}

func TestSignature_Encoding(t *testing.T) {
	priv, _ := newKey(t)
	sig, err := Sign(priv, Digest(testDomain(), testMint()))
	require.NoError(t, err)

	parsed, err := SignatureFromBytes(sig.Bytes())
	require.NoError(t, err)
	assert.Equal(t, sig, parsed)

	raw := sig.Bytes()
	raw[64] -= 27
	parsed, err = SignatureFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, sig.V, parsed.V)

	data, err := json.Marshal(sig)
	require.NoError(t, err)
	var back Signature
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, sig, back)

	_, err = SignatureFromBytes(raw[:64])
	assert.ErrorIs(t, err, ErrMalformedSignature)
}

func TestRecover_Rejects(t *testing.T) {
	digest := Digest(testDomain(), testMint())

	_, err := Recover(digest, Signature{V: 29})
	assert.ErrorIs(t, err, ErrMalformedSignature)

	high := Signature{V: 27}
	for i := range high.S {
		high.S[i] = 0xff
	}
	_, err = Recover(digest, high)
	assert.ErrorIs(t, err, ErrMalformedSignature)

	_, err = Sign(nil, digest)
	assert.ErrorIs(t, err, ErrNilKey)
}
