package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
)

const (
	// Argon2id parameters for keystore encryption.
	Argon2Time        = 3
	Argon2Memory      = 64 * 1024 // 64 MB
	Argon2Parallelism = 4
	Argon2KeyLen      = 32

	// Sealed secret layout sizes.
	SaltLen     = 16
	NonceLen    = 12
	ChecksumLen = 4

	// KeystoreVersion is the current keystore file version.
	KeystoreVersion = 1
)

// Seal encrypts secret with Argon2id + AES-256-GCM.
//
//	salt(16B) || nonce(12B) || AES-GCM(argon2id(password, salt), nonce, secret || sha256(secret)[:4])
func Seal(secret []byte, password string) ([]byte, error) {
	if len(secret) == 0 {
		return nil, ErrInvalidSeed
	}
	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("wallet: failed to generate salt: %w", err)
	}
	gcm, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, NonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("wallet: failed to generate nonce: %w", err)
	}

	sum := sha256.Sum256(secret)
	plaintext := append(append([]byte(nil), secret...), sum[:ChecksumLen]...)

	out := make([]byte, 0, SaltLen+NonceLen+len(plaintext)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, nil), nil
}

// Open reverses Seal.
func Open(sealed []byte, password string) ([]byte, error) {
	if len(sealed) < SaltLen+NonceLen+ChecksumLen {
		return nil, ErrDecryptionFailed
	}
	salt := sealed[:SaltLen]
	nonce := sealed[SaltLen : SaltLen+NonceLen]

	gcm, err := newGCM(password, salt)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	plaintext, err := gcm.Open(nil, nonce, sealed[SaltLen+NonceLen:], nil)
	if err != nil || len(plaintext) <= ChecksumLen {
		return nil, ErrDecryptionFailed
	}

	secret := plaintext[:len(plaintext)-ChecksumLen]
	sum := sha256.Sum256(secret)
	if subtle.ConstantTimeCompare(sum[:ChecksumLen], plaintext[len(plaintext)-ChecksumLen:]) != 1 {
		return nil, ErrChecksumMismatch
	}
	return secret, nil
}

func newGCM(password string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey([]byte(password), salt, Argon2Time, Argon2Memory, Argon2Parallelism, Argon2KeyLen)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("wallet: AES cipher creation failed: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("wallet: GCM creation failed: %w", err)
	}
	return gcm, nil
}

// Keystore is the on-disk form of a sealed BIP39 seed.
type Keystore struct {
	Version int    `json:"version"`
	Chain   string `json:"chain"`
	Sealed  string `json:"sealed"`
}

// SaveKeystore seals seed under password and writes it to path with 0600 permissions.
func SaveKeystore(path string, seed []byte, password, chain string) error {
	sealed, err := Seal(seed, password)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(Keystore{
		Version: KeystoreVersion,
		Chain:   chain,
		Sealed:  hex.EncodeToString(sealed),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("wallet: encode keystore: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("wallet: create keystore dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("wallet: write keystore: %w", err)
	}
	return nil
}

// LoadKeystore reads and unseals a keystore, returning the wallet and the
// chain profile name it was created for.
func LoadKeystore(path, password string) (*Wallet, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("wallet: read keystore: %w", err)
	}
	var ks Keystore
	if err := json.Unmarshal(data, &ks); err != nil {
		return nil, "", fmt.Errorf("wallet: parse keystore: %w", err)
	}
	if ks.Version != KeystoreVersion {
		return nil, "", fmt.Errorf("wallet: unsupported keystore version %d", ks.Version)
	}
	sealed, err := hex.DecodeString(ks.Sealed)
	if err != nil {
		return nil, "", ErrDecryptionFailed
	}
	seed, err := Open(sealed, password)
	if err != nil {
		return nil, "", err
	}
	w, err := NewWallet(seed)
	if err != nil {
		return nil, "", err
	}
	return w, ks.Chain, nil
}
