package wallet

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/eip712"
)

// DomainVersion is the version string every signing domain carries.
const DomainVersion = "1"

// ChainProfile names a deployment target and the chain id bound into
// every signature made for it.
type ChainProfile struct {
	Name    string `json:"name"`
	ChainID uint64 `json:"chain_id"`
	// NativeSymbol is the ticker of the chain's native coin.
	NativeSymbol string `json:"native_symbol"`
}

// Predefined chain profiles.
var (
	MainNet = ChainProfile{Name: "mainnet", ChainID: 100, NativeSymbol: "xDAI"}
	TestNet = ChainProfile{Name: "testnet", ChainID: 4, NativeSymbol: "ETH"}
	DevNet  = ChainProfile{Name: "devnet", ChainID: 31337, NativeSymbol: "ETH"}
)

var predefined = map[string]*ChainProfile{
	"mainnet": &MainNet,
	"testnet": &TestNet,
	"devnet":  &DevNet,
}

// GetChain returns a predefined chain profile by name.
func GetChain(name string) (*ChainProfile, error) {
	if c, ok := predefined[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidChain, name)
}

// LoadCustomChain loads a ChainProfile from a JSON file.
func LoadCustomChain(path string) (*ChainProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wallet: failed to read chain profile: %w", err)
	}
	var c ChainProfile
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("wallet: failed to parse chain profile: %w", err)
	}
	if c.Name == "" || c.ChainID == 0 {
		return nil, fmt.Errorf("%w: profile needs a name and a chain id", ErrInvalidChain)
	}
	return &c, nil
}

// Domain returns the signing domain of the media registry deployed at
// verifying under the given name on this chain.
func (c ChainProfile) Domain(name string, verifying account.Address) eip712.Domain {
	return eip712.Domain{
		Name:              name,
		Version:           DomainVersion,
		ChainID:           c.ChainID,
		VerifyingContract: verifying,
	}
}
