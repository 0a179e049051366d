package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bitfsorg/armarket-go/wallet"
)

type outputKey struct {
	Address    string `json:"address"`
	Path       string `json:"path"`
	Chain      string `json:"chain"`
	Mnemonic   string `json:"mnemonic,omitempty"`
	PrivateKey string `json:"privateKey,omitempty"`
}

var (
	mnemonicFlag = &cli.StringFlag{
		Name:  "mnemonic",
		Usage: "import an existing BIP39 mnemonic instead of generating one",
	}
	mnemonicPassphraseFlag = &cli.StringFlag{
		Name:  "mnemonic-passphrase",
		Usage: "optional BIP39 passphrase for mnemonic-to-seed",
	}
	mnemonicBitsFlag = &cli.IntFlag{
		Name:  "mnemonic-bits",
		Usage: "entropy bits of a generated mnemonic (128 or 256)",
		Value: wallet.Mnemonic12Words,
	}
	privateFlag = &cli.BoolFlag{
		Name:  "private",
		Usage: "include the private key in the output",
	}
)

var commandKeys = &cli.Command{
	Name:  "keys",
	Usage: "manage the signing keystore",
	Subcommands: []*cli.Command{
		commandKeysGenerate,
		commandKeysInspect,
	},
}

var commandKeysGenerate = &cli.Command{
	Name:  "generate",
	Usage: "create a keystore from a new or imported mnemonic",
	Description: `
Seal a BIP39 seed under the password in --passwordfile and write it to the
keystore. A generated mnemonic is printed once; write it down.`,
	Flags: []cli.Flag{
		passwordFileFlag,
		keystoreFlag,
		networkFlag,
		mnemonicFlag,
		mnemonicPassphraseFlag,
		mnemonicBitsFlag,
		jsonFlag,
	},
	Action: func(c *cli.Context) error {
		path := keystorePath(c)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("keystore already exists at %s", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("check keystore: %w", err)
		}
		password, err := readPassword(c)
		if err != nil {
			return err
		}
		network := "mainnet"
		if c.IsSet(networkFlag.Name) {
			network = c.String(networkFlag.Name)
		}
		if _, err := wallet.GetChain(network); err != nil {
			return err
		}

		mnemonic := strings.TrimSpace(c.String(mnemonicFlag.Name))
		generated := mnemonic == ""
		if generated {
			if mnemonic, err = wallet.GenerateMnemonic(c.Int(mnemonicBitsFlag.Name)); err != nil {
				return err
			}
		}
		seed, err := wallet.SeedFromMnemonic(mnemonic, c.String(mnemonicPassphraseFlag.Name))
		if err != nil {
			return err
		}
		w, err := wallet.NewWallet(seed)
		if err != nil {
			return err
		}
		signer, err := w.Derive(0, 0)
		if err != nil {
			return err
		}
		if err := wallet.SaveKeystore(path, seed, password, network); err != nil {
			return err
		}

		out := outputKey{Address: signer.Address.Hex(), Path: signer.Path, Chain: network}
		if generated {
			out.Mnemonic = mnemonic
		}
		return printKey(c, out, "Keystore written to "+path)
	},
}

var commandKeysInspect = &cli.Command{
	Name:  "inspect",
	Usage: "print the address of a key in the keystore",
	Description: `
Derive the key at m/44'/60'/<account>'/0/<index> and print its address.

Private key information can be printed by using the --private flag;
make sure to use this feature with great caution!`,
	Flags: []cli.Flag{
		passwordFileFlag,
		keystoreFlag,
		accountFlag,
		indexFlag,
		privateFlag,
		jsonFlag,
	},
	Action: func(c *cli.Context) error {
		signer, chain, err := loadSigner(c)
		if err != nil {
			return err
		}
		out := outputKey{Address: signer.Address.Hex(), Path: signer.Path, Chain: chain}
		if c.Bool(privateFlag.Name) {
			out.PrivateKey = hex.EncodeToString(signer.PrivateKey.Serialize())
		}
		return printKey(c, out, "")
	},
}

func keystorePath(c *cli.Context) string {
	if p := c.String(keystoreFlag.Name); p != "" {
		return p
	}
	return filepath.Join(c.String(dataDirFlag.Name), keystoreName)
}

// readPassword returns the first line of --passwordfile.
func readPassword(c *cli.Context) (string, error) {
	file := c.String(passwordFileFlag.Name)
	if file == "" {
		return "", errors.New("--passwordfile is required")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read password file: %w", err)
	}
	password, _, _ := strings.Cut(string(data), "\n")
	password = strings.TrimRight(password, "\r")
	if password == "" {
		return "", errors.New("password file is empty")
	}
	return password, nil
}

// loadSigner unseals the keystore and derives the key selected by
// --account and --index. It also returns the keystore's chain name.
func loadSigner(c *cli.Context) (*wallet.Signer, string, error) {
	password, err := readPassword(c)
	if err != nil {
		return nil, "", err
	}
	w, chain, err := wallet.LoadKeystore(keystorePath(c), password)
	if err != nil {
		return nil, "", err
	}
	signer, err := w.Derive(uint32(c.Uint(accountFlag.Name)), uint32(c.Uint(indexFlag.Name)))
	if err != nil {
		return nil, "", err
	}
	return signer, chain, nil
}

func printKey(c *cli.Context, out outputKey, header string) error {
	if c.Bool(jsonFlag.Name) {
		return writeJSON(c, out)
	}
	w := c.App.Writer
	if header != "" {
		fmt.Fprintln(w, header)
	}
	fmt.Fprintln(w, "Address:       ", out.Address)
	fmt.Fprintln(w, "Path:          ", out.Path)
	fmt.Fprintln(w, "Chain:         ", out.Chain)
	if out.Mnemonic != "" {
		fmt.Fprintln(w, "Mnemonic:      ", out.Mnemonic)
	}
	if out.PrivateKey != "" {
		fmt.Fprintln(w, "Private key:   ", out.PrivateKey)
	}
	return nil
}

func writeJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
