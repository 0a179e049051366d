package main

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/api"
	"github.com/bitfsorg/armarket-go/decimal"
	"github.com/bitfsorg/armarket-go/eip712"
	"github.com/bitfsorg/armarket-go/engine"
	"github.com/bitfsorg/armarket-go/media"
	"github.com/bitfsorg/armarket-go/wallet"
)

type outputSignature struct {
	Signer    account.Address  `json:"signer"`
	Deadline  uint64           `json:"deadline"`
	Signature eip712.Signature `json:"signature"`
}

var (
	domainNameFlag = &cli.StringFlag{
		Name:  "domain",
		Usage: "typed-data domain name of the target deployment",
		Value: engine.DefaultDomainName,
	}
	verifyingFlag = &cli.StringFlag{
		Name:  "verifying-contract",
		Usage: "media address of the target deployment",
		Value: account.ForComponent(media.Component).Hex(),
	}
	deadlineFlag = &cli.Uint64Flag{
		Name:     "deadline",
		Usage:    "unix time after which the signature is rejected",
		Required: true,
	}
	nonceFlag = &cli.StringFlag{
		Name:  "nonce",
		Usage: "nonce of the signer, as reported by the API",
		Value: "0",
	}
	awFlag = &cli.StringFlag{
		Name:     "aw",
		Usage:    "artwork key, 32 bytes hex",
		Required: true,
	}
	objFlag = &cli.StringFlag{
		Name:     "obj",
		Usage:    "object key, 32 bytes hex",
		Required: true,
	}
	contentHashFlag = &cli.StringFlag{
		Name:     "content-hash",
		Usage:    "content hash, 32 bytes hex",
		Required: true,
	}
	metadataHashFlag = &cli.StringFlag{
		Name:     "metadata-hash",
		Usage:    "metadata hash, 32 bytes hex",
		Required: true,
	}
	creatorShareFlag = &cli.StringFlag{
		Name:  "creator-share",
		Usage: "creator share percentage of the bid shares being minted",
		Value: "0",
	}
	editionOfFlag = &cli.Uint64Flag{
		Name:     "edition-of",
		Usage:    "total size of the edition",
		Required: true,
	}
	initialAskFlag = &cli.StringFlag{
		Name:  "initial-ask",
		Usage: "initial ask amount in the smallest currency unit",
		Value: "0",
	}
	setInitialAskFlag = &cli.BoolFlag{
		Name:  "set-initial-ask",
		Usage: "list every minted token at --initial-ask",
	}
	spenderFlag = &cli.StringFlag{
		Name:     "spender",
		Usage:    "address to approve",
		Required: true,
	}
	tokenFlag = &cli.Uint64Flag{
		Name:     "token",
		Usage:    "token id",
		Required: true,
	}
)

func signFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		passwordFileFlag,
		keystoreFlag,
		accountFlag,
		indexFlag,
		domainNameFlag,
		verifyingFlag,
		deadlineFlag,
		nonceFlag,
		jsonFlag,
	}, extra...)
}

var commandSign = &cli.Command{
	Name:  "sign",
	Usage: "sign an off-band authorization with a keystore key",
	Subcommands: []*cli.Command{
		commandSignMint,
		commandSignEdition,
		commandSignPermit,
	},
}

var commandSignMint = &cli.Command{
	Name:  "mint",
	Usage: "authorize a relayer to mint a single token for the signer",
	Flags: signFlags(awFlag, objFlag, contentHashFlag, metadataHashFlag, creatorShareFlag),
	Action: func(c *cli.Context) error {
		var (
			data media.MintData
			err  error
		)
		if data.AwKeyHex, err = hexFlag(c, awFlag); err != nil {
			return err
		}
		if data.ObjKeyHex, err = hexFlag(c, objFlag); err != nil {
			return err
		}
		if data.ContentHash, err = hexFlag(c, contentHashFlag); err != nil {
			return err
		}
		if data.MetadataHash, err = hexFlag(c, metadataHashFlag); err != nil {
			return err
		}
		share, err := decimal.Parse(c.String(creatorShareFlag.Name))
		if err != nil {
			return fmt.Errorf("--%s: %w", creatorShareFlag.Name, err)
		}
		nonce, err := nonceOf(c)
		if err != nil {
			return err
		}
		if !nonce.IsUint64() {
			return fmt.Errorf("--%s: out of range", nonceFlag.Name)
		}
		return signWith(c, func(s *wallet.Signer, d eip712.Domain, deadline uint64) (media.Authorization, error) {
			return media.SignMint(s.PrivateKey, d, data, share, nonce.Uint64(), deadline)
		})
	},
}

var commandSignEdition = &cli.Command{
	Name:  "edition",
	Usage: "authorize a relayer to mint an edition for the signer",
	Description: `
The same signature authorizes every chunk of the edition. Use the
mintArObject nonce reported by the API; it must exceed the last one used.`,
	Flags: signFlags(awFlag, objFlag, editionOfFlag, initialAskFlag, setInitialAskFlag),
	Action: func(c *cli.Context) error {
		var (
			data media.EditionData
			err  error
		)
		if data.AwKeyHex, err = hexFlag(c, awFlag); err != nil {
			return err
		}
		if data.ObjKeyHex, err = hexFlag(c, objFlag); err != nil {
			return err
		}
		data.EditionOf = c.Uint64(editionOfFlag.Name)
		data.SetInitialAsk = c.Bool(setInitialAskFlag.Name)
		ask, err := decimal.ParseAmount(c.String(initialAskFlag.Name))
		if err != nil {
			return fmt.Errorf("--%s: %w", initialAskFlag.Name, err)
		}
		data.InitialAsk = *ask
		nonce, err := nonceOf(c)
		if err != nil {
			return err
		}
		data.Nonce = *nonce
		return signWith(c, func(s *wallet.Signer, d eip712.Domain, deadline uint64) (media.Authorization, error) {
			return media.SignEdition(s.PrivateKey, d, data, deadline)
		})
	},
}

var commandSignPermit = &cli.Command{
	Name:  "permit",
	Usage: "approve a spender for a token the signer owns",
	Flags: signFlags(spenderFlag, tokenFlag),
	Action: func(c *cli.Context) error {
		spender, err := account.ParseAddress(c.String(spenderFlag.Name))
		if err != nil {
			return fmt.Errorf("--%s: %w", spenderFlag.Name, err)
		}
		nonce, err := nonceOf(c)
		if err != nil {
			return err
		}
		if !nonce.IsUint64() {
			return fmt.Errorf("--%s: out of range", nonceFlag.Name)
		}
		id := c.Uint64(tokenFlag.Name)
		return signWith(c, func(s *wallet.Signer, d eip712.Domain, deadline uint64) (media.Authorization, error) {
			return media.SignPermit(s.PrivateKey, d, spender, id, nonce.Uint64(), deadline)
		})
	},
}

// signWith loads the signer, builds the domain of the keystore's chain and
// prints the authorization fn produces.
func signWith(c *cli.Context, fn func(s *wallet.Signer, d eip712.Domain, deadline uint64) (media.Authorization, error)) error {
	signer, chainName, err := loadSigner(c)
	if err != nil {
		return err
	}
	chain, err := wallet.GetChain(chainName)
	if err != nil {
		return err
	}
	verifying, err := account.ParseAddress(c.String(verifyingFlag.Name))
	if err != nil {
		return fmt.Errorf("--%s: %w", verifyingFlag.Name, err)
	}
	domain := chain.Domain(c.String(domainNameFlag.Name), verifying)

	auth, err := fn(signer, domain, c.Uint64(deadlineFlag.Name))
	if err != nil {
		return err
	}
	out := outputSignature{Signer: signer.Address, Deadline: auth.Deadline, Signature: auth.Signature}
	if c.Bool(jsonFlag.Name) {
		return writeJSON(c, out)
	}
	sig, _ := out.Signature.MarshalText()
	fmt.Fprintln(c.App.Writer, "Signer:    ", out.Signer.Hex())
	fmt.Fprintln(c.App.Writer, "Deadline:  ", out.Deadline)
	fmt.Fprintln(c.App.Writer, "Signature: ", string(sig))
	return nil
}

func hexFlag(c *cli.Context, f *cli.StringFlag) ([32]byte, error) {
	var h api.Hex32
	if err := h.UnmarshalText([]byte(c.String(f.Name))); err != nil {
		return [32]byte{}, fmt.Errorf("--%s: %w", f.Name, err)
	}
	return h, nil
}

func nonceOf(c *cli.Context) (*uint256.Int, error) {
	n, err := decimal.ParseAmount(c.String(nonceFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", nonceFlag.Name, err)
	}
	return n, nil
}
