// Command armarket runs the marketplace engine behind its HTTP API and
// manages the keys creators and owners sign authorizations with.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/bitfsorg/armarket-go/config"
)

const keystoreName = "keystore.json"

// Set via linker flags.
var gitCommit = ""

var app = newApp()

func newApp() *cli.App {
	a := cli.NewApp()
	a.Name = "armarket"
	a.Usage = "marketplace settlement engine"
	a.Version = "0.1.0"
	if gitCommit != "" {
		a.Version += "-" + gitCommit
	}
	a.Flags = []cli.Flag{dataDirFlag}
	a.Commands = []*cli.Command{
		commandServe,
		commandInit,
		commandKeys,
		commandSign,
	}
	return a
}

// Commonly used command line flags.
var (
	dataDirFlag = &cli.StringFlag{
		Name:    "datadir",
		Usage:   "data directory holding the config, ledger and keystore",
		Value:   config.DefaultDataDir(),
		EnvVars: []string{"ARMARKET_DATADIR"},
	}
	passwordFileFlag = &cli.StringFlag{
		Name:  "passwordfile",
		Usage: "the file that contains the keystore password",
	}
	keystoreFlag = &cli.StringFlag{
		Name:  "keystore",
		Usage: "keystore path (default <datadir>/" + keystoreName + ")",
	}
	accountFlag = &cli.UintFlag{
		Name:  "account",
		Usage: "BIP44 account of the signing key",
	}
	indexFlag = &cli.UintFlag{
		Name:  "index",
		Usage: "BIP44 address index of the signing key",
	}
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "output JSON instead of human-readable format",
	}
)

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
