package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/bitfsorg/armarket-go/config"
)

var commandInit = &cli.Command{
	Name:  "init",
	Usage: "write a default config file into the data directory",
	Flags: []cli.Flag{
		networkFlag,
		storeFlag,
	},
	Action: func(c *cli.Context) error {
		dataDir := c.String(dataDirFlag.Name)
		path := config.ConfigPath(dataDir)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}

		cfg := config.DefaultConfig()
		cfg.DataDir = dataDir
		if c.IsSet(networkFlag.Name) {
			cfg.Network = c.String(networkFlag.Name)
		}
		if c.IsSet(storeFlag.Name) {
			cfg.Store = c.String(storeFlag.Name)
		}
		if err := config.ValidateConfig(cfg); err != nil {
			return err
		}
		if err := config.SaveConfig(path, cfg); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
		return nil
	},
}
