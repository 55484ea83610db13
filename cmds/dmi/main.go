package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/threefoldtech/dmi/cmds/modules/dmid"
	"github.com/threefoldtech/dmi/pkg/environment"
	"github.com/threefoldtech/dmi/pkg/version"
	"github.com/urfave/cli/v2"
)

func main() {
	exe := cli.App{
		Name:    "dmi",
		Usage:   "decode the smbios (dmi) tables of this machine",
		Version: version.Current().String(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the yaml `CONFIG` file",
				Value: environment.DefaultConfigPath,
			},
		},
		Before: func(c *cli.Context) error {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if c.Bool("debug") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			&tablesCmd,
			&entryPointCmd,
			&inventoryCmd,
			&dmid.Module,
		},
	}

	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Println(c.App.Version)
	}
	name := filepath.Base(os.Args[0])
	args := os.Args
	for _, cmd := range exe.Commands {
		if cmd.Name == name {
			args = make([]string, 0, len(os.Args)+1)
			// this converts /bin/name <args> to 'dmi <name> <args>'
			args = append(args, "bin", name)
			args = append(args, os.Args[1:]...)
			break
		}
	}

	if err := exe.Run(args); err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}
