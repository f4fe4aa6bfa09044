package main

import (
	"os"

	dynsitecli "github.com/go-barry/dynsite/cli"
	"github.com/rs/zerolog/log"
	clilib "github.com/urfave/cli/v2"
)

func runApp(args []string) error {
	app := &clilib.App{
		Name:  "dynsite",
		Usage: "Serve a page that shows what the server saw about each request",
		Commands: []*clilib.Command{
			dynsitecli.DevCommand,
			dynsitecli.ProdCommand,
			dynsitecli.CheckCommand,
			dynsitecli.InfoCommand,
		},
	}
	return app.Run(args)
}

func main() {
	if err := runApp(os.Args); err != nil {
		log.Fatal().Err(err).Msg("dynsite failed")
	}
}
