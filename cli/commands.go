package cli

import (
	"github.com/go-barry/dynsite"
	"github.com/go-barry/dynsite/core"

	"github.com/urfave/cli/v2"
)

var startServer = dynsite.Start

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   core.DefaultConfigPath,
		Usage:   "Path to the YAML config file",
	}
}

func serverFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Port to listen on (overrides config and PORT)",
		},
		configFlag(),
	}
}

func runtimeConfig(c *cli.Context, env string) dynsite.RuntimeConfig {
	return dynsite.RuntimeConfig{
		Env:        env,
		Port:       c.Int("port"),
		ConfigPath: c.String("config"),
	}
}

var DevCommand = &cli.Command{
	Name:  "dev",
	Usage: "Start dynsite in dev mode (no minification, live reload)",
	Flags: serverFlags(),
	Action: func(c *cli.Context) error {
		startServer(runtimeConfig(c, "dev"))
		return nil
	},
}

var ProdCommand = &cli.Command{
	Name:  "prod",
	Usage: "Start dynsite in production mode (minified, immutable assets)",
	Flags: serverFlags(),
	Action: func(c *cli.Context) error {
		startServer(runtimeConfig(c, "prod"))
		return nil
	},
}
