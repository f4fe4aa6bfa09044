package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/go-barry/dynsite"
	"github.com/go-barry/dynsite/core"
	"github.com/urfave/cli/v2"
)

var CheckCommand = &cli.Command{
	Name:  "check",
	Usage: "Parse the page templates and render them against a sample request",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		config, err := dynsite.LoadRuntimeConfig(dynsite.RuntimeConfig{ConfigPath: c.String("config")})
		if err != nil {
			return cli.Exit(fmt.Sprintf("❌ config: %v", err), 1)
		}

		source := "embedded"
		if config.TemplateDir != "" {
			source = config.TemplateDir
		}

		assets, err := core.NewAssetStore(config)
		if err != nil {
			return cli.Exit(fmt.Sprintf("❌ assets: %v", err), 1)
		}

		renderer, err := core.NewRenderer(config, core.NewCounter(), assets)
		if err != nil {
			fmt.Printf("❌ %s → parse error: %v\n", source, err)
			return cli.Exit("some templates failed to compile", 1)
		}

		sample := core.RequestSnapshot{
			RequestID:     1,
			Timestamp:     core.FormatTimestamp(time.Now()),
			RequestMethod: core.UnknownValue,
			UserAgent:     core.UnknownValue,
			Host:          "localhost",
		}
		if err := renderer.Render(io.Discard, sample); err != nil {
			fmt.Printf("❌ %s → exec error: %v\n", source, err)
			return cli.Exit("some templates failed to compile", 1)
		}

		fmt.Printf("✅ %s\n", source)
		fmt.Println("✅ All templates validated successfully.")
		return nil
	},
}
