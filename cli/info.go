package cli

import (
	"fmt"

	"github.com/go-barry/dynsite"
	"github.com/urfave/cli/v2"
)

var InfoCommand = &cli.Command{
	Name:  "info",
	Usage: "Print the effective configuration",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		config, err := dynsite.LoadRuntimeConfig(dynsite.RuntimeConfig{ConfigPath: c.String("config")})
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		templates := "embedded"
		if config.TemplateDir != "" {
			templates = config.TemplateDir
		}

		fmt.Println("🌍 Environment:", config.Env)
		fmt.Println("🔌 Port:", config.Port)
		fmt.Println("🏷️  Title:", config.Title)
		fmt.Println("🧩 Templates:", templates)
		fmt.Println("🗜️  Minify:", config.Minify)
		fmt.Println("🔁 Debug Headers Enabled:", config.DebugHeaders)
		fmt.Println("🔁 Debug Logs Enabled:", config.DebugLogs)
		fmt.Println("📝 Log Level:", config.LogLevel)

		return nil
	},
}
