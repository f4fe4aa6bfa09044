package cli

import (
	"testing"

	"github.com/go-barry/dynsite"
	"github.com/urfave/cli/v2"
)

func recordStart(t *testing.T) **dynsite.RuntimeConfig {
	t.Helper()
	var recorded *dynsite.RuntimeConfig

	original := startServer
	startServer = func(cfg dynsite.RuntimeConfig) {
		recorded = &cfg
	}
	t.Cleanup(func() { startServer = original })

	return &recorded
}

func TestDevCommand_UsesDevConfig(t *testing.T) {
	recorded := recordStart(t)

	app := &cli.App{Commands: []*cli.Command{DevCommand}}
	if err := app.Run([]string{"dynsite", "dev"}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if *recorded == nil {
		t.Fatal("expected Start to be called, but it was not")
	}

	want := dynsite.RuntimeConfig{Env: "dev", Port: 0, ConfigPath: "dynsite.config.yml"}
	if **recorded != want {
		t.Errorf("unexpected dev config: %+v", **recorded)
	}
}

func TestProdCommand_UsesProdConfig(t *testing.T) {
	recorded := recordStart(t)

	app := &cli.App{Commands: []*cli.Command{ProdCommand}}
	if err := app.Run([]string{"dynsite", "prod", "--port", "8080", "-c", "custom.yml"}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if *recorded == nil {
		t.Fatal("expected Start to be called, but it was not")
	}

	want := dynsite.RuntimeConfig{Env: "prod", Port: 8080, ConfigPath: "custom.yml"}
	if **recorded != want {
		t.Errorf("unexpected prod config: %+v", **recorded)
	}
}
