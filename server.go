package dynsite

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-barry/dynsite/core"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog/log"
)

type RuntimeConfig struct {
	Env        string
	Port       int
	ConfigPath string
}

const shutdownTimeout = 5 * time.Second

var ListenAndServe = func(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

var Exit = os.Exit

// LoadRuntimeConfig reads the config file and lets non-zero RuntimeConfig
// fields override it.
func LoadRuntimeConfig(cfg RuntimeConfig) (core.Config, error) {
	path := cfg.ConfigPath
	if path == "" {
		path = core.DefaultConfigPath
	}

	config, err := core.LoadConfig(path)
	if err != nil {
		return config, err
	}
	if cfg.Env != "" {
		config.Env = cfg.Env
	}
	if cfg.Port > 0 {
		config.Port = cfg.Port
	}
	return config, config.Validate()
}

// BuildServer wires the page, static assets and, in dev, live reload. The
// template watcher runs until ctx is done.
func BuildServer(ctx context.Context, cfg RuntimeConfig) (string, http.Handler, error) {
	config, err := LoadRuntimeConfig(cfg)
	if err != nil {
		return "", nil, err
	}
	core.SetupLogging(config, os.Stderr)

	assets, err := core.NewAssetStore(config)
	if err != nil {
		return "", nil, fmt.Errorf("load assets: %w", err)
	}

	renderer, err := core.NewRenderer(config, core.NewCounter(), assets)
	if err != nil {
		return "", nil, err
	}

	app := http.NewServeMux()
	setupStaticRoutes(app, assets)
	app.Handle("/", core.NewRouter(config, renderer))

	mux := http.NewServeMux()
	if config.IsDev() {
		reloader := core.NewLiveReloader()
		mux.HandleFunc(core.ReloadPath, reloader.Handler)

		if config.TemplateDir != "" {
			err := core.WatchTemplates(ctx, config.TemplateDir, func() {
				if err := renderer.Reload(); err != nil {
					log.Error().Err(err).Msg("Template reload failed")
					return
				}
				reloader.BroadcastReload()
			})
			if err != nil {
				return "", nil, err
			}
		}
	}
	mux.Handle("/", gzhttp.GzipHandler(app))

	return fmt.Sprintf(":%d", config.Port), core.WithRequestID(core.WithAccessLog(mux)), nil
}

func setupStaticRoutes(mux *http.ServeMux, assets *core.AssetStore) {
	mux.Handle(core.StaticPrefix, assets)

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		a, ok := assets.Lookup("robots.txt")
		if !ok {
			http.NotFound(w, r)
			return
		}
		assets.Serve(w, r, a)
	})
}

func Start(cfg RuntimeConfig) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr, handler, err := BuildServer(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to start dynsite")
		Exit(1)
		return
	}

	log.Info().Str("addr", addr).Msgf("dynsite running at http://localhost%s", addr)
	if err := ListenAndServe(addr, handler); err != nil {
		log.Error().Err(err).Msg("Server failed")
		Exit(1)
	}
}
