package core

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/segmentio/encoding/json"
)

const (
	routePage     = "page"
	routeSnapshot = "snapshot"
	routeHealth   = "health"

	headerRoute = "X-Dynsite-Route"
)

type Router struct {
	config   Config
	renderer *Renderer
}

var NewRouter = func(config Config, renderer *Renderer) http.Handler {
	return &Router{config: config, renderer: renderer}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	switch strings.Trim(req.URL.Path, "/") {
	case "":
		r.withRoute(w, routePage)
		if allowRead(w, req) {
			r.servePage(w, req)
		}
	case "api/snapshot":
		r.withRoute(w, routeSnapshot)
		if allowRead(w, req) {
			r.serveSnapshot(w, req)
		}
	case "healthz":
		r.withRoute(w, routeHealth)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	default:
		http.NotFound(w, req)
	}
}

func (r *Router) withRoute(w http.ResponseWriter, name string) {
	if r.config.DebugHeaders {
		w.Header().Set(headerRoute, name)
	}
}

func allowRead(w http.ResponseWriter, req *http.Request) bool {
	if req.Method == http.MethodGet || req.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	return false
}

func (r *Router) servePage(w http.ResponseWriter, req *http.Request) {
	snap := r.renderer.Snapshot(req)
	logger := zerolog.Ctx(req.Context())

	var buf bytes.Buffer
	if err := r.renderer.Render(&buf, snap); err != nil {
		logger.Error().Err(err).Uint64("request_number", snap.RequestID).Msg("Failed to render page")
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	logger.Debug().Uint64("request_number", snap.RequestID).Str("host", snap.Host).Msg("Page rendered")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", cacheNoStore)
	w.Write(buf.Bytes())
}

func (r *Router) serveSnapshot(w http.ResponseWriter, req *http.Request) {
	snap := r.renderer.Snapshot(req)

	body, err := json.Marshal(snap)
	if err != nil {
		zerolog.Ctx(req.Context()).Error().Err(err).Msg("Failed to encode snapshot")
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", cacheNoStore)
	w.Write(body)
}
