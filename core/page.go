package core

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/tdewolff/minify/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutTemplate = "layout"
	ReloadPath     = "/__dynsite_reload"
)

type PageData struct {
	Title      string
	Snapshot   RequestSnapshot
	LiveReload bool
	ReloadPath string
}

type RendererOption func(*Renderer)

func WithClock(now func() time.Time) RendererOption {
	return func(r *Renderer) {
		r.now = now
	}
}

// Renderer turns a request into the four-panel page. It owns the request
// counter, so every Snapshot call advances it.
type Renderer struct {
	config   Config
	counter  *Counter
	now      func() time.Time
	source   fs.FS
	funcs    template.FuncMap
	minifier *minify.M

	mu   sync.RWMutex
	tmpl *template.Template
}

func NewRenderer(config Config, counter *Counter, assets *AssetStore, opts ...RendererOption) (*Renderer, error) {
	source, err := templateSource(config)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		config:  config,
		counter: counter,
		now:     time.Now,
		source:  source,
		funcs:   TemplateFuncs(assets),
	}
	if config.Minify && !config.IsDev() {
		r.minifier = NewMinifier()
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func templateSource(config Config) (fs.FS, error) {
	if config.TemplateDir != "" {
		info, err := os.Stat(config.TemplateDir)
		if err != nil {
			return nil, fmt.Errorf("%w: template dir: %v", ErrInvalidConfig, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: template dir %s is not a directory", ErrInvalidConfig, config.TemplateDir)
		}
		return os.DirFS(config.TemplateDir), nil
	}
	return fs.Sub(templateFS, "templates")
}

// Reload re-parses the templates from their source. On failure the
// previous set stays in use.
func (r *Renderer) Reload() error {
	tmpl, err := template.New("page").Funcs(r.funcs).ParseFS(r.source, "*.html")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	if tmpl.Lookup(layoutTemplate) == nil {
		return fmt.Errorf("%w: no %q template defined", ErrTemplate, layoutTemplate)
	}

	r.mu.Lock()
	r.tmpl = tmpl
	r.mu.Unlock()
	return nil
}

// Snapshot advances the counter and captures what req carries.
func (r *Renderer) Snapshot(req *http.Request) RequestSnapshot {
	return NewSnapshot(req, r.counter.Next(), r.now())
}

// Render writes the page for snap to w. Nothing is written when rendering
// fails.
func (r *Renderer) Render(w io.Writer, snap RequestSnapshot) error {
	data := PageData{
		Title:      r.config.Title,
		Snapshot:   snap,
		LiveReload: r.config.IsDev(),
		ReloadPath: ReloadPath,
	}

	r.mu.RLock()
	tmpl := r.tmpl
	r.mu.RUnlock()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		return fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	page := buf.Bytes()
	if r.minifier != nil {
		var out bytes.Buffer
		if err := r.minifier.Minify("text/html", &out, bytes.NewReader(page)); err == nil {
			page = out.Bytes()
		}
	}

	_, err := w.Write(page)
	return err
}
