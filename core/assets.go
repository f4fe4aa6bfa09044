package core

import (
	"bytes"
	"crypto/md5"
	"embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	minjs "github.com/tdewolff/minify/v2/js"
)

//go:embed public
var publicFS embed.FS

const (
	StaticPrefix = "/static/"

	cacheImmutable = "public, max-age=31536000, immutable"
	cacheNoStore   = "no-store"
)

type Asset struct {
	Name        string
	Content     []byte
	ContentType string
	Hash        string
}

// AssetStore holds the embedded public files, minified once at startup
// when minification is on.
type AssetStore struct {
	env    string
	assets map[string]Asset
}

func NewAssetStore(config Config) (*AssetStore, error) {
	sub, err := fs.Sub(publicFS, "public")
	if err != nil {
		return nil, err
	}
	return newAssetStoreFS(config, sub)
}

func newAssetStoreFS(config Config, fsys fs.FS) (*AssetStore, error) {
	m := NewMinifier()
	shouldMinify := config.Minify && !config.IsDev()

	store := &AssetStore{env: config.Env, assets: map[string]Asset{}}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read asset %s: %w", p, err)
		}

		contentType := detectMimeType(p)
		if shouldMinify {
			content = minifyAsset(m, contentType, content)
		}

		h := md5.Sum(content)
		store.assets[p] = Asset{
			Name:        p,
			Content:     content,
			ContentType: contentType,
			Hash:        hex.EncodeToString(h[:])[:6],
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

func (s *AssetStore) Lookup(name string) (Asset, bool) {
	a, ok := s.assets[name]
	return a, ok
}

// URL appends a content hash to a /static/ path so prod can serve it as
// immutable. Unknown paths are returned as given.
func (s *AssetStore) URL(p string) string {
	if !strings.HasPrefix(p, StaticPrefix) {
		return p
	}
	a, ok := s.Lookup(strings.TrimPrefix(p, StaticPrefix))
	if !ok {
		return p
	}
	return fmt.Sprintf("%s%s?v=%s", StaticPrefix, a.Name, a.Hash)
}

func (s *AssetStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, StaticPrefix)
	if strings.Contains(name, "..") {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	a, ok := s.Lookup(path.Clean(name))
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.Serve(w, r, a)
}

func (s *AssetStore) Serve(w http.ResponseWriter, r *http.Request, a Asset) {
	w.Header().Set("Content-Type", a.ContentType)
	if s.env == EnvDev {
		w.Header().Set("Cache-Control", cacheNoStore)
	} else {
		w.Header().Set("Cache-Control", cacheImmutable)
	}
	http.ServeContent(w, r, a.Name, time.Time{}, bytes.NewReader(a.Content))
}

func NewMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	m.AddFunc("application/javascript", minjs.Minify)
	m.Add("text/html", &minhtml.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	return m
}

func minifyAsset(m *minify.M, contentType string, content []byte) []byte {
	mediaType, _, _ := strings.Cut(contentType, ";")
	switch mediaType {
	case "text/css", "application/javascript":
	default:
		return content
	}

	var buf bytes.Buffer
	if err := m.Minify(mediaType, &buf, bytes.NewReader(content)); err != nil {
		return content
	}
	return buf.Bytes()
}

func detectMimeType(name string) string {
	switch filepath.Ext(name) {
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".ico":
		return "image/x-icon"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// TemplateFuncs merges sprig's HTML-safe helpers with the page helpers.
func TemplateFuncs(assets *AssetStore) template.FuncMap {
	funcs := sprig.HtmlFuncMap()
	funcs["versioned"] = assets.URL
	funcs["safeHTML"] = func(s interface{}) template.HTML {
		switch val := s.(type) {
		case template.HTML:
			return val
		case string:
			return template.HTML(val)
		default:
			return ""
		}
	}
	return funcs
}
