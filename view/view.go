// Package view renders server-side pages from pre-parsed html/template sets.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/crawlerweb/errors"
	"github.com/kochabx/crawlerweb/log"
)

const (
	// Layout wraps every view.
	Layout = "app.html"
	// NotFound is rendered for paths the router does not know.
	NotFound = "404.html"

	contentTypeHTML = "text/html; charset=utf-8"
)

// Data is what layouts and views are executed with.
type Data struct {
	Title     string
	Name      string
	BasePath  string
	RequestID string
	Data      any
	Error     string
}

// Loader fetches the data a view shows. A failing loader does not fail the
// page; the error is rendered instead.
type Loader func(c *gin.Context) (any, error)

// Set holds one template per view, each a clone of the parsed layouts.
type Set struct {
	views    map[string]*template.Template
	loaders  map[string]Loader
	basePath string
}

type Option func(*Set)

// WithBasePath is exposed to templates as .BasePath for building links.
func WithBasePath(basePath string) Option {
	return func(s *Set) {
		s.basePath = basePath
	}
}

// WithLoader attaches a data loader to the named view.
func WithLoader(name string, l Loader) Option {
	return func(s *Set) {
		s.loaders[name] = l
	}
}

// NewSet parses the layouts matching layoutGlob once and clones them for each
// view file in viewFS. Any parse error fails construction.
func NewSet(layoutFS fs.FS, layoutGlob string, viewFS fs.FS, names []string, opts ...Option) (*Set, error) {
	layouts, err := template.ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	s := &Set{
		views:   make(map[string]*template.Template, len(names)),
		loaders: make(map[string]Loader),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, name := range names {
		if _, ok := s.views[name]; ok {
			continue
		}
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", name, err)
		}
		if _, err := t.ParseFS(viewFS, name); err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		s.views[name] = t
	}

	return s, nil
}

// Has reports whether the view was parsed into the set.
func (s *Set) Has(name string) bool {
	_, ok := s.views[name]
	return ok
}

// Render executes layout with the view's blocks and writes it as HTML.
// Nothing is written when execution fails.
func (s *Set) Render(w http.ResponseWriter, layout, name string, data Data) error {
	body, err := s.execute(layout, name, data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	_, err = w.Write(body)
	return err
}

// Handler renders name with status 200, running its loader first.
func (s *Set) Handler(name, title string) gin.HandlerFunc {
	return s.handler(http.StatusOK, name, title)
}

// ErrorHandler renders name with the given status.
func (s *Set) ErrorHandler(status int, name, title string) gin.HandlerFunc {
	return s.handler(status, name, title)
}

func (s *Set) handler(status int, name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := Data{
			Title:     title,
			Name:      name,
			BasePath:  s.basePath,
			RequestID: c.Writer.Header().Get("X-Request-ID"),
		}

		if load, ok := s.loaders[name]; ok {
			v, err := load(c)
			if err != nil {
				log.Warn().Err(err).Str("view", name).Msg("view loader failed")
				data.Error = message(err)
			} else {
				data.Data = v
			}
		}

		body, err := s.execute(Layout, name, data)
		if err != nil {
			log.Error().Err(err).Str("view", name).Msg("render view")
			c.String(http.StatusInternalServerError, "failed to render page")
			return
		}
		c.Data(status, contentTypeHTML, body)
	}
}

func (s *Set) execute(layout, name string, data Data) ([]byte, error) {
	t, ok := s.views[name]
	if !ok {
		return nil, fmt.Errorf("view not found: %s", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layout, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func message(err error) string {
	var e *errors.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
