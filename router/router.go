// Package router holds the static route table of the front-end and mounts it
// on a gin engine. Path matching itself is left to gin.
package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/crawlerweb/transport/http/metrics"
	"github.com/kochabx/crawlerweb/view"
)

// Route maps a URL path to a named view.
type Route struct {
	Path string
	Name string
	// View is the template file rendered for Path.
	View string
}

// Table is built once at startup and never changes afterwards.
type Table []Route

// Routes is the application's route table.
var Routes = Table{
	{Path: "/", Name: "Home", View: "home.html"},
}

// Lookup finds the route registered for exactly path.
func (t Table) Lookup(path string) (Route, bool) {
	for _, r := range t {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// ByName finds a route by its name.
func (t Table) ByName(name string) (Route, bool) {
	for _, r := range t {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Views lists the templates the table needs, in table order.
func (t Table) Views() []string {
	views := make([]string, 0, len(t))
	for _, r := range t {
		views = append(views, r.View)
	}
	return views
}

// Validate rejects empty or relative paths, routes without a view, and
// duplicate paths or names.
func (t Table) Validate() error {
	paths := make(map[string]struct{}, len(t))
	names := make(map[string]struct{}, len(t))

	for i, r := range t {
		switch {
		case r.Path == "":
			return fmt.Errorf("route %d: empty path", i)
		case !strings.HasPrefix(r.Path, "/"):
			return fmt.Errorf("route %d: path %q must start with /", i, r.Path)
		case r.View == "":
			return fmt.Errorf("route %d: %q has no view", i, r.Path)
		}
		if _, ok := paths[r.Path]; ok {
			return fmt.Errorf("route %d: duplicate path %q", i, r.Path)
		}
		paths[r.Path] = struct{}{}

		if r.Name != "" {
			if _, ok := names[r.Name]; ok {
				return fmt.Errorf("route %d: duplicate name %q", i, r.Name)
			}
			names[r.Name] = struct{}{}
		}
	}
	return nil
}

// Mount registers GET and HEAD for every route, serves the embedded assets
// under /static and renders the not-found view for anything gin cannot match.
func Mount(engine *gin.Engine, table Table, views *view.Set) {
	for _, r := range table {
		h := pageView(r.Name, views.Handler(r.View, r.Name))
		engine.GET(r.Path, h)
		engine.HEAD(r.Path, h)
	}

	static := engine.Group("/static", func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=3600")
	})
	static.StaticFS("/", http.FS(view.Static()))

	engine.NoRoute(views.ErrorHandler(http.StatusNotFound, view.NotFound, "Not Found"))
}

func pageView(name string, next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.Prom.PageView(name)
		next(c)
	}
}
