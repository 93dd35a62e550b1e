package view

import (
	"embed"
	"io/fs"
	"slices"
)

//go:embed templates/layouts/*.html
var layoutFS embed.FS

//go:embed templates/views/*.html
var viewFS embed.FS

//go:embed static
var staticFS embed.FS

// Default builds a Set from the embedded templates for the given views.
// The not-found view is always included.
func Default(names []string, opts ...Option) (*Set, error) {
	views, err := fs.Sub(viewFS, "templates/views")
	if err != nil {
		return nil, err
	}
	if !slices.Contains(names, NotFound) {
		names = append(slices.Clone(names), NotFound)
	}
	return NewSet(layoutFS, "templates/layouts/*.html", views, names, opts...)
}

// Static returns the embedded assets, rooted so that "style.css" is a file.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
