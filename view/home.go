package view

import (
	"cmp"
	"context"
	"slices"

	"github.com/gin-gonic/gin"
)

// IndexLister is the slice of the backend API the home page needs.
type IndexLister interface {
	Indices(ctx context.Context) (map[string]int64, error)
}

type IndexCount struct {
	Index string
	Count int64
}

// Home is what home.html renders.
type Home struct {
	Indices []IndexCount
	Total   int64
}

// HomeLoader lists document counts per index, largest first.
func HomeLoader(docs IndexLister) Loader {
	return func(c *gin.Context) (any, error) {
		counts, err := docs.Indices(c.Request.Context())
		if err != nil {
			return nil, err
		}

		home := Home{Indices: make([]IndexCount, 0, len(counts))}
		for index, n := range counts {
			home.Indices = append(home.Indices, IndexCount{Index: index, Count: n})
			home.Total += n
		}
		slices.SortFunc(home.Indices, func(a, b IndexCount) int {
			if n := cmp.Compare(b.Count, a.Count); n != 0 {
				return n
			}
			return cmp.Compare(a.Index, b.Index)
		})
		return home, nil
	}
}
