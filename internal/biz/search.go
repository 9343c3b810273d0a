package biz

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/sync/errgroup"
)

// SearchFetchCap is the per-entity over-fetch window used by Search. Each
// sub-query pulls up to this many rows so the merged set can be re-ranked
// globally before paging. This caps cross-type ranking at 2*SearchFetchCap
// items: for catalogs with more matches than that, later pages are not
// retrievable even though meta.total reports the true count.
const SearchFetchCap = 1000

// SearchItemType discriminates the union.
type SearchItemType string

// Search item variants.
const (
	SearchItemMovie SearchItemType = "movie"
	SearchItemActor SearchItemType = "actor"
)

// SearchItem is a tagged union over the two searchable entities. Exactly
// one of Movie/Actor is set, matching Type.
type SearchItem struct {
	Type  SearchItemType
	Movie *Movie
	Actor *Actor
}

// SearchQuery is the combined-search input. Q must be non-blank; the
// service boundary enforces that plus the limit menu.
type SearchQuery struct {
	Q         string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// SearchUseCase fans a query out to the movie and actor repos, merges the
// two result sets, re-ranks them with one comparator, and pages the merge.
type SearchUseCase struct {
	movies MovieRepo
	actors ActorRepo
	log    *log.Helper
}

// NewSearchUseCase creates a SearchUseCase.
func NewSearchUseCase(movies MovieRepo, actors ActorRepo, logger log.Logger) *SearchUseCase {
	return &SearchUseCase{
		movies: movies,
		actors: actors,
		log:    log.NewHelper(logger),
	}
}

// Search runs the combined query. Both sub-queries must succeed; there is
// no partial-results mode. meta.Total is the sum of the two store counts,
// which can exceed the number of orderable items once the fetch cap bites.
func (uc *SearchUseCase) Search(ctx context.Context, q SearchQuery) (*Page[SearchItem], error) {
	var (
		movies     []*Movie
		actors     []*Actor
		movieTotal int64
		actorTotal int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movies, err = uc.movies.SearchPage(gctx, q.Q, SearchFetchCap)
		if err != nil {
			return fmt.Errorf("search movies: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		movieTotal, err = uc.movies.SearchCount(gctx, q.Q)
		if err != nil {
			return fmt.Errorf("count movies: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		actors, err = uc.actors.SearchPage(gctx, q.Q, SearchFetchCap)
		if err != nil {
			return fmt.Errorf("search actors: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		actorTotal, err = uc.actors.SearchCount(gctx, q.Q)
		if err != nil {
			return fmt.Errorf("count actors: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Movies first, then actors, each in store order; the stable re-sort
	// below keeps that relative order for ties.
	items := make([]SearchItem, 0, len(movies)+len(actors))
	for _, m := range movies {
		items = append(items, SearchItem{Type: SearchItemMovie, Movie: m})
	}
	for _, a := range actors {
		items = append(items, SearchItem{Type: SearchItemActor, Actor: a})
	}

	less := lessFunc(q.SortBy)
	if strings.EqualFold(q.SortOrder, "desc") {
		sort.SliceStable(items, func(i, j int) bool { return less(items[j], items[i]) })
	} else {
		sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	}

	total := movieTotal + actorTotal
	uc.log.Debugf("search %q matched %d movies + %d actors", q.Q, movieTotal, actorTotal)

	return NewPage(pageSlice(items, q.Page, q.Limit), q.Page, q.Limit, total), nil
}

// pageSlice cuts the requested window out of the merged list. A window past
// the end yields an empty slice rather than an error.
func pageSlice(items []SearchItem, page, limit int) []SearchItem {
	start := (page - 1) * limit
	if start >= len(items) {
		return []SearchItem{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// lessFunc resolves the sort key to a comparator over mixed items. Actors
// compare as 0 (or "") on movie-only keys, which pushes them to one end of
// the ordering instead of special-casing them per call site. The comparator
// never falls through to a secondary key; ties keep their pre-sort order.
func lessFunc(sortBy string) func(a, b SearchItem) bool {
	switch sortBy {
	case "title", "name":
		return func(a, b SearchItem) bool { return a.displayName() < b.displayName() }
	case "director":
		return func(a, b SearchItem) bool { return a.directorKey() < b.directorKey() }
	case "rating", "releaseYear", "budget", "boxOffice":
		return func(a, b SearchItem) bool { return a.numericKey(sortBy) < b.numericKey(sortBy) }
	default:
		return func(a, b SearchItem) bool { return a.createdAt().Before(b.createdAt()) }
	}
}

// displayName is a movie's title or an actor's name; either key ("title" or
// "name") resolves to the same cross-type pair.
func (it SearchItem) displayName() string {
	if it.Type == SearchItemMovie {
		return it.Movie.Title
	}
	return it.Actor.Name
}

func (it SearchItem) directorKey() string {
	if it.Type == SearchItemMovie && it.Movie.Director != nil {
		return *it.Movie.Director
	}
	return ""
}

func (it SearchItem) numericKey(sortBy string) float64 {
	if it.Type != SearchItemMovie {
		return 0
	}
	m := it.Movie
	switch sortBy {
	case "rating":
		if avg := m.AverageRating(); avg != nil {
			return *avg
		}
	case "releaseYear":
		return float64(m.ReleaseYear)
	case "budget":
		if m.Budget != nil {
			return *m.Budget
		}
	case "boxOffice":
		if m.BoxOffice != nil {
			return *m.BoxOffice
		}
	}
	return 0
}

func (it SearchItem) createdAt() time.Time {
	if it.Type == SearchItemMovie {
		return it.Movie.CreatedAt
	}
	return it.Actor.CreatedAt
}
