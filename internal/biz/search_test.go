package biz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMovieRepo serves canned search results; the non-search methods are
// never reached from the search path.
type fakeMovieRepo struct {
	MovieRepo
	movies []*Movie
	total  int64
	err    error
}

func (f *fakeMovieRepo) SearchPage(_ context.Context, _ string, limit int) ([]*Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.movies) > limit {
		return f.movies[:limit], nil
	}
	return f.movies, nil
}

func (f *fakeMovieRepo) SearchCount(context.Context, string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.total, nil
}

type fakeActorRepo struct {
	ActorRepo
	actors []*Actor
	total  int64
	err    error
}

func (f *fakeActorRepo) SearchPage(_ context.Context, _ string, limit int) ([]*Actor, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.actors) > limit {
		return f.actors[:limit], nil
	}
	return f.actors, nil
}

func (f *fakeActorRepo) SearchCount(context.Context, string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.total, nil
}

func newSearcher(movies *fakeMovieRepo, actors *fakeActorRepo) *SearchUseCase {
	return NewSearchUseCase(movies, actors, log.DefaultLogger)
}

func fptr(f float64) *float64 { return &f }

func TestSearchMergesAcrossTypesByTitle(t *testing.T) {
	movies := &fakeMovieRepo{movies: []*Movie{{ID: 1, Title: "Zodiac"}}, total: 1}
	actors := &fakeActorRepo{actors: []*Actor{{ID: 2, Name: "Al Pacino"}}, total: 1}

	page, err := newSearcher(movies, actors).Search(context.Background(), SearchQuery{
		Q: "a", SortBy: "title", Page: 1, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	// The actor's name sorts before the movie's title even though movies
	// are merged first.
	assert.Equal(t, SearchItemActor, page.Items[0].Type)
	assert.Equal(t, "Al Pacino", page.Items[0].Actor.Name)
	assert.Equal(t, SearchItemMovie, page.Items[1].Type)
	assert.Equal(t, int64(2), page.Meta.Total)
}

func TestSearchNameKeyMatchesTitleKey(t *testing.T) {
	movies := &fakeMovieRepo{movies: []*Movie{{ID: 1, Title: "Zodiac"}}, total: 1}
	actors := &fakeActorRepo{actors: []*Actor{{ID: 2, Name: "Al Pacino"}}, total: 1}

	byName, err := newSearcher(movies, actors).Search(context.Background(), SearchQuery{
		Q: "a", SortBy: "name", Page: 1, Limit: 10,
	})
	require.NoError(t, err)
	byTitle, err := newSearcher(movies, actors).Search(context.Background(), SearchQuery{
		Q: "a", SortBy: "title", Page: 1, Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, byTitle.Items, byName.Items)
}

func TestSearchNumericDescPushesActorsLast(t *testing.T) {
	movies := &fakeMovieRepo{movies: []*Movie{
		{ID: 1, Title: "Cheap", Budget: fptr(1000)},
		{ID: 2, Title: "Blockbuster", Budget: fptr(200000000)},
	}, total: 2}
	actors := &fakeActorRepo{actors: []*Actor{{ID: 3, Name: "Someone"}}, total: 1}

	page, err := newSearcher(movies, actors).Search(context.Background(), SearchQuery{
		Q: "x", SortBy: "budget", SortOrder: "desc", Page: 1, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	// Actors rank as 0 on movie-only keys, so descending order ends with
	// them.
	assert.Equal(t, "Blockbuster", page.Items[0].Movie.Title)
	assert.Equal(t, "Cheap", page.Items[1].Movie.Title)
	assert.Equal(t, SearchItemActor, page.Items[2].Type)
}

func TestSearchRatingSortUsesLoadedRatings(t *testing.T) {
	movies := &fakeMovieRepo{movies: []*Movie{
		{ID: 1, Title: "Unrated"},
		{ID: 2, Title: "Loved", Ratings: []MovieRating{{Rating: 9}, {Rating: 7}}},
	}, total: 2}
	actors := &fakeActorRepo{}

	page, err := newSearcher(movies, actors).Search(context.Background(), SearchQuery{
		Q: "x", SortBy: "rating", SortOrder: "desc", Page: 1, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Loved", page.Items[0].Movie.Title)
	assert.Equal(t, "Unrated", page.Items[1].Movie.Title)
}

func TestSearchDefaultSortIsCreatedAt(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	movies := &fakeMovieRepo{movies: []*Movie{
		{ID: 1, Title: "Newer", CreatedAt: t0.Add(time.Hour)},
	}, total: 1}
	actors := &fakeActorRepo{actors: []*Actor{
		{ID: 2, Name: "Older", CreatedAt: t0},
	}, total: 1}

	page, err := newSearcher(movies, actors).Search(context.Background(), SearchQuery{
		Q: "x", Page: 1, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, SearchItemActor, page.Items[0].Type)
	assert.Equal(t, SearchItemMovie, page.Items[1].Type)
}

func TestSearchTiesKeepMoviesBeforeActors(t *testing.T) {
	movies := &fakeMovieRepo{movies: []*Movie{{ID: 1, Title: "Twin"}}, total: 1}
	actors := &fakeActorRepo{actors: []*Actor{{ID: 2, Name: "Twin"}}, total: 1}

	page, err := newSearcher(movies, actors).Search(context.Background(), SearchQuery{
		Q: "twin", SortBy: "title", Page: 1, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	// Equal keys keep merge order: movies first.
	assert.Equal(t, SearchItemMovie, page.Items[0].Type)
	assert.Equal(t, SearchItemActor, page.Items[1].Type)
}

func TestSearchTotalIsSumOfStoreCounts(t *testing.T) {
	// The stores report far more matches than the fetch window returns;
	// meta keeps the true total.
	movies := &fakeMovieRepo{movies: []*Movie{{ID: 1, Title: "One"}}, total: 700}
	actors := &fakeActorRepo{actors: []*Actor{{ID: 2, Name: "Two"}}, total: 600}

	page, err := newSearcher(movies, actors).Search(context.Background(), SearchQuery{
		Q: "x", Page: 1, Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1300), page.Meta.Total)
	assert.Equal(t, 130, page.Meta.TotalPages)
}

func TestSearchPagePastEndIsEmpty(t *testing.T) {
	movies := &fakeMovieRepo{movies: []*Movie{{ID: 1, Title: "Only"}}, total: 1}
	actors := &fakeActorRepo{}

	page, err := newSearcher(movies, actors).Search(context.Background(), SearchQuery{
		Q: "x", Page: 5, Limit: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(1), page.Meta.Total)
	assert.False(t, page.Meta.HasNext)
}

func TestSearchSecondPageSlicesMerge(t *testing.T) {
	movies := &fakeMovieRepo{movies: []*Movie{
		{ID: 1, Title: "A"}, {ID: 2, Title: "B"}, {ID: 3, Title: "C"},
	}, total: 3}
	actors := &fakeActorRepo{actors: []*Actor{{ID: 4, Name: "D"}}, total: 1}

	page, err := newSearcher(movies, actors).Search(context.Background(), SearchQuery{
		Q: "x", SortBy: "title", Page: 2, Limit: 3,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, SearchItemActor, page.Items[0].Type)
	assert.True(t, page.Meta.HasPrev)
}

func TestSearchFailsWhenAnyArmFails(t *testing.T) {
	movies := &fakeMovieRepo{movies: []*Movie{{ID: 1, Title: "Fine"}}, total: 1}
	actors := &fakeActorRepo{err: errors.New("store down")}

	_, err := newSearcher(movies, actors).Search(context.Background(), SearchQuery{
		Q: "x", Page: 1, Limit: 10,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store down")
}

func TestAverageRating(t *testing.T) {
	m := &Movie{}
	assert.Nil(t, m.AverageRating())

	m.Ratings = []MovieRating{{Rating: 8}, {Rating: 6}}
	avg := m.AverageRating()
	require.NotNil(t, avg)
	assert.InDelta(t, 7.0, *avg, 1e-9)
}
