package data

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/reelbase/catalog/internal/biz"
)

// newTestData opens a private in-memory database per test. No redis: the
// cache helpers all no-op when rdb is nil.
func newTestData(t *testing.T) *Data {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return &Data{db: db, log: log.NewHelper(log.DefaultLogger)}
}

func mustCreateMovie(t *testing.T, d *Data, title string, year int, genre string) *Movie {
	t.Helper()
	m := &Movie{Title: title, ReleaseYear: year, Genre: genre}
	require.NoError(t, d.db.Create(m).Error)
	return m
}

func mustCreateActor(t *testing.T, d *Data, name string) *Actor {
	t.Helper()
	a := &Actor{Name: name}
	require.NoError(t, d.db.Create(a).Error)
	return a
}

func TestMovieRepoGetNotFound(t *testing.T) {
	d := newTestData(t)
	repo := NewMovieRepo(d, log.DefaultLogger)

	_, err := repo.Get(context.Background(), 999, biz.MovieInclude{})
	assert.ErrorIs(t, err, biz.ErrMovieNotFound)
}

func TestMovieRepoListFiltersAndPages(t *testing.T) {
	d := newTestData(t)
	repo := NewMovieRepo(d, log.DefaultLogger)
	ctx := context.Background()

	mustCreateMovie(t, d, "Inception", 2010, "Sci-Fi")
	mustCreateMovie(t, d, "Interstellar", 2014, "Sci-Fi")
	mustCreateMovie(t, d, "Heat", 1995, "Crime")

	movies, total, err := repo.List(ctx, biz.MovieFilter{Genre: "sci-fi"}, biz.ListOptions{Page: 1, Limit: 10}, biz.MovieInclude{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, movies, 2)

	// Case-insensitive substring search over title and description.
	movies, total, err = repo.List(ctx, biz.MovieFilter{Search: "INCEP"}, biz.ListOptions{Page: 1, Limit: 10}, biz.MovieInclude{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, movies, 1)
	assert.Equal(t, "Inception", movies[0].Title)

	// Second page of a two-row window still reports the full total.
	movies, total, err = repo.List(ctx, biz.MovieFilter{}, biz.ListOptions{Page: 2, Limit: 2}, biz.MovieInclude{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, movies, 1)
}

func TestMovieRepoRatingFilterIgnoresSingleBound(t *testing.T) {
	d := newTestData(t)
	repo := NewMovieRepo(d, log.DefaultLogger)
	ctx := context.Background()

	low := mustCreateMovie(t, d, "Low", 2000, "Drama")
	high := mustCreateMovie(t, d, "High", 2001, "Drama")
	require.NoError(t, d.db.Create(&MovieRating{MovieID: low.ID, Rating: 2, Reviewer: "a"}).Error)
	require.NoError(t, d.db.Create(&MovieRating{MovieID: high.ID, Rating: 9, Reviewer: "a"}).Error)

	min := 8.0
	_, total, err := repo.List(ctx, biz.MovieFilter{MinRating: &min}, biz.ListOptions{}, biz.MovieInclude{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "a lone bound must not filter")

	max := 10.0
	movies, total, err := repo.List(ctx, biz.MovieFilter{MinRating: &min, MaxRating: &max}, biz.ListOptions{}, biz.MovieInclude{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, movies, 1)
	assert.Equal(t, "High", movies[0].Title)
}

func TestMovieRepoCast(t *testing.T) {
	d := newTestData(t)
	repo := NewMovieRepo(d, log.DefaultLogger)
	ctx := context.Background()

	movie := mustCreateMovie(t, d, "Inception", 2010, "Sci-Fi")
	actor := mustCreateActor(t, d, "Leonardo DiCaprio")

	member, err := repo.AddCast(ctx, movie.ID, biz.CastChange{ActorID: actor.ID, Role: "Dom Cobb"})
	require.NoError(t, err)
	assert.Equal(t, "Leonardo DiCaprio", member.ActorName)

	// The same pair again is a conflict.
	_, err = repo.AddCast(ctx, movie.ID, biz.CastChange{ActorID: actor.ID, Role: "Again"})
	assert.ErrorIs(t, err, biz.ErrCastExists)

	// A missing actor is reported before any insert is attempted.
	_, err = repo.AddCast(ctx, movie.ID, biz.CastChange{ActorID: 999, Role: "Ghost"})
	assert.ErrorIs(t, err, biz.ErrActorNotFound)

	require.NoError(t, repo.UpdateCastRole(ctx, movie.ID, actor.ID, "Cobb"))
	assert.ErrorIs(t, repo.UpdateCastRole(ctx, movie.ID, 999, "x"), biz.ErrCastNotFound)

	require.NoError(t, repo.RemoveCast(ctx, movie.ID, actor.ID))
	assert.ErrorIs(t, repo.RemoveCast(ctx, movie.ID, actor.ID), biz.ErrCastNotFound)
}

func TestMovieRepoSearch(t *testing.T) {
	d := newTestData(t)
	repo := NewMovieRepo(d, log.DefaultLogger)
	ctx := context.Background()

	nolan := "Christopher Nolan"
	require.NoError(t, d.db.Create(&Movie{Title: "Inception", Director: &nolan}).Error)
	mustCreateMovie(t, d, "Heat", 1995, "Crime")

	// Search matches the director column, not just the title.
	movies, err := repo.SearchPage(ctx, "nolan", 10)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Inception", movies[0].Title)

	total, err := repo.SearchCount(ctx, "nolan")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	movies, err = repo.SearchPage(ctx, "zzz", 10)
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestActorRepoCRUD(t *testing.T) {
	d := newTestData(t)
	repo := NewActorRepo(d, log.DefaultLogger)
	ctx := context.Background()

	created, err := repo.Create(ctx, &biz.Actor{Name: "Christian Bale"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.Get(ctx, created.ID, biz.ActorInclude{})
	require.NoError(t, err)
	assert.Equal(t, "Christian Bale", got.Name)

	newName := "C. Bale"
	require.NoError(t, repo.Update(ctx, created.ID, biz.ActorUpdate{Name: &newName}))
	got, err = repo.Get(ctx, created.ID, biz.ActorInclude{})
	require.NoError(t, err)
	assert.Equal(t, "C. Bale", got.Name)

	_, err = repo.Get(ctx, 999, biz.ActorInclude{})
	assert.ErrorIs(t, err, biz.ErrActorNotFound)
}

func TestRatingRepoAggregate(t *testing.T) {
	d := newTestData(t)
	repo := NewRatingRepo(d, log.DefaultLogger)
	ctx := context.Background()

	movie := mustCreateMovie(t, d, "Inception", 2010, "Sci-Fi")

	// No ratings yet: average and count are both zero.
	agg, err := repo.Aggregate(ctx, movie.ID)
	require.NoError(t, err)
	assert.Zero(t, agg.Average)
	assert.Zero(t, agg.Count)

	_, err = repo.Create(ctx, &biz.MovieRating{MovieID: movie.ID, Rating: 8, Reviewer: "a"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &biz.MovieRating{MovieID: movie.ID, Rating: 6, Reviewer: "b"})
	require.NoError(t, err)

	agg, err = repo.Aggregate(ctx, movie.ID)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, agg.Average, 1e-9)
	assert.Equal(t, int64(2), agg.Count)
}

func TestUserRepoDuplicateEmail(t *testing.T) {
	d := newTestData(t)
	repo := NewUserRepo(d, log.DefaultLogger)
	ctx := context.Background()

	_, err := repo.Create(ctx, &biz.User{Email: "a@example.com", Password: "hash", IsActive: true})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &biz.User{Email: "a@example.com", Password: "hash", IsActive: true})
	assert.ErrorIs(t, err, biz.ErrEmailExists)
}
