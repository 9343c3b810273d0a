package data

import (
	"context"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelbase/catalog/internal/biz"
)

func newTestTxManager(t *testing.T, d *Data) biz.TxManager {
	t.Helper()
	return NewTxManager(nil, d, log.DefaultLogger)
}

func TestCreateMovieWithActors(t *testing.T) {
	d := newTestData(t)
	tm := newTestTxManager(t, d)
	ctx := context.Background()

	leo := mustCreateActor(t, d, "Leonardo DiCaprio")
	ellen := mustCreateActor(t, d, "Elliot Page")

	movie, err := tm.CreateMovieWithActors(ctx, &biz.Movie{Title: "Inception", ReleaseYear: 2010, Genre: "Sci-Fi"},
		[]biz.CastChange{
			{ActorID: leo.ID, Role: "Dom Cobb"},
			{ActorID: ellen.ID}, // no role supplied
		}, nil)
	require.NoError(t, err)
	require.Len(t, movie.Cast, 2)

	roles := map[uint]string{}
	for _, c := range movie.Cast {
		roles[c.ActorID] = c.Role
	}
	assert.Equal(t, "Dom Cobb", roles[leo.ID])
	assert.Equal(t, biz.DefaultRole, roles[ellen.ID])
}

func TestCreateMovieWithActorsRollsBackOnBadCast(t *testing.T) {
	d := newTestData(t)
	tm := newTestTxManager(t, d)
	ctx := context.Background()

	leo := mustCreateActor(t, d, "Leonardo DiCaprio")

	// The duplicate pair fails the cast insert, which must also undo the
	// movie row created earlier in the same transaction.
	_, err := tm.CreateMovieWithActors(ctx, &biz.Movie{Title: "Doomed"},
		[]biz.CastChange{
			{ActorID: leo.ID, Role: "A"},
			{ActorID: leo.ID, Role: "B"},
		}, nil)
	assert.ErrorIs(t, err, biz.ErrCastExists)

	var count int64
	require.NoError(t, d.db.Model(&Movie{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteMovieWithRelations(t *testing.T) {
	d := newTestData(t)
	tm := newTestTxManager(t, d)
	ctx := context.Background()

	movie := mustCreateMovie(t, d, "Inception", 2010, "Sci-Fi")
	actor := mustCreateActor(t, d, "Leonardo DiCaprio")
	require.NoError(t, d.db.Create(&MovieActor{MovieID: movie.ID, ActorID: actor.ID, Role: "Dom Cobb"}).Error)
	require.NoError(t, d.db.Create(&MovieRating{MovieID: movie.ID, Rating: 9, Reviewer: "a"}).Error)

	require.NoError(t, tm.DeleteMovieWithRelations(ctx, movie.ID, nil))

	var movies, cast, ratings int64
	require.NoError(t, d.db.Model(&Movie{}).Count(&movies).Error)
	require.NoError(t, d.db.Model(&MovieActor{}).Count(&cast).Error)
	require.NoError(t, d.db.Model(&MovieRating{}).Count(&ratings).Error)
	assert.Zero(t, movies)
	assert.Zero(t, cast)
	assert.Zero(t, ratings)

	// The actor itself survives the movie's deletion.
	var actors int64
	require.NoError(t, d.db.Model(&Actor{}).Count(&actors).Error)
	assert.Equal(t, int64(1), actors)

	assert.ErrorIs(t, tm.DeleteMovieWithRelations(ctx, movie.ID, nil), biz.ErrMovieNotFound)
}

func TestDeleteActorWithRelations(t *testing.T) {
	d := newTestData(t)
	tm := newTestTxManager(t, d)
	ctx := context.Background()

	movie := mustCreateMovie(t, d, "Inception", 2010, "Sci-Fi")
	actor := mustCreateActor(t, d, "Leonardo DiCaprio")
	require.NoError(t, d.db.Create(&MovieActor{MovieID: movie.ID, ActorID: actor.ID, Role: "Dom Cobb"}).Error)

	require.NoError(t, tm.DeleteActorWithRelations(ctx, actor.ID, nil))

	var actors, cast, movies int64
	require.NoError(t, d.db.Model(&Actor{}).Count(&actors).Error)
	require.NoError(t, d.db.Model(&MovieActor{}).Count(&cast).Error)
	require.NoError(t, d.db.Model(&Movie{}).Count(&movies).Error)
	assert.Zero(t, actors)
	assert.Zero(t, cast)
	assert.Equal(t, int64(1), movies)

	assert.ErrorIs(t, tm.DeleteActorWithRelations(ctx, actor.ID, nil), biz.ErrActorNotFound)
}

func TestUpdateMovieWithRelations(t *testing.T) {
	d := newTestData(t)
	tm := newTestTxManager(t, d)
	ctx := context.Background()

	movie := mustCreateMovie(t, d, "Inception", 2010, "Sci-Fi")
	leo := mustCreateActor(t, d, "Leonardo DiCaprio")
	tom := mustCreateActor(t, d, "Tom Hardy")
	require.NoError(t, d.db.Create(&MovieActor{MovieID: movie.ID, ActorID: leo.ID, Role: "Cobb"}).Error)

	title := "Inception (Director's Cut)"
	updated, err := tm.UpdateMovieWithRelations(ctx, movie.ID, biz.MovieUpdate{Title: &title}, &biz.CastUpdate{
		Add:         []biz.CastChange{{ActorID: tom.ID, Role: "Eames"}},
		UpdateRoles: []biz.CastChange{{ActorID: leo.ID, Role: "Dom Cobb"}},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	require.Len(t, updated.Cast, 2)

	roles := map[uint]string{}
	for _, c := range updated.Cast {
		roles[c.ActorID] = c.Role
	}
	assert.Equal(t, "Dom Cobb", roles[leo.ID])
	assert.Equal(t, "Eames", roles[tom.ID])

	// Re-rolling an actor who is not in the cast fails the whole update.
	_, err = tm.UpdateMovieWithRelations(ctx, movie.ID, biz.MovieUpdate{}, &biz.CastUpdate{
		UpdateRoles: []biz.CastChange{{ActorID: 999, Role: "x"}},
	}, nil)
	assert.ErrorIs(t, err, biz.ErrCastNotFound)

	// Removal.
	updated, err = tm.UpdateMovieWithRelations(ctx, movie.ID, biz.MovieUpdate{}, &biz.CastUpdate{
		RemoveIDs: []uint{tom.ID},
	}, nil)
	require.NoError(t, err)
	assert.Len(t, updated.Cast, 1)
}

func TestBatchCreateRatingsRollsBackOnMissingMovie(t *testing.T) {
	d := newTestData(t)
	tm := newTestTxManager(t, d)
	ctx := context.Background()

	movie := mustCreateMovie(t, d, "Inception", 2010, "Sci-Fi")

	_, err := tm.BatchCreateRatings(ctx, []*biz.MovieRating{
		{MovieID: movie.ID, Rating: 8, Reviewer: "a"},
		{MovieID: 999, Rating: 7, Reviewer: "b"},
	}, nil)
	assert.ErrorIs(t, err, biz.ErrMovieNotFound)

	var count int64
	require.NoError(t, d.db.Model(&MovieRating{}).Count(&count).Error)
	assert.Zero(t, count, "the valid rating must roll back with the batch")
}

func TestBatchCreateRatingsAttachesMovieTitle(t *testing.T) {
	d := newTestData(t)
	tm := newTestTxManager(t, d)
	ctx := context.Background()

	movie := mustCreateMovie(t, d, "Inception", 2010, "Sci-Fi")

	created, err := tm.BatchCreateRatings(ctx, []*biz.MovieRating{
		{MovieID: movie.ID, Rating: 8, Reviewer: "a"},
		{MovieID: movie.ID, Rating: 9, Reviewer: "b"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, r := range created {
		assert.Equal(t, "Inception", r.MovieTitle)
		assert.NotZero(t, r.ID)
	}
}

func TestTxSlotTimeout(t *testing.T) {
	d := newTestData(t)
	m := NewTxManager(nil, d, log.DefaultLogger).(*txManager)
	ctx := context.Background()

	// Hold every slot so the next transaction cannot start.
	require.NoError(t, m.slots.Acquire(ctx, 10))
	defer m.slots.Release(10)

	err := m.DeleteMovieWithRelations(ctx, 1, &biz.TxOptions{MaxWait: 20 * time.Millisecond})
	assert.ErrorIs(t, err, ErrTxSlotTimeout)
}
