package service

import (
	"context"
	"fmt"
	"testing"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/reelbase/catalog/api/catalog/v1"
	"github.com/reelbase/catalog/internal/auth"
	"github.com/reelbase/catalog/internal/biz"
	"github.com/reelbase/catalog/internal/conf"
	"github.com/reelbase/catalog/internal/data"
)

// newTestService wires the whole stack over a private in-memory database,
// so these tests cover the service, use case, and store layers together.
func newTestService(t *testing.T) *CatalogService {
	t.Helper()
	logger := log.DefaultLogger

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	d, cleanup, err := data.NewData(&conf.Data{
		Database: &conf.Database{Driver: "sqlite", Source: dsn},
	}, logger)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	movieRepo := data.NewMovieRepo(d, logger)
	actorRepo := data.NewActorRepo(d, logger)
	ratingRepo := data.NewRatingRepo(d, logger)
	userRepo := data.NewUserRepo(d, logger)
	tm := data.NewTxManager(nil, d, logger)

	jwtMgr, err := auth.NewJWTManager(&conf.Auth{JwtSecret: "test-secret"})
	require.NoError(t, err)

	return NewCatalogService(
		biz.NewMovieUseCase(movieRepo, tm, logger),
		biz.NewActorUseCase(actorRepo, tm, logger),
		biz.NewRatingUseCase(movieRepo, ratingRepo, tm, logger),
		biz.NewUserUseCase(userRepo, jwtMgr, logger),
		biz.NewSearchUseCase(movieRepo, actorRepo, logger),
		logger,
	)
}

func errCode(err error) int32 {
	return kerrors.FromError(err).Code
}

func createActor(t *testing.T, s *CatalogService, name string) *v1.ActorCreated {
	t.Helper()
	created, err := s.CreateActor(context.Background(), &v1.CreateActorRequest{Name: name})
	require.NoError(t, err)
	return created
}

func TestCreateMoviePairsRolesPositionally(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	leo := createActor(t, s, "Leonardo DiCaprio")
	tom := createActor(t, s, "Tom Hardy")

	created, err := s.CreateMovie(ctx, &v1.CreateMovieRequest{
		Title:       "Inception",
		ReleaseYear: 2010,
		Genre:       "Sci-Fi",
		ActorIds:    []uint{leo.ID, tom.ID},
		Roles:       []string{"Dom Cobb"}, // second actor has no role
	})
	require.NoError(t, err)
	require.Len(t, created.Actors, 2)

	roles := map[string]string{}
	for _, a := range created.Actors {
		roles[a.Name] = a.Role
	}
	assert.Equal(t, "Dom Cobb", roles["Leonardo DiCaprio"])
	assert.Equal(t, "Unknown Role", roles["Tom Hardy"])
}

func TestCreateMovieValidation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.CreateMovie(ctx, &v1.CreateMovieRequest{Genre: "Sci-Fi", ReleaseYear: 2010})
	require.Error(t, err)
	assert.Equal(t, int32(422), errCode(err))

	_, err = s.CreateMovie(ctx, &v1.CreateMovieRequest{Title: "Old", Genre: "Doc", ReleaseYear: 1776})
	require.Error(t, err)
	assert.Equal(t, int32(422), errCode(err))
}

func TestGetMovieDefaultsToFullView(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	leo := createActor(t, s, "Leonardo DiCaprio")
	created, err := s.CreateMovie(ctx, &v1.CreateMovieRequest{
		Title: "Inception", ReleaseYear: 2010, Genre: "Sci-Fi",
		ActorIds: []uint{leo.ID}, Roles: []string{"Dom Cobb"},
	})
	require.NoError(t, err)

	_, err = s.CreateRating(ctx, &v1.CreateRatingRequest{MovieID: created.ID, Rating: 9, Reviewer: "a"})
	require.NoError(t, err)

	got, err := s.GetMovie(ctx, created.ID, &v1.GetMovieRequest{})
	require.NoError(t, err)
	assert.Len(t, got.Actors, 1)
	assert.Len(t, got.Ratings, 1)

	// An explicit include narrows the view.
	got, err = s.GetMovie(ctx, created.ID, &v1.GetMovieRequest{Include: "actors"})
	require.NoError(t, err)
	assert.Len(t, got.Actors, 1)
	assert.Empty(t, got.Ratings)
}

func TestGetMovieNotFound(t *testing.T) {
	s := newTestService(t)
	_, err := s.GetMovie(context.Background(), 999, &v1.GetMovieRequest{})
	assert.Equal(t, int32(404), errCode(err))
}

func TestCreateActorRejectsBadBirthDate(t *testing.T) {
	s := newTestService(t)
	bad := "31-12-1980"
	_, err := s.CreateActor(context.Background(), &v1.CreateActorRequest{Name: "X", BirthDate: &bad})
	require.Error(t, err)
	assert.Equal(t, int32(422), errCode(err))
}

func TestSearchRejectsBlankQuery(t *testing.T) {
	s := newTestService(t)
	_, err := s.Search(context.Background(), &v1.SearchRequest{Q: "   "})
	require.Error(t, err)
	assert.Equal(t, int32(422), errCode(err))
}

func TestSearchRejectsOffMenuLimit(t *testing.T) {
	s := newTestService(t)
	_, err := s.Search(context.Background(), &v1.SearchRequest{Q: "x", Limit: 7})
	require.Error(t, err)
	assert.Equal(t, int32(422), errCode(err))
}

func TestSearchOmitsAverageForUnratedMovies(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	unrated, err := s.CreateMovie(ctx, &v1.CreateMovieRequest{Title: "Quiet Film", ReleaseYear: 2020, Genre: "Drama"})
	require.NoError(t, err)
	rated, err := s.CreateMovie(ctx, &v1.CreateMovieRequest{Title: "Quiet Hit", ReleaseYear: 2021, Genre: "Drama"})
	require.NoError(t, err)
	_, err = s.CreateRating(ctx, &v1.CreateRatingRequest{MovieID: rated.ID, Rating: 8, Reviewer: "a"})
	require.NoError(t, err)

	page, err := s.Search(ctx, &v1.SearchRequest{Q: "quiet", SortBy: "title"})
	require.NoError(t, err)

	items := page.Data.([]v1.SearchItemReply)
	require.Len(t, items, 2)
	byID := map[uint]v1.SearchItemReply{}
	for _, it := range items {
		byID[it.ID] = it
	}
	assert.Nil(t, byID[unrated.ID].AverageRating)
	require.NotNil(t, byID[rated.ID].AverageRating)
	assert.InDelta(t, 8.0, *byID[rated.ID].AverageRating, 1e-9)
}

func TestRatingsAverageIsZeroWhenEmpty(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	movie, err := s.CreateMovie(ctx, &v1.CreateMovieRequest{Title: "Fresh", ReleaseYear: 2024, Genre: "Drama"})
	require.NoError(t, err)

	avg, err := s.GetRatingsAverage(ctx, movie.ID)
	require.NoError(t, err)
	assert.Zero(t, avg.Average)
	assert.Zero(t, avg.Count)
}

func TestBatchCreateRatingsConflictsRollBack(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	movie, err := s.CreateMovie(ctx, &v1.CreateMovieRequest{Title: "Fresh", ReleaseYear: 2024, Genre: "Drama"})
	require.NoError(t, err)

	_, err = s.BatchCreateRatings(ctx, &v1.BatchCreateRatingsRequest{Ratings: []v1.CreateRatingRequest{
		{MovieID: movie.ID, Rating: 8, Reviewer: "a"},
		{MovieID: 999, Rating: 7, Reviewer: "b"},
	}})
	assert.Equal(t, int32(404), errCode(err))

	avg, err := s.GetRatingsAverage(ctx, movie.ID)
	require.NoError(t, err)
	assert.Zero(t, avg.Count)
}

func TestAddMovieActorConflict(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	leo := createActor(t, s, "Leonardo DiCaprio")
	movie, err := s.CreateMovie(ctx, &v1.CreateMovieRequest{Title: "Inception", ReleaseYear: 2010, Genre: "Sci-Fi"})
	require.NoError(t, err)

	_, err = s.AddMovieActor(ctx, movie.ID, &v1.CastChange{ActorID: leo.ID, Role: "Dom Cobb"})
	require.NoError(t, err)

	_, err = s.AddMovieActor(ctx, movie.ID, &v1.CastChange{ActorID: leo.ID, Role: "Again"})
	assert.Equal(t, int32(409), errCode(err))
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.RegisterUser(ctx, &v1.RegisterUserRequest{Email: "user@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	// Same email again conflicts.
	_, err = s.RegisterUser(ctx, &v1.RegisterUserRequest{Email: "user@example.com", Password: "secret-pass"})
	assert.Equal(t, int32(409), errCode(err))

	_, err = s.LoginUser(ctx, &v1.LoginUserRequest{Email: "user@example.com", Password: "wrong-pass"})
	assert.Equal(t, int32(401), errCode(err))

	reply, err := s.LoginUser(ctx, &v1.LoginUserRequest{Email: "user@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, reply.Token)
	assert.Equal(t, "user@example.com", reply.User.Email)
}

func TestDeleteMovieCascades(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	leo := createActor(t, s, "Leonardo DiCaprio")
	movie, err := s.CreateMovie(ctx, &v1.CreateMovieRequest{
		Title: "Inception", ReleaseYear: 2010, Genre: "Sci-Fi",
		ActorIds: []uint{leo.ID}, Roles: []string{"Dom Cobb"},
	})
	require.NoError(t, err)
	_, err = s.CreateRating(ctx, &v1.CreateRatingRequest{MovieID: movie.ID, Rating: 9, Reviewer: "a"})
	require.NoError(t, err)

	_, err = s.DeleteMovie(ctx, movie.ID)
	require.NoError(t, err)

	_, err = s.GetMovie(ctx, movie.ID, &v1.GetMovieRequest{})
	assert.Equal(t, int32(404), errCode(err))

	// The actor survives.
	_, err = s.GetActor(ctx, leo.ID, &v1.GetActorRequest{})
	assert.NoError(t, err)
}

func TestIncludesFrom(t *testing.T) {
	incs := includesFrom("Actors, ratings ,")
	assert.True(t, incs["actors"])
	assert.True(t, incs["ratings"])
	assert.Len(t, incs, 2)
	assert.Empty(t, includesFrom(""))
}
