package biz

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
)

// MovieUseCase handles movie business logic, delegating multi-table
// mutations to the transaction manager.
type MovieUseCase struct {
	repo MovieRepo
	tx   TxManager
	log  *log.Helper
}

// NewMovieUseCase creates a MovieUseCase.
func NewMovieUseCase(repo MovieRepo, tx TxManager, logger log.Logger) *MovieUseCase {
	return &MovieUseCase{
		repo: repo,
		tx:   tx,
		log:  log.NewHelper(logger),
	}
}

// ListMovies returns one page of movies matching the filter.
func (uc *MovieUseCase) ListMovies(ctx context.Context, f MovieFilter, opts ListOptions, inc MovieInclude) (*Page[*Movie], error) {
	movies, total, err := uc.repo.List(ctx, f, opts, inc)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return NewPage(movies, opts.Page, opts.Limit, total), nil
}

// GetMovie retrieves one movie by id.
func (uc *MovieUseCase) GetMovie(ctx context.Context, id uint, inc MovieInclude) (*Movie, error) {
	return uc.repo.Get(ctx, id, inc)
}

// CreateMovie creates a movie together with its initial cast in one
// transaction and returns it with relations joined.
func (uc *MovieUseCase) CreateMovie(ctx context.Context, movie *Movie, cast []CastChange) (*Movie, error) {
	created, err := uc.tx.CreateMovieWithActors(ctx, movie, cast, nil)
	if err != nil {
		return nil, err
	}
	uc.log.Infof("created movie %d (%s)", created.ID, created.Title)
	return created, nil
}

// UpdateMovie applies a partial field update plus optional cast edits
// atomically. The movie must exist.
func (uc *MovieUseCase) UpdateMovie(ctx context.Context, id uint, upd MovieUpdate, cast *CastUpdate) (*Movie, error) {
	if _, err := uc.repo.Get(ctx, id, MovieInclude{}); err != nil {
		return nil, err
	}
	return uc.tx.UpdateMovieWithRelations(ctx, id, upd, cast, nil)
}

// DeleteMovie removes a movie and its dependent ratings and cast rows in
// one transaction. The movie must exist.
func (uc *MovieUseCase) DeleteMovie(ctx context.Context, id uint) error {
	if _, err := uc.repo.Get(ctx, id, MovieInclude{}); err != nil {
		return err
	}
	if err := uc.tx.DeleteMovieWithRelations(ctx, id, nil); err != nil {
		return err
	}
	uc.log.Infof("deleted movie %d with relations", id)
	return nil
}

// AddCast links an actor to a movie. Re-adding an existing pair is a
// conflict, not a merge.
func (uc *MovieUseCase) AddCast(ctx context.Context, movieID uint, change CastChange) (*CastMember, error) {
	if _, err := uc.repo.Get(ctx, movieID, MovieInclude{}); err != nil {
		return nil, err
	}
	if change.Role == "" {
		change.Role = DefaultRole
	}
	return uc.repo.AddCast(ctx, movieID, change)
}

// UpdateCastRole rewrites the role on an existing cast row.
func (uc *MovieUseCase) UpdateCastRole(ctx context.Context, movieID, actorID uint, role string) error {
	return uc.repo.UpdateCastRole(ctx, movieID, actorID, role)
}

// RemoveCast unlinks an actor from a movie.
func (uc *MovieUseCase) RemoveCast(ctx context.Context, movieID, actorID uint) error {
	return uc.repo.RemoveCast(ctx, movieID, actorID)
}
