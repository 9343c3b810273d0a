package biz

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
)

// RatingUseCase handles rating business logic.
type RatingUseCase struct {
	movies  MovieRepo
	ratings RatingRepo
	tx      TxManager
	log     *log.Helper
}

// NewRatingUseCase creates a RatingUseCase.
func NewRatingUseCase(movies MovieRepo, ratings RatingRepo, tx TxManager, logger log.Logger) *RatingUseCase {
	return &RatingUseCase{
		movies:  movies,
		ratings: ratings,
		tx:      tx,
		log:     log.NewHelper(logger),
	}
}

// ListByMovie returns one page of a movie's ratings. The movie must exist.
func (uc *RatingUseCase) ListByMovie(ctx context.Context, movieID uint, opts ListOptions) (*Page[*MovieRating], error) {
	if _, err := uc.movies.Get(ctx, movieID, MovieInclude{}); err != nil {
		return nil, err
	}
	ratings, total, err := uc.ratings.ListByMovie(ctx, movieID, opts)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return NewPage(ratings, opts.Page, opts.Limit, total), nil
}

// CreateRating submits one rating. The target movie must exist.
func (uc *RatingUseCase) CreateRating(ctx context.Context, rating *MovieRating) (*MovieRating, error) {
	if _, err := uc.movies.Get(ctx, rating.MovieID, MovieInclude{}); err != nil {
		return nil, err
	}
	return uc.ratings.Create(ctx, rating)
}

// BatchCreateRatings creates several ratings atomically; one missing movie
// rolls the whole batch back.
func (uc *RatingUseCase) BatchCreateRatings(ctx context.Context, ratings []*MovieRating) ([]*MovieRating, error) {
	return uc.tx.BatchCreateRatings(ctx, ratings, nil)
}

// UpdateRating applies a partial update. The rating must exist.
func (uc *RatingUseCase) UpdateRating(ctx context.Context, id uint, upd RatingUpdate) (*MovieRating, error) {
	if _, err := uc.ratings.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.ratings.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	return uc.ratings.Get(ctx, id)
}

// DeleteRating removes one rating. The rating must exist.
func (uc *RatingUseCase) DeleteRating(ctx context.Context, id uint) error {
	if _, err := uc.ratings.Get(ctx, id); err != nil {
		return err
	}
	return uc.ratings.Delete(ctx, id)
}

// RatingsAverage reports a movie's mean rating; a movie with no ratings
// averages 0 here (the search mapping omits the field instead).
func (uc *RatingUseCase) RatingsAverage(ctx context.Context, movieID uint) (*RatingAggregate, error) {
	if _, err := uc.movies.Get(ctx, movieID, MovieInclude{}); err != nil {
		return nil, err
	}
	agg, err := uc.ratings.Aggregate(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}
	return agg, nil
}
