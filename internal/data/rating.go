package data

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/reelbase/catalog/internal/biz"
)

type ratingRepo struct {
	data *Data
	log  *log.Helper
}

// NewRatingRepo creates the rating repository.
func NewRatingRepo(data *Data, logger log.Logger) biz.RatingRepo {
	return &ratingRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *ratingRepo) ListByMovie(ctx context.Context, movieID uint, opts biz.ListOptions) ([]*biz.MovieRating, int64, error) {
	var total int64
	if err := r.data.db.WithContext(ctx).Model(&MovieRating{}).Where("movie_id = ?", movieID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count ratings: %w", err)
	}

	db := r.data.db.WithContext(ctx).Where("movie_id = ?", movieID)
	db = newestFirst.Apply(db)
	db = PageWindow(opts.Page, opts.Limit).Apply(db)

	var rows []MovieRating
	if err := db.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list ratings: %w", err)
	}

	ratings := make([]*biz.MovieRating, 0, len(rows))
	for i := range rows {
		ratings = append(ratings, ratingToBiz(&rows[i]))
	}
	return ratings, total, nil
}

func (r *ratingRepo) Get(ctx context.Context, id uint) (*biz.MovieRating, error) {
	var row MovieRating
	if err := r.data.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, biz.ErrRatingNotFound
		}
		return nil, fmt.Errorf("get rating: %w", err)
	}
	return ratingToBiz(&row), nil
}

func (r *ratingRepo) Create(ctx context.Context, rating *biz.MovieRating) (*biz.MovieRating, error) {
	row := ratingToModel(rating)
	if err := r.data.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("create rating: %w", err)
	}
	r.invalidate(ctx, row.MovieID)
	return ratingToBiz(row), nil
}

func (r *ratingRepo) Update(ctx context.Context, id uint, upd biz.RatingUpdate) error {
	fields := map[string]any{}
	if upd.Rating != nil {
		fields["rating"] = *upd.Rating
	}
	if upd.Comment != nil {
		fields["comment"] = *upd.Comment
	}
	if len(fields) == 0 {
		return nil
	}

	var row MovieRating
	if err := r.data.db.WithContext(ctx).Select("id", "movie_id").First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return biz.ErrRatingNotFound
		}
		return fmt.Errorf("get rating: %w", err)
	}
	if err := r.data.db.WithContext(ctx).Model(&MovieRating{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	r.invalidate(ctx, row.MovieID)
	return nil
}

func (r *ratingRepo) Delete(ctx context.Context, id uint) error {
	var row MovieRating
	if err := r.data.db.WithContext(ctx).Select("id", "movie_id").First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return biz.ErrRatingNotFound
		}
		return fmt.Errorf("get rating: %w", err)
	}
	if err := r.data.db.WithContext(ctx).Delete(&MovieRating{}, id).Error; err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	r.invalidate(ctx, row.MovieID)
	return nil
}

// Aggregate reports the mean and count of a movie's ratings; both are 0
// when the movie has none.
func (r *ratingRepo) Aggregate(ctx context.Context, movieID uint) (*biz.RatingAggregate, error) {
	if r.data.rdb != nil {
		var cached biz.RatingAggregate
		if cacheGet(ctx, r.data, ratingAggCacheKey(movieID), &cached) {
			r.log.Debugf("cache hit for rating aggregate %d", movieID)
			return &cached, nil
		}
	}

	var result struct {
		Average float64
		Count   int64
	}
	err := r.data.db.WithContext(ctx).
		Model(&MovieRating{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as count").
		Where("movie_id = ?", movieID).
		Scan(&result).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}

	agg := &biz.RatingAggregate{
		MovieID: movieID,
		Average: result.Average,
		Count:   result.Count,
	}
	cacheSet(ctx, r.data, ratingAggCacheKey(movieID), agg)
	return agg, nil
}

// invalidate drops the cached aggregate and detail entry for a movie and
// refreshes its position in the popularity/top-rated rankings.
func (r *ratingRepo) invalidate(ctx context.Context, movieID uint) {
	cacheDel(ctx, r.data, ratingAggCacheKey(movieID), movieCacheKey(movieID))
	r.updateRankings(ctx, movieID)
}

// updateRankings maintains two Redis ZSets: movies by rating count and by
// average rating. Best effort; ranking lag is acceptable.
func (r *ratingRepo) updateRankings(ctx context.Context, movieID uint) {
	if r.data.rdb == nil {
		return
	}

	var result struct {
		Average float64
		Count   int64
	}
	err := r.data.db.WithContext(ctx).
		Model(&MovieRating{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as count").
		Where("movie_id = ?", movieID).
		Scan(&result).Error
	if err != nil {
		r.log.Warnf("failed to refresh rankings for movie %d: %v", movieID, err)
		return
	}

	member := strconv.FormatUint(uint64(movieID), 10)
	r.data.rdb.ZAdd(ctx, "rank:movies:popular", redis.Z{
		Score:  float64(result.Count),
		Member: member,
	})
	if result.Count > 0 {
		r.data.rdb.ZAdd(ctx, "rank:movies:top", redis.Z{
			Score:  result.Average,
			Member: member,
		})
	} else {
		r.data.rdb.ZRem(ctx, "rank:movies:top", member)
	}
}

func ratingToBiz(m *MovieRating) *biz.MovieRating {
	return &biz.MovieRating{
		ID:         m.ID,
		MovieID:    m.MovieID,
		Rating:     m.Rating,
		Comment:    m.Comment,
		Reviewer:   m.Reviewer,
		MovieTitle: m.Movie.Title,
		CreatedAt:  m.CreatedAt,
	}
}

func ratingToModel(r *biz.MovieRating) *MovieRating {
	return &MovieRating{
		ID:       r.ID,
		MovieID:  r.MovieID,
		Rating:   r.Rating,
		Comment:  r.Comment,
		Reviewer: r.Reviewer,
	}
}
