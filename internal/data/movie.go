package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"

	"github.com/reelbase/catalog/internal/biz"
)

type movieRepo struct {
	data *Data
	log  *log.Helper
}

// NewMovieRepo creates the movie repository.
func NewMovieRepo(data *Data, logger log.Logger) biz.MovieRepo {
	return &movieRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *movieRepo) List(ctx context.Context, f biz.MovieFilter, opts biz.ListOptions, inc biz.MovieInclude) ([]*biz.Movie, int64, error) {
	pred := MovieWhere(f)

	var total int64
	if err := pred.Apply(r.data.db.WithContext(ctx).Model(&Movie{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	db := pred.Apply(r.data.db.WithContext(ctx).Model(&Movie{}))
	db = ApplyIncludes(db, MovieIncludes(inc))
	db = OrderBy(opts.SortBy, opts.SortOrder, movieSortColumns, newestFirst).Apply(db)
	db = PageWindow(opts.Page, opts.Limit).Apply(db)

	var rows []Movie
	if err := db.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list movies: %w", err)
	}

	movies := make([]*biz.Movie, 0, len(rows))
	for i := range rows {
		movies = append(movies, movieToBiz(&rows[i]))
	}
	return movies, total, nil
}

func (r *movieRepo) Get(ctx context.Context, id uint, inc biz.MovieInclude) (*biz.Movie, error) {
	// Only the full detail view goes through the cache; partial include
	// variants always hit the store.
	cacheable := inc.Cast && inc.Ratings && !inc.Reduced
	if cacheable {
		var cached biz.Movie
		if cacheGet(ctx, r.data, movieCacheKey(id), &cached) {
			r.log.Debugf("cache hit for movie %d", id)
			return &cached, nil
		}
	}

	db := ApplyIncludes(r.data.db.WithContext(ctx), MovieIncludes(inc))
	var row Movie
	if err := db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, biz.ErrMovieNotFound
		}
		return nil, fmt.Errorf("get movie: %w", err)
	}

	movie := movieToBiz(&row)
	if cacheable {
		cacheSet(ctx, r.data, movieCacheKey(id), movie)
	}
	return movie, nil
}

func (r *movieRepo) Update(ctx context.Context, id uint, upd biz.MovieUpdate) error {
	fields := movieUpdateMap(upd)
	if len(fields) == 0 {
		return nil
	}
	if err := r.data.db.WithContext(ctx).Model(&Movie{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	cacheDel(ctx, r.data, movieCacheKey(id))
	return nil
}

func (r *movieRepo) AddCast(ctx context.Context, movieID uint, change biz.CastChange) (*biz.CastMember, error) {
	var actor Actor
	if err := r.data.db.WithContext(ctx).Select("id", "name").First(&actor, change.ActorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, biz.ErrActorNotFound
		}
		return nil, fmt.Errorf("get actor: %w", err)
	}

	row := &MovieActor{MovieID: movieID, ActorID: change.ActorID, Role: change.Role}
	if err := r.data.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, biz.ErrCastExists
		}
		return nil, fmt.Errorf("add cast: %w", err)
	}
	cacheDel(ctx, r.data, movieCacheKey(movieID))

	return &biz.CastMember{
		ID:        row.ID,
		MovieID:   row.MovieID,
		ActorID:   row.ActorID,
		Role:      row.Role,
		ActorName: actor.Name,
	}, nil
}

func (r *movieRepo) UpdateCastRole(ctx context.Context, movieID, actorID uint, role string) error {
	res := r.data.db.WithContext(ctx).Model(&MovieActor{}).
		Where("movie_id = ? AND actor_id = ?", movieID, actorID).
		Update("role", role)
	if res.Error != nil {
		return fmt.Errorf("update cast role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return biz.ErrCastNotFound
	}
	cacheDel(ctx, r.data, movieCacheKey(movieID))
	return nil
}

func (r *movieRepo) RemoveCast(ctx context.Context, movieID, actorID uint) error {
	res := r.data.db.WithContext(ctx).
		Where("movie_id = ? AND actor_id = ?", movieID, actorID).
		Delete(&MovieActor{})
	if res.Error != nil {
		return fmt.Errorf("remove cast: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return biz.ErrCastNotFound
	}
	cacheDel(ctx, r.data, movieCacheKey(movieID))
	return nil
}

// SearchPage runs the movie arm of the combined search: an over-fetched
// window in store order, with ratings and cast joined for the item mapping.
func (r *movieRepo) SearchPage(ctx context.Context, q string, limit int) ([]*biz.Movie, error) {
	db := MovieSearchWhere(q).Apply(r.data.db.WithContext(ctx).Model(&Movie{}))
	db = db.Preload("Ratings").Preload("Cast").Preload("Cast.Actor")
	db = newestFirst.Apply(db).Limit(limit)

	var rows []Movie
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	movies := make([]*biz.Movie, 0, len(rows))
	for i := range rows {
		movies = append(movies, movieToBiz(&rows[i]))
	}
	return movies, nil
}

func (r *movieRepo) SearchCount(ctx context.Context, q string) (int64, error) {
	var total int64
	db := MovieSearchWhere(q).Apply(r.data.db.WithContext(ctx).Model(&Movie{}))
	if err := db.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return total, nil
}

// movieToBiz converts a store row (plus whatever relations were loaded)
// into the domain model.
func movieToBiz(m *Movie) *biz.Movie {
	movie := &biz.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Plot:        m.Plot,
		ReleaseYear: m.ReleaseYear,
		Genre:       m.Genre,
		Duration:    m.Duration,
		Budget:      m.Budget,
		BoxOffice:   m.BoxOffice,
		Awards:      m.Awards,
		Writers:     m.Writers,
		Director:    m.Director,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for i := range m.Cast {
		c := &m.Cast[i]
		movie.Cast = append(movie.Cast, biz.CastMember{
			ID:        c.ID,
			MovieID:   c.MovieID,
			ActorID:   c.ActorID,
			Role:      c.Role,
			ActorName: c.Actor.Name,
		})
	}
	for i := range m.Ratings {
		rt := &m.Ratings[i]
		movie.Ratings = append(movie.Ratings, biz.MovieRating{
			ID:        rt.ID,
			MovieID:   rt.MovieID,
			Rating:    rt.Rating,
			Comment:   rt.Comment,
			Reviewer:  rt.Reviewer,
			CreatedAt: rt.CreatedAt,
		})
	}
	return movie
}

// movieToModel converts a domain movie into a store row for creation.
func movieToModel(m *biz.Movie) *Movie {
	return &Movie{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Plot:        m.Plot,
		ReleaseYear: m.ReleaseYear,
		Genre:       m.Genre,
		Duration:    m.Duration,
		Budget:      m.Budget,
		BoxOffice:   m.BoxOffice,
		Awards:      m.Awards,
		Writers:     m.Writers,
		Director:    m.Director,
	}
}

// movieUpdateMap collects the set fields of a partial update into a column
// map; nil fields stay untouched.
func movieUpdateMap(upd biz.MovieUpdate) map[string]any {
	fields := map[string]any{}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.Plot != nil {
		fields["plot"] = *upd.Plot
	}
	if upd.ReleaseYear != nil {
		fields["release_year"] = *upd.ReleaseYear
	}
	if upd.Genre != nil {
		fields["genre"] = *upd.Genre
	}
	if upd.Duration != nil {
		fields["duration"] = *upd.Duration
	}
	if upd.Budget != nil {
		fields["budget"] = *upd.Budget
	}
	if upd.BoxOffice != nil {
		fields["box_office"] = *upd.BoxOffice
	}
	if upd.Awards != nil {
		fields["awards"] = *upd.Awards
	}
	if upd.Writers != nil {
		fields["writers"] = *upd.Writers
	}
	if upd.Director != nil {
		fields["director"] = *upd.Director
	}
	return fields
}
