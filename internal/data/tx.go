package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/sync/semaphore"
	"gorm.io/gorm"

	"github.com/reelbase/catalog/internal/biz"
	"github.com/reelbase/catalog/internal/conf"
)

// Default transaction bounds, overridable per call via biz.TxOptions.
const (
	defaultTxMaxWait = 5 * time.Second
	defaultTxTimeout = 10 * time.Second
)

// ErrTxSlotTimeout is returned when no transaction slot frees up within the
// wait bound.
var ErrTxSlotTimeout = kerrors.ServiceUnavailable("TX_SLOT_TIMEOUT", "timed out waiting for a transaction slot")

// txManager executes dependent store mutations as one atomic unit. A
// weighted semaphore bounds how many transactions run concurrently;
// acquisition waits at most MaxWait, and execution is cut off at Timeout.
type txManager struct {
	data  *Data
	slots *semaphore.Weighted
	log   *log.Helper
}

// NewTxManager creates the transaction manager.
func NewTxManager(c *conf.Catalog, data *Data, logger log.Logger) biz.TxManager {
	max := int64(10)
	if c != nil && c.MaxConcurrentTx > 0 {
		max = c.MaxConcurrentTx
	}
	return &txManager{
		data:  data,
		slots: semaphore.NewWeighted(max),
		log:   log.NewHelper(logger),
	}
}

func (m *txManager) run(ctx context.Context, opts *biz.TxOptions, fn func(tx *gorm.DB) error) error {
	maxWait, timeout, iso := defaultTxMaxWait, defaultTxTimeout, ""
	if opts != nil {
		if opts.MaxWait > 0 {
			maxWait = opts.MaxWait
		}
		if opts.Timeout > 0 {
			timeout = opts.Timeout
		}
		iso = opts.Isolation
	}

	waitCtx, cancelWait := context.WithTimeout(ctx, maxWait)
	defer cancelWait()
	if err := m.slots.Acquire(waitCtx, 1); err != nil {
		return ErrTxSlotTimeout
	}
	defer m.slots.Release(1)

	execCtx, cancelExec := context.WithTimeout(ctx, timeout)
	defer cancelExec()

	return m.data.db.WithContext(execCtx).Transaction(fn, &sql.TxOptions{Isolation: isolationLevel(iso)})
}

// isolationLevel maps the caller-specified name onto database/sql; unknown
// or empty names leave the store's default in place.
func isolationLevel(name string) sql.IsolationLevel {
	switch strings.ToLower(name) {
	case "read_committed":
		return sql.LevelReadCommitted
	case "repeatable_read":
		return sql.LevelRepeatableRead
	case "serializable":
		return sql.LevelSerializable
	default:
		return sql.LevelDefault
	}
}

// DeleteMovieWithRelations removes a movie's ratings, then its cast rows,
// then the movie itself. Dependents go first so foreign keys hold at every
// step; any failure rolls the whole sequence back.
func (m *txManager) DeleteMovieWithRelations(ctx context.Context, movieID uint, opts *biz.TxOptions) error {
	err := m.run(ctx, opts, func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", movieID).Delete(&MovieRating{}).Error; err != nil {
			return fmt.Errorf("delete ratings: %w", err)
		}
		if err := tx.Where("movie_id = ?", movieID).Delete(&MovieActor{}).Error; err != nil {
			return fmt.Errorf("delete cast: %w", err)
		}
		res := tx.Delete(&Movie{}, movieID)
		if res.Error != nil {
			return fmt.Errorf("delete movie: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return biz.ErrMovieNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	cacheDel(ctx, m.data, movieCacheKey(movieID), ratingAggCacheKey(movieID))
	return nil
}

// DeleteActorWithRelations removes an actor's cast rows, then the actor.
func (m *txManager) DeleteActorWithRelations(ctx context.Context, actorID uint, opts *biz.TxOptions) error {
	var movieIDs []uint
	err := m.run(ctx, opts, func(tx *gorm.DB) error {
		if err := tx.Model(&MovieActor{}).Where("actor_id = ?", actorID).Pluck("movie_id", &movieIDs).Error; err != nil {
			return fmt.Errorf("list cast: %w", err)
		}
		if err := tx.Where("actor_id = ?", actorID).Delete(&MovieActor{}).Error; err != nil {
			return fmt.Errorf("delete cast: %w", err)
		}
		res := tx.Delete(&Actor{}, actorID)
		if res.Error != nil {
			return fmt.Errorf("delete actor: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return biz.ErrActorNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, id := range movieIDs {
		cacheDel(ctx, m.data, movieCacheKey(id))
	}
	return nil
}

// CreateMovieWithActors creates the movie, bulk-creates one cast row per
// change, and re-fetches the movie with its relations joined. A missing
// role falls back to the placeholder; a missing actor or duplicate pair
// aborts the whole creation.
func (m *txManager) CreateMovieWithActors(ctx context.Context, movie *biz.Movie, cast []biz.CastChange, opts *biz.TxOptions) (*biz.Movie, error) {
	var created Movie
	err := m.run(ctx, opts, func(tx *gorm.DB) error {
		row := movieToModel(movie)
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("create movie: %w", err)
		}

		if len(cast) > 0 {
			rows := make([]MovieActor, 0, len(cast))
			for _, c := range cast {
				role := c.Role
				if role == "" {
					role = biz.DefaultRole
				}
				rows = append(rows, MovieActor{MovieID: row.ID, ActorID: c.ActorID, Role: role})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return castCreateError(err)
			}
		}

		return tx.Preload("Cast").Preload("Cast.Actor").Preload("Ratings").First(&created, row.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return movieToBiz(&created), nil
}

// UpdateMovieWithRelations applies the partial field update, then the cast
// removals, additions, and role rewrites, and re-fetches the joined movie.
func (m *txManager) UpdateMovieWithRelations(ctx context.Context, movieID uint, upd biz.MovieUpdate, cast *biz.CastUpdate, opts *biz.TxOptions) (*biz.Movie, error) {
	var updated Movie
	err := m.run(ctx, opts, func(tx *gorm.DB) error {
		if fields := movieUpdateMap(upd); len(fields) > 0 {
			if err := tx.Model(&Movie{}).Where("id = ?", movieID).Updates(fields).Error; err != nil {
				return fmt.Errorf("update movie: %w", err)
			}
		}

		if cast != nil {
			if len(cast.RemoveIDs) > 0 {
				if err := tx.Where("movie_id = ? AND actor_id IN ?", movieID, cast.RemoveIDs).Delete(&MovieActor{}).Error; err != nil {
					return fmt.Errorf("remove cast: %w", err)
				}
			}
			for _, c := range cast.Add {
				role := c.Role
				if role == "" {
					role = biz.DefaultRole
				}
				if err := tx.Create(&MovieActor{MovieID: movieID, ActorID: c.ActorID, Role: role}).Error; err != nil {
					return castCreateError(err)
				}
			}
			for _, c := range cast.UpdateRoles {
				res := tx.Model(&MovieActor{}).
					Where("movie_id = ? AND actor_id = ?", movieID, c.ActorID).
					Update("role", c.Role)
				if res.Error != nil {
					return fmt.Errorf("update role: %w", res.Error)
				}
				if res.RowsAffected == 0 {
					return biz.ErrCastNotFound
				}
			}
		}

		return tx.Preload("Cast").Preload("Cast.Actor").Preload("Ratings").First(&updated, movieID).Error
	})
	if err != nil {
		return nil, err
	}
	cacheDel(ctx, m.data, movieCacheKey(movieID))
	return movieToBiz(&updated), nil
}

// BatchCreateRatings verifies each rating's movie before inserting it; the
// first missing movie rolls back every rating in the batch. Created rows
// come back with their parent movie's identity attached.
func (m *txManager) BatchCreateRatings(ctx context.Context, ratings []*biz.MovieRating, opts *biz.TxOptions) ([]*biz.MovieRating, error) {
	out := make([]*biz.MovieRating, 0, len(ratings))
	movieIDs := map[uint]bool{}
	err := m.run(ctx, opts, func(tx *gorm.DB) error {
		for _, rating := range ratings {
			var movie Movie
			if err := tx.Select("id", "title").First(&movie, rating.MovieID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return biz.ErrMovieNotFound
				}
				return fmt.Errorf("get movie: %w", err)
			}
			row := ratingToModel(rating)
			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("create rating: %w", err)
			}
			created := ratingToBiz(row)
			created.MovieTitle = movie.Title
			out = append(out, created)
			movieIDs[movie.ID] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for id := range movieIDs {
		cacheDel(ctx, m.data, ratingAggCacheKey(id), movieCacheKey(id))
	}
	return out, nil
}

// castCreateError maps store-level failures of a cast insert onto domain
// errors: duplicate pair is a conflict, broken FK means the actor is gone.
func castCreateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return biz.ErrCastExists
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return biz.ErrActorNotFound
	}
	return fmt.Errorf("add cast: %w", err)
}
