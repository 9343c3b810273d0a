package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"

	"github.com/reelbase/catalog/internal/biz"
)

type actorRepo struct {
	data *Data
	log  *log.Helper
}

// NewActorRepo creates the actor repository.
func NewActorRepo(data *Data, logger log.Logger) biz.ActorRepo {
	return &actorRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *actorRepo) List(ctx context.Context, f biz.ActorFilter, opts biz.ListOptions, inc biz.ActorInclude) ([]*biz.Actor, int64, error) {
	pred := ActorWhere(f)

	var total int64
	if err := pred.Apply(r.data.db.WithContext(ctx).Model(&Actor{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count actors: %w", err)
	}

	db := pred.Apply(r.data.db.WithContext(ctx).Model(&Actor{}))
	db = ApplyIncludes(db, ActorIncludes(inc))
	db = OrderBy(opts.SortBy, opts.SortOrder, actorSortColumns, newestFirst).Apply(db)
	db = PageWindow(opts.Page, opts.Limit).Apply(db)

	var rows []Actor
	if err := db.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list actors: %w", err)
	}

	actors := make([]*biz.Actor, 0, len(rows))
	for i := range rows {
		actors = append(actors, actorToBiz(&rows[i]))
	}
	return actors, total, nil
}

func (r *actorRepo) Get(ctx context.Context, id uint, inc biz.ActorInclude) (*biz.Actor, error) {
	db := ApplyIncludes(r.data.db.WithContext(ctx), ActorIncludes(inc))
	var row Actor
	if err := db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, biz.ErrActorNotFound
		}
		return nil, fmt.Errorf("get actor: %w", err)
	}
	return actorToBiz(&row), nil
}

func (r *actorRepo) Create(ctx context.Context, actor *biz.Actor) (*biz.Actor, error) {
	row := actorToModel(actor)
	if err := r.data.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("create actor: %w", err)
	}
	return actorToBiz(row), nil
}

func (r *actorRepo) Update(ctx context.Context, id uint, upd biz.ActorUpdate) error {
	fields := actorUpdateMap(upd)
	if len(fields) == 0 {
		return nil
	}
	if err := r.data.db.WithContext(ctx).Model(&Actor{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return fmt.Errorf("update actor: %w", err)
	}
	return nil
}

// SearchPage runs the actor arm of the combined search with filmography
// joined for the item mapping.
func (r *actorRepo) SearchPage(ctx context.Context, q string, limit int) ([]*biz.Actor, error) {
	db := ActorSearchWhere(q).Apply(r.data.db.WithContext(ctx).Model(&Actor{}))
	db = db.Preload("Cast").Preload("Cast.Movie")
	db = newestFirst.Apply(db).Limit(limit)

	var rows []Actor
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("search actors: %w", err)
	}
	actors := make([]*biz.Actor, 0, len(rows))
	for i := range rows {
		actors = append(actors, actorToBiz(&rows[i]))
	}
	return actors, nil
}

func (r *actorRepo) SearchCount(ctx context.Context, q string) (int64, error) {
	var total int64
	db := ActorSearchWhere(q).Apply(r.data.db.WithContext(ctx).Model(&Actor{}))
	if err := db.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count actors: %w", err)
	}
	return total, nil
}

func actorToBiz(a *Actor) *biz.Actor {
	actor := &biz.Actor{
		ID:           a.ID,
		Name:         a.Name,
		BirthDate:    a.BirthDate,
		PlaceOfBirth: a.PlaceOfBirth,
		Nationality:  a.Nationality,
		Description:  a.Description,
		Biography:    a.Biography,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	for i := range a.Cast {
		c := &a.Cast[i]
		actor.Cast = append(actor.Cast, biz.CastMember{
			ID:         c.ID,
			MovieID:    c.MovieID,
			ActorID:    c.ActorID,
			Role:       c.Role,
			MovieTitle: c.Movie.Title,
		})
	}
	return actor
}

func actorToModel(a *biz.Actor) *Actor {
	return &Actor{
		ID:           a.ID,
		Name:         a.Name,
		BirthDate:    a.BirthDate,
		PlaceOfBirth: a.PlaceOfBirth,
		Nationality:  a.Nationality,
		Description:  a.Description,
		Biography:    a.Biography,
	}
}

func actorUpdateMap(upd biz.ActorUpdate) map[string]any {
	fields := map[string]any{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.BirthDate != nil {
		fields["birth_date"] = *upd.BirthDate
	}
	if upd.PlaceOfBirth != nil {
		fields["place_of_birth"] = *upd.PlaceOfBirth
	}
	if upd.Nationality != nil {
		fields["nationality"] = *upd.Nationality
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.Biography != nil {
		fields["biography"] = *upd.Biography
	}
	return fields
}
