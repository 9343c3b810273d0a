package biz

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
)

// ActorUseCase handles actor business logic.
type ActorUseCase struct {
	repo ActorRepo
	tx   TxManager
	log  *log.Helper
}

// NewActorUseCase creates an ActorUseCase.
func NewActorUseCase(repo ActorRepo, tx TxManager, logger log.Logger) *ActorUseCase {
	return &ActorUseCase{
		repo: repo,
		tx:   tx,
		log:  log.NewHelper(logger),
	}
}

// ListActors returns one page of actors matching the filter.
func (uc *ActorUseCase) ListActors(ctx context.Context, f ActorFilter, opts ListOptions, inc ActorInclude) (*Page[*Actor], error) {
	actors, total, err := uc.repo.List(ctx, f, opts, inc)
	if err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	return NewPage(actors, opts.Page, opts.Limit, total), nil
}

// GetActor retrieves one actor by id.
func (uc *ActorUseCase) GetActor(ctx context.Context, id uint, inc ActorInclude) (*Actor, error) {
	return uc.repo.Get(ctx, id, inc)
}

// GetFilmography returns the actor with their movie credits joined.
func (uc *ActorUseCase) GetFilmography(ctx context.Context, id uint) (*Actor, error) {
	return uc.repo.Get(ctx, id, ActorInclude{Movies: true})
}

// CreateActor creates an actor.
func (uc *ActorUseCase) CreateActor(ctx context.Context, actor *Actor) (*Actor, error) {
	created, err := uc.repo.Create(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("create actor: %w", err)
	}
	uc.log.Infof("created actor %d (%s)", created.ID, created.Name)
	return created, nil
}

// UpdateActor applies a partial update. The actor must exist.
func (uc *ActorUseCase) UpdateActor(ctx context.Context, id uint, upd ActorUpdate) (*Actor, error) {
	if _, err := uc.repo.Get(ctx, id, ActorInclude{}); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	return uc.repo.Get(ctx, id, ActorInclude{})
}

// DeleteActor removes an actor and their cast rows in one transaction. The
// actor must exist.
func (uc *ActorUseCase) DeleteActor(ctx context.Context, id uint) error {
	if _, err := uc.repo.Get(ctx, id, ActorInclude{}); err != nil {
		return err
	}
	if err := uc.tx.DeleteActorWithRelations(ctx, id, nil); err != nil {
		return err
	}
	uc.log.Infof("deleted actor %d with relations", id)
	return nil
}
