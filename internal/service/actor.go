package service

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/errors"

	v1 "github.com/reelbase/catalog/api/catalog/v1"
	"github.com/reelbase/catalog/internal/biz"
)

const birthDateLayout = "2006-01-02"

func actorInclude(raw string, reduced bool) biz.ActorInclude {
	incs := includesFrom(raw)
	return biz.ActorInclude{Movies: incs["movies"], Reduced: reduced}
}

func parseBirthDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(birthDateLayout, *raw)
	if err != nil {
		return nil, errors.New(422, "VALIDATION_FAILED", "birthDate must use YYYY-MM-DD")
	}
	return &t, nil
}

// ListActors handles GET /api/v1/actors.
func (s *CatalogService) ListActors(ctx context.Context, req *v1.ListActorsRequest) (*v1.PagedReply, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	filter := biz.ActorFilter{
		Search:        req.Search,
		BirthYearFrom: req.BirthYearFrom,
		BirthYearTo:   req.BirthYearTo,
	}
	opts := listOptions(req.SortBy, req.SortOrder, req.Page, req.Limit)

	page, err := s.actors.ListActors(ctx, filter, opts, actorInclude(req.Include, req.Reduced))
	if err != nil {
		return nil, err
	}

	items := make([]v1.ActorReply, 0, len(page.Items))
	for _, a := range page.Items {
		items = append(items, actorToReply(a))
	}
	return &v1.PagedReply{Data: items, Meta: pageMetaToReply(page.Meta)}, nil
}

// GetActor handles GET /api/v1/actors/{id}.
func (s *CatalogService) GetActor(ctx context.Context, id uint, req *v1.GetActorRequest) (*v1.ActorReply, error) {
	inc := actorInclude(req.Include, req.Reduced)
	if req.Include == "" {
		inc = biz.ActorInclude{Movies: true}
	}
	actor, err := s.actors.GetActor(ctx, id, inc)
	if err != nil {
		return nil, err
	}
	reply := actorToReply(actor)
	return &reply, nil
}

// GetActorMovies handles GET /api/v1/actors/{id}/movies.
func (s *CatalogService) GetActorMovies(ctx context.Context, id uint) (*v1.ActorReply, error) {
	actor, err := s.actors.GetFilmography(ctx, id)
	if err != nil {
		return nil, err
	}
	reply := actorToReply(actor)
	return &reply, nil
}

// CreateActor handles POST /api/v1/actors.
func (s *CatalogService) CreateActor(ctx context.Context, req *v1.CreateActorRequest) (*v1.ActorCreated, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	actor := &biz.Actor{
		Name:         req.Name,
		BirthDate:    birthDate,
		PlaceOfBirth: req.PlaceOfBirth,
		Nationality:  req.Nationality,
		Description:  req.Description,
		Biography:    req.Biography,
	}
	created, err := s.actors.CreateActor(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &v1.ActorCreated{ActorReply: actorToReply(created)}, nil
}

// UpdateActor handles PATCH /api/v1/actors/{id}.
func (s *CatalogService) UpdateActor(ctx context.Context, id uint, req *v1.UpdateActorRequest) (*v1.ActorReply, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	upd := biz.ActorUpdate{
		Name:         req.Name,
		BirthDate:    birthDate,
		PlaceOfBirth: req.PlaceOfBirth,
		Nationality:  req.Nationality,
		Description:  req.Description,
		Biography:    req.Biography,
	}
	updated, err := s.actors.UpdateActor(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	reply := actorToReply(updated)
	return &reply, nil
}

// DeleteActor handles DELETE /api/v1/actors/{id}.
func (s *CatalogService) DeleteActor(ctx context.Context, id uint) (*v1.DeletedReply, error) {
	if err := s.actors.DeleteActor(ctx, id); err != nil {
		return nil, err
	}
	return &v1.DeletedReply{ID: id}, nil
}
