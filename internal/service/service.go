// Package service sits between the HTTP transport and the use cases: it
// validates request DTOs, maps them to domain types, and shapes replies.
package service

import (
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/wire"

	v1 "github.com/reelbase/catalog/api/catalog/v1"
	"github.com/reelbase/catalog/internal/biz"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewCatalogService)

// CatalogService implements the catalog HTTP API.
type CatalogService struct {
	movies   *biz.MovieUseCase
	actors   *biz.ActorUseCase
	ratings  *biz.RatingUseCase
	users    *biz.UserUseCase
	searcher *biz.SearchUseCase
	validate *validator.Validate
	log      *log.Helper
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(
	movies *biz.MovieUseCase,
	actors *biz.ActorUseCase,
	ratings *biz.RatingUseCase,
	users *biz.UserUseCase,
	searcher *biz.SearchUseCase,
	logger log.Logger,
) *CatalogService {
	return &CatalogService{
		movies:   movies,
		actors:   actors,
		ratings:  ratings,
		users:    users,
		searcher: searcher,
		validate: validator.New(),
		log:      log.NewHelper(logger),
	}
}

// validateRequest runs struct validation and folds the failures into one
// 422 error.
func (s *CatalogService) validateRequest(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fe.Field()+" failed "+fe.Tag()+" validation")
		}
		return errors.New(422, "VALIDATION_FAILED", strings.Join(msgs, "; "))
	}
	return errors.New(422, "VALIDATION_FAILED", err.Error())
}

// listOptions applies the default page window to raw query values.
func listOptions(sortBy, sortOrder string, page, limit int) biz.ListOptions {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return biz.ListOptions{SortBy: sortBy, SortOrder: sortOrder, Page: page, Limit: limit}
}

// includesFrom parses the comma-separated include list.
func includesFrom(raw string) map[string]bool {
	out := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out[strings.ToLower(part)] = true
		}
	}
	return out
}

func pageMetaToReply(meta biz.PageMeta) *v1.PageMeta {
	return &v1.PageMeta{
		Page:       meta.Page,
		Limit:      meta.Limit,
		Total:      meta.Total,
		TotalPages: meta.TotalPages,
		HasNext:    meta.HasNext,
		HasPrev:    meta.HasPrev,
	}
}

func movieToReply(m *biz.Movie) v1.MovieReply {
	reply := v1.MovieReply{
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
	for _, c := range m.Cast {
		reply.Actors = append(reply.Actors, v1.CastRef{ID: c.ActorID, Name: c.ActorName, Role: c.Role})
	}
	for _, r := range m.Ratings {
		reply.Ratings = append(reply.Ratings, v1.RatingRef{ID: r.ID, Rating: r.Rating, Reviewer: r.Reviewer})
	}
	return reply
}

func actorToReply(a *biz.Actor) v1.ActorReply {
	reply := v1.ActorReply{
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
	for _, c := range a.Cast {
		reply.Movies = append(reply.Movies, v1.MovieRef{ID: c.MovieID, Title: c.MovieTitle, Role: c.Role})
	}
	return reply
}

func ratingToReply(r *biz.MovieRating) v1.RatingReply {
	reply := v1.RatingReply{
		ID:        r.ID,
		MovieID:   r.MovieID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Reviewer:  r.Reviewer,
		CreatedAt: r.CreatedAt,
	}
	if r.MovieTitle != "" {
		reply.Movie = &v1.MovieRef{ID: r.MovieID, Title: r.MovieTitle}
	}
	return reply
}

func userToReply(u *biz.User) v1.UserReply {
	return v1.UserReply{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
