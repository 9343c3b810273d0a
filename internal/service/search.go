package service

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"

	v1 "github.com/reelbase/catalog/api/catalog/v1"
	"github.com/reelbase/catalog/internal/biz"
)

// Search handles GET /api/v1/search: one query across movies and actors,
// ranked together.
func (s *CatalogService) Search(ctx context.Context, req *v1.SearchRequest) (*v1.PagedReply, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	q := strings.TrimSpace(req.Q)
	if q == "" {
		return nil, errors.New(422, "VALIDATION_FAILED", "q must not be blank")
	}

	page := req.Page
	if page <= 0 {
		page = 1
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	result, err := s.searcher.Search(ctx, biz.SearchQuery{
		Q:         q,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]v1.SearchItemReply, 0, len(result.Items))
	for _, it := range result.Items {
		items = append(items, searchItemToReply(it))
	}
	return &v1.PagedReply{Data: items, Meta: pageMetaToReply(result.Meta)}, nil
}

// searchItemToReply flattens the tagged union into the wire shape. A movie
// with no ratings omits averageRating entirely rather than reporting 0.
func searchItemToReply(it biz.SearchItem) v1.SearchItemReply {
	if it.Type == biz.SearchItemMovie {
		m := it.Movie
		reply := v1.SearchItemReply{
			ID:            m.ID,
			Type:          string(biz.SearchItemMovie),
			Title:         m.Title,
			Description:   m.Description,
			Plot:          m.Plot,
			ReleaseYear:   m.ReleaseYear,
			Genre:         m.Genre,
			Duration:      m.Duration,
			Budget:        m.Budget,
			BoxOffice:     m.BoxOffice,
			Awards:        m.Awards,
			Writers:       m.Writers,
			Director:      m.Director,
			AverageRating: m.AverageRating(),
			CreatedAt:     m.CreatedAt,
			UpdatedAt:     m.UpdatedAt,
		}
		for _, c := range m.Cast {
			reply.Actors = append(reply.Actors, v1.CastRef{ID: c.ActorID, Name: c.ActorName, Role: c.Role})
		}
		return reply
	}

	a := it.Actor
	reply := v1.SearchItemReply{
		ID:        a.ID,
		Type:      string(biz.SearchItemActor),
		Name:      a.Name,
		Biography: a.Biography,
		BirthDate: a.BirthDate,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	for _, c := range a.Cast {
		reply.Movies = append(reply.Movies, v1.MovieRef{ID: c.MovieID, Title: c.MovieTitle, Role: c.Role})
	}
	return reply
}

// HealthCheck handles GET /healthz.
func (s *CatalogService) HealthCheck(ctx context.Context) (*v1.HealthCheckReply, error) {
	return &v1.HealthCheckReply{Status: "ok"}, nil
}
