package service

import (
	"context"

	v1 "github.com/reelbase/catalog/api/catalog/v1"
	"github.com/reelbase/catalog/internal/biz"
)

func movieInclude(raw string, reduced bool) biz.MovieInclude {
	incs := includesFrom(raw)
	return biz.MovieInclude{
		Cast:    incs["actors"],
		Ratings: incs["ratings"],
		Reduced: reduced,
	}
}

// ListMovies handles GET /api/v1/movies.
func (s *CatalogService) ListMovies(ctx context.Context, req *v1.ListMoviesRequest) (*v1.PagedReply, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	filter := biz.MovieFilter{
		Search:      req.Search,
		Genre:       req.Genre,
		ReleaseYear: req.ReleaseYear,
		MinRating:   req.MinRating,
		MaxRating:   req.MaxRating,
	}
	opts := listOptions(req.SortBy, req.SortOrder, req.Page, req.Limit)

	page, err := s.movies.ListMovies(ctx, filter, opts, movieInclude(req.Include, req.Reduced))
	if err != nil {
		return nil, err
	}

	items := make([]v1.MovieReply, 0, len(page.Items))
	for _, m := range page.Items {
		items = append(items, movieToReply(m))
	}
	return &v1.PagedReply{Data: items, Meta: pageMetaToReply(page.Meta)}, nil
}

// GetMovie handles GET /api/v1/movies/{id}.
func (s *CatalogService) GetMovie(ctx context.Context, id uint, req *v1.GetMovieRequest) (*v1.MovieReply, error) {
	inc := movieInclude(req.Include, req.Reduced)
	if req.Include == "" {
		// Detail reads default to the full joined view.
		inc = biz.MovieInclude{Cast: true, Ratings: true}
	}
	movie, err := s.movies.GetMovie(ctx, id, inc)
	if err != nil {
		return nil, err
	}
	reply := movieToReply(movie)
	return &reply, nil
}

// CreateMovie handles POST /api/v1/movies.
func (s *CatalogService) CreateMovie(ctx context.Context, req *v1.CreateMovieRequest) (*v1.MovieCreated, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	movie := &biz.Movie{
		Title:       req.Title,
		Description: req.Description,
		Plot:        req.Plot,
		ReleaseYear: req.ReleaseYear,
		Genre:       req.Genre,
		Duration:    req.Duration,
		Budget:      req.Budget,
		BoxOffice:   req.BoxOffice,
		Awards:      req.Awards,
		Writers:     req.Writers,
		Director:    req.Director,
	}

	// Roles pair positionally with actor ids; missing entries fall back to
	// the placeholder downstream.
	cast := make([]biz.CastChange, 0, len(req.ActorIds))
	for i, actorID := range req.ActorIds {
		role := ""
		if i < len(req.Roles) {
			role = req.Roles[i]
		}
		cast = append(cast, biz.CastChange{ActorID: actorID, Role: role})
	}

	created, err := s.movies.CreateMovie(ctx, movie, cast)
	if err != nil {
		return nil, err
	}
	return &v1.MovieCreated{MovieReply: movieToReply(created)}, nil
}

// UpdateMovie handles PATCH /api/v1/movies/{id}.
func (s *CatalogService) UpdateMovie(ctx context.Context, id uint, req *v1.UpdateMovieRequest) (*v1.MovieReply, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	upd := biz.MovieUpdate{
		Title:       req.Title,
		Description: req.Description,
		Plot:        req.Plot,
		ReleaseYear: req.ReleaseYear,
		Genre:       req.Genre,
		Duration:    req.Duration,
		Budget:      req.Budget,
		BoxOffice:   req.BoxOffice,
		Awards:      req.Awards,
		Writers:     req.Writers,
		Director:    req.Director,
	}

	var cast *biz.CastUpdate
	if len(req.AddActors) > 0 || len(req.UpdateRoles) > 0 || len(req.RemoveActorIds) > 0 {
		cast = &biz.CastUpdate{RemoveIDs: req.RemoveActorIds}
		for _, c := range req.AddActors {
			cast.Add = append(cast.Add, biz.CastChange{ActorID: c.ActorID, Role: c.Role})
		}
		for _, c := range req.UpdateRoles {
			cast.UpdateRoles = append(cast.UpdateRoles, biz.CastChange{ActorID: c.ActorID, Role: c.Role})
		}
	}

	updated, err := s.movies.UpdateMovie(ctx, id, upd, cast)
	if err != nil {
		return nil, err
	}
	reply := movieToReply(updated)
	return &reply, nil
}

// DeleteMovie handles DELETE /api/v1/movies/{id}.
func (s *CatalogService) DeleteMovie(ctx context.Context, id uint) (*v1.DeletedReply, error) {
	if err := s.movies.DeleteMovie(ctx, id); err != nil {
		return nil, err
	}
	return &v1.DeletedReply{ID: id}, nil
}

// AddMovieActor handles POST /api/v1/movies/{id}/actors.
func (s *CatalogService) AddMovieActor(ctx context.Context, movieID uint, req *v1.CastChange) (*v1.CastCreated, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	member, err := s.movies.AddCast(ctx, movieID, biz.CastChange{ActorID: req.ActorID, Role: req.Role})
	if err != nil {
		return nil, err
	}
	return &v1.CastCreated{CastReply: v1.CastReply{MovieID: member.MovieID, ActorID: member.ActorID, Role: member.Role}}, nil
}

// UpdateMovieActor handles PATCH /api/v1/movies/{id}/actors/{actorId}.
func (s *CatalogService) UpdateMovieActor(ctx context.Context, movieID, actorID uint, req *v1.UpdateCastRoleRequest) (*v1.CastReply, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	if err := s.movies.UpdateCastRole(ctx, movieID, actorID, req.Role); err != nil {
		return nil, err
	}
	return &v1.CastReply{MovieID: movieID, ActorID: actorID, Role: req.Role}, nil
}

// RemoveMovieActor handles DELETE /api/v1/movies/{id}/actors/{actorId}.
func (s *CatalogService) RemoveMovieActor(ctx context.Context, movieID, actorID uint) (*v1.DeletedReply, error) {
	if err := s.movies.RemoveCast(ctx, movieID, actorID); err != nil {
		return nil, err
	}
	return &v1.DeletedReply{ID: actorID}, nil
}

// ListMovieRatings handles GET /api/v1/movies/{id}/ratings.
func (s *CatalogService) ListMovieRatings(ctx context.Context, movieID uint, req *v1.PageRequest) (*v1.PagedReply, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	page, err := s.ratings.ListByMovie(ctx, movieID, listOptions("", "", req.Page, req.Limit))
	if err != nil {
		return nil, err
	}
	items := make([]v1.RatingReply, 0, len(page.Items))
	for _, r := range page.Items {
		items = append(items, ratingToReply(r))
	}
	return &v1.PagedReply{Data: items, Meta: pageMetaToReply(page.Meta)}, nil
}

// GetRatingsAverage handles GET /api/v1/movies/{id}/ratings/average.
func (s *CatalogService) GetRatingsAverage(ctx context.Context, movieID uint) (*v1.RatingsAverageReply, error) {
	agg, err := s.ratings.RatingsAverage(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return &v1.RatingsAverageReply{MovieID: agg.MovieID, Average: agg.Average, Count: agg.Count}, nil
}
