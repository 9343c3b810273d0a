package service

import (
	"context"

	v1 "github.com/reelbase/catalog/api/catalog/v1"
	"github.com/reelbase/catalog/internal/biz"
)

// CreateRating handles POST /api/v1/ratings.
func (s *CatalogService) CreateRating(ctx context.Context, req *v1.CreateRatingRequest) (*v1.RatingCreated, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	rating := &biz.MovieRating{
		MovieID:  req.MovieID,
		Rating:   req.Rating,
		Comment:  req.Comment,
		Reviewer: req.Reviewer,
	}
	created, err := s.ratings.CreateRating(ctx, rating)
	if err != nil {
		return nil, err
	}
	return &v1.RatingCreated{RatingReply: ratingToReply(created)}, nil
}

// BatchCreateRatings handles POST /api/v1/ratings/batch. One bad movie id
// fails the whole batch.
func (s *CatalogService) BatchCreateRatings(ctx context.Context, req *v1.BatchCreateRatingsRequest) (*v1.RatingsBatchCreated, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	ratings := make([]*biz.MovieRating, 0, len(req.Ratings))
	for _, r := range req.Ratings {
		ratings = append(ratings, &biz.MovieRating{
			MovieID:  r.MovieID,
			Rating:   r.Rating,
			Comment:  r.Comment,
			Reviewer: r.Reviewer,
		})
	}
	created, err := s.ratings.BatchCreateRatings(ctx, ratings)
	if err != nil {
		return nil, err
	}
	reply := &v1.RatingsBatchCreated{Ratings: make([]v1.RatingReply, 0, len(created))}
	for _, r := range created {
		reply.Ratings = append(reply.Ratings, ratingToReply(r))
	}
	return reply, nil
}

// UpdateRating handles PATCH /api/v1/ratings/{id}.
func (s *CatalogService) UpdateRating(ctx context.Context, id uint, req *v1.UpdateRatingRequest) (*v1.RatingReply, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	updated, err := s.ratings.UpdateRating(ctx, id, biz.RatingUpdate{Rating: req.Rating, Comment: req.Comment})
	if err != nil {
		return nil, err
	}
	reply := ratingToReply(updated)
	return &reply, nil
}

// DeleteRating handles DELETE /api/v1/ratings/{id}.
func (s *CatalogService) DeleteRating(ctx context.Context, id uint) (*v1.DeletedReply, error) {
	if err := s.ratings.DeleteRating(ctx, id); err != nil {
		return nil, err
	}
	return &v1.DeletedReply{ID: id}, nil
}
