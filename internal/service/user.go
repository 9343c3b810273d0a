package service

import (
	"context"

	v1 "github.com/reelbase/catalog/api/catalog/v1"
	"github.com/reelbase/catalog/internal/biz"
)

// RegisterUser handles POST /api/v1/users/register.
func (s *CatalogService) RegisterUser(ctx context.Context, req *v1.RegisterUserRequest) (*v1.UserCreated, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	user, err := s.users.Register(ctx, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	return &v1.UserCreated{UserReply: userToReply(user)}, nil
}

// LoginUser handles POST /api/v1/users/login.
func (s *CatalogService) LoginUser(ctx context.Context, req *v1.LoginUserRequest) (*v1.LoginUserReply, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	user, token, expiresAt, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return &v1.LoginUserReply{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      userToReply(user),
	}, nil
}

// ListUsers handles GET /api/v1/users.
func (s *CatalogService) ListUsers(ctx context.Context, req *v1.PageRequest) (*v1.PagedReply, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	page, err := s.users.ListUsers(ctx, listOptions("", "", req.Page, req.Limit))
	if err != nil {
		return nil, err
	}
	items := make([]v1.UserReply, 0, len(page.Items))
	for _, u := range page.Items {
		items = append(items, userToReply(u))
	}
	return &v1.PagedReply{Data: items, Meta: pageMetaToReply(page.Meta)}, nil
}

// GetUser handles GET /api/v1/users/{id}.
func (s *CatalogService) GetUser(ctx context.Context, id uint) (*v1.UserReply, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	reply := userToReply(user)
	return &reply, nil
}

// UpdateUser handles PATCH /api/v1/users/{id}.
func (s *CatalogService) UpdateUser(ctx context.Context, id uint, req *v1.UpdateUserRequest) (*v1.UserReply, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	upd := biz.UserUpdate{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  req.IsActive,
	}
	updated, err := s.users.UpdateUser(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	reply := userToReply(updated)
	return &reply, nil
}

// DeleteUser handles DELETE /api/v1/users/{id}.
func (s *CatalogService) DeleteUser(ctx context.Context, id uint) (*v1.DeletedReply, error) {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return nil, err
	}
	return &v1.DeletedReply{ID: id}, nil
}
