package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase handles account registration, login, and user CRUD.
type UserUseCase struct {
	repo   UserRepo
	tokens TokenIssuer
	log    *log.Helper
}

// NewUserUseCase creates a UserUseCase.
func NewUserUseCase(repo UserRepo, tokens TokenIssuer, logger log.Logger) *UserUseCase {
	return &UserUseCase{
		repo:   repo,
		tokens: tokens,
		log:    log.NewHelper(logger),
	}
}

// Register creates an account with a bcrypt-hashed password. A taken email
// is a conflict.
func (uc *UserUseCase) Register(ctx context.Context, email, password string, firstName, lastName *string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &User{
		Email:     email,
		Password:  string(hash),
		FirstName: firstName,
		LastName:  lastName,
		IsActive:  true,
	}
	created, err := uc.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	uc.log.Infof("registered user %d", created.ID)
	return created, nil
}

// Login verifies credentials and issues a JWT. Unknown emails and wrong
// passwords report the same error to avoid account probing.
func (uc *UserUseCase) Login(ctx context.Context, email, password string) (*User, string, time.Time, error) {
	user, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", time.Time{}, ErrUserInactive
	}
	token, expiresAt, err := uc.tokens.Issue(user.Email, user.ID)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}
	return user, token, expiresAt, nil
}

// ListUsers returns one page of users.
func (uc *UserUseCase) ListUsers(ctx context.Context, opts ListOptions) (*Page[*User], error) {
	users, total, err := uc.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return NewPage(users, opts.Page, opts.Limit, total), nil
}

// GetUser retrieves one user by id.
func (uc *UserUseCase) GetUser(ctx context.Context, id uint) (*User, error) {
	return uc.repo.Get(ctx, id)
}

// UpdateUser applies a partial update, hashing the password when one is
// supplied. The user must exist.
func (uc *UserUseCase) UpdateUser(ctx context.Context, id uint, upd UserUpdate) (*User, error) {
	if _, err := uc.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	if upd.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hashed := string(hash)
		upd.Password = &hashed
	}
	if err := uc.repo.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	return uc.repo.Get(ctx, id)
}

// DeleteUser removes one user. The user must exist.
func (uc *UserUseCase) DeleteUser(ctx context.Context, id uint) error {
	if _, err := uc.repo.Get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}
