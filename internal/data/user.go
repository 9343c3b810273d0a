package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"

	"github.com/reelbase/catalog/internal/biz"
)

type userRepo struct {
	data *Data
	log  *log.Helper
}

// NewUserRepo creates the user repository.
func NewUserRepo(data *Data, logger log.Logger) biz.UserRepo {
	return &userRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *userRepo) List(ctx context.Context, opts biz.ListOptions) ([]*biz.User, int64, error) {
	var total int64
	if err := r.data.db.WithContext(ctx).Model(&User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	db := newestFirst.Apply(r.data.db.WithContext(ctx).Model(&User{}))
	db = PageWindow(opts.Page, opts.Limit).Apply(db)

	var rows []User
	if err := db.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	users := make([]*biz.User, 0, len(rows))
	for i := range rows {
		users = append(users, userToBiz(&rows[i]))
	}
	return users, total, nil
}

func (r *userRepo) Get(ctx context.Context, id uint) (*biz.User, error) {
	var row User
	if err := r.data.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, biz.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return userToBiz(&row), nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*biz.User, error) {
	var row User
	if err := r.data.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, biz.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return userToBiz(&row), nil
}

func (r *userRepo) Create(ctx context.Context, user *biz.User) (*biz.User, error) {
	row := userToModel(user)
	if err := r.data.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, biz.ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return userToBiz(row), nil
}

func (r *userRepo) Update(ctx context.Context, id uint, upd biz.UserUpdate) error {
	fields := map[string]any{}
	if upd.Email != nil {
		fields["email"] = *upd.Email
	}
	if upd.Password != nil {
		fields["password"] = *upd.Password
	}
	if upd.FirstName != nil {
		fields["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		fields["last_name"] = *upd.LastName
	}
	if upd.IsActive != nil {
		fields["is_active"] = *upd.IsActive
	}
	if len(fields) == 0 {
		return nil
	}
	err := r.data.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return biz.ErrEmailExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id uint) error {
	if err := r.data.db.WithContext(ctx).Delete(&User{}, id).Error; err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func userToBiz(u *User) *biz.User {
	return &biz.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func userToModel(u *biz.User) *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
	}
}
