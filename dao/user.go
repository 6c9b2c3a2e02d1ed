package dao

import (
	"context"
	"errors"

	"naikkelas/models"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.Users]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.Users](db),
	}
}

func (u *Users) FindByID(ctx context.Context, id string) (*models.Users, error) {
	return u.Repo.FindByWhere(ctx, "id = ?", id)
}

// EnsureUser 首次登录落库，已存在则返回现有行
func (u *Users) EnsureUser(ctx context.Context, id, email string) (*models.Users, bool, error) {
	existing, err := u.FindByID(ctx, id)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user := &models.Users{ID: id, Email: email}
	if err := u.Repo.Create(ctx, user); err != nil {
		// 并发首登撞唯一键，读回赢家
		if winner, rerr := u.FindByID(ctx, id); rerr == nil {
			return winner, false, nil
		}
		return nil, false, err
	}
	return user, true, nil
}

func (u *Users) UpdateName(ctx context.Context, id, name string) error {
	return u.Db.WithContext(ctx).
		Model(&models.Users{}).
		Where("id = ?", id).
		Update("name", name).Error
}
