package dao

import (
	"context"

	"naikkelas/models"
	"naikkelas/pkg/utils"

	"gorm.io/gorm"
)

type Credit struct {
	Repo[models.UserCredits]
}

func NewCredit(db *gorm.DB) *Credit {
	return &Credit{
		Repo: NewRepo[models.UserCredits](db),
	}
}

func (c *Credit) GetAccount(ctx context.Context, userID string) (*models.UserCredits, error) {
	return c.Repo.FindByWhere(ctx, "user_id = ?", userID)
}

// CreateAccount 按初始额度开户
func (c *Credit) CreateAccount(ctx context.Context, userID string, initialCredits int64) error {
	return c.Repo.Create(ctx, &models.UserCredits{
		ID:      utils.GenRowID("credit"),
		UserID:  userID,
		Credits: initialCredits,
	})
}

// UpdateCredits 原子加减，并发安全靠 gorm.Expr 不靠应用层读改写
func (c *Credit) UpdateCredits(ctx context.Context, userID string, delta int64) (int64, error) {
	result := c.Db.WithContext(ctx).Model(&models.UserCredits{}).
		Where("user_id = ?", userID).
		Update("credits", gorm.Expr("credits + ?", delta))
	return result.RowsAffected, result.Error
}
