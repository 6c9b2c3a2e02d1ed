package dao

import (
	"context"

	"naikkelas/models"
	"naikkelas/pkg/utils"

	"gorm.io/gorm"
)

type Reward struct {
	Repo[models.UserReward]
}

func NewReward(db *gorm.DB) *Reward {
	return &Reward{
		Repo: NewRepo[models.UserReward](db),
	}
}

// GetAccount 获取返现账户
func (r *Reward) GetAccount(ctx context.Context, userID string) (*models.UserReward, error) {
	return r.Repo.FindByWhere(ctx, "user_id = ?", userID)
}

// CreateAccount 初始化账户（余额从0起）
func (r *Reward) CreateAccount(ctx context.Context, userID string) error {
	return r.Repo.Create(ctx, &models.UserReward{
		ID:     utils.GenRowID("reward"),
		UserID: userID,
	})
}

// UpdateBalance 原子加减余额，返回受影响行数供上层判断是否需要开户
func (r *Reward) UpdateBalance(ctx context.Context, userID string, amount int64) (int64, error) {
	result := r.Db.WithContext(ctx).Model(&models.UserReward{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))
	return result.RowsAffected, result.Error
}

func (r *Reward) CreateTransaction(ctx context.Context, tx *models.RewardTransaction) error {
	return r.Db.WithContext(ctx).Create(tx).Error
}

// SumPositive 历史累计获得（只算正向流水，区别于当前余额）
func (r *Reward) SumPositive(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.Db.WithContext(ctx).Model(&models.RewardTransaction{}).
		Select("IFNULL(SUM(amount), 0)").
		Where("user_id = ? AND amount > 0", userID).
		Scan(&total).Error
	return total, err
}

// ListTransactions 流水，新的在前
func (r *Reward) ListTransactions(ctx context.Context, userID string) ([]models.RewardTransaction, error) {
	var txs []models.RewardTransaction
	err := r.Db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&txs).Error
	return txs, err
}
