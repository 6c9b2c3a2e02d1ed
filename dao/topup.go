package dao

import (
	"context"
	"time"

	"naikkelas/models"

	"gorm.io/gorm"
)

type Topup struct {
	Repo[models.TopupTransaction]
}

func NewTopup(db *gorm.DB) *Topup {
	return &Topup{
		Repo: NewRepo[models.TopupTransaction](db),
	}
}

func (t *Topup) FindByBillID(ctx context.Context, billID string) (*models.TopupTransaction, error) {
	return t.Repo.FindByWhere(ctx, "flip_bill_id = ?", billID)
}

// MarkTerminal 条件更新做状态迁移，只允许从 PENDING 出发
// 返回受影响行数：0 表示并发回调里输掉了竞争或已是终态
func (t *Topup) MarkTerminal(ctx context.Context, id, status string, paidAt *time.Time, notifyRaw []byte) (int64, error) {
	updates := map[string]any{
		"status":     status,
		"paid_at":    paidAt,
		"updated_at": time.Now(),
	}
	if len(notifyRaw) > 0 {
		updates["notify_raw"] = notifyRaw
	}
	result := t.Db.WithContext(ctx).Model(&models.TopupTransaction{}).
		Where("id = ? AND status = ?", id, models.TopupStatusPending).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// ListByUser 用户充值历史，新的在前
func (t *Topup) ListByUser(ctx context.Context, userID string, limit int) ([]models.TopupTransaction, error) {
	var txs []models.TopupTransaction
	err := t.Db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}
