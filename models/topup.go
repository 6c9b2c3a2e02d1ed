package models

import (
	"time"

	"gorm.io/datatypes"
)

// 充值单状态机: PENDING -> SUCCESSFUL | FAILED | CANCELLED，终态不再迁移
const (
	TopupStatusPending    = "PENDING"
	TopupStatusSuccessful = "SUCCESSFUL"
	TopupStatusFailed     = "FAILED"
	TopupStatusCancelled  = "CANCELLED"
)

// TopupTransaction 一次支付尝试一条，按 Flip 账单ID做唯一约束
type TopupTransaction struct {
	ID           string         `gorm:"primaryKey;column:id;size:64"`
	UserID       string         `gorm:"column:user_id;size:64;index:idx_topup_transactions_user_id"`
	FlipBillID   string         `gorm:"column:flip_bill_id;size:64;uniqueIndex"`
	FlipBillLink string         `gorm:"column:flip_bill_link;size:255"`
	Amount       int64          `gorm:"column:amount;not null"` // 单位：印尼盾
	Credits      int64          `gorm:"column:credits;not null"`
	Status       string         `gorm:"column:status;size:16;not null;default:'PENDING'"`
	NotifyRaw    datatypes.JSON `gorm:"column:notify_raw"` // 回调原文留档
	PaidAt       *time.Time     `gorm:"column:paid_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (TopupTransaction) TableName() string {
	return "topup_transactions"
}
