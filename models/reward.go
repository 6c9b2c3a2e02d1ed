package models

import "time"

// UserReward 返现账户，余额必须等于该用户流水之和
// 单位：印尼盾，与会话积分是两个独立的池子
type UserReward struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	UserID    string    `gorm:"column:user_id;size:64;uniqueIndex"`
	Balance   int64     `gorm:"column:balance;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (UserReward) TableName() string {
	return "user_rewards"
}

// 奖励流水类型
const (
	RewardTypeReferralLevel1 = "REFERRAL_LEVEL1"
	RewardTypeReferralLevel2 = "REFERRAL_LEVEL2"
	RewardTypeRedemption     = "REDEMPTION"
)

// RewardTransaction 追加写流水表，不更新不删除
type RewardTransaction struct {
	ID          string    `gorm:"primaryKey;column:id;size:64"`
	UserID      string    `gorm:"column:user_id;size:64;index:idx_reward_transactions_user_id"`
	Amount      int64     `gorm:"column:amount"` // 正负皆可
	Type        string    `gorm:"column:type;size:32"`
	ReferralID  *string   `gorm:"column:referral_id;size:64"`
	Description string    `gorm:"column:description;size:255"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (RewardTransaction) TableName() string {
	return "reward_transactions"
}
