package models

import "time"

// UserCredits 会话积分账户，按 token 消耗，充值回填
// 首次触达时按默认额度开户
type UserCredits struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	UserID    string    `gorm:"column:user_id;size:64;uniqueIndex"`
	Credits   int64     `gorm:"column:credits;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (UserCredits) TableName() string {
	return "user_credits"
}
