package models

import "time"

// ReferralCode 每个用户至多一条，code 全局唯一，创建后不可变
type ReferralCode struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	UserID    string    `gorm:"column:user_id;size:64;uniqueIndex"`
	Code      string    `gorm:"column:code;size:32;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ReferralCode) TableName() string {
	return "referral_codes"
}

// Referral 被邀请人维度一条，referred_user_id 唯一约束是幂等兜底
type Referral struct {
	ID               string    `gorm:"primaryKey;column:id;size:64"`
	ReferredUserID   string    `gorm:"column:referred_user_id;size:64;uniqueIndex"`
	ReferrerLevel1ID string    `gorm:"column:referrer_level1_id;size:64;index:idx_referrer_l1"`
	ReferrerLevel2ID *string   `gorm:"column:referrer_level2_id;size:64;index:idx_referrer_l2"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Referral) TableName() string {
	return "referrals"
}
