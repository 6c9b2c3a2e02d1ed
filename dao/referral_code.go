package dao

import (
	"context"

	"naikkelas/models"

	"gorm.io/gorm"
)

type ReferralCode struct {
	Repo[models.ReferralCode]
}

func NewReferralCode(db *gorm.DB) *ReferralCode {
	return &ReferralCode{
		Repo: NewRepo[models.ReferralCode](db),
	}
}

func (r *ReferralCode) FindByUser(ctx context.Context, userID string) (*models.ReferralCode, error) {
	return r.Repo.FindByWhere(ctx, "user_id = ?", userID)
}

func (r *ReferralCode) FindByCode(ctx context.Context, code string) (*models.ReferralCode, error) {
	return r.Repo.FindByWhere(ctx, "code = ?", code)
}
