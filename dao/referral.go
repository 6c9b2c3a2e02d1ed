package dao

import (
	"context"

	"naikkelas/models"

	"gorm.io/gorm"
)

type Referral struct {
	Repo[models.Referral]
}

func NewReferral(db *gorm.DB) *Referral {
	return &Referral{
		Repo: NewRepo[models.Referral](db),
	}
}

// FindByReferred 查被邀请人的归因记录（每人至多一条）
func (r *Referral) FindByReferred(ctx context.Context, userID string) (*models.Referral, error) {
	return r.Repo.FindByWhere(ctx, "referred_user_id = ?", userID)
}

func (r *Referral) CountLevel1(ctx context.Context, userID string) (int64, error) {
	return r.Repo.FindCount(ctx, "referrer_level1_id = ?", userID)
}

func (r *Referral) CountLevel2(ctx context.Context, userID string) (int64, error) {
	return r.Repo.FindCount(ctx, "referrer_level2_id = ?", userID)
}
