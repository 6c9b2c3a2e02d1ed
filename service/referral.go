package service

import (
	"context"
	"errors"
	"fmt"

	"naikkelas/config"
	"naikkelas/dao"
	"naikkelas/dao/cache"
	"naikkelas/models"
	"naikkelas/pkg/log"
	"naikkelas/pkg/response"
	"naikkelas/pkg/utils"
	"naikkelas/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 奖励金额，单位印尼盾，固定政策不走配置
const (
	RewardLevel1 = 75000 // 直接邀请
	RewardLevel2 = 25000 // 间接邀请
)

// 邀请码生成撞唯一键时的重试上限
const codeGenRetries = 3

type ReferralService struct {
	Config          *config.Config
	DB              *gorm.DB
	ReferralCodeDAO *dao.ReferralCode
	ReferralDAO     *dao.Referral
	Cache           *cache.ReferralCache
	RewardService   IRewardService
}

var _ IReferralService = (*ReferralService)(nil)

type IReferralService interface {
	GetOrCreateCode(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, code string) (string, error)
	Attribute(ctx context.Context, newUserID, code string) (*models.Referral, error)
	CodeResp(ctx context.Context, userID string) (*types.ReferralCodeResp, error)
}

// GetOrCreateCode 每个用户一个邀请码，幂等
// 并发开码靠 user_id 唯一约束串行化，输的一方读赢家的行
func (s *ReferralService) GetOrCreateCode(ctx context.Context, userID string) (string, error) {
	existing, err := s.ReferralCodeDAO.FindByUser(ctx, userID)
	if err == nil {
		return existing.Code, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", response.NewError(500, "查询邀请码失败")
	}

	for i := 0; i < codeGenRetries; i++ {
		code := utils.GenReferralCode()
		createErr := s.ReferralCodeDAO.Create(ctx, &models.ReferralCode{
			ID:     utils.GenRowID("refcode"),
			UserID: userID,
			Code:   code,
		})
		if createErr == nil {
			log.L.Info("generated referral code",
				zap.String("user_id", userID), zap.String("code", code))
			return code, nil
		}

		// 先按 user_id 冲突处理：别的请求已经给该用户开了码
		if winner, rerr := s.ReferralCodeDAO.FindByUser(ctx, userID); rerr == nil {
			return winner.Code, nil
		}
		// 否则是 code 撞了，换一个重来
		log.L.Warn("referral code collision, regenerating",
			zap.String("code", code), zap.Error(createErr))
	}

	return "", response.NewError(500, "生成邀请码失败")
}

// Resolve 邀请码反查归属用户，未知码返回空串不报错
func (s *ReferralService) Resolve(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", nil
	}
	if owner, ok := s.Cache.GetOwner(ctx, code); ok {
		return owner, nil
	}

	row, err := s.ReferralCodeDAO.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	s.Cache.SetOwner(ctx, code, row.UserID)
	return row.UserID, nil
}

// Attribute 新用户归因，终态一次性：
// 码无效/自邀/已归因都按无归因处理（nil, nil），不是错误
// referred_user_id 唯一约束是并发下的幂等兜底
func (s *ReferralService) Attribute(ctx context.Context, newUserID, code string) (*models.Referral, error) {
	level1ID, err := s.Resolve(ctx, code)
	if err != nil {
		return nil, err
	}
	if level1ID == "" {
		log.L.Warn("invalid referral code",
			zap.String("code", code), zap.String("new_user_id", newUserID))
		return nil, nil
	}
	if level1ID == newUserID {
		log.L.Warn("self-referral attempted",
			zap.String("new_user_id", newUserID), zap.String("code", code))
		return nil, nil
	}

	if _, err := s.ReferralDAO.FindByReferred(ctx, newUserID); err == nil {
		log.L.Warn("user already has a referrer", zap.String("new_user_id", newUserID))
		return nil, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 二级邀请人 = 一级邀请人自己的一级邀请人，链深封顶两级
	var level2ID *string
	if parent, err := s.ReferralDAO.FindByReferred(ctx, level1ID); err == nil {
		level2ID = &parent.ReferrerLevel1ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	referral := &models.Referral{
		ID:               utils.GenRowID("referral"),
		ReferredUserID:   newUserID,
		ReferrerLevel1ID: level1ID,
		ReferrerLevel2ID: level2ID,
	}
	if err := s.ReferralDAO.Create(ctx, referral); err != nil {
		// 并发重复归因撞唯一键，当作已归因
		if _, rerr := s.ReferralDAO.FindByReferred(ctx, newUserID); rerr == nil {
			log.L.Info("referral already recorded by concurrent request",
				zap.String("new_user_id", newUserID))
			return nil, nil
		}
		return nil, err
	}

	log.L.Info("created referral",
		zap.String("referral_id", referral.ID),
		zap.String("new_user_id", newUserID),
		zap.String("level1", level1ID),
		zap.Stringp("level2", level2ID))

	// 归因成立即各奖励一次；奖励失败不回滚归因，记日志人工兜底
	if err := s.RewardService.Credit(ctx, level1ID, RewardLevel1,
		models.RewardTypeReferralLevel1, &referral.ID, "Referral bonus for inviting new user"); err != nil {
		log.L.Error("credit level1 reward failed",
			zap.String("referral_id", referral.ID), zap.Error(err))
	}
	if level2ID != nil {
		if err := s.RewardService.Credit(ctx, *level2ID, RewardLevel2,
			models.RewardTypeReferralLevel2, &referral.ID, "Level 2 referral bonus"); err != nil {
			log.L.Error("credit level2 reward failed",
				zap.String("referral_id", referral.ID), zap.Error(err))
		}
	}

	return referral, nil
}

func (s *ReferralService) CodeResp(ctx context.Context, userID string) (*types.ReferralCodeResp, error) {
	code, err := s.GetOrCreateCode(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &types.ReferralCodeResp{
		Code:         code,
		ReferralLink: fmt.Sprintf("%s?ref=%s", s.Config.App.SiteURL, code),
	}, nil
}
