package service

import (
	"context"
	"errors"

	"naikkelas/dao"
	"naikkelas/models"
	"naikkelas/pkg/response"
	"naikkelas/pkg/utils"
	"naikkelas/types"

	"github.com/sourcegraph/conc/pool"
	"gorm.io/gorm"
)

type RewardService struct {
	DB          *gorm.DB
	RewardDAO   *dao.Reward
	ReferralDAO *dao.Referral
}

var _ IRewardService = (*RewardService)(nil)

type IRewardService interface {
	Credit(ctx context.Context, userID string, amount int64, rewardType string, referralID *string, description string) error
	GetBalance(ctx context.Context, userID string) (int64, error)
	GetStats(ctx context.Context, userID string) (*types.ReferralStats, error)
	History(ctx context.Context, userID string) (*types.RewardHistoryResp, error)
}

// Credit 入账：余额原子加减 + 追加流水，同一事务内要么都成要么都不成
// 账户不存在时顺路开户，开户撞唯一键视为别人赢了，继续加减
func (s *RewardService) Credit(ctx context.Context, userID string, amount int64, rewardType string, referralID *string, description string) error {
	if amount == 0 {
		return nil
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rewardDAO := dao.NewReward(tx)

		rows, err := rewardDAO.UpdateBalance(ctx, userID, amount)
		if err != nil {
			return err
		}
		if rows == 0 {
			// 自动开户，失败说明并发下别人先开了
			if cerr := rewardDAO.CreateAccount(ctx, userID); cerr != nil {
				if _, rerr := rewardDAO.GetAccount(ctx, userID); rerr != nil {
					return cerr
				}
			}
			rows, err = rewardDAO.UpdateBalance(ctx, userID, amount)
			if err != nil {
				return err
			}
			if rows == 0 {
				return errors.New("更新返现余额失败")
			}
		}

		return rewardDAO.CreateTransaction(ctx, &models.RewardTransaction{
			ID:          utils.GenRowID("rewardtx"),
			UserID:      userID,
			Amount:      amount,
			Type:        rewardType,
			ReferralID:  referralID,
			Description: description,
		})
	})
}

// GetBalance 查余额，没有账户按 0 返回，不隐式开户
func (s *RewardService) GetBalance(ctx context.Context, userID string) (int64, error) {
	account, err := s.RewardDAO.GetAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, response.NewError(500, "查询返现账户失败")
	}
	return account.Balance, nil
}

// GetStats 邀请统计，三个计数并发查
func (s *RewardService) GetStats(ctx context.Context, userID string) (*types.ReferralStats, error) {
	var (
		level1Count int64
		level2Count int64
		totalEarned int64
	)

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		var err error
		level1Count, err = s.ReferralDAO.CountLevel1(ctx, userID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		level2Count, err = s.ReferralDAO.CountLevel2(ctx, userID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		totalEarned, err = s.RewardDAO.SumPositive(ctx, userID)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, response.NewError(500, "查询邀请统计失败")
	}

	return &types.ReferralStats{
		TotalReferrals:     level1Count + level2Count,
		Level1Count:        level1Count,
		Level2Count:        level2Count,
		TotalRewardsEarned: totalEarned,
	}, nil
}

func (s *RewardService) History(ctx context.Context, userID string) (*types.RewardHistoryResp, error) {
	txs, err := s.RewardDAO.ListTransactions(ctx, userID)
	if err != nil {
		return nil, response.NewError(500, "查询返现流水失败")
	}

	resp := &types.RewardHistoryResp{Transactions: make([]types.RewardRecord, 0, len(txs))}
	for _, t := range txs {
		resp.Transactions = append(resp.Transactions, types.RewardRecord{
			ID:          t.ID,
			Amount:      t.Amount,
			Type:        t.Type,
			Description: t.Description,
			CreatedAt:   t.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return resp, nil
}
