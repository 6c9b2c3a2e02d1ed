package service

import (
	"context"
	"errors"

	"naikkelas/dao"
	"naikkelas/pkg/log"
	"naikkelas/pkg/response"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultTrialCredits 新用户试用额度（token）
const DefaultTrialCredits = 3000

type CreditService struct {
	DB        *gorm.DB
	CreditDAO *dao.Credit
}

var _ ICreditService = (*CreditService)(nil)

type ICreditService interface {
	GetOrCreateBalance(ctx context.Context, userID string) (int64, error)
	RequireMinimum(ctx context.Context, userID string, threshold int64) (int64, bool, error)
	Debit(ctx context.Context, userID string, tokenCount int64) error
	Credit(ctx context.Context, userID string, tokenCount int64) error
}

// GetOrCreateBalance 首次触达按试用额度开户，开户撞唯一键读回赢家
func (s *CreditService) GetOrCreateBalance(ctx context.Context, userID string) (int64, error) {
	account, err := s.CreditDAO.GetAccount(ctx, userID)
	if err == nil {
		return account.Credits, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, response.NewError(500, "查询积分账户失败")
	}

	if cerr := s.CreditDAO.CreateAccount(ctx, userID, DefaultTrialCredits); cerr != nil {
		if winner, rerr := s.CreditDAO.GetAccount(ctx, userID); rerr == nil {
			return winner.Credits, nil
		}
		return 0, response.NewError(500, "创建积分账户失败")
	}
	log.L.Info("created default credits for user",
		zap.String("user_id", userID), zap.Int64("credits", DefaultTrialCredits))
	return DefaultTrialCredits, nil
}

// RequireMinimum 付费动作前的只读门槛检查
func (s *CreditService) RequireMinimum(ctx context.Context, userID string, threshold int64) (int64, bool, error) {
	balance, err := s.GetOrCreateBalance(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	return balance, balance >= threshold, nil
}

// Debit 按实际用量扣减，只在生成成功后调用
// 余额允许为负（用量结算在生成之后，既定策略）
func (s *CreditService) Debit(ctx context.Context, userID string, tokenCount int64) error {
	if tokenCount <= 0 {
		return nil
	}
	rows, err := s.CreditDAO.UpdateCredits(ctx, userID, -tokenCount)
	if err != nil {
		return err
	}
	if rows == 0 {
		// 门槛检查已确保开户，走到这里说明账户被异常删除
		return errors.New("积分账户不存在")
	}
	log.L.Info("tokens deducted",
		zap.String("user_id", userID), zap.Int64("token_count", tokenCount))
	return nil
}

// Credit 充值入账，只由充值对账调用
func (s *CreditService) Credit(ctx context.Context, userID string, tokenCount int64) error {
	if tokenCount <= 0 {
		return nil
	}
	rows, err := s.CreditDAO.UpdateCredits(ctx, userID, tokenCount)
	if err != nil {
		return err
	}
	if rows == 0 {
		// 未开户直接按充值额度开户
		if cerr := s.CreditDAO.CreateAccount(ctx, userID, tokenCount); cerr != nil {
			if rows, err = s.CreditDAO.UpdateCredits(ctx, userID, tokenCount); err != nil || rows == 0 {
				return errors.New("充值入账失败")
			}
		}
	}
	return nil
}
