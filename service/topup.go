package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"naikkelas/config"
	"naikkelas/dao"
	"naikkelas/models"
	"naikkelas/pkg/flip"
	"naikkelas/pkg/log"
	"naikkelas/pkg/response"
	"naikkelas/pkg/utils"
	"naikkelas/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TopupService struct {
	Config   *config.Config
	DB       *gorm.DB
	TopupDAO *dao.Topup
	UserDAO  *dao.Users
	Flip     *flip.Client
}

var _ ITopupService = (*TopupService)(nil)

type ITopupService interface {
	CreateTopup(ctx context.Context, userID, email, packageID string) (*types.CreateTopupResp, error)
	HandleCallback(ctx context.Context, token, data string) (*types.CallbackResult, error)
	History(ctx context.Context, userID string) (*types.TopupHistoryResp, error)
}

// CreateTopup 创建充值单：先外部下单，成功才落 PENDING 本地单
// 下单失败不留任何本地记录
func (s *TopupService) CreateTopup(ctx context.Context, userID, email, packageID string) (*types.CreateTopupResp, error) {
	pkg, ok := flip.GetPackage(packageID)
	if !ok {
		return nil, response.NewError(400, "无效的套餐")
	}

	senderName := "User"
	if user, err := s.UserDAO.FindByID(ctx, userID); err == nil && user.Name != nil && *user.Name != "" {
		senderName = *user.Name
	}

	bill, err := s.Flip.CreateBill(ctx, &flip.BillRequest{
		Title:       fmt.Sprintf("Naikkelas Credit Topup - %s (%d credits)", pkg.Name, pkg.Credits),
		Amount:      pkg.Amount,
		Type:        "SINGLE",
		ExpiredDate: flip.FormatExpiredDate(24),
		RedirectURL: s.Config.App.SiteURL + "?topup=success",
		SenderName:  senderName,
		SenderEmail: email,
		Step:        2, // 直接展示支付指引
	})
	if err != nil {
		log.L.Error("create flip bill failed",
			zap.String("user_id", userID), zap.Error(err))
		return nil, response.NewError(500, "创建支付账单失败")
	}

	txn := &models.TopupTransaction{
		ID:           utils.GenRowID("txn"),
		UserID:       userID,
		FlipBillID:   strconv.FormatInt(bill.LinkID, 10),
		FlipBillLink: bill.LinkURL,
		Amount:       pkg.Amount,
		Credits:      pkg.Credits,
		Status:       models.TopupStatusPending,
	}
	if err := s.TopupDAO.Create(ctx, txn); err != nil {
		return nil, response.NewError(500, "保存充值单失败")
	}

	log.L.Info("topup transaction created",
		zap.String("transaction_id", txn.ID),
		zap.String("user_id", userID),
		zap.String("package_id", packageID),
		zap.Int64("amount", pkg.Amount),
		zap.String("flip_bill_id", txn.FlipBillID))

	return &types.CreateTopupResp{
		TransactionID: txn.ID,
		BillID:        txn.FlipBillID,
		BillLink:      bill.LinkURL,
		Amount:        pkg.Amount,
		Credits:       pkg.Credits,
	}, nil
}

// HandleCallback 处理 Flip 异步回调，at-least-once 投递按恰好一次入账
// 状态检查和迁移放在同一事务里的条件更新上，并发重复回调只有一个能赢
func (s *TopupService) HandleCallback(ctx context.Context, token, data string) (*types.CallbackResult, error) {
	if !s.Flip.ValidateCallbackToken(token) {
		log.L.Warn("invalid flip callback token")
		return nil, response.NewError(401, "invalid token")
	}

	cb, err := flip.ParseCallbackData(data)
	if err != nil {
		log.L.Error("parse flip callback failed", zap.Error(err))
		return nil, response.NewError(400, "invalid data format")
	}

	billID := strconv.FormatInt(cb.BillLinkID, 10)
	log.L.Info("processing flip callback",
		zap.String("flip_bill_id", billID),
		zap.String("status", cb.Status),
		zap.Int64("amount", cb.Amount))

	var result types.CallbackResult
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		topupDAO := dao.NewTopup(tx)

		txn, err := topupDAO.FindByBillID(ctx, billID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.L.Warn("transaction not found for flip callback",
					zap.String("flip_bill_id", billID))
				return response.NewError(404, "transaction not found")
			}
			return err
		}

		// 幂等闸门：已成功的单子重放回调直接返回成功，不再入账
		if txn.Status == models.TopupStatusSuccessful {
			log.L.Info("transaction already processed",
				zap.String("transaction_id", txn.ID))
			result.Status = txn.Status
			return nil
		}

		newStatus := mapFlipStatus(cb.Status)
		if newStatus == "" {
			// 未知状态保持原样
			log.L.Info("unrecognized flip status, leaving transaction unchanged",
				zap.String("status", cb.Status), zap.String("transaction_id", txn.ID))
			result.Status = txn.Status
			return nil
		}

		var paidAt *time.Time
		if newStatus == models.TopupStatusSuccessful {
			now := time.Now()
			paidAt = &now
		}

		rows, err := topupDAO.MarkTerminal(ctx, txn.ID, newStatus, paidAt, []byte(data))
		if err != nil {
			return err
		}
		if rows == 0 {
			// 并发回调输了竞争，赢家已经处理过
			log.L.Info("lost callback race, skipping",
				zap.String("transaction_id", txn.ID))
			result.Status = txn.Status
			return nil
		}
		result.Status = newStatus

		if newStatus != models.TopupStatusSuccessful {
			return nil
		}

		// 金额不一致记日志但仍然入账（既定策略，不拦截）
		if cb.Amount != txn.Amount {
			log.L.Error("amount mismatch in flip callback",
				zap.Int64("expected", txn.Amount),
				zap.Int64("received", cb.Amount),
				zap.String("transaction_id", txn.ID))
		}

		creditDAO := dao.NewCredit(tx)
		affected, err := creditDAO.UpdateCredits(ctx, txn.UserID, txn.Credits)
		if err != nil {
			return err
		}
		if affected == 0 {
			if err := creditDAO.CreateAccount(ctx, txn.UserID, txn.Credits); err != nil {
				return err
			}
		}

		log.L.Info("credits added",
			zap.String("user_id", txn.UserID),
			zap.Int64("credits_added", txn.Credits),
			zap.String("transaction_id", txn.ID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// mapFlipStatus 渠道状态映射，认不出来返回空串
func mapFlipStatus(status string) string {
	switch status {
	case "SUCCESSFUL":
		return models.TopupStatusSuccessful
	case "FAILED":
		return models.TopupStatusFailed
	case "CANCELLED":
		return models.TopupStatusCancelled
	default:
		return ""
	}
}

func (s *TopupService) History(ctx context.Context, userID string) (*types.TopupHistoryResp, error) {
	txs, err := s.TopupDAO.ListByUser(ctx, userID, 50)
	if err != nil {
		return nil, response.NewError(500, "查询充值历史失败")
	}

	resp := &types.TopupHistoryResp{Transactions: make([]types.TopupRecord, 0, len(txs))}
	for _, t := range txs {
		record := types.TopupRecord{
			ID:        t.ID,
			Amount:    t.Amount,
			Credits:   t.Credits,
			Status:    t.Status,
			CreatedAt: t.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if t.PaidAt != nil {
			paidAt := t.PaidAt.Format("2006-01-02 15:04:05")
			record.PaidAt = &paidAt
		}
		resp.Transactions = append(resp.Transactions, record)
	}
	return resp, nil
}
