package service

import (
	"context"
	"strings"
	"time"

	"naikkelas/config"
	"naikkelas/dao"
	"naikkelas/pkg/jwt"
	"naikkelas/pkg/log"
	"naikkelas/pkg/response"
	"naikkelas/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	Config          *config.Config
	DB              *gorm.DB
	UserDAO         *dao.Users
	CreditService   ICreditService
	ReferralService IReferralService
}

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	SignIn(ctx context.Context, req *types.SignInRequest) (*types.SignInResponse, error)
	Me(ctx context.Context, userID string) (*types.UserProfile, error)
	UpdateName(ctx context.Context, userID, name string) error
}

// SignIn 首登落库 + 试用积分开户 + 邀请归因
// 归因任何失败都不拦注册，记日志吞掉
func (s *UserService) SignIn(ctx context.Context, req *types.SignInRequest) (*types.SignInResponse, error) {
	_, created, err := s.UserDAO.EnsureUser(ctx, req.UserID, req.Email)
	if err != nil {
		return nil, response.NewError(500, "登录失败")
	}

	credits, err := s.CreditService.GetOrCreateBalance(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if created && req.RefCode != "" {
		if _, aerr := s.ReferralService.Attribute(ctx, req.UserID, req.RefCode); aerr != nil {
			log.L.Warn("referral attribution failed, continuing signup",
				zap.String("user_id", req.UserID),
				zap.String("ref_code", req.RefCode),
				zap.Error(aerr))
		}
	}

	token, err := jwt.GenerateToken(
		[]byte(s.Config.Jwt.Secret),
		req.UserID,
		req.Email,
		"access",
		time.Duration(s.Config.Jwt.ExpiresIn)*time.Second,
	)
	if err != nil {
		return nil, response.NewError(500, "签发 token 失败")
	}

	return &types.SignInResponse{
		Token:   token,
		UserID:  req.UserID,
		IsNew:   created,
		Credits: credits,
	}, nil
}

func (s *UserService) Me(ctx context.Context, userID string) (*types.UserProfile, error) {
	user, err := s.UserDAO.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, response.NewError(404, "用户不存在")
		}
		return nil, response.NewError(500, "查询用户失败")
	}
	return &types.UserProfile{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

func (s *UserService) UpdateName(ctx context.Context, userID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return response.NewError(400, "昵称不能为空")
	}
	if err := s.UserDAO.UpdateName(ctx, userID, name); err != nil {
		return response.NewError(500, "更新用户失败")
	}
	return nil
}
